// Package config loads process-level settings for an election working
// directory: where it lives on disk, log verbosity/output, and where the
// PEM key material for the ballot-encryption and signing keys can be
// found. It mirrors the teacher's flags/env/defaults loading style without
// requiring a CLI to be built around it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultLogLevel  = "info"
	defaultLogOutput = "stdout"
	defaultDatadir   = ".evote"
)

// Config holds the settings needed to construct a Workflow.
type Config struct {
	Datadir           string `mapstructure:"datadir"`
	LogLevel          string `mapstructure:"log.level"`
	LogOutput         string `mapstructure:"log.output"`
	EncryptionPubKey  string `mapstructure:"keys.encryptionPub"`
	SigningPrivKey    string `mapstructure:"keys.signingPriv"`
	DecryptionPrivKey string `mapstructure:"keys.decryptionPriv"`
}

// Load reads configuration from flags, environment variables (prefixed
// EVOTE_) and defaults, in that precedence order. args is typically
// os.Args[1:]; pass nil to only consider environment and defaults (useful
// from tests and library callers that embed this package without a CLI).
func Load(args []string) (*Config, error) {
	v := viper.New()

	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		userHomeDir = "."
	}
	defaultDatadirPath := filepath.Join(userHomeDir, defaultDatadir)

	v.SetDefault("datadir", defaultDatadirPath)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.output", defaultLogOutput)

	fs := flag.NewFlagSet("evote", flag.ContinueOnError)
	fs.String("datadir", defaultDatadirPath, "working directory for the election")
	fs.String("log.level", defaultLogLevel, "log level (debug, info, warn, error)")
	fs.String("log.output", defaultLogOutput, "log output (stdout, stderr or filepath)")
	fs.String("keys.encryptionPub", "", "path to the PEM-encoded ballot encryption public key")
	fs.String("keys.signingPriv", "", "path to the PEM-encoded ballot signing private key")
	fs.String("keys.decryptionPriv", "", "path to the PEM-encoded ballot decryption private key")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config: parse flags: %w", err)
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: bind flags: %w", err)
	}

	v.SetEnvPrefix("EVOTE")
	v.AutomaticEnv()

	cfg := &Config{
		Datadir:           v.GetString("datadir"),
		LogLevel:          v.GetString("log.level"),
		LogOutput:         v.GetString("log.output"),
		EncryptionPubKey:  v.GetString("keys.encryptionPub"),
		SigningPrivKey:    v.GetString("keys.signingPriv"),
		DecryptionPrivKey: v.GetString("keys.decryptionPriv"),
	}
	return cfg, nil
}
