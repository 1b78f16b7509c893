package config

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestLoadDefaults(t *testing.T) {
	c := qt.New(t)
	cfg, err := Load(nil)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.LogLevel, qt.Equals, defaultLogLevel)
	c.Assert(cfg.LogOutput, qt.Equals, defaultLogOutput)
}

func TestLoadFlagOverride(t *testing.T) {
	c := qt.New(t)
	cfg, err := Load([]string{"--log.level=debug", "--datadir=/tmp/election"})
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.LogLevel, qt.Equals, "debug")
	c.Assert(cfg.Datadir, qt.Equals, "/tmp/election")
}
