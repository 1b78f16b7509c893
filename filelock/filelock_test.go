package filelock

import (
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestLockExcludesSecondAcquirer(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(t.TempDir(), "voter.json.lock")

	first := New(path)
	c.Assert(first.Lock(), qt.IsNil)

	acquired := make(chan struct{})
	go func() {
		second := New(path)
		c.Check(second.Lock(), qt.IsNil)
		close(acquired)
		c.Check(second.Unlock(), qt.IsNil)
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock() returned while first lock still held")
	case <-time.After(100 * time.Millisecond):
	}

	c.Assert(first.Unlock(), qt.IsNil)

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("second Lock() never acquired after release")
	}
}

func TestUnlockWithoutLockIsNoop(t *testing.T) {
	c := qt.New(t)
	l := New(filepath.Join(t.TempDir(), "unused.lock"))
	c.Assert(l.Unlock(), qt.IsNil)
}
