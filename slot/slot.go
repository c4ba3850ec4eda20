// Package slot provides a process-wide location where a logger factory can be
// published and discovered.
//
// Independent copies of the logs package (for example, two major versions
// resolved into one binary) do not share package state. They can still agree
// on the most recently installed factory through this package, whose API is
// untyped and kept stable across releases. Factories are published as
// func(string) any.
//
// Copies agree only while they resolve the same import path of this package.
// A slot package under a new major version path is a separate package with
// its own [Global].
package slot

import "sync/atomic"

// Slot holds a single published value. The zero value is empty and ready
// to use.
type Slot struct {
	v atomic.Pointer[entry]
}

// entry boxes published values so that values of different dynamic types may
// be stored in sequence.
type entry struct{ val any }

// Global is the well-known process-wide slot.
//
//nolint:gochecknoglobals
var Global = &Slot{}

// Publish replaces the value held by s. Last write wins.
func (s *Slot) Publish(val any) {
	s.v.Store(&entry{val: val})
}

// Load returns the value held by s, or nil if nothing has been published.
func (s *Slot) Load() any {
	if e := s.v.Load(); e != nil {
		return e.val
	}

	return nil
}
