package models

import (
	"time"

	"github.com/google/uuid"
)

// Clock returns the current time as unix seconds. Swappable for tests so
// entity timestamps are deterministic.
type Clock func() int64

// WallClock is the default second-resolution clock.
func WallClock() int64 {
	return time.Now().Unix()
}

// now stamps freshly constructed entities. Tests replace it via SetClock.
var now Clock = WallClock

// SetClock replaces the entity timestamp source and returns a restore
// function.
func SetClock(c Clock) func() {
	prev := now
	now = c
	return func() { now = prev }
}

// NewID generates an opaque unique entity id.
func NewID() string {
	return uuid.NewString()
}
