package core

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestFixedStepPacing(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	fs := NewFixedStep(10, clock.now)

	if !fs.ShouldStep() {
		t.Fatal("first call should step immediately")
	}
	clock.advance(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("should not step before the interval elapses")
	}
	clock.advance(50 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("should step once 100ms have accumulated")
	}
}

func TestFixedStepStallDoesNotBurst(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	fs := NewFixedStep(10, clock.now)
	fs.ShouldStep()

	clock.advance(5 * time.Second)
	steps := 0
	for i := 0; i < 10; i++ {
		if fs.ShouldStep() {
			steps++
		}
	}
	if steps > 2 {
		t.Fatalf("stall produced %d catch-up steps, expected at most 2", steps)
	}
}

func TestFixedStepDefaultsTPS(t *testing.T) {
	fs := NewFixedStep(0, nil)
	if fs.TPS() != 60 {
		t.Fatalf("TPS = %d, expected default 60", fs.TPS())
	}
	fs.SetTPS(25)
	if fs.TPS() != 25 {
		t.Fatalf("TPS = %d, expected 25", fs.TPS())
	}
}
