package game

import (
	"math"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newSimForTest() (*Store, *CompanionSim, *fakeClock) {
	st := NewStore()
	clk := &fakeClock{t: time.Unix(1000, 0)}
	sim := NewCompanionSim(st, clk.now, zap.NewNop().Sugar())
	return st, sim, clk
}

func addLocal(st *Store, x, y float64) {
	st.UpsertPlayer(Player{ID: "p1", Username: "me", X: x, Y: y, Avatar: "hero"})
	st.LocalID = "p1"
}

func addCompanion(st *Store, x, y, follow float64) *Companion {
	c := &Companion{ID: "c1", Name: "Biscuit", X: x, Y: y, Facing: FacingSouth, FollowDistance: follow}
	st.UpsertCompanion(c)
	return c
}

func distTo(st *Store, c *Companion) float64 {
	lp, _ := st.LocalPlayer()
	return math.Hypot(lp.X-c.X, lp.Y-c.Y)
}

func TestTickWithoutLocalPlayerIsNoop(t *testing.T) {
	st, sim, _ := newSimForTest()
	c := addCompanion(st, 10, 10, 30)
	sim.Tick()
	if c.X != 10 || c.Y != 10 || c.Moving {
		t.Errorf("companion changed without a local player: %+v", c)
	}
}

func TestTickMovesTowardPlayer(t *testing.T) {
	st, sim, _ := newSimForTest()
	addLocal(st, 100, 0)
	c := addCompanion(st, 0, 0, 10)

	sim.Tick()

	if c.X != 2 || c.Y != 0 {
		t.Errorf("position = (%v, %v), want (2, 0)", c.X, c.Y)
	}
	if !c.Moving || c.Frame != 1 || c.Facing != FacingEast {
		t.Errorf("state = moving=%v frame=%d facing=%s", c.Moving, c.Frame, c.Facing)
	}
}

func TestTickStrictlyDecreasesDistance(t *testing.T) {
	st, sim, clk := newSimForTest()
	addLocal(st, 300, 400)
	c := addCompanion(st, 0, 0, 25)

	before := distTo(st, c)
	for i := 0; i < 5; i++ {
		sim.Tick()
		after := distTo(st, c)
		if after >= before {
			t.Fatalf("tick %d: distance %v did not decrease from %v", i, after, before)
		}
		before = after
		clk.advance(TickInterval)
	}
}

func TestTickWithinFollowDistanceIsStationary(t *testing.T) {
	st, sim, _ := newSimForTest()
	addLocal(st, 100, 0)
	c := addCompanion(st, 98, 0, 10)
	c.Moving = true
	c.Frame = 2

	sim.Tick()

	if c.X != 98 || c.Y != 0 {
		t.Errorf("position moved to (%v, %v)", c.X, c.Y)
	}
	if c.Moving || c.Frame != 0 {
		t.Errorf("expected stationary with frame 0, got moving=%v frame=%d", c.Moving, c.Frame)
	}
}

func TestTickIsTimeGated(t *testing.T) {
	st, sim, clk := newSimForTest()
	addLocal(st, 100, 0)
	c := addCompanion(st, 0, 0, 10)

	sim.Tick()
	sim.Tick() // same instant, gated
	if c.X != 2 {
		t.Errorf("gated tick moved companion to x=%v", c.X)
	}

	clk.advance(TickInterval)
	sim.Tick()
	if c.X != 4 {
		t.Errorf("after interval, x = %v, want 4", c.X)
	}
}

func TestFacingTieGoesVertical(t *testing.T) {
	st, sim, _ := newSimForTest()
	addLocal(st, 50, 50)
	c := addCompanion(st, 0, 0, 10)

	sim.Tick()
	if c.Facing != FacingSouth {
		t.Errorf("facing = %s, want south on equal deltas", c.Facing)
	}
}

func TestFacingWestAndNorth(t *testing.T) {
	st, sim, clk := newSimForTest()
	addLocal(st, 0, 0)
	c := addCompanion(st, 100, 5, 10)

	sim.Tick()
	if c.Facing != FacingWest {
		t.Errorf("facing = %s, want west", c.Facing)
	}

	c.X, c.Y = 0, 100
	clk.advance(TickInterval)
	sim.Tick()
	if c.Facing != FacingNorth {
		t.Errorf("facing = %s, want north", c.Facing)
	}
}

func TestTickClampsIntoWorld(t *testing.T) {
	st, sim, _ := newSimForTest()
	addLocal(st, 0, 0)
	c := addCompanion(st, -50, -50, 200)

	sim.Tick()
	if c.X < 0 || c.Y < 0 || c.X > WorldWidth || c.Y > WorldHeight {
		t.Errorf("position (%v, %v) outside world bounds", c.X, c.Y)
	}
}

func TestWalkCycleWraps(t *testing.T) {
	st, sim, clk := newSimForTest()
	addLocal(st, 1000, 0)
	c := addCompanion(st, 0, 0, 10)

	want := []int{1, 2, 0, 1}
	for i, w := range want {
		sim.Tick()
		if c.Frame != w {
			t.Fatalf("tick %d: frame = %d, want %d", i, c.Frame, w)
		}
		clk.advance(TickInterval)
	}
}

func TestEnsureSpawned(t *testing.T) {
	st, sim, _ := newSimForTest()
	specs := []CompanionSpec{
		{Name: "Biscuit", FollowDistance: 60},
		{Name: "Clover", Avatar: "cat", FollowDistance: 85},
	}

	sim.EnsureSpawned(specs)
	if len(st.Companions()) != 0 {
		t.Fatal("companions spawned before a local player position was known")
	}

	addLocal(st, 500, 500)
	sim.EnsureSpawned(specs)
	if len(st.Companions()) != 2 {
		t.Fatalf("expected 2 companions, got %d", len(st.Companions()))
	}
	for _, c := range st.Companions() {
		switch c.Name {
		case "Biscuit":
			if c.Avatar != "hero" {
				t.Errorf("Biscuit avatar = %q, want local player's %q", c.Avatar, "hero")
			}
		case "Clover":
			if c.Avatar != "cat" {
				t.Errorf("Clover avatar = %q, want %q", c.Avatar, "cat")
			}
		}
		if c.ID == "" {
			t.Error("companion spawned without an id")
		}
	}

	sim.EnsureSpawned(specs)
	if len(st.Companions()) != 2 {
		t.Errorf("second spawn duplicated companions: %d", len(st.Companions()))
	}
}
