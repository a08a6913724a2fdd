package game

import (
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// TickInterval gates companion updates independently of the render rate.
	TickInterval = 100 * time.Millisecond

	companionSpeed  = 2.0 // world units per tick
	walkCycleFrames = 3
)

// CompanionSpec describes a companion to spawn once the local player's
// position is known. An empty Avatar means "use the local player's avatar".
type CompanionSpec struct {
	Name           string
	Avatar         string
	FollowDistance float64
}

// CompanionSim advances client-local companions toward the local player on a
// fixed cadence. The clock is injected so tests drive time deterministically.
type CompanionSim struct {
	store   *Store
	now     func() time.Time
	log     *zap.SugaredLogger
	spawned bool
}

// NewCompanionSim wires a simulator to a store. A nil now falls back to
// time.Now.
func NewCompanionSim(store *Store, now func() time.Time, log *zap.SugaredLogger) *CompanionSim {
	if now == nil {
		now = time.Now
	}
	return &CompanionSim{store: store, now: now, log: log}
}

// EnsureSpawned creates the configured companions the first time a local
// player position is known. Calling it again is a no-op. Companions start
// slightly behind the player, each offset so they do not stack.
func (s *CompanionSim) EnsureSpawned(specs []CompanionSpec) {
	if s.spawned {
		return
	}
	lp, ok := s.store.LocalPlayer()
	if !ok {
		return
	}
	for i, spec := range specs {
		avatar := spec.Avatar
		if avatar == "" {
			avatar = lp.Avatar
		}
		x, y := ClampToWorld(lp.X-40*float64(i+1), lp.Y+30)
		c := &Companion{
			ID:             uuid.NewString(),
			Name:           spec.Name,
			X:              x,
			Y:              y,
			Facing:         FacingSouth,
			FollowDistance: spec.FollowDistance,
			Avatar:         avatar,
			LastTick:       s.now(),
		}
		s.store.UpsertCompanion(c)
		s.log.Infow("companion spawned", "id", c.ID, "name", c.Name, "x", c.X, "y", c.Y)
	}
	s.spawned = true
}

// Tick advances every companion whose last update is at least TickInterval
// old. Without a local player it does nothing.
func (s *CompanionSim) Tick() {
	lp, ok := s.store.LocalPlayer()
	if !ok {
		return
	}
	now := s.now()
	for _, c := range s.store.Companions() {
		if now.Sub(c.LastTick) < TickInterval {
			continue
		}
		s.step(c, lp, now)
	}
}

// step moves one companion toward the player if it is outside its follow
// distance. The heading comes from Atan2 rather than dividing by the vector
// length, so a zero-length delta cannot produce NaN.
func (s *CompanionSim) step(c *Companion, lp *Player, now time.Time) {
	dx := lp.X - c.X
	dy := lp.Y - c.Y
	dist := math.Hypot(dx, dy)

	if dist > c.FollowDistance {
		angle := math.Atan2(dy, dx)
		c.X += math.Cos(angle) * companionSpeed
		c.Y += math.Sin(angle) * companionSpeed
		// Dominant axis picks the facing; ties go vertical.
		if math.Abs(dx) > math.Abs(dy) {
			if dx > 0 {
				c.Facing = FacingEast
			} else {
				c.Facing = FacingWest
			}
		} else {
			if dy > 0 {
				c.Facing = FacingSouth
			} else {
				c.Facing = FacingNorth
			}
		}
		c.Moving = true
		c.Frame = (c.Frame + 1) % walkCycleFrames
	} else {
		c.Moving = false
		c.Frame = 0
	}

	c.X, c.Y = ClampToWorld(c.X, c.Y)
	c.LastTick = now
}
