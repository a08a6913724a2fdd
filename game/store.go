package game

// Store holds every entity the client knows about, keyed by identifier.
// All access happens on the game loop goroutine, so there is no locking;
// inbound network events are queued and applied from that same goroutine.
type Store struct {
	// LocalID is the session-assigned id of the player this client controls.
	// Empty until a join succeeds.
	LocalID string

	players    map[string]*Player
	avatars    map[string]*AvatarDefinition
	companions map[string]*Companion
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		players:    make(map[string]*Player),
		avatars:    make(map[string]*AvatarDefinition),
		companions: make(map[string]*Companion),
	}
}

// UpsertPlayer inserts or fully replaces the player with p.ID. Last write
// wins; there is no field merge.
func (s *Store) UpsertPlayer(p Player) {
	s.players[p.ID] = &p
}

// Player looks up a player by id.
func (s *Store) Player(id string) (*Player, bool) {
	p, ok := s.players[id]
	return p, ok
}

// RemovePlayer deletes a player. Removing an absent id is a no-op.
func (s *Store) RemovePlayer(id string) {
	delete(s.players, id)
}

// Players exposes the player map for iteration by the render and simulation
// code. Callers must not retain it across frames.
func (s *Store) Players() map[string]*Player {
	return s.players
}

// LocalPlayer returns the player the session id points at, if known.
func (s *Store) LocalPlayer() (*Player, bool) {
	if s.LocalID == "" {
		return nil, false
	}
	return s.Player(s.LocalID)
}

// UpsertAvatar inserts or fully replaces an avatar definition by name.
// The store does not check that any player references it; resolution is
// deferred to render time.
func (s *Store) UpsertAvatar(a AvatarDefinition) {
	s.avatars[a.Name] = &a
}

// Avatar looks up an avatar definition by name.
func (s *Store) Avatar(name string) (*AvatarDefinition, bool) {
	a, ok := s.avatars[name]
	return a, ok
}

// UpsertCompanion inserts or replaces a companion by id.
func (s *Store) UpsertCompanion(c *Companion) {
	s.companions[c.ID] = c
}

// Companions exposes the companion map for iteration.
func (s *Store) Companions() map[string]*Companion {
	return s.companions
}

// RemoveCompanion deletes a companion. Absent ids are a no-op.
func (s *Store) RemoveCompanion(id string) {
	delete(s.companions, id)
}

// Reset clears server-owned state ahead of a fresh join. Avatar definitions
// are content-addressed by name and survive, as do locally owned companions.
func (s *Store) Reset() {
	s.LocalID = ""
	s.players = make(map[string]*Player)
}
