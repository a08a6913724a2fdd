package game

import "time"

// Facing is the cardinal direction an entity is looking in. The wire protocol
// carries it as a lowercase string, so the constants double as JSON values.
type Facing string

const (
	FacingNorth Facing = "north"
	FacingSouth Facing = "south"
	FacingEast  Facing = "east"
	FacingWest  Facing = "west"
)

// Player is a server-authoritative entity. Instances are created and replaced
// wholesale from server messages; the client never mutates one field-by-field.
type Player struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Facing   Facing  `json:"facing"`
	Moving   bool    `json:"is_moving"`
	Frame    int     `json:"animation_frame"`
	Avatar   string  `json:"avatar"`
}

// AvatarDefinition names an ordered set of directional sprite frames. Frames
// arrive as base64 image payloads ("data:image/png;base64,..." or bare base64)
// and are turned into drawable images lazily by the render package.
type AvatarDefinition struct {
	Name   string              `json:"name"`
	Frames map[Facing][]string `json:"frames"`
}

// Companion is a client-local entity that follows the local player. It is
// never received from or reported to the server.
type Companion struct {
	ID             string
	Name           string
	X              float64
	Y              float64
	Facing         Facing
	Moving         bool
	Frame          int
	FollowDistance float64
	Avatar         string
	LastTick       time.Time
}
