// Package protocol defines the JSON messages exchanged with the game server
// and the decode step that turns raw frames into typed events.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lowwcrystal/go-mmo-client/game"
)

// Action discriminator values. The server reuses "join_game" for the join
// acknowledgement, so it appears in both directions.
const (
	ActionJoin         = "join_game"
	ActionMove         = "move"
	ActionStop         = "stop"
	ActionPlayerJoined = "player_joined"
	ActionPlayersMoved = "players_moved"
	ActionPlayerLeft   = "player_left"
)

// Direction values carried by move requests.
const (
	DirUp    = "up"
	DirDown  = "down"
	DirLeft  = "left"
	DirRight = "right"
)

// ErrUnknownAction marks a message whose discriminator the client does not
// recognize. Callers drop these without tearing down the connection.
var ErrUnknownAction = errors.New("unknown action")

// JoinRequest asks the server to admit this client under a display name.
type JoinRequest struct {
	Action   string `json:"action"`
	Username string `json:"username"`
}

// MoveRequest carries a cardinal movement intent.
type MoveRequest struct {
	Action    string `json:"action"`
	Direction string `json:"direction"`
}

// StopRequest cancels any in-progress movement.
type StopRequest struct {
	Action string `json:"action"`
}

// JoinResult acknowledges a JoinRequest. On success it carries the assigned
// player id plus the full current world state; on failure only Error is set.
type JoinResult struct {
	Action   string                           `json:"action"`
	Success  bool                             `json:"success"`
	PlayerID string                           `json:"playerId"`
	Players  map[string]game.Player           `json:"players"`
	Avatars  map[string]game.AvatarDefinition `json:"avatars"`
	Error    string                           `json:"error"`
}

// PlayerJoined announces a new remote player together with its avatar.
type PlayerJoined struct {
	Action string                `json:"action"`
	Player game.Player           `json:"player"`
	Avatar game.AvatarDefinition `json:"avatar"`
}

// PlayersMoved is a batched position update. Entries replace stored players
// wholesale (last write wins).
type PlayersMoved struct {
	Action  string                 `json:"action"`
	Players map[string]game.Player `json:"players"`
}

// PlayerLeft announces that a player disconnected.
type PlayerLeft struct {
	Action   string `json:"action"`
	PlayerID string `json:"playerId"`
}

type envelope struct {
	Action string `json:"action"`
}

// Decode peeks the action discriminator and unmarshals the full message into
// its typed form. Unrecognized actions return ErrUnknownAction; malformed
// payloads return a decode error. Neither is fatal to the caller.
func Decode(raw []byte) (any, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	var msg any
	switch env.Action {
	case ActionJoin:
		msg = &JoinResult{}
	case ActionPlayerJoined:
		msg = &PlayerJoined{}
	case ActionPlayersMoved:
		msg = &PlayersMoved{}
	case ActionPlayerLeft:
		msg = &PlayerLeft{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Action)
	}
	if err := json.Unmarshal(raw, msg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", env.Action, err)
	}
	return msg, nil
}

// EncodeJoin builds the outbound join request.
func EncodeJoin(username string) ([]byte, error) {
	return json.Marshal(JoinRequest{Action: ActionJoin, Username: username})
}

// EncodeMove builds an outbound move intent.
func EncodeMove(direction string) ([]byte, error) {
	return json.Marshal(MoveRequest{Action: ActionMove, Direction: direction})
}

// EncodeStop builds an outbound stop intent.
func EncodeStop() ([]byte, error) {
	return json.Marshal(StopRequest{Action: ActionStop})
}
