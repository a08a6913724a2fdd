package session

import (
	"go.uber.org/zap"

	"github.com/lowwcrystal/go-mmo-client/game"
	"github.com/lowwcrystal/go-mmo-client/protocol"
)

// Apply mutates the store according to one decoded server event. It runs on
// the game loop goroutine, which is the only place store mutation happens.
// All updates are idempotent upserts, so delivery order between a simulation
// tick and an inbound event does not matter.
func Apply(st *game.Store, ev any, log *zap.SugaredLogger) {
	switch m := ev.(type) {
	case *protocol.JoinResult:
		if !m.Success {
			// Application-level rejection: surfaced, never retried.
			log.Warnw("join rejected", "error", m.Error)
			return
		}
		st.Reset()
		st.LocalID = m.PlayerID
		for _, p := range m.Players {
			st.UpsertPlayer(p)
		}
		for _, a := range m.Avatars {
			st.UpsertAvatar(a)
		}
		log.Infow("joined", "playerId", m.PlayerID,
			"players", len(m.Players), "avatars", len(m.Avatars))

	case *protocol.PlayerJoined:
		st.UpsertPlayer(m.Player)
		st.UpsertAvatar(m.Avatar)

	case *protocol.PlayersMoved:
		for _, p := range m.Players {
			st.UpsertPlayer(p)
		}

	case *protocol.PlayerLeft:
		st.RemovePlayer(m.PlayerID)
	}
}

func actionOf(ev any) string {
	switch ev.(type) {
	case *protocol.JoinResult:
		return protocol.ActionJoin
	case *protocol.PlayerJoined:
		return protocol.ActionPlayerJoined
	case *protocol.PlayersMoved:
		return protocol.ActionPlayersMoved
	case *protocol.PlayerLeft:
		return protocol.ActionPlayerLeft
	}
	return "unknown"
}
