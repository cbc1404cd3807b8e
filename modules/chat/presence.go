package chat

import (
	domain "github.com/example/chat-gateway/domain/chat"
	"github.com/example/chat-gateway/modules/hub"
)

// roster computes the author -> connectionId mapping over a room's live
// members, plus its roster form. If two connections share an author name
// the last-enumerated one wins. Entry order follows map iteration; no
// stable tie-break is guaranteed.
func roster(members []hub.Member) (map[string]string, []domain.PresenceEntry) {
	users := make(map[string]string, len(members))
	for _, member := range members {
		users[member.Author] = member.ID
	}

	entries := make([]domain.PresenceEntry, 0, len(users))
	for username, connectionID := range users {
		entries = append(entries, domain.PresenceEntry{
			Username:     username,
			ConnectionID: connectionID,
		})
	}
	return users, entries
}

// refreshPresence recomputes a room's roster from the live membership
// and broadcasts it as online_users to every member, sender included.
// Callers pair it with a user_joined or user_left emission carrying the
// same mapping.
func (r *Router) refreshPresence(room string) map[string]string {
	users, entries := roster(r.hub.MembersOf(room))
	r.hub.EmitToRoom(room, EventOnlineUsers, entries, "")
	return users
}
