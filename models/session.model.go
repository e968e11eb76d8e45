package models

import "time"

// Session is the server-held record behind every issued token. A request is
// only privileged if its token signature checks out AND the session row it
// names is still live; nothing the client stores locally grants a role.
type Session struct {
	ID        string    `json:"id" gorm:"primaryKey"` // uuid, carried as the jti claim
	SteamID   string    `json:"steamid" gorm:"index;not null"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// Live reports whether the session can still authenticate requests.
func (s *Session) Live(now time.Time) bool {
	return !s.Revoked && now.Before(s.ExpiresAt)
}
