package models

import "time"

// Chat message senders.
const (
	SenderUser   = "user"
	SenderTrader = "trader"
)

// ChatMessage is one entry in a ticket's conversation log. Messages are
// persisted so a conversation survives reloads; ordering within a ticket is
// by Seq.
type ChatMessage struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	TicketID  int64     `json:"-" gorm:"index;not null"`
	Seq       int       `json:"id"` // position within the ticket's thread, starting at 1
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Time      string    `json:"time"` // HH:MM wall clock, display only
	CreatedAt time.Time `json:"-"`
}
