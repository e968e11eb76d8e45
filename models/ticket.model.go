package models

import "time"

// Ticket statuses. Transitions are unordered: the admin panel may move a
// ticket back from completed to pending.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Ticket type labels as shown to the user.
const (
	TypeCompra      = "Compra"
	TypeVenta       = "Venta"
	TypeIntercambio = "Intercambio"
	TypeSoporte     = "Soporte"
	TypeOtro        = "Otro"
)

type Ticket struct {
	// Epoch milliseconds at creation time. Assigned by the ticket
	// controller, bumped forward on the rare same-millisecond collision.
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	SteamID   string    `json:"steamid" gorm:"index"`
	Title     string    `json:"title"`
	Date      string    `json:"date"` // dd/mm/yyyy, display only
	Status    string    `json:"status" gorm:"default:'pending'"`
	Type      string    `json:"type"`
	Message   string    `json:"message,omitempty"`
	Skin      string    `json:"skin,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidStatus reports whether s is one of the three ticket statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// TypeLabel maps a submitted ticket type key to its display label.
// Unknown keys fall back to Otro.
func TypeLabel(key string) string {
	switch key {
	case "purchase":
		return TypeCompra
	case "sale":
		return TypeVenta
	case "trade":
		return TypeIntercambio
	case "support":
		return TypeSoporte
	default:
		return TypeOtro
	}
}
