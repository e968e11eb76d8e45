package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	SteamID    string    `json:"steamid" gorm:"unique;not null"`
	Persona    string    `json:"personaname" gorm:"default:''"`
	Avatar     string    `json:"avatar" gorm:"default:''"`
	ProfileUrl string    `json:"profileurl" gorm:"default:''"`
	Role       string    `json:"role" gorm:"default:'USER'"` // USER or TRADER
	LastLogin  time.Time `json:"last_login" gorm:"default:NULL"`
	IsDeleted  bool      `json:"is_deleted" gorm:"default:false"`
}
