package utils

import (
	"log"
	"strconv"
	"time"

	"tix/database"
	"tix/models"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SESSION-SWEEPER %s] %s", time.Now().Format(time.RFC3339), message)
}

// sweepSessions deletes sessions that are expired or revoked. Live sessions
// are untouched.
func sweepSessions() {
	db := database.Database.Db

	res := db.Where("expires_at <= ? OR revoked = ?", time.Now(), true).
		Delete(&models.Session{})
	if res.Error != nil {
		logScheduler("Error sweeping sessions: " + res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		logScheduler("Removed " + strconv.FormatInt(res.RowsAffected, 10) + " dead sessions")
	}
}

// InitializeSessionSweeper starts the hourly cleanup of dead sessions.
func InitializeSessionSweeper() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", sweepSessions); err != nil {
		log.Fatalf("Failed to schedule session sweeper: %v", err)
	}

	c.Start()
	logScheduler("Session sweeper started")
	return c
}
