package database

import (
	"tix/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectTestDb opens an in-memory sqlite database, migrates the schema and
// installs it as the global instance. Each call gets a fresh database.
func ConnectTestDb() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Every sqlite :memory: connection is its own database; keep the pool
	// at one connection so all queries see the same data.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Ticket{},
		&models.ChatMessage{},
	)
	if err != nil {
		return nil, err
	}

	Database = DbInstance{Db: db}
	return db, nil
}
