package database

import (
	"stagedoor/internal/events"
	"stagedoor/internal/layouts"
	"stagedoor/internal/requests"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&layouts.SeatingLayout{},
		&events.Event{},
		&requests.SeatRequest{},
	)
}
