package database

import (
	"log"
	"strings"

	"lawlink/internal/domain"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "modernc.org/sqlite"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates the schema and the constraints AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.LawyerProfile{},
		&domain.Case{},
		&domain.Application{},
		&domain.Notification{},
		&domain.Conversation{},
		&domain.Message{},
	); err != nil {
		return err
	}

	// One live application per lawyer per case. Denied applications do not
	// count, so a lawyer may re-apply after a denial.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_active_application
		 ON applications (case_id, lawyer_id)
		 WHERE status IN ('pending', 'accepted')`,
	).Error
}
