package initializers

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/adeel/roomshare-backend/models"
)

var DB *gorm.DB

func ConnectToDatabase() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL is not set in environment variables")
	}

	var err error
	// TranslateError turns driver-level unique violations into
	// gorm.ErrDuplicatedKey, which the store layer relies on for the
	// room-key race backstop.
	DB, err = gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to the database: %v", err)
	}

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.FileRecord{},
	); err != nil {
		log.Fatalf("failed to migrate database schema: %v", err)
	}
	log.Println("database connected and migrated")
}
