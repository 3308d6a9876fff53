package db

import (
	"log"
	"os"
	"strings"
	"talknfix/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=talknfix port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.HiddenPost{},
		&models.Project{},
		&models.ProjectUpdate{},
		&models.BadgeAward{},
		&models.ReputationLog{},
		&models.Whitelist{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedWhitelist()
}

// seedWhitelist 从环境变量导入初始白名单邮箱（逗号分隔）
func seedWhitelist() {
	raw := os.Getenv("WHITELIST_SEED")
	if raw == "" {
		return
	}

	for _, email := range strings.Split(raw, ",") {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}
		entry := models.Whitelist{Email: email, AddedBy: "seed"}
		// 已存在的邮箱跳过
		if err := DB.Where("email = ?", email).FirstOrCreate(&entry).Error; err != nil {
			log.Printf("Failed to seed whitelist email %s: %v", email, err)
		}
	}
	log.Println("Whitelist seeding completed")
}
