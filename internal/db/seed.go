package db

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedProfile is one demo card plus the account that owns it.
type seedProfile struct {
	email string
	name  string
	age   int
	bio   string
	photo string
}

var demoProfiles = []seedProfile{
	{"valeria@example.com", "Valeria", 23, "Amante del café ☕", "https://picsum.photos/400/600?1"},
	{"camila@example.com", "Camila", 25, "Fitness & viajes ✈️", "https://picsum.photos/400/600?2"},
	{"sofia@example.com", "Sofía", 24, "Fan del cine 🎬", "https://picsum.photos/400/600?3"},
	{"natalia@example.com", "Natalia", 27, "Busco algo serio 💕", "https://picsum.photos/400/600?4"},
}

// SeedDemoData populates the profiles table (and the owning user rows)
// if it is empty. Idempotent: an already-seeded database is untouched.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Profile{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count profiles: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	for _, p := range demoProfiles {
		owner := User{
			Email:        p.email,
			PasswordHash: string(hash),
			Likes:        DefaultLikeAllowance,
			Photo:        p.photo,
		}
		if err := db.Create(&owner).Error; err != nil {
			return fmt.Errorf("failed to seed profile owner: %w", err)
		}

		profile := Profile{
			UserID: owner.ID,
			Name:   p.name,
			Age:    p.age,
			Bio:    p.bio,
			Photo:  p.photo,
		}
		if err := db.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to seed profile: %w", err)
		}
	}

	log.Printf("Seeded %d demo profiles.", len(demoProfiles))
	return nil
}

// ResetAll clears every table. Meant for dev/seed tooling, never the
// request path.
func ResetAll(db *gorm.DB) error {
	for _, table := range []string{"messages", "matches", "likes", "profiles", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	switch db.Dialector.Name() {
	case "mysql":
		for _, table := range []string{"messages", "matches", "likes", "profiles", "users"} {
			db.Exec("ALTER TABLE " + table + " AUTO_INCREMENT = 1")
		}
	case "sqlite":
		db.Exec("DELETE FROM sqlite_sequence WHERE name IN ('messages','matches','likes','profiles','users')")
	}

	return nil
}
