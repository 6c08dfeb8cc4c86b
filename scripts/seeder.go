// Package scripts holds one-off maintenance jobs run through the CLI.
package scripts

import (
	"fmt"

	"academy-platform/config"
	"academy-platform/domain/content"
	"academy-platform/domain/user"
	"academy-platform/pkg/logger"
	"academy-platform/utils"

	"github.com/spf13/viper"
)

// Seed provisions the initial superadmin account and a handful of sample
// catalog rows for a fresh environment. Safe to re-run: existing rows are
// left alone.
func Seed() error {
	log := logger.Get().WithComponent("seeder")

	email := viper.GetString("SEED_ADMIN_EMAIL")
	password := viper.GetString("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return fmt.Errorf("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set")
	}

	var exists bool
	if err := config.DB.Get(&exists, "SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)", email); err != nil {
		return fmt.Errorf("check seed admin: %w", err)
	}

	if !exists {
		hashed, err := utils.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash seed admin password: %w", err)
		}

		_, err = config.DB.Exec(`
			INSERT INTO users (email, password, role_id, token_version, created_at, updated_at)
			VALUES (?, ?, ?, 0, NOW(), NOW())
		`, email, hashed, user.RoleSuperAdmin)
		if err != nil {
			return fmt.Errorf("insert seed admin: %w", err)
		}
		log.Info("Seeded superadmin account", logger.Email(email))
	} else {
		log.Info("Superadmin account already present, skipping", logger.Email(email))
	}

	var contentCount int
	if err := config.DB.Get(&contentCount, "SELECT COUNT(*) FROM content_items"); err != nil {
		return fmt.Errorf("count content items: %w", err)
	}
	if contentCount > 0 {
		log.Info("Content items already present, skipping samples")
		return nil
	}

	samples := []struct {
		contentID, country, language, releaseDate, releaseTime, title string
		week                                                          int
		freeForRegistered                                             bool
	}{
		{"AC00001", "Germany", "DE", "2026-01-12", "16:00", "Woche 1: Aufschlagtechnik", 1, true},
		{"AC00001(EN)", "Germany", "EN", "2026-01-12", "16:00", "Week 1: Serve Technique", 1, false},
		{"AC00002", "Spain", "ES", "2026-01-13", "18:30", "Semana 1: Fundamentos del resto", 1, true},
	}

	for _, s := range samples {
		_, err := config.DB.Exec(`
			INSERT INTO content_items
				(content_id, country, language, week, position, release_date, release_time,
				 bucket, access, free_for_registered, title, host, description, tags,
				 duration, views, created_at, updated_at)
			VALUES (?, ?, ?, ?, 0, ?, ?, ?, ?, ?, ?, 'Coach Staff', '', '', '', 0, NOW(), NOW())
		`, s.contentID, s.country, s.language, s.week, s.releaseDate, s.releaseTime,
			content.BucketCurrentWeek, content.AccessPro, s.freeForRegistered, s.title)
		if err != nil {
			return fmt.Errorf("insert sample content %s: %w", s.contentID, err)
		}
	}

	log.Info("Seeded sample content items", logger.Count(len(samples)))

	return nil
}
