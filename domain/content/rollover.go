package content

import (
	"fmt"
	"strings"
	"time"

	"academy-platform/config"
	"academy-platform/domain/locale"
	"academy-platform/pkg/logger"
)

const rolloverBatchSize = 500

// RunBucketRollover moves currentWeek items whose release date has passed
// the current week boundary into the past bucket. The boundary is the most
// recent Monday, evaluated in each item's own country timezone so a Tokyo
// item does not roll over on Berlin time. Intended to run from a cron job.
func RunBucketRollover() error {
	log := logger.Get().WithComponent("rollover")
	start := time.Now()

	log.Info("Bucket rollover started", logger.Int("batch_size", rolloverBatchSize))

	var totalMoved int64
	var lastID int64

	for {
		var items []struct {
			ID          int64  `db:"id"`
			Country     string `db:"country"`
			ReleaseDate string `db:"release_date"`
		}
		err := config.DB.Select(&items, `
			SELECT id, country, release_date
			FROM content_items
			WHERE bucket = ? AND id > ?
			ORDER BY id ASC
			LIMIT ?
		`, BucketCurrentWeek, lastID, rolloverBatchSize)
		if err != nil {
			return fmt.Errorf("failed to fetch rollover candidates: %w", err)
		}

		if len(items) == 0 {
			break
		}
		lastID = items[len(items)-1].ID

		var expired []int64
		for _, item := range items {
			if releasedBeforeCurrentWeek(item.Country, item.ReleaseDate, time.Now()) {
				expired = append(expired, item.ID)
			}
		}

		moved, err := moveToPast(expired)
		if err != nil {
			return err
		}
		totalMoved += moved

		if moved > 0 {
			log.Debug("Batch rolled over",
				logger.Int64("batch_moved", moved),
				logger.Int64("total_moved", totalMoved),
			)
		}

		if len(items) < rolloverBatchSize {
			break
		}
	}

	log.Info("Bucket rollover completed",
		logger.Int64("items_moved", totalMoved),
		logger.Duration("duration_ms", time.Since(start)),
	)

	return nil
}

// releasedBeforeCurrentWeek reports whether a release date falls before the
// start of the current week (Monday 00:00) in the country's timezone. An
// unparseable date is left alone rather than reclassified.
func releasedBeforeCurrentWeek(country, releaseDate string, now time.Time) bool {
	released, err := time.Parse("2006-01-02", releaseDate)
	if err != nil {
		return false
	}

	loc, err := time.LoadLocation(locale.GetTimeZoneForCountry(country))
	if err != nil {
		loc = time.UTC
	}

	local := now.In(loc)
	daysSinceMonday := (int(local.Weekday()) + 6) % 7
	weekStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).
		AddDate(0, 0, -daysSinceMonday)

	// Compare on calendar dates; the release date is a local wall-clock value.
	releasedLocal := time.Date(released.Year(), released.Month(), released.Day(), 0, 0, 0, 0, loc)
	return releasedLocal.Before(weekStart)
}

// moveToPast flips the bucket for the given item ids.
func moveToPast(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids)+1)
	args = append(args, BucketPast)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(
		"UPDATE content_items SET bucket = ?, updated_at = NOW() WHERE id IN (%s)",
		strings.Join(placeholders, ","),
	)
	result, err := config.DB.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to move items to past bucket: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected for rollover: %w", err)
	}

	return affected, nil
}
