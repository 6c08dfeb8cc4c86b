package content

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"academy-platform/config"
	"academy-platform/domain/locale"
	"academy-platform/pkg/apperrors"
	"academy-platform/pkg/logger"

	"github.com/labstack/echo/v4"
)

const selectItemColumns = `
	id, content_id, country, language, week, position,
	release_date, release_time, bucket, access, free_for_registered,
	title, display_title, host, thumbnail_url, description, tags,
	duration, views, created_at, updated_at
`

// toResponse flattens a stored item into its API shape, rendering the
// release label for display.
func toResponse(item Item) ItemResponse {
	resp := ItemResponse{
		ID:                item.ID,
		ContentID:         item.ContentID,
		Country:           item.Country,
		Language:          item.Language,
		Week:              item.Week,
		Position:          item.Position,
		ReleaseDate:       item.ReleaseDate,
		ReleaseTime:       item.ReleaseTime,
		ReleaseLabel:      locale.FormatReleaseDisplay(item.Country, item.ReleaseDate, item.ReleaseTime),
		Bucket:            item.Bucket,
		Access:            item.Access,
		FreeForRegistered: item.FreeForRegistered,
		Title:             item.Title,
		Host:              item.Host,
		Description:       item.Description,
		Tags:              item.Tags(),
		Duration:          item.Duration,
		Views:             item.Views,
	}
	if item.DisplayTitle.Valid {
		resp.DisplayTitle = item.DisplayTitle.String
	}
	if item.ThumbnailURL.Valid {
		resp.ThumbnailURL = item.ThumbnailURL.String
	}
	return resp
}

// validateSchedule checks the locale pair and the literal date/time formats.
// The stored values stay local wall-clock; only the format is verified here.
func validateSchedule(country, language, date, tm string) *apperrors.AppError {
	if !locale.IsValidPair(country, language) {
		return apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidLocale,
			"Unsupported country/language combination.",
		)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidSchedule,
			"release_date must be formatted YYYY-MM-DD.",
		)
	}
	if _, err := time.Parse("15:04", tm); err != nil {
		return apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidSchedule,
			"release_time must be formatted HH:mm.",
		)
	}
	return nil
}

// ListContentHandler returns content items filtered by bucket, country,
// language, and week, ordered week descending then position ascending.
func ListContentHandler(c echo.Context) error {
	log := logger.Get().WithComponent("content")

	bucket := c.QueryParam("bucket")
	country := c.QueryParam("country")
	language := c.QueryParam("language")
	week := c.QueryParam("week")

	// The plain per-locale listing is the hot path for the weekly screen;
	// serve it from Redis when possible.
	cacheable := country != "" && language != "" && bucket == "" && week == ""
	if cacheable {
		if cached := config.GetCatalogCache(country, language); cached != "" {
			return c.JSONBlob(http.StatusOK, []byte(cached))
		}
	}

	query := "SELECT " + selectItemColumns + " FROM content_items WHERE 1=1"
	args := []interface{}{}

	if bucket != "" {
		query += " AND bucket = ?"
		args = append(args, bucket)
	}
	if country != "" {
		query += " AND country = ?"
		args = append(args, country)
	}
	if language != "" {
		query += " AND language = ?"
		args = append(args, language)
	}
	if week != "" {
		w, err := strconv.Atoi(week)
		if err != nil || w <= 0 {
			return apperrors.RespondWithError(c, apperrors.NewBadRequest(
				apperrors.ErrCodeValidationFailed,
				"week must be a positive integer.",
			))
		}
		query += " AND week = ?"
		args = append(args, w)
	}

	query += " ORDER BY week DESC, position ASC"

	var items []Item
	if err := config.DB.Select(&items, query, args...); err != nil {
		log.Error("Failed to list content items", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toResponse(item))
	}

	body := map[string]interface{}{"items": responses, "total": len(responses)}

	if cacheable {
		if payload, err := json.Marshal(body); err == nil {
			if err := config.SetCatalogCache(country, language, string(payload)); err != nil {
				log.Warn("Failed to cache content listing",
					logger.Country(country),
					logger.Language(language),
					logger.Err(err),
				)
			}
		}
	}

	return c.JSON(http.StatusOK, body)
}

// GetContentHandler returns a single content item by numeric id.
func GetContentHandler(c echo.Context) error {
	log := logger.Get().WithComponent("content")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid content item id.",
		))
	}

	var item Item
	err = config.DB.Get(&item, "SELECT "+selectItemColumns+" FROM content_items WHERE id = ?", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeContentNotFound,
				"Content item not found.",
			))
		}
		log.Error("Failed to fetch content item", err, logger.Int64("id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return c.JSON(http.StatusOK, toResponse(item))
}

// CreateContentHandler schedules a new content item. The human-readable
// content ID is assigned here, and the free-for-registered invariant is
// enforced in the same transaction as the insert so two concurrent
// submissions cannot both end up exclusive for a group.
func CreateContentHandler(c echo.Context) error {
	log := logger.Get().WithComponent("content")
	userID, _ := c.Get("user_id").(int64)
	log = log.WithUserID(userID)

	req := new(CreateItemRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}
	if err := c.Validate(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			err.Error(),
		))
	}
	if appErr := validateSchedule(req.Country, req.Language, req.ReleaseDate, req.ReleaseTime); appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	bucket := req.Bucket
	if bucket == "" {
		bucket = BucketCurrentWeek
	}

	tx, err := config.DB.Beginx()
	if err != nil {
		log.Error("Failed to start transaction", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
	defer tx.Rollback()

	// Lock existing IDs so two concurrent creates cannot draw the same
	// sequence number.
	var existingIDs []string
	if err := tx.Select(&existingIDs, "SELECT content_id FROM content_items FOR UPDATE"); err != nil {
		log.Error("Failed to fetch existing content IDs", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	contentID := NextContentID(existingIDs, ContentIDPrefix)
	if entry, ok := locale.GetCountryConfig(req.Country); ok && len(entry.Languages) > 0 && req.Language != entry.Languages[0] {
		// Secondary-language variants carry a locale tag so the bare ID
		// stays reserved for the country's primary language.
		contentID = WithLocaleTag(contentID, req.Language)
	}

	result, err := tx.Exec(`
		INSERT INTO content_items (
			content_id, country, language, week, position,
			release_date, release_time, bucket, access, free_for_registered,
			title, display_title, host, thumbnail_url, description, tags,
			duration, views, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, NOW(), NOW())
	`, contentID, req.Country, req.Language, req.Week, req.Position,
		req.ReleaseDate, req.ReleaseTime, bucket, req.Access, req.FreeForRegistered,
		req.Title, nullable(req.DisplayTitle), req.Host, nullable(req.ThumbnailURL),
		req.Description, JoinTags(req.Tags), req.Duration)
	if err != nil {
		log.Error("Failed to insert content item", err, logger.ContentID(contentID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	newID, _ := result.LastInsertId()

	if req.FreeForRegistered {
		if err := clearSiblingFlags(tx, req.Week, req.Country, req.Language, newID); err != nil {
			log.Error("Failed to clear sibling free-for-registered flags", err, logger.ContentID(contentID))
			return apperrors.RespondWithError(c, apperrors.NewInternal(
				apperrors.ErrCodeDatabaseError,
				"Internal server error.",
				err,
			))
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit content creation", err, logger.ContentID(contentID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	config.InvalidateCatalogCache(req.Country, req.Language)

	log.Info("Content item created",
		logger.ContentID(contentID),
		logger.Country(req.Country),
		logger.Language(req.Language),
		logger.Week(req.Week),
		logger.Bool("free_for_registered", req.FreeForRegistered),
	)

	var item Item
	if err := config.DB.Get(&item, "SELECT "+selectItemColumns+" FROM content_items WHERE id = ?", newID); err != nil {
		log.Error("Failed to fetch created content item", err, logger.Int64("id", newID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithCreated(c, toResponse(item))
}

// UpdateContentHandler edits an existing item. Re-enforces the
// free-for-registered invariant transactionally, including when the item
// moves to a different (week, country, language) group.
func UpdateContentHandler(c echo.Context) error {
	log := logger.Get().WithComponent("content")
	userID, _ := c.Get("user_id").(int64)
	log = log.WithUserID(userID)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid content item id.",
		))
	}

	req := new(UpdateItemRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}
	if err := c.Validate(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			err.Error(),
		))
	}
	if appErr := validateSchedule(req.Country, req.Language, req.ReleaseDate, req.ReleaseTime); appErr != nil {
		return apperrors.RespondWithError(c, appErr)
	}

	tx, err := config.DB.Beginx()
	if err != nil {
		log.Error("Failed to start transaction", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
	defer tx.Rollback()

	var existing Item
	err = tx.Get(&existing, "SELECT "+selectItemColumns+" FROM content_items WHERE id = ? FOR UPDATE", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeContentNotFound,
				"Content item not found.",
			))
		}
		log.Error("Failed to fetch content item for update", err, logger.Int64("id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	bucket := req.Bucket
	if bucket == "" {
		bucket = existing.Bucket
	}

	_, err = tx.Exec(`
		UPDATE content_items
		SET country = ?, language = ?, week = ?, position = ?,
		    release_date = ?, release_time = ?, bucket = ?, access = ?,
		    free_for_registered = ?, title = ?, display_title = ?, host = ?,
		    thumbnail_url = ?, description = ?, tags = ?, duration = ?,
		    updated_at = NOW()
		WHERE id = ?
	`, req.Country, req.Language, req.Week, req.Position,
		req.ReleaseDate, req.ReleaseTime, bucket, req.Access,
		req.FreeForRegistered, req.Title, nullable(req.DisplayTitle), req.Host,
		nullable(req.ThumbnailURL), req.Description, JoinTags(req.Tags), req.Duration, id)
	if err != nil {
		log.Error("Failed to update content item", err, logger.Int64("id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	if req.FreeForRegistered {
		if err := clearSiblingFlags(tx, req.Week, req.Country, req.Language, id); err != nil {
			log.Error("Failed to clear sibling free-for-registered flags", err, logger.Int64("id", id))
			return apperrors.RespondWithError(c, apperrors.NewInternal(
				apperrors.ErrCodeDatabaseError,
				"Internal server error.",
				err,
			))
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit content update", err, logger.Int64("id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	config.InvalidateCatalogCache(req.Country, req.Language)
	if existing.Country != req.Country || existing.Language != req.Language {
		config.InvalidateCatalogCache(existing.Country, existing.Language)
	}

	log.Info("Content item updated",
		logger.ContentID(existing.ContentID),
		logger.Week(req.Week),
		logger.Bool("free_for_registered", req.FreeForRegistered),
	)

	var item Item
	if err := config.DB.Get(&item, "SELECT "+selectItemColumns+" FROM content_items WHERE id = ?", id); err != nil {
		log.Error("Failed to fetch updated content item", err, logger.Int64("id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return c.JSON(http.StatusOK, toResponse(item))
}

// DeleteContentHandler removes a content item. Hard delete, no soft-delete
// or audit trail.
func DeleteContentHandler(c echo.Context) error {
	log := logger.Get().WithComponent("content")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid content item id.",
		))
	}

	var item Item
	err = config.DB.Get(&item, "SELECT "+selectItemColumns+" FROM content_items WHERE id = ?", id)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeContentNotFound,
				"Content item not found.",
			))
		}
		log.Error("Failed to fetch content item for delete", err, logger.Int64("id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	if _, err := config.DB.Exec("DELETE FROM content_items WHERE id = ?", id); err != nil {
		log.Error("Failed to delete content item", err, logger.Int64("id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	config.InvalidateCatalogCache(item.Country, item.Language)

	log.Info("Content item deleted", logger.ContentID(item.ContentID))

	return c.JSON(http.StatusOK, map[string]string{"message": "Content item deleted."})
}

// clearSiblingFlags clears free_for_registered on every other item in the
// (week, country, language) group. Runs inside the caller's transaction so
// the invariant holds atomically with the triggering write.
func clearSiblingFlags(tx interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}, week int, country, language string, keepID int64) error {
	_, err := tx.Exec(`
		UPDATE content_items
		SET free_for_registered = FALSE, updated_at = NOW()
		WHERE week = ? AND country = ? AND language = ?
		  AND free_for_registered = TRUE AND id <> ?
	`, week, country, language, keepID)
	return err
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
