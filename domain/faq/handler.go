package faq

import (
	"net/http"
	"strconv"

	"academy-platform/config"
	"academy-platform/domain/locale"
	"academy-platform/pkg/apperrors"
	"academy-platform/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

// ListFAQHandler returns FAQ entries for a locale in display order.
func ListFAQHandler(c echo.Context) error {
	log := logger.Get().WithComponent("faq")

	country := c.QueryParam("country")
	language := c.QueryParam("language")
	if country == "" || language == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"country and language are required.",
		))
	}

	var entries []Entry
	err := config.DB.Select(&entries, `
		SELECT id, country, language, question, answer_html, position, created_at, updated_at
		FROM faq_entries
		WHERE country = ? AND language = ?
		ORDER BY position ASC, id ASC
	`, country, language)
	if err != nil {
		log.Error("Failed to list FAQ entries", err, logger.Country(country), logger.Language(language))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   len(entries),
	})
}

// CreateFAQHandler adds an FAQ entry. The answer HTML is sanitized before
// storage so stored markup is always safe to render.
func CreateFAQHandler(c echo.Context) error {
	log := logger.Get().WithComponent("faq")
	userID, _ := c.Get("user_id").(int64)
	log = log.WithUserID(userID)

	req := new(CreateEntryRequest)
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
	if !locale.IsValidPair(req.Country, req.Language) {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidLocale,
			"Unsupported country/language combination.",
		))
	}

	sanitized := sanitizeAnswerHTML(req.Answer)

	result, err := config.DB.Exec(`
		INSERT INTO faq_entries (country, language, question, answer_html, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`, req.Country, req.Language, req.Question, sanitized, req.Position)
	if err != nil {
		log.Error("Failed to insert FAQ entry", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	id, _ := result.LastInsertId()
	log.Info("FAQ entry created", logger.Int64("faq_id", id), logger.Country(req.Country))

	var entry Entry
	if err := config.DB.Get(&entry, `
		SELECT id, country, language, question, answer_html, position, created_at, updated_at
		FROM faq_entries WHERE id = ?
	`, id); err != nil {
		log.Error("Failed to fetch created FAQ entry", err, logger.Int64("faq_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithCreated(c, entry)
}

// UpdateFAQHandler edits an FAQ entry's question, answer, or position.
func UpdateFAQHandler(c echo.Context) error {
	log := logger.Get().WithComponent("faq")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid FAQ entry id.",
		))
	}

	req := new(UpdateEntryRequest)
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

	result, err := config.DB.Exec(`
		UPDATE faq_entries
		SET question = ?, answer_html = ?, position = ?, updated_at = NOW()
		WHERE id = ?
	`, req.Question, sanitizeAnswerHTML(req.Answer), req.Position, id)
	if err != nil {
		log.Error("Failed to update FAQ entry", err, logger.Int64("faq_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		var exists bool
		if err := config.DB.Get(&exists, "SELECT EXISTS(SELECT 1 FROM faq_entries WHERE id = ?)", id); err == nil && !exists {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeFAQNotFound,
				"FAQ entry not found.",
			))
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "FAQ entry updated."})
}

// DeleteFAQHandler removes an FAQ entry.
func DeleteFAQHandler(c echo.Context) error {
	log := logger.Get().WithComponent("faq")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid FAQ entry id.",
		))
	}

	result, err := config.DB.Exec("DELETE FROM faq_entries WHERE id = ?", id)
	if err != nil {
		log.Error("Failed to delete FAQ entry", err, logger.Int64("faq_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeFAQNotFound,
			"FAQ entry not found.",
		))
	}

	log.Info("FAQ entry deleted", logger.Int64("faq_id", id))

	return c.JSON(http.StatusOK, map[string]string{"message": "FAQ entry deleted."})
}

// sanitizeAnswerHTML sanitizes rich-text FAQ answers. UGCPolicy plus the
// formatting elements the admin editor produces.
func sanitizeAnswerHTML(content string) string {
	p := bluemonday.UGCPolicy()

	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").OnElements("p", "span", "div", "ul", "ol", "li")
	p.AllowElements("ul", "ol", "li")
	p.AllowElements("strong", "em", "u", "s", "blockquote", "pre", "code")
	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowRelativeURLs(true)

	return p.Sanitize(content)
}
