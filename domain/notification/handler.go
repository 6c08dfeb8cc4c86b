package notification

import (
	"database/sql"
	"net/http"

	"academy-platform/config"
	"academy-platform/domain/locale"
	"academy-platform/pkg"
	"academy-platform/pkg/apperrors"
	"academy-platform/pkg/logger"

	"github.com/labstack/echo/v4"
)

const selectSettingsColumns = `
	id, country, language, release_emails, survey_reminders, send_hour,
	sender_name, sender_email, created_at, updated_at
`

// GetSettingsHandler returns the notification settings for a locale. No rows
// means the locale still runs on defaults; the handler answers 200 with null
// so the admin UI can render the defaults form.
func GetSettingsHandler(c echo.Context) error {
	log := logger.Get().WithComponent("notification")

	country := c.QueryParam("country")
	language := c.QueryParam("language")
	if country == "" || language == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"country and language are required.",
		))
	}

	var settings Settings
	err := config.DB.Get(&settings, "SELECT "+selectSettingsColumns+`
		FROM notification_settings
		WHERE country = ? AND language = ?
	`, country, language)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusOK, map[string]interface{}{"settings": nil})
		}
		log.Error("Failed to fetch notification settings", err,
			logger.Country(country), logger.Language(language))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"settings": settings})
}

// UpsertSettingsHandler creates or replaces the settings row for a locale.
func UpsertSettingsHandler(c echo.Context) error {
	log := logger.Get().WithComponent("notification")
	userID, _ := c.Get("user_id").(int64)
	log = log.WithUserID(userID)

	req := new(UpsertSettingsRequest)
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

	_, err := config.DB.Exec(`
		INSERT INTO notification_settings
			(country, language, release_emails, survey_reminders, send_hour,
			 sender_name, sender_email, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
		ON DUPLICATE KEY UPDATE
			release_emails = VALUES(release_emails),
			survey_reminders = VALUES(survey_reminders),
			send_hour = VALUES(send_hour),
			sender_name = VALUES(sender_name),
			sender_email = VALUES(sender_email),
			updated_at = NOW()
	`, req.Country, req.Language, req.ReleaseEmails, req.SurveyReminders,
		req.SendHour, req.SenderName, req.SenderEmail)
	if err != nil {
		log.Error("Failed to upsert notification settings", err,
			logger.Country(req.Country), logger.Language(req.Language))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Notification settings saved",
		logger.Country(req.Country), logger.Language(req.Language))

	var settings Settings
	err = config.DB.Get(&settings, "SELECT "+selectSettingsColumns+`
		FROM notification_settings
		WHERE country = ? AND language = ?
	`, req.Country, req.Language)
	if err != nil {
		log.Error("Failed to fetch upserted notification settings", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"settings": settings})
}

// SendTestHandler sends a one-off test email so admins can verify delivery
// before enabling notifications for a locale.
func SendTestHandler(c echo.Context) error {
	log := logger.Get().WithComponent("notification")
	userID, _ := c.Get("user_id").(int64)
	log = log.WithUserID(userID)

	req := new(TestSendRequest)
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

	if err := pkg.SendNotificationEmail(req.To, req.Subject, req.Body); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeNotifySendFailed,
			"Failed to send test notification.",
			err,
		))
	}

	log.Info("Test notification sent", logger.Email(req.To))

	return c.JSON(http.StatusOK, map[string]string{"message": "Test notification sent."})
}
