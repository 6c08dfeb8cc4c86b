package survey

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"net/http"
	"strconv"

	"academy-platform/config"
	"academy-platform/domain/locale"
	"academy-platform/pkg/apperrors"
	"academy-platform/pkg/logger"

	"github.com/labstack/echo/v4"
)

const selectVariantColumns = `
	id, week, country, language, question, response_type, options,
	responses_count, created_at, updated_at
`

func toResponse(v Variant) VariantResponse {
	return VariantResponse{
		ID:             v.ID,
		Week:           v.Week,
		Country:        v.Country,
		Language:       v.Language,
		Question:       v.Question,
		ResponseType:   v.ResponseType,
		Options:        v.Options(),
		ResponsesCount: v.ResponsesCount,
	}
}

// GetSurveyHandler returns the survey variant for a (week, country,
// language) group. A missing variant answers 404 with SURVEY_HIDDEN_FOR_LOCALE:
// the admin UI hides the survey section for that locale, it is not a data error.
func GetSurveyHandler(c echo.Context) error {
	log := logger.Get().WithComponent("survey")

	week, err := strconv.Atoi(c.QueryParam("week"))
	if err != nil || week <= 0 {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"week must be a positive integer.",
		))
	}
	country := c.QueryParam("country")
	language := c.QueryParam("language")
	if country == "" || language == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"country and language are required.",
		))
	}

	var variant Variant
	err = config.DB.Get(&variant, "SELECT "+selectVariantColumns+`
		FROM survey_variants
		WHERE week = ? AND country = ? AND language = ?
	`, week, country, language)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeSurveyHidden,
				"No survey configured for this locale.",
			))
		}
		log.Error("Failed to fetch survey variant", err,
			logger.Country(country), logger.Language(language), logger.Week(week))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return c.JSON(http.StatusOK, toResponse(variant))
}

// ListSurveysHandler lists variants, optionally filtered by week.
func ListSurveysHandler(c echo.Context) error {
	log := logger.Get().WithComponent("survey")

	query := "SELECT " + selectVariantColumns + " FROM survey_variants"
	args := []interface{}{}

	if week := c.QueryParam("week"); week != "" {
		w, err := strconv.Atoi(week)
		if err != nil || w <= 0 {
			return apperrors.RespondWithError(c, apperrors.NewBadRequest(
				apperrors.ErrCodeValidationFailed,
				"week must be a positive integer.",
			))
		}
		query += " WHERE week = ?"
		args = append(args, w)
	}

	query += " ORDER BY week DESC, country ASC, language ASC"

	var variants []Variant
	if err := config.DB.Select(&variants, query, args...); err != nil {
		log.Error("Failed to list survey variants", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	responses := make([]VariantResponse, 0, len(variants))
	for _, v := range variants {
		responses = append(responses, toResponse(v))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"surveys": responses,
		"total":   len(responses),
	})
}

// UpsertSurveyHandler creates or replaces the variant for a (week, country,
// language) group. One variant per group; a repeated upsert overwrites the
// question and options but keeps the accumulated response count.
func UpsertSurveyHandler(c echo.Context) error {
	log := logger.Get().WithComponent("survey")
	userID, _ := c.Get("user_id").(int64)
	log = log.WithUserID(userID)

	req := new(UpsertVariantRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}
	req.Normalize()
	if err := c.Validate(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			err.Error(),
		))
	}

	if req.ResponseType == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"response_type is required.",
		))
	}
	if !locale.IsValidPair(req.Country, req.Language) {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidLocale,
			"Unsupported country/language combination.",
		))
	}
	if RequiresChoices(req.ResponseType) && len(req.Options) < 2 {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeSurveyOptionsNeeded,
			"At least two options are required for choice surveys.",
		))
	}

	_, err := config.DB.Exec(`
		INSERT INTO survey_variants
			(week, country, language, question, response_type, options,
			 responses_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, NOW(), NOW())
		ON DUPLICATE KEY UPDATE
			question = VALUES(question),
			response_type = VALUES(response_type),
			options = VALUES(options),
			updated_at = NOW()
	`, req.Week, req.Country, req.Language, req.Question, req.ResponseType,
		EncodeOptions(req.Options))
	if err != nil {
		log.Error("Failed to upsert survey variant", err,
			logger.Country(req.Country), logger.Language(req.Language), logger.Week(req.Week))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	var variant Variant
	err = config.DB.Get(&variant, "SELECT "+selectVariantColumns+`
		FROM survey_variants
		WHERE week = ? AND country = ? AND language = ?
	`, req.Week, req.Country, req.Language)
	if err != nil {
		log.Error("Failed to fetch upserted survey variant", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Survey variant saved",
		logger.SurveyID(variant.ID),
		logger.Country(req.Country),
		logger.Language(req.Language),
		logger.Week(req.Week),
	)

	return c.JSON(http.StatusOK, toResponse(variant))
}

// DeleteSurveyHandler removes a variant; the survey disappears for that
// locale on the next fetch.
func DeleteSurveyHandler(c echo.Context) error {
	log := logger.Get().WithComponent("survey")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid survey id.",
		))
	}

	result, err := config.DB.Exec("DELETE FROM survey_variants WHERE id = ?", id)
	if err != nil {
		log.Error("Failed to delete survey variant", err, logger.SurveyID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeSurveyNotFound,
			"Survey variant not found.",
		))
	}

	log.Info("Survey variant deleted", logger.SurveyID(id))

	return c.JSON(http.StatusOK, map[string]string{"message": "Survey variant deleted."})
}

// RecordResponseHandler bumps the response counter for a variant. Counts
// only; individual answers are not stored here.
func RecordResponseHandler(c echo.Context) error {
	log := logger.Get().WithComponent("survey")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid survey id.",
		))
	}

	result, err := config.DB.Exec(`
		UPDATE survey_variants
		SET responses_count = responses_count + 1, updated_at = NOW()
		WHERE id = ?
	`, id)
	if err != nil {
		log.Error("Failed to record survey response", err, logger.SurveyID(id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeSurveyNotFound,
			"Survey variant not found.",
		))
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Response recorded."})
}

// ExportSurveysCSVHandler serializes all variants to CSV for download.
func ExportSurveysCSVHandler(c echo.Context) error {
	log := logger.Get().WithComponent("survey")

	var variants []Variant
	err := config.DB.Select(&variants, "SELECT "+selectVariantColumns+`
		FROM survey_variants
		ORDER BY week DESC, country ASC, language ASC
	`)
	if err != nil {
		log.Error("Failed to fetch surveys for export", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeExportFailed,
			"Failed to export surveys.",
			err,
		))
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{
		"week", "country", "language", "question", "response_type",
		"options", "responses_count",
	}); err != nil {
		log.Error("Failed to write CSV header", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeExportFailed,
			"Failed to export surveys.",
			err,
		))
	}

	for _, v := range variants {
		row := []string{
			strconv.Itoa(v.Week),
			v.Country,
			v.Language,
			v.Question,
			v.ResponseType,
			v.OptionsRaw,
			strconv.Itoa(v.ResponsesCount),
		}
		if err := w.Write(row); err != nil {
			log.Error("Failed to write CSV row", err, logger.SurveyID(v.ID))
			return apperrors.RespondWithError(c, apperrors.NewInternal(
				apperrors.ErrCodeExportFailed,
				"Failed to export surveys.",
				err,
			))
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Error("Failed to flush CSV writer", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeExportFailed,
			"Failed to export surveys.",
			err,
		))
	}

	log.Info("Surveys exported", logger.Count(len(variants)))

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="survey_variants.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
