package pricing

import (
	"net/http"
	"strconv"

	"academy-platform/config"
	"academy-platform/domain/locale"
	"academy-platform/pkg/apperrors"
	"academy-platform/pkg/logger"

	"github.com/labstack/echo/v4"
)

const selectTierColumns = `
	id, country, name, price_cents, currency, billing_cycle, active,
	created_at, updated_at
`

// ListTiersHandler returns tiers, optionally filtered by country.
func ListTiersHandler(c echo.Context) error {
	log := logger.Get().WithComponent("pricing")

	query := "SELECT " + selectTierColumns + " FROM pricing_tiers"
	args := []interface{}{}

	if country := c.QueryParam("country"); country != "" {
		query += " WHERE country = ?"
		args = append(args, country)
	}

	query += " ORDER BY country ASC, price_cents ASC"

	var tiers []Tier
	if err := config.DB.Select(&tiers, query, args...); err != nil {
		log.Error("Failed to list pricing tiers", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"tiers": tiers,
		"total": len(tiers),
	})
}

// CreateTierHandler adds a tier. The currency is resolved from the country's
// locale entry; unknown countries are rejected rather than defaulted.
func CreateTierHandler(c echo.Context) error {
	log := logger.Get().WithComponent("pricing")
	userID, _ := c.Get("user_id").(int64)
	log = log.WithUserID(userID)

	req := new(UpsertTierRequest)
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

	entry, ok := locale.GetCountryConfig(req.Country)
	if !ok {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidLocale,
			"Unsupported country.",
		))
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	result, err := config.DB.Exec(`
		INSERT INTO pricing_tiers
			(country, name, price_cents, currency, billing_cycle, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, req.Country, req.Name, req.PriceCents, entry.Currency, req.BillingCycle, active)
	if err != nil {
		log.Error("Failed to insert pricing tier", err, logger.Country(req.Country))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	id, _ := result.LastInsertId()
	log.Info("Pricing tier created",
		logger.Int64("tier_id", id),
		logger.Country(req.Country),
		logger.String("currency", entry.Currency),
	)

	var tier Tier
	if err := config.DB.Get(&tier, "SELECT "+selectTierColumns+" FROM pricing_tiers WHERE id = ?", id); err != nil {
		log.Error("Failed to fetch created pricing tier", err, logger.Int64("tier_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithCreated(c, tier)
}

// UpdateTierHandler edits a tier. Moving a tier to another country re-derives
// its currency from the locale catalog.
func UpdateTierHandler(c echo.Context) error {
	log := logger.Get().WithComponent("pricing")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid tier id.",
		))
	}

	req := new(UpsertTierRequest)
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

	entry, ok := locale.GetCountryConfig(req.Country)
	if !ok {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidLocale,
			"Unsupported country.",
		))
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	result, err := config.DB.Exec(`
		UPDATE pricing_tiers
		SET country = ?, name = ?, price_cents = ?, currency = ?, billing_cycle = ?,
		    active = ?, updated_at = NOW()
		WHERE id = ?
	`, req.Country, req.Name, req.PriceCents, entry.Currency, req.BillingCycle, active, id)
	if err != nil {
		log.Error("Failed to update pricing tier", err, logger.Int64("tier_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		var exists bool
		if err := config.DB.Get(&exists, "SELECT EXISTS(SELECT 1 FROM pricing_tiers WHERE id = ?)", id); err == nil && !exists {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeTierNotFound,
				"Pricing tier not found.",
			))
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Pricing tier updated."})
}

// DeleteTierHandler removes a tier.
func DeleteTierHandler(c echo.Context) error {
	log := logger.Get().WithComponent("pricing")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid tier id.",
		))
	}

	result, err := config.DB.Exec("DELETE FROM pricing_tiers WHERE id = ?", id)
	if err != nil {
		log.Error("Failed to delete pricing tier", err, logger.Int64("tier_id", id))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeTierNotFound,
			"Pricing tier not found.",
		))
	}

	log.Info("Pricing tier deleted", logger.Int64("tier_id", id))

	return c.JSON(http.StatusOK, map[string]string{"message": "Pricing tier deleted."})
}
