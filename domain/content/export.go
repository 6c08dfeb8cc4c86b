package content

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"academy-platform/config"
	"academy-platform/domain/locale"
	"academy-platform/pkg/apperrors"
	"academy-platform/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ExportContentCSVHandler serializes the (optionally filtered) catalog to
// CSV for download. Export only - there is no CSV import path. Rows are
// "\n"-joined with double-quote escaping, which is encoding/csv's default.
func ExportContentCSVHandler(c echo.Context) error {
	log := logger.Get().WithComponent("content")

	country := c.QueryParam("country")
	language := c.QueryParam("language")
	bucket := c.QueryParam("bucket")

	query := "SELECT " + selectItemColumns + " FROM content_items WHERE 1=1"
	args := []interface{}{}

	if country != "" {
		query += " AND country = ?"
		args = append(args, country)
	}
	if language != "" {
		query += " AND language = ?"
		args = append(args, language)
	}
	if bucket != "" {
		query += " AND bucket = ?"
		args = append(args, bucket)
	}

	query += " ORDER BY week DESC, position ASC"

	var items []Item
	if err := config.DB.Select(&items, query, args...); err != nil {
		log.Error("Failed to fetch content for export", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeExportFailed,
			"Failed to export content.",
			err,
		))
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"content_id", "title", "display_title", "country", "language",
		"week", "position", "release_date", "release_time", "release_label",
		"bucket", "access", "free_for_registered", "host", "tags",
		"duration", "views",
	}
	if err := w.Write(header); err != nil {
		log.Error("Failed to write CSV header", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeExportFailed,
			"Failed to export content.",
			err,
		))
	}

	for _, item := range items {
		displayTitle := ""
		if item.DisplayTitle.Valid {
			displayTitle = item.DisplayTitle.String
		}
		row := []string{
			item.ContentID,
			item.Title,
			displayTitle,
			item.Country,
			item.Language,
			strconv.Itoa(item.Week),
			strconv.Itoa(item.Position),
			item.ReleaseDate,
			item.ReleaseTime,
			locale.FormatReleaseDisplay(item.Country, item.ReleaseDate, item.ReleaseTime),
			item.Bucket,
			item.Access,
			strconv.FormatBool(item.FreeForRegistered),
			item.Host,
			item.TagsRaw,
			item.Duration,
			strconv.Itoa(item.Views),
		}
		if err := w.Write(row); err != nil {
			log.Error("Failed to write CSV row", err, logger.ContentID(item.ContentID))
			return apperrors.RespondWithError(c, apperrors.NewInternal(
				apperrors.ErrCodeExportFailed,
				"Failed to export content.",
				err,
			))
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Error("Failed to flush CSV writer", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeExportFailed,
			"Failed to export content.",
			err,
		))
	}

	log.Info("Content exported", logger.Count(len(items)))

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="content_items.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
