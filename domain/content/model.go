package content

import (
	"database/sql"
	"strings"
	"time"
)

// Bucket values for display classification
const (
	BucketCurrentWeek = "currentWeek"
	BucketPast        = "past"
)

// Access tiers
const (
	AccessPro        = "Pro"
	AccessRegistered = "Registered"
	AccessAll        = "All"
)

// ContentIDPrefix is the prefix for academy session content IDs, e.g. "AC00001".
const ContentIDPrefix = "AC"

// Item represents one scheduled piece of content in the content_items table.
// ReleaseDate and ReleaseTime are the literal local wall-clock values for the
// item's country; they are never normalized to UTC.
type Item struct {
	ID                int64          `db:"id" json:"id"`
	ContentID         string         `db:"content_id" json:"content_id"`
	Country           string         `db:"country" json:"country"`
	Language          string         `db:"language" json:"language"`
	Week              int            `db:"week" json:"week"`
	Position          int            `db:"position" json:"position"`
	ReleaseDate       string         `db:"release_date" json:"release_date"`
	ReleaseTime       string         `db:"release_time" json:"release_time"`
	Bucket            string         `db:"bucket" json:"bucket"`
	Access            string         `db:"access" json:"access"`
	FreeForRegistered bool           `db:"free_for_registered" json:"free_for_registered"`
	Title             string         `db:"title" json:"title"`
	DisplayTitle      sql.NullString `db:"display_title" json:"-"`
	Host              string         `db:"host" json:"host"`
	ThumbnailURL      sql.NullString `db:"thumbnail_url" json:"-"`
	Description       string         `db:"description" json:"description"`
	TagsRaw           string         `db:"tags" json:"-"`
	Duration          string         `db:"duration" json:"duration"`
	Views             int            `db:"views" json:"views"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

// Tags splits the stored comma-joined tag column into a slice.
func (i *Item) Tags() []string {
	if strings.TrimSpace(i.TagsRaw) == "" {
		return nil
	}
	parts := strings.Split(i.TagsRaw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// JoinTags normalizes a tag list into the stored comma-joined form.
func JoinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return strings.Join(cleaned, ",")
}

// ItemResponse is the API shape for a content item, with optional fields
// flattened and the release label pre-rendered for display.
type ItemResponse struct {
	ID                int64    `json:"id"`
	ContentID         string   `json:"content_id"`
	Country           string   `json:"country"`
	Language          string   `json:"language"`
	Week              int      `json:"week"`
	Position          int      `json:"position"`
	ReleaseDate       string   `json:"release_date"`
	ReleaseTime       string   `json:"release_time"`
	ReleaseLabel      string   `json:"release_label"`
	Bucket            string   `json:"bucket"`
	Access            string   `json:"access"`
	FreeForRegistered bool     `json:"free_for_registered"`
	Title             string   `json:"title"`
	DisplayTitle      string   `json:"display_title,omitempty"`
	Host              string   `json:"host"`
	ThumbnailURL      string   `json:"thumbnail_url,omitempty"`
	Description       string   `json:"description"`
	Tags              []string `json:"tags"`
	Duration          string   `json:"duration"`
	Views             int      `json:"views"`
}

// CreateItemRequest is the payload for scheduling a new content item.
type CreateItemRequest struct {
	Country           string   `json:"country" validate:"required"`
	Language          string   `json:"language" validate:"required"`
	Week              int      `json:"week" validate:"required,gt=0"`
	Position          int      `json:"position" validate:"required,gt=0"`
	ReleaseDate       string   `json:"release_date" validate:"required"`
	ReleaseTime       string   `json:"release_time" validate:"required"`
	Bucket            string   `json:"bucket" validate:"omitempty,oneof=currentWeek past"`
	Access            string   `json:"access" validate:"required,oneof=Pro Registered All"`
	FreeForRegistered bool     `json:"free_for_registered"`
	Title             string   `json:"title" validate:"required"`
	DisplayTitle      string   `json:"display_title"`
	Host              string   `json:"host" validate:"required"`
	ThumbnailURL      string   `json:"thumbnail_url"`
	Description       string   `json:"description"`
	Tags              []string `json:"tags"`
	Duration          string   `json:"duration"`
}

// UpdateItemRequest is the payload for editing an existing item. The
// content_id is generator-owned and cannot be changed.
type UpdateItemRequest struct {
	Country           string   `json:"country" validate:"required"`
	Language          string   `json:"language" validate:"required"`
	Week              int      `json:"week" validate:"required,gt=0"`
	Position          int      `json:"position" validate:"required,gt=0"`
	ReleaseDate       string   `json:"release_date" validate:"required"`
	ReleaseTime       string   `json:"release_time" validate:"required"`
	Bucket            string   `json:"bucket" validate:"omitempty,oneof=currentWeek past"`
	Access            string   `json:"access" validate:"required,oneof=Pro Registered All"`
	FreeForRegistered bool     `json:"free_for_registered"`
	Title             string   `json:"title" validate:"required"`
	DisplayTitle      string   `json:"display_title"`
	Host              string   `json:"host" validate:"required"`
	ThumbnailURL      string   `json:"thumbnail_url"`
	Description       string   `json:"description"`
	Tags              []string `json:"tags"`
	Duration          string   `json:"duration"`
}
