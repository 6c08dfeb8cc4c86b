package faq

import "time"

// Entry is one localized FAQ item in the faq_entries table. AnswerHTML is
// sanitized rich text; Position orders entries within a locale.
type Entry struct {
	ID         int64     `db:"id" json:"id"`
	Country    string    `db:"country" json:"country"`
	Language   string    `db:"language" json:"language"`
	Question   string    `db:"question" json:"question"`
	AnswerHTML string    `db:"answer_html" json:"answer_html"`
	Position   int       `db:"position" json:"position"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// CreateEntryRequest is the payload for adding an FAQ entry.
type CreateEntryRequest struct {
	Country  string `json:"country" validate:"required"`
	Language string `json:"language" validate:"required"`
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Position int    `json:"position" validate:"gte=0"`
}

// UpdateEntryRequest is the payload for editing an FAQ entry.
type UpdateEntryRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Position int    `json:"position" validate:"gte=0"`
}
