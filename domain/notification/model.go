package notification

import "time"

// Settings holds the per-locale notification configuration. One row per
// (country, language); absent rows fall back to defaults in the client.
type Settings struct {
	ID              int64     `db:"id" json:"id"`
	Country         string    `db:"country" json:"country"`
	Language        string    `db:"language" json:"language"`
	ReleaseEmails   bool      `db:"release_emails" json:"release_emails"`
	SurveyReminders bool      `db:"survey_reminders" json:"survey_reminders"`
	SendHour        int       `db:"send_hour" json:"send_hour"`
	SenderName      string    `db:"sender_name" json:"sender_name"`
	SenderEmail     string    `db:"sender_email" json:"sender_email"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// UpsertSettingsRequest is the payload for saving locale notification
// settings. SendHour is local wall-clock in the locale's own timezone; the
// dispatcher resolves it against the country's IANA zone at send time.
type UpsertSettingsRequest struct {
	Country         string `json:"country" validate:"required"`
	Language        string `json:"language" validate:"required"`
	ReleaseEmails   bool   `json:"release_emails"`
	SurveyReminders bool   `json:"survey_reminders"`
	SendHour        int    `json:"send_hour" validate:"gte=0,lte=23"`
	SenderName      string `json:"sender_name" validate:"required"`
	SenderEmail     string `json:"sender_email" validate:"required,email"`
}

// TestSendRequest triggers a test notification to verify delivery settings.
type TestSendRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}
