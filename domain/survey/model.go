package survey

import (
	"encoding/json"
	"time"
)

// Response kinds for a survey variant
const (
	ResponseMultipleChoice = "multipleChoice"
	ResponseFreeForm       = "freeForm"
	ResponseBoth           = "both"
)

// Variant is the per-(week, country, language) survey definition stored in
// the survey_variants table. Options are stored as a JSON array.
type Variant struct {
	ID             int64     `db:"id" json:"id"`
	Week           int       `db:"week" json:"week"`
	Country        string    `db:"country" json:"country"`
	Language       string    `db:"language" json:"language"`
	Question       string    `db:"question" json:"question"`
	ResponseType   string    `db:"response_type" json:"response_type"`
	OptionsRaw     string    `db:"options" json:"-"`
	ResponsesCount int       `db:"responses_count" json:"responses_count"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Options decodes the stored JSON option list. A corrupt column yields an
// empty list rather than an error; the display path never fails on bad rows.
func (v *Variant) Options() []string {
	if v.OptionsRaw == "" {
		return nil
	}
	var opts []string
	if err := json.Unmarshal([]byte(v.OptionsRaw), &opts); err != nil {
		return nil
	}
	return opts
}

// EncodeOptions serializes an option list for storage.
func EncodeOptions(opts []string) string {
	if len(opts) == 0 {
		return "[]"
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// VariantResponse is the API shape for a survey variant.
type VariantResponse struct {
	ID             int64    `json:"id"`
	Week           int      `json:"week"`
	Country        string   `json:"country"`
	Language       string   `json:"language"`
	Question       string   `json:"question"`
	ResponseType   string   `json:"response_type"`
	Options        []string `json:"options"`
	ResponsesCount int      `json:"responses_count"`
}

// UpsertVariantRequest is the payload for creating or replacing the survey
// variant of a (week, country, language) group. Older admin clients still
// send response_mode and multiple_choice_options; Normalize folds those
// aliases into the canonical fields once, at the binding boundary.
type UpsertVariantRequest struct {
	Week         int      `json:"week" validate:"required,gt=0"`
	Country      string   `json:"country" validate:"required"`
	Language     string   `json:"language" validate:"required"`
	Question     string   `json:"question" validate:"required"`
	ResponseType string   `json:"response_type" validate:"omitempty,oneof=multipleChoice freeForm both"`
	Options      []string `json:"options"`

	// Legacy aliases
	ResponseMode          string   `json:"response_mode" validate:"omitempty,oneof=multipleChoice freeForm both"`
	MultipleChoiceOptions []string `json:"multiple_choice_options"`
}

// Normalize resolves legacy aliases into the canonical fields. Canonical
// values win when both are present. The aliases are cleared afterwards so
// nothing downstream ever branches on them.
func (r *UpsertVariantRequest) Normalize() {
	if r.ResponseType == "" {
		r.ResponseType = r.ResponseMode
	}
	if len(r.Options) == 0 {
		r.Options = r.MultipleChoiceOptions
	}
	r.ResponseMode = ""
	r.MultipleChoiceOptions = nil
}

// RequiresChoices reports whether the response type needs an option list.
func RequiresChoices(responseType string) bool {
	return responseType == ResponseMultipleChoice || responseType == ResponseBoth
}
