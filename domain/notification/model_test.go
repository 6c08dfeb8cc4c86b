package notification

import (
	"testing"

	"academy-platform/middleware"
)

func TestUpsertSettingsRequestValidation(t *testing.T) {
	v := middleware.NewRequestValidator()

	valid := UpsertSettingsRequest{
		Country:     "Germany",
		Language:    "DE",
		SendHour:    16,
		SenderName:  "Academy Team",
		SenderEmail: "team@academy.example",
	}

	tests := []struct {
		name    string
		mutate  func(*UpsertSettingsRequest)
		wantErr bool
	}{
		{"valid payload", func(r *UpsertSettingsRequest) {}, false},
		{"midnight send hour", func(r *UpsertSettingsRequest) { r.SendHour = 0 }, false},
		{"last hour of day", func(r *UpsertSettingsRequest) { r.SendHour = 23 }, false},
		{"send hour past midnight", func(r *UpsertSettingsRequest) { r.SendHour = 24 }, true},
		{"negative send hour", func(r *UpsertSettingsRequest) { r.SendHour = -1 }, true},
		{"malformed sender email", func(r *UpsertSettingsRequest) { r.SenderEmail = "not-an-address" }, true},
		{"missing sender email", func(r *UpsertSettingsRequest) { r.SenderEmail = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := v.Validate(&req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
