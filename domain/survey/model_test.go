package survey

import (
	"reflect"
	"testing"
)

func TestNormalizeLegacyAliases(t *testing.T) {
	tests := []struct {
		name        string
		req         UpsertVariantRequest
		wantType    string
		wantOptions []string
	}{
		{
			name:     "canonical fields untouched",
			req:      UpsertVariantRequest{ResponseType: ResponseFreeForm},
			wantType: ResponseFreeForm,
		},
		{
			name:        "alias fills empty canonical",
			req:         UpsertVariantRequest{ResponseMode: ResponseMultipleChoice, MultipleChoiceOptions: []string{"a", "b"}},
			wantType:    ResponseMultipleChoice,
			wantOptions: []string{"a", "b"},
		},
		{
			name: "canonical wins over alias",
			req: UpsertVariantRequest{
				ResponseType:          ResponseBoth,
				ResponseMode:          ResponseFreeForm,
				Options:               []string{"x", "y"},
				MultipleChoiceOptions: []string{"a", "b"},
			},
			wantType:    ResponseBoth,
			wantOptions: []string{"x", "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize()
			if tt.req.ResponseType != tt.wantType {
				t.Errorf("ResponseType = %q, want %q", tt.req.ResponseType, tt.wantType)
			}
			if !reflect.DeepEqual(tt.req.Options, tt.wantOptions) {
				t.Errorf("Options = %v, want %v", tt.req.Options, tt.wantOptions)
			}
			if tt.req.ResponseMode != "" || tt.req.MultipleChoiceOptions != nil {
				t.Error("aliases must be cleared after normalization")
			}
		})
	}
}

func TestRequiresChoices(t *testing.T) {
	if !RequiresChoices(ResponseMultipleChoice) || !RequiresChoices(ResponseBoth) {
		t.Error("choice-bearing types must require options")
	}
	if RequiresChoices(ResponseFreeForm) {
		t.Error("freeForm must not require options")
	}
}

func TestVariantOptionsRoundTrip(t *testing.T) {
	v := Variant{OptionsRaw: EncodeOptions([]string{"Mon", "Tue"})}
	got := v.Options()
	if !reflect.DeepEqual(got, []string{"Mon", "Tue"}) {
		t.Errorf("Options() = %v", got)
	}
}

func TestVariantOptionsCorruptColumn(t *testing.T) {
	v := Variant{OptionsRaw: "{not json"}
	if got := v.Options(); got != nil {
		t.Errorf("corrupt column should yield nil, got %v", got)
	}
}
