package cli

import (
	"fmt"
	"testing"

	apperrors "github.com/fiberarts/fiberfind/pkg/errors"
	"github.com/fiberarts/fiberfind/pkg/geocode"
	"github.com/fiberarts/fiberfind/pkg/ravelry"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name   string
		arg    string
		wantID int64
		wantOK bool
	}{
		{"numeric", "12345", 12345, true},
		{"numeric with spaces", " 42 ", 42, true},
		{"name", "Winter Hat", 0, false},
		{"negative", "-3", 0, false},
		{"zero", "0", 0, false},
		{"mixed", "123abc", 0, false},
		{"empty", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := parseID(tt.arg)
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("parseID(%q) = %d, %v; want %d, %v", tt.arg, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestPreferExact(t *testing.T) {
	patterns := []ravelry.Pattern{
		{ID: 1, Name: "Winter Hat Deluxe"},
		{ID: 2, Name: "Winter Hat"},
		{ID: 3, Name: "winter hat"},
	}
	key := func(p ravelry.Pattern) string { return p.Name }

	exact := preferExact(patterns, "Winter Hat", key)
	if len(exact) != 2 || exact[0].ID != 2 || exact[1].ID != 3 {
		t.Errorf("preferExact = %+v, want the two case-insensitive exact matches", exact)
	}

	// No exact match keeps the full candidate list.
	all := preferExact(patterns, "Hat", key)
	if len(all) != 3 {
		t.Errorf("preferExact without exact match = %d items, want all 3", len(all))
	}
}

func TestWrapAPIErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.Code
	}{
		{"not found", ravelry.ErrNotFound, apperrors.ErrCodePatternNotFound},
		{"unauthorized", ravelry.ErrUnauthorized, apperrors.ErrCodeUnauthorized},
		{"network", ravelry.ErrNetwork, apperrors.ErrCodeNetwork},
		{"no geocode match", geocode.ErrNoMatch, apperrors.ErrCodeCityNotFound},
		{"wrapped not found", fmt.Errorf("pattern 9: %w", ravelry.ErrNotFound), apperrors.ErrCodePatternNotFound},
		{"unknown", fmt.Errorf("boom"), apperrors.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapAPIError(tt.err, apperrors.ErrCodePatternNotFound, "test")
			if apperrors.GetCode(got) != tt.want {
				t.Errorf("code = %q, want %q", apperrors.GetCode(got), tt.want)
			}
		})
	}
}
