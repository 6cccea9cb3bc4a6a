package carbon

import (
	"errors"
	"strings"
	"testing"
)

func TestParseMethodology(t *testing.T) {
	tests := []struct {
		tag  string
		want Methodology
	}{
		{"ipcc_2006", IPCC2006},
		{"IPCC_2019", IPCC2019},
		{" market_standard ", MarketStandard},
		{"allometric_plot_level", AllometricPlotLevel},
	}
	for _, tt := range tests {
		got, err := ParseMethodology(tt.tag)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.tag, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: parsed %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestParseMethodologyUnknown(t *testing.T) {
	_, err := ParseMethodology("unknown_standard")
	if !errors.Is(err, ErrUnsupportedMethodology) {
		t.Fatalf("expected ErrUnsupportedMethodology, got %v", err)
	}
	// The error names every valid tag so callers can fix their input.
	for _, valid := range []string{"ipcc_2006", "ipcc_2019", "market_standard", "allometric_plot_level"} {
		if !strings.Contains(err.Error(), valid) {
			t.Errorf("error %q does not list %q", err, valid)
		}
	}
}
