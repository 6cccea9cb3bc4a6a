package allometry

import (
	"math"
	"testing"
)

func TestEstimateAGBZeroDBH(t *testing.T) {
	lib := NewLibrary()

	species := []string{"tectona grandis", "pinus", "rhizophora", "unknown species", ""}
	for _, sp := range species {
		if agb := lib.EstimateAGB(sp, 0, 0, 0); agb != 0 {
			t.Errorf("%q: expected zero biomass for zero DBH, got %g", sp, agb)
		}
		if agb := lib.EstimateAGB(sp, -10, 15, 0.6); agb != 0 {
			t.Errorf("%q: expected zero biomass for negative DBH, got %g", sp, agb)
		}
	}
}

func TestEstimateAGBResolutionOrder(t *testing.T) {
	lib := NewLibrary()

	tests := []struct {
		name    string
		species string
		dbh     float64
		check   func(t *testing.T, agb float64)
	}{
		{
			name:    "exact species match uses the published model",
			species: "Tectona grandis", // case-insensitive
			dbh:     30,
			check: func(t *testing.T, agb float64) {
				want := 0.153 * math.Pow(30, 2.382)
				if math.Abs(agb-want) > 1e-9*want {
					t.Errorf("expected %g from the teak model, got %g", want, agb)
				}
			},
		},
		{
			name:    "genus-level entry covers unlisted species",
			species: "eucalyptus grandis",
			dbh:     25,
			check: func(t *testing.T, agb float64) {
				want := 0.0678 * math.Pow(25, 2.476)
				if math.Abs(agb-want) > 1e-9*want {
					t.Errorf("expected %g from the genus model, got %g", want, agb)
				}
			},
		},
		{
			name:    "classified genus falls to the regional default",
			species: "swietenia macrophylla",
			dbh:     40,
			check: func(t *testing.T, agb float64) {
				// Neotropical regional model with its default density and
				// estimated height.
				h := math.Exp(0.893 + 0.760*math.Log(40) - 0.0340*math.Log(40)*math.Log(40))
				want := 0.0776 * math.Pow(0.60*40*40*h, 0.940)
				if math.Abs(agb-want) > 1e-9*want {
					t.Errorf("expected %g from the regional model, got %g", want, agb)
				}
			},
		},
		{
			name:    "unclassified species falls to the pantropical model",
			species: "totally unknown tree",
			dbh:     20,
			check: func(t *testing.T, agb float64) {
				h := math.Exp(0.893 + 0.760*math.Log(20) - 0.0340*math.Log(20)*math.Log(20))
				want := math.Exp(-2.977) * (0.60 * 20 * 20 * h)
				if math.Abs(agb-want) > 1e-9*want {
					t.Errorf("expected %g from the pantropical fallback, got %g", want, agb)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, lib.EstimateAGB(tt.species, tt.dbh, 0, 0))
		})
	}
}

func TestEstimateHeight(t *testing.T) {
	lib := NewLibrary()

	// Chave log-log model for a mid-size stem.
	lnD := math.Log(30.0)
	want := math.Exp(0.893 + 0.760*lnD - 0.0340*lnD*lnD)
	if h := lib.EstimateHeight("quercus", 30); math.Abs(h-want) > 1e-9 {
		t.Errorf("expected height %g, got %g", want, h)
	}

	// Tiny stems clamp to the 0.5 m floor.
	if h := lib.EstimateHeight("quercus", 0.1); h != 0.5 {
		t.Errorf("expected clamped height 0.5, got %g", h)
	}

	// Mangroves use the ratio model.
	if h := lib.EstimateHeight("rhizophora", 30); math.Abs(h-6.0) > 1e-9 {
		t.Errorf("expected ratio-model height 6.0, got %g", h)
	}
}

func TestEstimateBGB(t *testing.T) {
	lib := NewLibrary()

	tests := []struct {
		name       string
		agb        float64
		species    string
		dbh        float64
		forestType string
		want       float64
	}{
		{"tropical moist ratio", 1000, "unknown", 20, "tropical_moist", 240},
		{"mangrove ratio", 1000, "unknown", 20, "mangrove", 390},
		{"boreal ratio", 1000, "unknown", 20, "boreal", 300},
		{"unknown forest type default", 1000, "unknown", 20, "cloud_forest", 260},
		{"large tree correction", 1000, "unknown", 60, "tropical_moist", 240 * 0.9},
		{"species override", 1000, "pinus sylvestris", 20, "tropical_moist", 290},
		{"zero AGB", 0, "unknown", 20, "tropical_moist", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lib.EstimateBGB(tt.agb, tt.species, tt.dbh, tt.forestType)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected BGB %g, got %g", tt.want, got)
			}
		})
	}
}

// The 0.39 mangrove ratio is the largest in the table, so bgb can never
// exceed agb*0.39 no matter the forest type or stem size.
func TestBGBBound(t *testing.T) {
	lib := NewLibrary()

	forestTypes := []string{
		"tropical_moist", "tropical_dry", "temperate_broadleaf",
		"temperate_coniferous", "boreal", "mangrove", "unknown",
	}
	for _, ft := range forestTypes {
		for _, dbh := range []float64{5, 30, 55, 120} {
			agb := 1000.0
			bgb := lib.EstimateBGB(agb, "some species", dbh, ft)
			if bgb > agb*0.39+1e-9 {
				t.Errorf("forest type %q dbh %g: BGB %g exceeds AGB*0.39", ft, dbh, bgb)
			}
		}
	}
}

func TestTreeBiomassRoundTrip(t *testing.T) {
	lib := NewLibrary()

	cases := []struct {
		species    string
		dbh        float64
		forestType string
	}{
		{"tectona grandis", 25, "tropical_dry"},
		{"picea abies", 40, "boreal"},
		{"rhizophora mangle", 18, "mangrove"},
		{"mystery species", 60, "tropical_moist"},
	}

	for _, c := range cases {
		b := lib.TreeBiomass(c.species, c.dbh, 0, 0, c.forestType)

		if math.Abs(b.TotalKg-(b.AGBKg+b.BGBKg)) > 1e-9*b.TotalKg {
			t.Errorf("%s: total %g != agb %g + bgb %g", c.species, b.TotalKg, b.AGBKg, b.BGBKg)
		}
		if math.Abs(b.CarbonKg-b.TotalKg*CarbonFraction) > 1e-9*b.CarbonKg {
			t.Errorf("%s: carbon %g != total %g * 0.47", c.species, b.CarbonKg, b.TotalKg)
		}
		if math.Abs(b.CO2eKg-b.CarbonKg*CO2PerCarbon) > 1e-9*b.CO2eKg {
			t.Errorf("%s: co2e %g != carbon %g * 44/12", c.species, b.CO2eKg, b.CarbonKg)
		}
	}
}

func TestRegisterEquation(t *testing.T) {
	lib := NewLibrary()

	custom := Equation{
		Form: FormPowerOfD, A: 0.2, B: 2.5,
		WoodDensityDefault: 0.5,
		HeightModel:        HeightChaveLogLog,
	}
	if err := lib.RegisterEquation("Custom Species", custom); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	want := 0.2 * math.Pow(30, 2.5)
	if agb := lib.EstimateAGB("custom species", 30, 0, 0); math.Abs(agb-want) > 1e-9*want {
		t.Errorf("registered equation not used: expected %g, got %g", want, agb)
	}

	// Registered entries must win over regional defaults too.
	if err := lib.RegisterEquation("swietenia macrophylla", custom); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if agb := lib.EstimateAGB("swietenia macrophylla", 30, 0, 0); math.Abs(agb-want) > 1e-9*want {
		t.Errorf("registered equation should shadow the regional default")
	}

	// Malformed definitions are rejected.
	if err := lib.RegisterEquation("bad", Equation{Form: EquationForm(99)}); err == nil {
		t.Error("expected error for unknown equation form")
	}
	if err := lib.RegisterEquation("", custom); err == nil {
		t.Error("expected error for empty species key")
	}
	if err := lib.RegisterEquation("bad", Equation{Form: FormPowerOfD, A: -1, B: 2}); err == nil {
		t.Error("expected error for non-positive leading coefficient")
	}
}

func TestValidateApplicability(t *testing.T) {
	lib := NewLibrary()

	tests := []struct {
		name           string
		species        string
		dbh            float64
		height         float64
		wantValid      bool
		wantConfidence Confidence
		wantWarnings   int
	}{
		{"in-range known species", "tectona grandis", 30, 0, true, ConfidenceHigh, 0},
		{"unknown species downgrades", "mystery tree", 30, 0, true, ConfidenceMedium, 1},
		{"tiny DBH flagged", "tectona grandis", 2, 0, false, ConfidenceLow, 1},
		{"huge DBH flagged", "tectona grandis", 250, 0, false, ConfidenceLow, 1},
		{"implausible height flagged", "tectona grandis", 30, 80, true, ConfidenceMedium, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := lib.ValidateApplicability(tt.species, tt.dbh, tt.height)
			if rep.Valid != tt.wantValid {
				t.Errorf("valid = %v, want %v", rep.Valid, tt.wantValid)
			}
			if rep.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", rep.Confidence, tt.wantConfidence)
			}
			if len(rep.Warnings) != tt.wantWarnings {
				t.Errorf("warnings = %v, want %d", rep.Warnings, tt.wantWarnings)
			}
		})
	}
}

func TestStockCategory(t *testing.T) {
	tests := []struct {
		stock float64
		want  string
	}{
		{50, "Low carbon density"},
		{150, "Moderate carbon density"},
		{450, "High carbon density"},
		{800, "Very high carbon density"},
	}
	for _, tt := range tests {
		if got := StockCategory(tt.stock); got != tt.want {
			t.Errorf("StockCategory(%g) = %q, want %q", tt.stock, got, tt.want)
		}
	}
}
