package allometry

import (
	"math"
	"testing"
)

func TestEquationEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		eq      Equation
		dbh     float64
		height  float64
		density float64
		want    float64
	}{
		{
			name: "power law rho d2h",
			eq:   Equation{Form: FormPowerLawRhoD2H, A: 0.0509, B: 1.0},
			dbh:  30, height: 20, density: 0.6,
			want: 0.0509 * 0.6 * 30 * 30 * 20,
		},
		{
			name: "log polynomial in kg",
			eq:   Equation{Form: FormLogPolynomial, A: -2.0, B: 2.4},
			dbh:  25,
			want: math.Exp(-2.0 + 2.4*math.Log(25)),
		},
		{
			name: "log polynomial grams calibrated",
			eq:   Equation{Form: FormLogPolynomial, A: 5.0, B: 2.2, GramsCalibrated: true},
			dbh:  25,
			want: math.Exp(5.0+2.2*math.Log(25)) / 1000.0,
		},
		{
			name: "log polynomial cubic term",
			eq:   Equation{Form: FormLogPolynomial, A: -1.5, B: 2.3, C: 0.05, D: -0.002},
			dbh:  40,
			want: func() float64 {
				lnD := math.Log(40.0)
				return math.Exp(-1.5 + 2.3*lnD + 0.05*lnD*lnD - 0.002*lnD*lnD*lnD)
			}(),
		},
		{
			name: "power of d ignores height and density",
			eq:   Equation{Form: FormPowerOfD, A: 0.153, B: 2.382},
			dbh:  30, height: 99, density: 9,
			want: 0.153 * math.Pow(30, 2.382),
		},
		{
			name: "mangrove rho d",
			eq:   Equation{Form: FormMangroveRhoD, A: 0.251, B: 2.46},
			dbh:  20, density: 0.87,
			want: 0.251 * 0.87 * math.Pow(20, 2.46),
		},
		{
			name: "zero dbh is zero for every form",
			eq:   Equation{Form: FormPowerLawRhoD2H, A: 0.0509, B: 1.0},
			dbh:  0, height: 20, density: 0.6,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.eq.Evaluate(tt.dbh, tt.height, tt.density)
			if tt.want == 0 {
				if got != 0 {
					t.Errorf("expected 0, got %g", got)
				}
				return
			}
			if math.Abs(got-tt.want) > 1e-9*math.Abs(tt.want) {
				t.Errorf("expected %g, got %g", tt.want, got)
			}
		})
	}
}

func TestEquationValidate(t *testing.T) {
	valid := Equation{Form: FormPowerOfD, A: 0.1, B: 2.4}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid equation rejected: %v", err)
	}

	// Log-polynomial intercepts are commonly negative.
	logPoly := Equation{Form: FormLogPolynomial, A: -2.5, B: 2.4}
	if err := logPoly.Validate(); err != nil {
		t.Errorf("log-polynomial with negative intercept rejected: %v", err)
	}

	bad := []Equation{
		{Form: EquationForm(42), A: 0.1, B: 2.0},
		{Form: FormPowerOfD, A: 0, B: 2.0},
		{Form: FormMangroveRhoD, A: 0.25, B: 2.4, WoodDensityDefault: -0.5},
		{Form: FormPowerOfD, A: 0.1, B: 2.0, MinDBHCm: 50, MaxDBHCm: 10},
	}
	for i, eq := range bad {
		if err := eq.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}
