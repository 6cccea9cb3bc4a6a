package allometry

import (
	"fmt"
	"math"
)

// EquationForm identifies the functional form of an allometric biomass equation.
// Dispatch on the form is a switch over this closed set; unknown forms are
// rejected at registration time, never at evaluation time.
type EquationForm int

const (
	// FormPowerLawRhoD2H evaluates a*(rho*D^2*H)^b (Chave-style pantropical models)
	FormPowerLawRhoD2H EquationForm = iota
	// FormLogPolynomial evaluates exp(a + b*lnD + c*lnD^2 + d*lnD^3) (Jenkins-style models)
	FormLogPolynomial
	// FormPowerOfD evaluates a*D^b (simple diameter-only models)
	FormPowerOfD
	// FormMangroveRhoD evaluates a*rho*D^b (Komiyama mangrove models)
	FormMangroveRhoD
)

func (f EquationForm) String() string {
	switch f {
	case FormPowerLawRhoD2H:
		return "power_law_rho_d2h"
	case FormLogPolynomial:
		return "log_polynomial"
	case FormPowerOfD:
		return "power_of_d"
	case FormMangroveRhoD:
		return "mangrove_rho_d"
	default:
		return fmt.Sprintf("EquationForm(%d)", int(f))
	}
}

// HeightModel selects how tree height is estimated when no field measurement
// is available.
type HeightModel int

const (
	// HeightChaveLogLog is the Chave et al. log-log model:
	// lnH = 0.893 + 0.760*lnD - 0.0340*(lnD)^2, clamped to >= 0.5 m
	HeightChaveLogLog HeightModel = iota
	// HeightDiameterRatio is the simple ratio model H = 20*D/100
	HeightDiameterRatio
)

// Equation is a published allometric biomass equation. Equations are
// immutable once registered with a Library and are safe for concurrent use.
type Equation struct {
	Form EquationForm

	// Coefficients. Which ones are read depends on Form; unused
	// coefficients are ignored.
	A, B, C, D float64

	// GramsCalibrated marks log-polynomial equations whose source was fit
	// in grams rather than kilograms; evaluation divides by 1000.
	GramsCalibrated bool

	// WoodDensityDefault is the species' typical wood density (g/cm^3),
	// used when the caller supplies no measurement.
	WoodDensityDefault float64

	// HeightModel is consulted when height must be estimated from DBH.
	HeightModel HeightModel

	// RootShootRatio, when > 0, overrides the forest-type root-to-shoot
	// ratio for belowground biomass estimation.
	RootShootRatio float64

	// Region tags the biogeographic region the equation was calibrated in.
	Region Region

	// MinDBHCm and MaxDBHCm bound the calibration range (cm). Zero values
	// mean the bound is unknown.
	MinDBHCm, MaxDBHCm float64
}

// Validate reports whether the equation definition is well-formed enough to
// register. It does not judge scientific plausibility beyond sign checks.
func (e Equation) Validate() error {
	switch e.Form {
	case FormPowerLawRhoD2H, FormLogPolynomial, FormPowerOfD, FormMangroveRhoD:
	default:
		return fmt.Errorf("unknown equation form %v", e.Form)
	}
	if e.Form != FormLogPolynomial && e.A <= 0 {
		return fmt.Errorf("equation form %v requires a positive leading coefficient, got %g", e.Form, e.A)
	}
	if e.WoodDensityDefault < 0 {
		return fmt.Errorf("negative default wood density %g", e.WoodDensityDefault)
	}
	if e.MinDBHCm < 0 || (e.MaxDBHCm > 0 && e.MaxDBHCm < e.MinDBHCm) {
		return fmt.Errorf("invalid DBH calibration range [%g, %g]", e.MinDBHCm, e.MaxDBHCm)
	}
	return nil
}

// Evaluate computes aboveground biomass (kg) for a single stem.
// dbhCM is diameter at breast height in cm, heightM the tree height in m,
// and woodDensity the wood density in g/cm^3. Height and density must
// already be resolved by the caller; Evaluate itself never substitutes
// defaults.
func (e Equation) Evaluate(dbhCM, heightM, woodDensity float64) float64 {
	if dbhCM <= 0 {
		return 0
	}

	switch e.Form {
	case FormPowerLawRhoD2H:
		return e.A * math.Pow(woodDensity*dbhCM*dbhCM*heightM, e.B)
	case FormLogPolynomial:
		lnD := math.Log(dbhCM)
		agb := math.Exp(e.A + e.B*lnD + e.C*lnD*lnD + e.D*lnD*lnD*lnD)
		if e.GramsCalibrated {
			agb /= 1000.0
		}
		return agb
	case FormPowerOfD:
		return e.A * math.Pow(dbhCM, e.B)
	case FormMangroveRhoD:
		return e.A * woodDensity * math.Pow(dbhCM, e.B)
	}

	// Unreachable for registered equations; Validate rejects unknown forms.
	return 0
}
