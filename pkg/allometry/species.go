package allometry

// Region is a biogeographic calibration region for regional default equations.
type Region string

const (
	RegionTropicalAsia    Region = "tropical_asia"
	RegionTropicalAfrica  Region = "tropical_africa"
	RegionTropicalAmerica Region = "tropical_america"
	RegionTemperate       Region = "temperate"
	RegionBoreal          Region = "boreal"
	RegionMangrove        Region = "mangrove"
)

// genusRegions classifies genera into calibration regions. This is a fixed,
// documented table: species whose genus is absent here fall through to the
// pantropical default equation rather than being guessed from name text.
var genusRegions = map[string]Region{
	// South and Southeast Asian genera
	"tectona":       RegionTropicalAsia,
	"shorea":        RegionTropicalAsia,
	"dipterocarpus": RegionTropicalAsia,
	"hopea":         RegionTropicalAsia,
	"eucalyptus":    RegionTropicalAsia,
	"acacia":        RegionTropicalAsia,
	"dalbergia":     RegionTropicalAsia,

	// African genera
	"khaya":           RegionTropicalAfrica,
	"terminalia":      RegionTropicalAfrica,
	"brachystegia":    RegionTropicalAfrica,
	"milicia":         RegionTropicalAfrica,
	"entandrophragma": RegionTropicalAfrica,

	// Neotropical genera
	"swietenia":    RegionTropicalAmerica,
	"cecropia":     RegionTropicalAmerica,
	"bertholletia": RegionTropicalAmerica,
	"cedrela":      RegionTropicalAmerica,
	"hymenaea":     RegionTropicalAmerica,

	// Temperate genera
	"quercus":     RegionTemperate,
	"fagus":       RegionTemperate,
	"acer":        RegionTemperate,
	"betula":      RegionTemperate,
	"fraxinus":    RegionTemperate,
	"pinus":       RegionTemperate,
	"pseudotsuga": RegionTemperate,

	// Boreal genera
	"picea":   RegionBoreal,
	"abies":   RegionBoreal,
	"larix":   RegionBoreal,
	"populus": RegionBoreal,

	// Mangrove genera
	"rhizophora": RegionMangrove,
	"avicennia":  RegionMangrove,
	"sonneratia": RegionMangrove,
	"bruguiera":  RegionMangrove,
}

// builtinEquations is the compiled table of published species and genus level
// allometric equations. Keys are normalized (lowercase, single-spaced)
// binomials or genus names. Coefficients are from the published literature;
// sources are noted per entry.
var builtinEquations = map[string]Equation{
	// Teak plantations, India/Myanmar (diameter-only power model)
	"tectona grandis": {
		Form: FormPowerOfD, A: 0.153, B: 2.382,
		WoodDensityDefault: 0.55,
		HeightModel:        HeightChaveLogLog,
		Region:             RegionTropicalAsia,
		MinDBHCm:           5, MaxDBHCm: 80,
	},
	// Sal, Indian subcontinent
	"shorea robusta": {
		Form: FormPowerOfD, A: 0.0503, B: 2.626,
		WoodDensityDefault: 0.72,
		HeightModel:        HeightChaveLogLog,
		Region:             RegionTropicalAsia,
		MinDBHCm:           5, MaxDBHCm: 120,
	},
	// Genus-level eucalypt plantation model
	"eucalyptus": {
		Form: FormPowerOfD, A: 0.0678, B: 2.476,
		WoodDensityDefault: 0.60,
		HeightModel:        HeightChaveLogLog,
		Region:             RegionTropicalAsia,
		MinDBHCm:           3, MaxDBHCm: 60,
	},
	"acacia mangium": {
		Form: FormPowerOfD, A: 0.1173, B: 2.454,
		WoodDensityDefault: 0.58,
		HeightModel:        HeightChaveLogLog,
		Region:             RegionTropicalAsia,
		MinDBHCm:           3, MaxDBHCm: 50,
	},
	// Jenkins et al. softwood group, genus level
	"pinus": {
		Form: FormLogPolynomial, A: -2.5356, B: 2.4349,
		WoodDensityDefault: 0.42,
		HeightModel:        HeightChaveLogLog,
		RootShootRatio:     0.29,
		Region:             RegionTemperate,
		MinDBHCm:           2.5, MaxDBHCm: 180,
	},
	"picea abies": {
		Form: FormLogPolynomial, A: -2.0773, B: 2.3323,
		WoodDensityDefault: 0.40,
		HeightModel:        HeightChaveLogLog,
		RootShootRatio:     0.30,
		Region:             RegionBoreal,
		MinDBHCm:           2.5, MaxDBHCm: 150,
	},
	// European beech
	"fagus sylvatica": {
		Form: FormPowerOfD, A: 0.0798, B: 2.601,
		WoodDensityDefault: 0.68,
		HeightModel:        HeightChaveLogLog,
		Region:             RegionTemperate,
		MinDBHCm:           5, MaxDBHCm: 100,
	},
	// Jenkins et al. hard maple/oak/hickory/beech group, genus level
	"quercus": {
		Form: FormLogPolynomial, A: -2.0127, B: 2.4342,
		WoodDensityDefault: 0.65,
		HeightModel:        HeightChaveLogLog,
		Region:             RegionTemperate,
		MinDBHCm:           2.5, MaxDBHCm: 180,
	},
	// Komiyama et al. common mangrove model, genus-specific densities
	"rhizophora": {
		Form: FormMangroveRhoD, A: 0.251, B: 2.46,
		WoodDensityDefault: 0.87,
		HeightModel:        HeightDiameterRatio,
		RootShootRatio:     0.39,
		Region:             RegionMangrove,
		MinDBHCm:           5, MaxDBHCm: 50,
	},
	"avicennia": {
		Form: FormMangroveRhoD, A: 0.251, B: 2.46,
		WoodDensityDefault: 0.65,
		HeightModel:        HeightDiameterRatio,
		RootShootRatio:     0.39,
		Region:             RegionMangrove,
		MinDBHCm:           5, MaxDBHCm: 40,
	},
}

// regionalEquations holds one default equation per region, applied when a
// species has no entry of its own but its genus is classified.
var regionalEquations = map[Region]Equation{
	// Chave et al. moist forest model
	RegionTropicalAsia: {
		Form: FormPowerLawRhoD2H, A: 0.0509, B: 1.0,
		WoodDensityDefault: 0.57,
		HeightModel:        HeightChaveLogLog,
		Region:             RegionTropicalAsia,
	},
	// Chave et al. dry forest model
	RegionTropicalAfrica: {
		Form: FormPowerLawRhoD2H, A: 0.112, B: 0.916,
		WoodDensityDefault: 0.58,
		HeightModel:        HeightChaveLogLog,
		Region:             RegionTropicalAfrica,
	},
	RegionTropicalAmerica: {
		Form: FormPowerLawRhoD2H, A: 0.0776, B: 0.940,
		WoodDensityDefault: 0.60,
		HeightModel:        HeightChaveLogLog,
		Region:             RegionTropicalAmerica,
	},
	// Jenkins et al. mixed hardwood group
	RegionTemperate: {
		Form: FormLogPolynomial, A: -2.4800, B: 2.4835,
		WoodDensityDefault: 0.54,
		HeightModel:        HeightChaveLogLog,
		Region:             RegionTemperate,
	},
	RegionBoreal: {
		Form: FormLogPolynomial, A: -2.2094, B: 2.3867,
		WoodDensityDefault: 0.45,
		HeightModel:        HeightChaveLogLog,
		Region:             RegionBoreal,
	},
	// Komiyama et al. common mangrove model
	RegionMangrove: {
		Form: FormMangroveRhoD, A: 0.251, B: 2.46,
		WoodDensityDefault: 0.70,
		HeightModel:        HeightDiameterRatio,
		RootShootRatio:     0.39,
		Region:             RegionMangrove,
	},
}
