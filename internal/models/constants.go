package models

// Estimate source formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
	FormatXML  = "xml"
)

// Category vocabulary. The set is closed: classification and AI suggestions
// only ever produce labels from this list.
const (
	CategoryCleaning              = "CLEANING"
	CategoryGeneralDemolition     = "GENERAL DEMOLITION"
	CategoryWaterExtraction       = "WATER EXTRACTION & REMEDIATION"
	CategoryTemporaryRepairs      = "TEMPORARY REPAIRS"
	CategoryDoors                 = "DOORS"
	CategorySlidingPatioDoors     = "WINDOWS - SLIDING PATIO DOORS"
	CategoryWindowsAluminum       = "WINDOWS - ALUMINUM"
	CategoryWindowTreatment       = "WINDOW TREATMENT"
	CategoryMirrorsShowerDoors    = "MIRRORS & SHOWER DOORS"
	CategoryAppliances            = "APPLIANCES"
	CategoryPlumbing              = "PLUMBING"
	CategoryElectrical            = "ELECTRICAL"
	CategoryLightFixtures         = "LIGHT FIXTURES"
	CategoryHVAC                  = "HEAT, VENT & AIR CONDITIONING"
	CategoryCabinetry             = "CABINETRY"
	CategoryDrywall               = "DRYWALL"
	CategoryLathPlaster           = "INTERIOR LATH & PLASTER"
	CategoryStucco                = "STUCCO & EXTERIOR PLASTER"
	CategoryFinishCarpentry       = "FINISH CARPENTRY / TRIMWORK"
	CategoryFinishHardware        = "FINISH HARDWARE"
	CategoryPainting              = "PAINTING & WOOD WALL FINISHES"
	CategoryPaneling              = "PANELING & WOOD WALL FINISHES"
	CategoryWallpaper             = "WALLPAPER"
	CategoryFloorCeramicTile      = "FLOOR COVERING - CERAMIC TILE"
	CategoryFloorCarpet           = "FLOOR COVERING - CARPET"
	CategoryFloorStone            = "FLOOR COVERING - STONE"
	CategoryFloorWood             = "FLOOR COVERING - WOOD"
	CategoryFloorVinyl            = "FLOOR COVERING - VINYL"
	CategoryFloorLaminate         = "FLOOR COVERING - LAMINATE"
	CategoryTile                  = "TILE"
	CategoryFloorCovering         = "FLOOR COVERING"
	CategorySoffitFasciaGutter    = "SOFFIT, FASCIA, & GUTTER"
	CategoryInsulation            = "INSULATION"
	CategoryToiletBathAccessories = "TOILET & BATH ACCESSORIES"
	CategoryGeneral               = "GENERAL"
)

// AllCategories lists the closed vocabulary in rule-table order.
var AllCategories = []string{
	CategoryCleaning,
	CategoryGeneralDemolition,
	CategoryWaterExtraction,
	CategoryTemporaryRepairs,
	CategoryDoors,
	CategorySlidingPatioDoors,
	CategoryWindowsAluminum,
	CategoryWindowTreatment,
	CategoryMirrorsShowerDoors,
	CategoryAppliances,
	CategoryPlumbing,
	CategoryElectrical,
	CategoryLightFixtures,
	CategoryHVAC,
	CategoryCabinetry,
	CategoryDrywall,
	CategoryLathPlaster,
	CategoryStucco,
	CategoryFinishCarpentry,
	CategoryFinishHardware,
	CategoryPainting,
	CategoryPaneling,
	CategoryWallpaper,
	CategoryFloorCeramicTile,
	CategoryFloorCarpet,
	CategoryFloorStone,
	CategoryFloorWood,
	CategoryFloorVinyl,
	CategoryFloorLaminate,
	CategoryTile,
	CategoryFloorCovering,
	CategorySoffitFasciaGutter,
	CategoryInsulation,
	CategoryToiletBathAccessories,
	CategoryGeneral,
}

var categoryIndex = make(map[string]struct{}, len(AllCategories))

func init() {
	for _, c := range AllCategories {
		categoryIndex[c] = struct{}{}
	}
}

// IsValidCategory reports whether name belongs to the category vocabulary.
func IsValidCategory(name string) bool {
	_, ok := categoryIndex[name]
	return ok
}

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
