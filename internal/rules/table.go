package rules

import (
	"fjacquet/xact-rollup/internal/models"
)

// defaultRules is the built-in table. Ordering is load-bearing:
//
//  1. Mitigation vocabulary first (water extraction before cleaning, both
//     before demolition) because their keywords collide with trade rules.
//  2. Trade categories with subset vocabulary next: DOORS before any
//     insulation keyword so "insulated door" stays a door; PANEL belongs to
//     ELECTRICAL before PANELING; HVAC yields to water mitigation wording.
//  3. Finish materials.
//  4. Floor perimeter is a wall-area calculation, so it routes to painting
//     ahead of every flooring rule.
//  5. Flooring from most to least specific.
//  6. Exterior and leftovers, with INSULATION last.
var defaultRules = []Rule{
	{Category: models.CategoryWaterExtraction, Include: []string{"WATER EXTRACTION", "STRUCTURAL DRYING", "MOISTURE", "DEHUMID", "AIR MOVER", "WATER MITIGATION"}},
	{Category: models.CategoryCleaning, Include: []string{"CLEAN", "MUCK OUT", "SANITIZE", "DISINFECT", "ANTI-MICROBIAL", "ANTIMICROBIAL", "DEODOR"}},
	{Category: models.CategoryGeneralDemolition, Include: []string{"DEMO", "DEMOLITION", "TEAR OUT", "REMOVE ", "DISPOSAL", "DUMPSTER", "HAUL", "DEBRIS"}},
	{Category: models.CategoryTemporaryRepairs, Include: []string{"TEMPORARY", "TARP", "BOARD UP", "EMERGENCY"}},

	{Category: models.CategoryDoors, Include: []string{"DOOR", "THRESHOLD", "DOOR HARDWARE", "DOOR KNOB", "DOOR HANDLE", "LOCKSET", "DEADBOLT"}},
	{Category: models.CategorySlidingPatioDoors, Include: []string{"PATIO DOOR", "SLIDING DOOR", "SLIDING GLASS"}},
	{Category: models.CategoryWindowsAluminum, Include: []string{"WINDOW", "GLASS", "GLAZING"}},
	{Category: models.CategoryWindowTreatment, Include: []string{"WINDOW TREATMENT", "BLINDS", "SHADE", "CURTAIN"}},
	{Category: models.CategoryMirrorsShowerDoors, Include: []string{"MIRROR", "SHOWER DOOR", "TUB DOOR", "GLASS DOOR"}},
	{Category: models.CategoryAppliances, Include: []string{"APPLIANCE", "DISHWASHER", "RANGE", "REFRIGERATOR", "WASHER", "DRYER", "GARBAGE DISPOSAL", "DISPOSAL", "MICROWAVE", "STOVE", "OVEN"}},
	{Category: models.CategoryPlumbing, Include: []string{"PLUMB", "FAUCET", "VALVE", "PIPE", "DRAIN", "TRAP", "SUPPLY LINE", "WATER LINE", "SHOWER HEAD", "TUB", "BATHTUB"}},
	{Category: models.CategoryPlumbing, Include: []string{"SINK"}, Exclude: []string{"CABINET"}},
	{Category: models.CategoryPlumbing, Include: []string{"TOILET"}, Exclude: []string{"ACCESSORY"}},
	{Category: models.CategoryElectrical, Include: []string{"ELECTRIC", "OUTLET", "SWITCH", "RECEPTACLE", "WIRE", "WIRING", "BREAKER", "PANEL", "GFI", "GFCI"}},
	{Category: models.CategoryLightFixtures, Include: []string{"LIGHT FIXTURE", "LIGHTING", "CHANDELIER", "CEILING FAN"}},
	{Category: models.CategoryHVAC, Include: []string{"HVAC", "AIR CONDITION", "FURNACE", "DUCT", "AC UNIT", "HEAT PUMP", "CONDENSER", "THERMOSTAT"}, Exclude: []string{"STRUCTURAL DRYING", "WATER"}},

	{Category: models.CategoryCabinetry, Include: []string{"CABINET", "COUNTER TOP", "COUNTERTOP", "VANITY"}},
	{Category: models.CategoryDrywall, Include: []string{"DRYWALL", "SHEETROCK", "GYPSUM", "TEXTURE WALL", "TEXTURE CEILING"}},
	{Category: models.CategoryLathPlaster, Include: []string{"PLASTER", "LATH"}},
	{Category: models.CategoryStucco, Include: []string{"STUCCO", "EXTERIOR PLASTER"}},
	{Category: models.CategoryFinishCarpentry, Include: []string{"BASEBOARD", "BASE BOARD", "TRIM", "MOLDING", "CASING", "CROWN", "WAINSCOT", "CHAIR RAIL"}},
	{Category: models.CategoryFinishHardware, Include: []string{"FINISH HARDWARE", "KNOB", "HANDLE", "HINGE", "PULL"}},
	{Category: models.CategoryPainting, Include: []string{"PAINT", "PRIMER", "STAIN", "WOOD FINISH", "SEAL"}},
	{Category: models.CategoryPaneling, Include: []string{"PANEL", "WOOD PANEL", "WAINSCOTING"}},
	{Category: models.CategoryWallpaper, Include: []string{"WALLPAPER"}},

	// Floor perimeter measures walls, not floors
	{Category: models.CategoryPainting, Include: []string{"FLOOR PERIMETER", "PERIMETER"}},

	{Category: models.CategoryFloorCeramicTile, Include: []string{"CERAMIC TILE", "PORCELAIN TILE"}},
	{Category: models.CategoryFloorCarpet, Include: []string{"CARPET", "PAD"}},
	{Category: models.CategoryFloorStone, Include: []string{"STONE FLOOR", "MARBLE FLOOR", "GRANITE FLOOR", "TRAVERTINE"}},
	{Category: models.CategoryFloorWood, Include: []string{"HARDWOOD", "WOOD FLOOR", "OAK FLOOR", "ENGINEERED WOOD"}},
	{Category: models.CategoryFloorVinyl, Include: []string{"VINYL", "LVP", "LVT", "LUXURY VINYL"}},
	{Category: models.CategoryFloorLaminate, Include: []string{"LAMINATE"}},
	{Category: models.CategoryTile, Include: []string{"TILE", "REGROUT"}},
	{Category: models.CategoryFloorCovering, Include: []string{"FLOOR", "FLOORING"}},

	{Category: models.CategorySoffitFasciaGutter, Include: []string{"SOFFIT", "FASCIA", "GUTTER", "DOWNSPOUT"}},
	{Category: models.CategoryInsulation, Include: []string{"INSULATION", "INSULATE", "BATT", "BLOWN-IN"}},
	{Category: models.CategoryToiletBathAccessories, Include: []string{"TOILET ACCESSORY", "BATH ACCESSORY", "TOWEL BAR", "PAPER HOLDER", "GRAB BAR"}},
}
