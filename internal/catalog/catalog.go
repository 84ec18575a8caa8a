// Package catalog holds the immutable inspection checklists: per room
// type, a fixed ordered list of categories, plus the condition enum and
// its colour table. Nothing here is persisted per report; reports only
// store category ids and look the rest up at render/validation time.
package catalog

import "fmt"

// ------------------------------------------------------------------------
// RoomType enumerates the kinds of rooms an inspection can cover.
// ------------------------------------------------------------------------
type RoomType string

const (
	RoomStandard        RoomType = "standard"
	RoomKitchen         RoomType = "kitchen"
	RoomBathroom        RoomType = "bathroom"
	RoomPatio           RoomType = "patio"
	RoomOutbuilding     RoomType = "outbuilding"
	RoomExterior        RoomType = "exterior"
	RoomSpecialFeatures RoomType = "special_features"
)

func (t RoomType) String() string {
	return string(t)
}

func (t RoomType) IsValid() bool {
	switch t {
	case RoomStandard, RoomKitchen, RoomBathroom, RoomPatio,
		RoomOutbuilding, RoomExterior, RoomSpecialFeatures:
		return true
	}
	return false
}

func ParseRoomType(s string) (RoomType, error) {
	t := RoomType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid room type: %q", s)
	}
	return t, nil
}

// Category is one fixed checklist line item for a room type.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// standardCategories apply to every habitable room and lead the list
// for room types that extend them.
var standardCategories = []Category{
	{ID: "walls", Name: "Walls", Description: "Paintwork, cracks, damp marks"},
	{ID: "ceiling", Name: "Ceiling", Description: "Sagging, stains, cornices"},
	{ID: "flooring", Name: "Flooring", Description: "Carpets, tiles, laminate, skirting"},
	{ID: "windows", Name: "Windows", Description: "Glass, frames, handles, latches"},
	{ID: "doors", Name: "Doors", Description: "Door, frame, handles, locks and keys"},
	{ID: "lights", Name: "Light fittings", Description: "Fittings, switches, bulbs working"},
	{ID: "outlets", Name: "Power outlets", Description: "Plug points secure and working"},
}

var categoriesByRoomType = map[RoomType][]Category{
	RoomStandard: standardCategories,

	RoomKitchen: append(append([]Category{}, standardCategories...),
		Category{ID: "sink", Name: "Sink and taps", Description: "Leaks, drainage, sealant"},
		Category{ID: "stove", Name: "Stove and oven", Description: "Plates, oven, extractor"},
		Category{ID: "cupboards", Name: "Cupboards", Description: "Doors, hinges, shelving"},
		Category{ID: "counters", Name: "Countertops", Description: "Surface damage, burns, chips"},
	),

	RoomBathroom: append(append([]Category{}, standardCategories...),
		Category{ID: "toilet", Name: "Toilet", Description: "Cistern, seat, flush"},
		Category{ID: "basin", Name: "Basin and taps", Description: "Leaks, plug, sealant"},
		Category{ID: "bath_shower", Name: "Bath / shower", Description: "Head, doors, drainage"},
		Category{ID: "tiling", Name: "Tiling and grouting", Description: "Cracked tiles, mould"},
		Category{ID: "ventilation", Name: "Ventilation", Description: "Window or extractor fan"},
	),

	RoomPatio: {
		{ID: "patio_floor", Name: "Patio flooring", Description: "Paving, tiles, decking"},
		{ID: "balustrade", Name: "Railings / balustrade", Description: "Secure, rust, finish"},
		{ID: "roof_cover", Name: "Roof covering", Description: "Awning, pergola, shade cloth"},
		{ID: "patio_lights", Name: "Light fittings", Description: "Outdoor fittings working"},
	},

	RoomOutbuilding: {
		{ID: "structure", Name: "Structure", Description: "Walls, roof, foundation"},
		{ID: "ob_doors", Name: "Doors and locks", Description: "Garage or outbuilding access"},
		{ID: "ob_electrical", Name: "Electrical", Description: "Lights, DB board, plug points"},
		{ID: "ob_flooring", Name: "Flooring", Description: "Screed, cracks, oil stains"},
	},

	RoomExterior: {
		{ID: "roof", Name: "Roof", Description: "Tiles or sheeting, flashing, chimneys"},
		{ID: "gutters", Name: "Gutters and downpipes", Description: "Secure, blockages, rust"},
		{ID: "ext_walls", Name: "Exterior walls", Description: "Plaster, paint, cracks, damp"},
		{ID: "fencing", Name: "Fencing and gates", Description: "Boundary walls, gates, motors"},
		{ID: "garden", Name: "Garden and paving", Description: "Lawn, beds, driveways, paths"},
		{ID: "pool", Name: "Swimming pool", Description: "Pump, cleanliness, safety net"},
	},

	RoomSpecialFeatures: {
		{ID: "fireplace", Name: "Fireplace", Description: "Flue, doors, surround"},
		{ID: "aircon", Name: "Air conditioning", Description: "Units cooling and heating"},
		{ID: "security", Name: "Alarm and security", Description: "Alarm, beams, cameras"},
		{ID: "geyser_solar", Name: "Geyser / solar", Description: "Water heating installation"},
		{ID: "other_feature", Name: "Other feature", Description: "Anything not listed above"},
	},
}

// CategoriesFor returns the fixed ordered checklist for a room type.
// The returned slice is shared; callers must not mutate it.
func CategoriesFor(t RoomType) []Category {
	return categoriesByRoomType[t]
}

// CategoryByID looks up one category within a room type's checklist.
func CategoryByID(t RoomType, id string) (Category, bool) {
	for _, c := range categoriesByRoomType[t] {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryPosition returns the index of a category in its room type's
// fixed order, or -1 when the id does not belong to that checklist.
// Renderers sort items by this so PDF output is deterministic no matter
// what order items were recorded in.
func CategoryPosition(t RoomType, id string) int {
	for i, c := range categoriesByRoomType[t] {
		if c.ID == id {
			return i
		}
	}
	return -1
}
