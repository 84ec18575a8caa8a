package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardRoomsShareTheBaseChecklist(t *testing.T) {
	std := CategoriesFor(RoomStandard)
	require.Len(t, std, 7)

	// Kitchen and bathroom extend the base list without reordering it.
	for _, rt := range []RoomType{RoomKitchen, RoomBathroom} {
		cats := CategoriesFor(rt)
		require.Greater(t, len(cats), len(std))
		for i, c := range std {
			require.Equal(t, c.ID, cats[i].ID, "room type %s position %d", rt, i)
		}
	}
}

func TestKitchenAndBathroomExtensions(t *testing.T) {
	for _, id := range []string{"sink", "stove", "cupboards", "counters"} {
		_, ok := CategoryByID(RoomKitchen, id)
		require.True(t, ok, "kitchen should have %q", id)
	}
	for _, id := range []string{"toilet", "basin", "bath_shower", "tiling", "ventilation"} {
		_, ok := CategoryByID(RoomBathroom, id)
		require.True(t, ok, "bathroom should have %q", id)
	}

	// Extensions do not leak across room types.
	_, ok := CategoryByID(RoomBathroom, "stove")
	require.False(t, ok)
	_, ok = CategoryByID(RoomStandard, "sink")
	require.False(t, ok)
}

func TestEveryRoomTypeHasAChecklist(t *testing.T) {
	for _, rt := range []RoomType{
		RoomStandard, RoomKitchen, RoomBathroom, RoomPatio,
		RoomOutbuilding, RoomExterior, RoomSpecialFeatures,
	} {
		require.True(t, rt.IsValid())
		require.NotEmpty(t, CategoriesFor(rt), "room type %s", rt)
	}
}

func TestCategoryPositionMatchesChecklistOrder(t *testing.T) {
	for i, c := range CategoriesFor(RoomKitchen) {
		require.Equal(t, i, CategoryPosition(RoomKitchen, c.ID))
	}
	require.Equal(t, -1, CategoryPosition(RoomKitchen, "toilet"))
	require.Equal(t, -1, CategoryPosition(RoomKitchen, "nope"))
}

func TestParseRoomTypeRejectsUnknown(t *testing.T) {
	_, err := ParseRoomType("garage")
	require.Error(t, err)

	rt, err := ParseRoomType("special_features")
	require.NoError(t, err)
	require.Equal(t, RoomSpecialFeatures, rt)
}

func TestConditionNotesRule(t *testing.T) {
	require.False(t, ConditionGood.RequiresNotes())
	require.False(t, ConditionNotApplicable.RequiresNotes())
	require.True(t, ConditionFair.RequiresNotes())
	require.True(t, ConditionPoor.RequiresNotes())
	require.True(t, ConditionUrgentRepair.RequiresNotes())
}

func TestParseConditionRejectsUnknown(t *testing.T) {
	_, err := ParseCondition("terrible")
	require.Error(t, err)

	c, err := ParseCondition("urgent_repair")
	require.NoError(t, err)
	require.Equal(t, ConditionUrgentRepair, c)
}

func TestEveryConditionHasAColour(t *testing.T) {
	for _, c := range AllConditions() {
		rgb := ColourFor(c)
		require.NotEqual(t, RGB{}, rgb, "condition %s", c)
	}

	// Poor and urgent repair share the red badge.
	require.Equal(t, ColourFor(ConditionPoor), ColourFor(ConditionUrgentRepair))

	// Unknown conditions fall back to grey instead of panicking.
	require.Equal(t, ColourFor(ConditionNotApplicable), ColourFor(Condition("bogus")))
}

func TestHexFormatting(t *testing.T) {
	require.Equal(t, "#22c55e", ColourFor(ConditionGood).Hex())
	require.Equal(t, "#ef4444", ColourFor(ConditionPoor).Hex())
}
