package catalog

import "fmt"

// ------------------------------------------------------------------------
// Condition enumerates the assessed state of one inspection item.
// ------------------------------------------------------------------------
type Condition string

const (
	ConditionGood          Condition = "good"
	ConditionFair          Condition = "fair"
	ConditionPoor          Condition = "poor"
	ConditionUrgentRepair  Condition = "urgent_repair"
	ConditionNotApplicable Condition = "not_applicable"
)

func (c Condition) String() string {
	return string(c)
}

// IsValid returns true if the condition is a recognized value.
func (c Condition) IsValid() bool {
	switch c {
	case ConditionGood, ConditionFair, ConditionPoor,
		ConditionUrgentRepair, ConditionNotApplicable:
		return true
	}
	return false
}

// RequiresNotes reports whether this condition demands a non-empty
// comment on the item. Good and Not-Applicable ratings stand on their
// own; anything else needs an explanation.
func (c Condition) RequiresNotes() bool {
	switch c {
	case ConditionGood, ConditionNotApplicable:
		return false
	}
	return true
}

// ParseCondition converts a wire string to the enum.
func ParseCondition(s string) (Condition, error) {
	c := Condition(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid condition: %q", s)
	}
	return c, nil
}

// ------------------------------------------------------------------------
// Condition colours. One table, referenced by both the API responses
// and the PDF badge painter, so the two can never drift.
// ------------------------------------------------------------------------

// RGB is a plain 8-bit colour triple.
type RGB struct {
	R, G, B int
}

// Hex returns the colour in #rrggbb form for JSON consumers.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var conditionColours = map[Condition]RGB{
	ConditionGood:          {34, 197, 94},   // green
	ConditionFair:          {245, 158, 11},  // amber
	ConditionPoor:          {239, 68, 68},   // red
	ConditionUrgentRepair:  {239, 68, 68},   // red
	ConditionNotApplicable: {156, 163, 175}, // grey
}

// ColourFor returns the badge colour for a condition. Unknown values
// fall back to the Not-Applicable grey rather than panicking mid-render.
func ColourFor(c Condition) RGB {
	if rgb, ok := conditionColours[c]; ok {
		return rgb
	}
	return conditionColours[ConditionNotApplicable]
}

// AllConditions lists every condition in display order.
func AllConditions() []Condition {
	return []Condition{
		ConditionGood,
		ConditionFair,
		ConditionPoor,
		ConditionUrgentRepair,
		ConditionNotApplicable,
	}
}
