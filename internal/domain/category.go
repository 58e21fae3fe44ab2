package domain

import "fmt"

// Category is one of the fixed quiz game types.
type Category string

const (
	CategoryBlackSwan        Category = "BlackSwan"
	CategoryPrisonersDilemma Category = "PrisonersDilemma"
	CategorySignalDecoding   Category = "SignalDecoding"
)

// Categories lists every quiz category in presentation order.
var Categories = []Category{
	CategoryBlackSwan,
	CategoryPrisonersDilemma,
	CategorySignalDecoding,
}

var categoryLabels = map[Category]string{
	CategoryBlackSwan:        "블랙스완",
	CategoryPrisonersDilemma: "죄수의 딜레마",
	CategorySignalDecoding:   "시그널 디코딩",
}

var categoryMarkers = map[Category]string{
	CategoryBlackSwan:        "🌊",
	CategoryPrisonersDilemma: "⚖️",
	CategorySignalDecoding:   "🔍",
}

// ParseCategory converts a raw game type into a Category.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if _, ok := categoryLabels[c]; !ok {
		return "", NewInvalidCategoryError(raw)
	}
	return c, nil
}

// Label is the Korean game name the model uses in its output.
func (c Category) Label() string {
	return categoryLabels[c]
}

// Marker is the emoji that opens a question block of this category.
func (c Category) Marker() string {
	return categoryMarkers[c]
}

func (c Category) String() string {
	return string(c)
}

// Heading is the full category marker line, e.g. "🌊 블랙스완".
func (c Category) Heading() string {
	return fmt.Sprintf("%s %s", c.Marker(), c.Label())
}
