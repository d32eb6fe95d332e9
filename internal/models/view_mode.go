package models

import "errors"

// ViewMode identifies one of the four mutually exclusive dashboard
// perspectives. Exactly one mode is active per session at any time.
type ViewMode string

const (
	ViewModeAggregate       ViewMode = "aggregate"
	ViewModeTransactions    ViewMode = "transactions"
	ViewModeTables          ViewMode = "tables"
	ViewModeRecommendations ViewMode = "recommendations"

	// DefaultViewMode is the mode a fresh session starts in.
	DefaultViewMode = ViewModeAggregate
)

var ErrInvalidViewMode = errors.New("invalid view mode")

// AllViewModes lists every mode in display order.
var AllViewModes = []ViewMode{
	ViewModeAggregate,
	ViewModeTransactions,
	ViewModeTables,
	ViewModeRecommendations,
}

// IsValidViewMode checks if the view mode is one of the known modes
func IsValidViewMode(mode ViewMode) bool {
	switch mode {
	case ViewModeAggregate, ViewModeTransactions, ViewModeTables, ViewModeRecommendations:
		return true
	default:
		return false
	}
}

// ParseViewMode converts a raw string into a ViewMode
func ParseViewMode(raw string) (ViewMode, error) {
	mode := ViewMode(raw)
	if !IsValidViewMode(mode) {
		return "", ErrInvalidViewMode
	}
	return mode, nil
}

func (m ViewMode) String() string {
	return string(m)
}
