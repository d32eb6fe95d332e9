package models

import "strings"

// AccountHolder is the individual whose financial records are being
// viewed. The name is the unique identifier; holders are created from
// the backend roster and never mutated afterwards.
type AccountHolder struct {
	Name string `json:"name"`
}

// RosterFromNames builds a roster from the backend user list, unique by
// name. A later duplicate replaces the earlier entry rather than merging.
func RosterFromNames(names []string) []AccountHolder {
	seen := make(map[string]int, len(names))
	roster := make([]AccountHolder, 0, len(names))

	for _, name := range names {
		holder := AccountHolder{Name: name}
		if idx, ok := seen[name]; ok {
			roster[idx] = holder
			continue
		}
		seen[name] = len(roster)
		roster = append(roster, holder)
	}

	return roster
}

// IsZero reports whether the holder is the "nothing selected" value.
func (h AccountHolder) IsZero() bool {
	return strings.TrimSpace(h.Name) == ""
}
