package countries

import "strings"

// Name holds the naming fields of a country record.
type Name struct {
	Common   string `json:"common"`
	Official string `json:"official"`
}

// Flags holds the flag image references of a country record.
type Flags struct {
	PNG string `json:"png"`
	SVG string `json:"svg"`
	Alt string `json:"alt,omitempty"`
}

// Country is one record of the /all collection. Records are treated as
// immutable once loaded.
type Country struct {
	Name       Name     `json:"name"`
	CCA3       string   `json:"cca3"`
	Capital    []string `json:"capital,omitempty"`
	Region     string   `json:"region,omitempty"`
	Population int64    `json:"population"`
	Flag       string   `json:"flag,omitempty"` // emoji
	Flags      Flags    `json:"flags"`
}

// CapitalLabel joins all capitals with ", ". Countries without a capital
// yield the empty string.
func (c Country) CapitalLabel() string {
	return strings.Join(c.Capital, ", ")
}
