package domain

// Category identifies one of the mutually exclusive well classifications.
type Category int

// Well classifications applied through tagging.
const (
	CategoryBlank Category = iota
	CategoryNegative
	CategoryTest
)

// String returns the lowercase category name.
func (c Category) String() string {
	switch c {
	case CategoryBlank:
		return "blank"
	case CategoryNegative:
		return "negative"
	case CategoryTest:
		return "test"
	default:
		return "unknown"
	}
}

// ParseCategory parses a lowercase category name.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "blank":
		return CategoryBlank, true
	case "negative":
		return CategoryNegative, true
	case "test":
		return CategoryTest, true
	default:
		return 0, false
	}
}

// Cell is one well record. The zero value is an empty, untagged well.
// When Colored is false the Negative/Test flags are ignored; when true,
// exactly one category holds: neither flag set means blank.
type Cell struct {
	Value    string
	Colored  bool
	Negative bool
	Test     bool
}

// Category returns the cell's classification. ok is false for untagged cells.
func (c Cell) Category() (Category, bool) {
	if !c.Colored {
		return 0, false
	}
	switch {
	case c.Negative:
		return CategoryNegative, true
	case c.Test:
		return CategoryTest, true
	default:
		return CategoryBlank, true
	}
}

// Store maps canonical coordinate keys to well records. An absent key is
// equivalent to the zero Cell.
type Store map[string]Cell

// NewStore constructs an empty well store.
func NewStore() Store {
	return Store{}
}

// Get returns the record for a coordinate, defaulting absent keys to the
// zero cell.
func (s Store) Get(c Coord) Cell {
	return s[c.Key()]
}

// SetValue writes the raw text value for one coordinate, leaving category
// flags untouched.
func (s Store) SetValue(c Coord, value string) {
	cell := s[c.Key()]
	cell.Value = value
	s[c.Key()] = cell
}

// ToggleCategory inverts the Colored flag of every given coordinate
// independently. Cells turning on are stamped with the requested category;
// cells turning off drop their category flags. A mixed selection therefore
// stays mixed: each cell strictly inverts.
func (s Store) ToggleCategory(coords []Coord, category Category) {
	for _, coord := range coords {
		cell := s[coord.Key()]
		cell.Colored = !cell.Colored
		cell.Negative = false
		cell.Test = false
		if cell.Colored {
			switch category {
			case CategoryNegative:
				cell.Negative = true
			case CategoryTest:
				cell.Test = true
			}
		}
		s[coord.Key()] = cell
	}
}

// ClearCategories untags every colored cell, leaving values untouched.
func (s Store) ClearCategories() {
	for key, cell := range s {
		if !cell.Colored {
			continue
		}
		cell.Colored = false
		cell.Negative = false
		cell.Test = false
		s[key] = cell
	}
}

// ClearValues blanks the raw value of each given coordinate that exists in
// the store. Category flags are preserved.
func (s Store) ClearValues(coords []Coord) {
	for _, coord := range coords {
		cell, ok := s[coord.Key()]
		if !ok {
			continue
		}
		cell.Value = ""
		s[coord.Key()] = cell
	}
}
