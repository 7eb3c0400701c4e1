package domain

// Category is a named group of exercises. Exercise order is display order.
type Category struct {
	Name      string   `json:"name" toml:"name"`
	Exercises []string `json:"exercises" toml:"exercises"`
}

// CategoryMap maps category names to exercise names while keeping insertion order.
// Treat values as immutable: helpers that change a map return a copy.
type CategoryMap struct {
	Categories []Category `json:"categories" toml:"category"`
}

// Lookup returns the exercises of the named category.
func (m CategoryMap) Lookup(name string) ([]string, bool) {
	for _, c := range m.Categories {
		if c.Name == name {
			return c.Exercises, true
		}
	}
	return nil, false
}

// Names returns the category names in order.
func (m CategoryMap) Names() []string {
	names := make([]string, len(m.Categories))
	for i, c := range m.Categories {
		names[i] = c.Name
	}
	return names
}

// Clone returns a deep copy of the map.
func (m CategoryMap) Clone() CategoryMap {
	out := CategoryMap{Categories: make([]Category, len(m.Categories))}
	for i, c := range m.Categories {
		exercises := make([]string, len(c.Exercises))
		copy(exercises, c.Exercises)
		out.Categories[i] = Category{Name: c.Name, Exercises: exercises}
	}
	return out
}
