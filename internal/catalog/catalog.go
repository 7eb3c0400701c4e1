package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"liftlog/workout-app/internal/domain"

	"github.com/BurntSushi/toml"
)

//go:embed builtin.toml
var builtinTOML string

var ErrInvalidCatalog = errors.New("invalid exercise catalog")

// Builtin returns the catalog compiled into the binary.
func Builtin() (domain.CategoryMap, error) {
	return Parse(builtinTOML)
}

// Load reads a catalog file. An empty path means the built-in catalog.
func Load(path string) (domain.CategoryMap, error) {
	if path == "" {
		return Builtin()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.CategoryMap{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(string(data))
}

// Parse decodes a TOML catalog made of [[category]] tables.
func Parse(data string) (domain.CategoryMap, error) {
	var m domain.CategoryMap
	if _, err := toml.Decode(data, &m); err != nil {
		return domain.CategoryMap{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	seen := make(map[string]bool, len(m.Categories))
	for _, c := range m.Categories {
		if c.Name == "" {
			return domain.CategoryMap{}, fmt.Errorf("%w: category without a name", ErrInvalidCatalog)
		}
		if seen[c.Name] {
			return domain.CategoryMap{}, fmt.Errorf("%w: category %q listed twice", ErrInvalidCatalog, c.Name)
		}
		seen[c.Name] = true
	}
	return m, nil
}

// Merge appends the user's custom exercises to a copy of builtin.
// A custom exercise whose category is unknown creates that category after the existing
// ones, in the order first seen. Names already present in the category are skipped, so
// merging the same list twice gives the same result as merging it once.
// builtin itself is never modified.
func Merge(builtin domain.CategoryMap, custom []domain.CustomExercise) domain.CategoryMap {
	merged := builtin.Clone()

	index := make(map[string]int, len(merged.Categories))
	for i, c := range merged.Categories {
		index[c.Name] = i
	}

	for _, ex := range custom {
		i, ok := index[ex.ExerciseCategory]
		if !ok {
			merged.Categories = append(merged.Categories, domain.Category{Name: ex.ExerciseCategory})
			i = len(merged.Categories) - 1
			index[ex.ExerciseCategory] = i
		}
		if contains(merged.Categories[i].Exercises, ex.ExerciseName) {
			continue
		}
		merged.Categories[i].Exercises = append(merged.Categories[i].Exercises, ex.ExerciseName)
	}
	return merged
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
