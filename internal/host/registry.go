package host

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/garyjia/lodging-sap/internal/domain/entity"
)

// Field is a logical screen field, independent of its element path
type Field string

// Registry maps logical fields to ordered candidate element paths.
// Screen layouts drift between host releases; only this table changes when they do.
type Registry struct {
	locators map[Field][]string
}

// NewRegistry creates a registry holding the built-in locators
func NewRegistry() *Registry {
	r := &Registry{locators: make(map[Field][]string, len(defaultLocators))}
	for f, paths := range defaultLocators {
		r.locators[f] = append([]string(nil), paths...)
	}
	return r
}

// Candidates returns the paths tried for a field, in order
func (r *Registry) Candidates(f Field) []string {
	return append([]string(nil), r.locators[f]...)
}

// Set replaces the candidate paths of a field
func (r *Registry) Set(f Field, paths ...string) {
	r.locators[f] = append([]string(nil), paths...)
}

// Fields lists every known field, sorted
func (r *Registry) Fields() []Field {
	fields := make([]Field, 0, len(r.locators))
	for f := range r.locators {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

type overrideFile struct {
	Locators map[string][]string `yaml:"locators"`
}

// LoadOverrides reads a YAML file of the form
//
//	locators:
//	  order.superfield:
//	    - wnd[0]/usr/...
//
// and replaces the listed fields. Unlisted fields keep their defaults.
func (r *Registry) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read locator overrides: %w", err)
	}

	var file overrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse locator overrides: %w", err)
	}

	for name, paths := range file.Locators {
		if len(paths) == 0 {
			return fmt.Errorf("locator override %q has no paths", name)
		}
		r.Set(Field(name), paths...)
	}
	return nil
}

// Resolve returns the first element found among the field's candidates.
// Lookup errors other than ErrNotFound stop the search.
func (r *Registry) Resolve(ctx context.Context, s Session, f Field) (Element, error) {
	candidates := r.locators[f]
	for _, path := range candidates {
		el, err := s.FindByID(ctx, path)
		if err == nil {
			return el, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("resolve %s via %s: %w", f, path, err)
		}
	}
	return nil, &entity.ElementNotFoundError{Field: string(f), Tried: append([]string(nil), candidates...)}
}
