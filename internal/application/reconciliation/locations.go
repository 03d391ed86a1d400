package reconciliation

import (
	"fmt"
	"strings"

	"github.com/retailstock/backend/internal/domain/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LocationDirectory is the fixed set of stores the dashboard reconciles
type LocationDirectory struct {
	codes []string
	known map[string]struct{}
}

// NewLocationDirectory normalizes codes to lower case, keeping their order
func NewLocationDirectory(codes []string) *LocationDirectory {
	d := &LocationDirectory{known: make(map[string]struct{}, len(codes))}
	for _, c := range codes {
		c = normalizeLocation(c)
		if c == "" {
			continue
		}
		if _, dup := d.known[c]; dup {
			continue
		}
		d.known[c] = struct{}{}
		d.codes = append(d.codes, c)
	}
	return d
}

// Resolve returns the normalized code, or ErrUnknownLocation
func (d *LocationDirectory) Resolve(code string) (string, error) {
	c := normalizeLocation(code)
	if _, ok := d.known[c]; !ok {
		return "", fmt.Errorf("location %q: %w", code, shared.ErrUnknownLocation)
	}
	return c, nil
}

// List returns every location with its display name
func (d *LocationDirectory) List() []LocationDTO {
	out := make([]LocationDTO, 0, len(d.codes))
	for _, c := range d.codes {
		out = append(out, LocationDTO{Code: c, Name: DisplayName(c)})
	}
	return out
}

// DisplayName title-cases a location code, treating '-' and '_' as spaces
func DisplayName(code string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(code)
	return cases.Title(language.English).String(words)
}

func normalizeLocation(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
