package atom

import (
	"strings"

	"github.com/meridian-os/sdkforge/errors"
)

// Category is an atom's publication level. Levels are ordered from least to
// most widely published:
//
//	internal < cts < partner < public
//
// An atom may only depend on atoms published at least as widely as itself.
type Category string

const (
	CategoryInternal Category = "internal"
	CategoryCTS      Category = "cts"
	CategoryPartner  Category = "partner"
	CategoryPublic   Category = "public"
)

// categoryOrder defines the publication ordering. Index position is the
// level; higher means more widely published.
var categoryOrder = []Category{
	CategoryInternal,
	CategoryCTS,
	CategoryPartner,
	CategoryPublic,
}

// Categories returns all known categories in publication order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// ParseCategory parses a category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate checks that the category is one of the known levels.
func (c Category) Validate() error {
	for _, known := range categoryOrder {
		if c == known {
			return nil
		}
	}
	return errors.NewMalformedManifestError("unknown category %q, expected one of internal, cts, partner, public", string(c))
}

// Index returns the category's position in the publication ordering, or -1
// for an unknown category.
func (c Category) Index() int {
	for i, known := range categoryOrder {
		if c == known {
			return i
		}
	}
	return -1
}

// AtLeast reports whether c is published at least as widely as min.
func (c Category) AtLeast(min Category) bool {
	return c.Index() >= min.Index()
}

func (c Category) String() string {
	return string(c)
}
