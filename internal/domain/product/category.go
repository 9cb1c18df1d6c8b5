package product

import "strings"

type Category string

const (
	CategoryFood        Category = "food"
	CategoryClothing    Category = "clothing"
	CategoryElectronics Category = "electronics"
)

// Categories is the canonical category set, in the order metrics rows are
// reported.
var Categories = []Category{CategoryFood, CategoryClothing, CategoryElectronics}

// legacySynonyms folds category spellings that appear in older data into
// their canonical value. Kept as a table so the rule lives in one place.
var legacySynonyms = map[string]Category{
	"clothes": CategoryClothing,
}

// NormalizeCategory lowercases v and folds legacy synonyms. The result is
// not guaranteed to be canonical; use ParseCategory when membership matters.
func NormalizeCategory(v string) Category {
	lower := strings.ToLower(strings.TrimSpace(v))
	if c, ok := legacySynonyms[lower]; ok {
		return c
	}
	return Category(lower)
}

// CategoryAliases lists every accepted spelling of c, canonical first.
// Storage layers that filter on the raw column value use this to keep
// matching rows stored under a legacy spelling.
func CategoryAliases(c Category) []string {
	aliases := []string{string(c)}
	for legacy, canonical := range legacySynonyms {
		if canonical == c {
			aliases = append(aliases, legacy)
		}
	}
	return aliases
}

// ParseCategory returns the canonical category for v, folding legacy
// synonyms, or ErrInvalidCategory when v is not a known category.
func ParseCategory(v string) (Category, error) {
	c := NormalizeCategory(v)
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}
