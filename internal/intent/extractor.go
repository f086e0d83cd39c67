package intent

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultColors is the built-in color lexicon.
func DefaultColors() []Term {
	return []Term{
		{Canonical: "red"},
		{Canonical: "blue"},
		{Canonical: "green"},
		{Canonical: "black"},
		{Canonical: "white"},
		{Canonical: "yellow"},
		{Canonical: "purple"},
		{Canonical: "pink"},
		{Canonical: "orange"},
		{Canonical: "brown"},
		{Canonical: "gray", Synonyms: []string{"grey"}},
	}
}

// DefaultCategories is the built-in category lexicon.
func DefaultCategories() []Term {
	return []Term{
		{Canonical: "shirt"},
		{Canonical: "t-shirt", Synonyms: []string{"tee"}},
		{Canonical: "pants"},
		{Canonical: "jeans"},
		{Canonical: "dress"},
		{Canonical: "skirt"},
		{Canonical: "jacket"},
		{Canonical: "hoodie"},
		{Canonical: "sweater"},
		{Canonical: "accessories"},
	}
}

// Intent is the set of attributes detected in one query.
type Intent struct {
	Colors     []Match
	Categories []Match
}

// HasColors reports whether any color was detected.
func (i Intent) HasColors() bool { return len(i.Colors) > 0 }

// HasCategories reports whether any category was detected.
func (i Intent) HasCategories() bool { return len(i.Categories) > 0 }

// MatchesColors reports whether any detected color is among colors.
// Both the surface form and its canonical term are compared.
func (i Intent) MatchesColors(colors []string) bool {
	for _, c := range colors {
		c = strings.ToLower(c)
		for _, m := range i.Colors {
			if c == m.Text || c == m.Canonical {
				return true
			}
		}
	}
	return false
}

// MatchesCategoryText reports whether any detected category occurs in text.
// text is expected lowercase.
func (i Intent) MatchesCategoryText(text string) bool {
	return slices.ContainsFunc(i.Categories, func(m Match) bool {
		return strings.Contains(text, m.Text) || strings.Contains(text, m.Canonical)
	})
}

// Extractor pairs the color and category lexicons.
type Extractor struct {
	colors     *Lexicon
	categories *Lexicon
}

// NewExtractor compiles both lexicons. A nil term list selects the default.
func NewExtractor(colors, categories []Term) (*Extractor, error) {
	if colors == nil {
		colors = DefaultColors()
	}
	if categories == nil {
		categories = DefaultCategories()
	}

	c, err := NewLexicon(colors)
	if err != nil {
		return nil, fmt.Errorf("colors: %w", err)
	}
	k, err := NewLexicon(categories)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return &Extractor{colors: c, categories: k}, nil
}

// Default returns an extractor over the built-in lexicons.
func Default() *Extractor {
	e, err := NewExtractor(nil, nil)
	if err != nil {
		panic(err) // built-in lexicons always compile
	}
	return e
}

// Extract runs both lexicons over text.
func (e *Extractor) Extract(text string) Intent {
	return Intent{
		Colors:     e.colors.Find(text),
		Categories: e.categories.Find(text),
	}
}
