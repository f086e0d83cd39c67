// Package index builds an immutable TF-IDF matrix over the product catalog
// and scores free text against it.
package index

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"unicode/utf8"

	"github.com/kailas-cloud/shopsense/internal/domain"
	"github.com/kailas-cloud/shopsense/internal/domain/product"
)

// Analyzer terms are runs of at least two word characters.
var termPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Normalizer prepares raw text before term extraction.
type Normalizer interface {
	Normalize(text string) string
}

// Index is read-only after Build and safe for concurrent use.
type Index struct {
	norm  Normalizer
	vocab map[string]int
	idf   []float64
	rows  []Vector
	ids   []string
}

// Document is one row of the index.
type Document struct {
	ID   string
	Text string
}

// FromCatalog indexes every product's searchable text in catalog order.
func FromCatalog(cat *product.Catalog, norm Normalizer) (*Index, error) {
	docs := make([]Document, 0, cat.Len())
	for _, p := range cat.All() {
		docs = append(docs, Document{ID: p.ID(), Text: p.SearchableText()})
	}
	return Build(docs, norm)
}

// Build fits the vocabulary and IDF weights over docs and stores one
// L2-normalized row per document. Row order follows docs.
func Build(docs []Document, norm Normalizer) (*Index, error) {
	if len(docs) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	ix := &Index{
		norm: norm,
		ids:  make([]string, len(docs)),
		rows: make([]Vector, len(docs)),
	}

	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, d := range docs {
		if d.ID == "" {
			return nil, fmt.Errorf("document %d: %w", i, domain.ErrInvalidProduct)
		}
		ix.ids[i] = d.ID
		counts[i] = termCounts(ix.normalize(d.Text))
		for term := range counts[i] {
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	ix.vocab = make(map[string]int, len(terms))
	ix.idf = make([]float64, len(terms))
	for col, term := range terms {
		ix.vocab[term] = col
		ix.idf[col] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	for i, tc := range counts {
		ix.rows[i] = ix.weigh(tc)
	}
	return ix, nil
}

// Vectorize normalizes text and projects it onto the fitted vocabulary.
// Out-of-vocabulary terms contribute nothing.
func (ix *Index) Vectorize(text string) Vector {
	return ix.weigh(termCounts(ix.normalize(text)))
}

// Score returns the cosine similarity of v against every row, in row order.
func (ix *Index) Score(v Vector) []float64 {
	scores := make([]float64, len(ix.rows))
	if v.IsZero() {
		return scores
	}
	for i, row := range ix.rows {
		scores[i] = Cosine(v, row)
	}
	return scores
}

// ScoreText is Score(Vectorize(text)).
func (ix *Index) ScoreText(text string) []float64 {
	return ix.Score(ix.Vectorize(text))
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int { return len(ix.ids) }

// VocabularySize returns the number of distinct terms.
func (ix *Index) VocabularySize() int { return len(ix.vocab) }

// ID returns the document id at row pos.
func (ix *Index) ID(pos int) string { return ix.ids[pos] }

// IDF returns the inverse document frequency of term, if it is in the vocabulary.
func (ix *Index) IDF(term string) (float64, bool) {
	col, ok := ix.vocab[term]
	if !ok {
		return 0, false
	}
	return ix.idf[col], true
}

func (ix *Index) normalize(text string) string {
	if ix.norm == nil {
		return text
	}
	return ix.norm.Normalize(text)
}

func (ix *Index) weigh(tc map[string]int) Vector {
	v := make(Vector, len(tc))
	for term, c := range tc {
		col, ok := ix.vocab[term]
		if !ok {
			continue
		}
		v[col] = float64(c) * ix.idf[col]
	}
	return v.normalize()
}

func termCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range termPattern.FindAllString(text, -1) {
		if utf8.RuneCountInString(tok) < 2 {
			continue
		}
		counts[tok]++
	}
	return counts
}
