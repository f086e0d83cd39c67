// Package intent detects structured shopping attributes (colors, categories)
// in free text by whole-word lexicon matching.
package intent

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Term is a canonical lexicon entry and the surface forms that map to it.
type Term struct {
	Canonical string   `yaml:"canonical"`
	Synonyms  []string `yaml:"synonyms"`
}

// Match is one lexicon hit: the lowercased text found and its canonical term.
type Match struct {
	Text      string
	Canonical string
}

// Lexicon matches its surface forms case-insensitively on word boundaries.
type Lexicon struct {
	pattern *regexp.Regexp
	canon   map[string]string
}

// NewLexicon compiles terms into a single alternation.
// Longer forms are tried first so "t-shirt" wins over "shirt".
func NewLexicon(terms []Term) (*Lexicon, error) {
	l := &Lexicon{canon: make(map[string]string)}

	var forms []string
	for _, t := range terms {
		canonical := strings.ToLower(strings.TrimSpace(t.Canonical))
		if canonical == "" {
			return nil, fmt.Errorf("lexicon term has empty canonical form")
		}
		for _, f := range append([]string{canonical}, t.Synonyms...) {
			f = strings.ToLower(strings.TrimSpace(f))
			if f == "" {
				continue
			}
			if prev, ok := l.canon[f]; ok && prev != canonical {
				return nil, fmt.Errorf("lexicon form %q maps to both %q and %q", f, prev, canonical)
			}
			if _, ok := l.canon[f]; !ok {
				forms = append(forms, f)
			}
			l.canon[f] = canonical
		}
	}
	if len(forms) == 0 {
		return l, nil
	}

	sort.SliceStable(forms, func(i, j int) bool { return len(forms[i]) > len(forms[j]) })
	quoted := make([]string, len(forms))
	for i, f := range forms {
		quoted[i] = regexp.QuoteMeta(f)
	}

	re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("compile lexicon: %w", err)
	}
	l.pattern = re
	return l, nil
}

// Find returns every match in order of occurrence, duplicates preserved.
func (l *Lexicon) Find(text string) []Match {
	if l.pattern == nil || text == "" {
		return nil
	}
	hits := l.pattern.FindAllString(text, -1)
	if len(hits) == 0 {
		return nil
	}
	out := make([]Match, len(hits))
	for i, h := range hits {
		h = strings.ToLower(h)
		out[i] = Match{Text: h, Canonical: l.canon[h]}
	}
	return out
}

// Size returns the number of distinct surface forms.
func (l *Lexicon) Size() int { return len(l.canon) }
