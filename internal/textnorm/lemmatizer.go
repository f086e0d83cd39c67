package textnorm

import "strings"

// detachment is a noun suffix rewrite: strip suffix, append replacement.
type detachment struct {
	suffix, replacement string
}

// nounRules are tried in order; every rule whose output is a known lemma is a candidate.
var nounRules = []detachment{
	{"s", ""},
	{"ses", "s"},
	{"ves", "f"},
	{"xes", "x"},
	{"zes", "z"},
	{"ches", "ch"},
	{"shes", "sh"},
	{"men", "man"},
	{"ies", "y"},
}

// Dictionary maps an inflected word to a base form and returns unknown
// words unchanged. *golem.Lemmatizer satisfies it.
type Dictionary interface {
	Lemma(word string) string
}

// Lemmatizer reduces nouns to their dictionary form. The curated apparel
// lemmas and noun rules are consulted first, then the general dictionary.
// Unknown words are returned unchanged.
type Lemmatizer struct {
	lemmas     map[string]struct{}
	exceptions map[string]string
	dict       Dictionary
}

// NewLemmatizer builds a lemmatizer from a lemma dictionary and irregular forms.
func NewLemmatizer(lemmas []string, exceptions map[string]string) *Lemmatizer {
	l := &Lemmatizer{
		lemmas:     make(map[string]struct{}, len(lemmas)),
		exceptions: make(map[string]string, len(exceptions)),
	}
	for _, w := range lemmas {
		l.lemmas[strings.ToLower(w)] = struct{}{}
	}
	for form, lemma := range exceptions {
		l.exceptions[strings.ToLower(form)] = strings.ToLower(lemma)
	}
	return l
}

// WithDictionary sets the fallback for words the curated tables do not know.
func (l *Lemmatizer) WithDictionary(d Dictionary) *Lemmatizer {
	l.dict = d
	return l
}

// Lemmatize returns the shortest dictionary form reachable from word.
// Hyphenated compounds are lemmatized on their final segment.
func (l *Lemmatizer) Lemmatize(word string) string {
	if lemma, ok := l.base(word); ok {
		return lemma
	}
	if i := strings.LastIndexByte(word, '-'); i > 0 && i < len(word)-1 {
		if tail, ok := l.base(word[i+1:]); ok {
			return word[:i+1] + tail
		}
	}
	return word
}

func (l *Lemmatizer) base(word string) (string, bool) {
	if lemma, ok := l.lookup(word); ok {
		return lemma, true
	}
	return l.singular(word)
}

// singular asks the dictionary about plural-shaped words only, so verb and
// adjective forms ("wearing", "made") keep their surface form as nouns do.
func (l *Lemmatizer) singular(word string) (string, bool) {
	if l.dict == nil || len(word) <= 3 || !strings.HasSuffix(word, "s") || strings.HasSuffix(word, "ss") {
		return "", false
	}
	lemma := strings.ToLower(l.dict.Lemma(word))
	if lemma == "" || lemma == word || len(lemma) >= len(word) {
		return "", false
	}
	return lemma, true
}

func (l *Lemmatizer) lookup(word string) (string, bool) {
	if lemma, ok := l.exceptions[word]; ok {
		return lemma, true
	}

	best := ""
	if _, ok := l.lemmas[word]; ok {
		best = word
	}
	for _, r := range nounRules {
		if !strings.HasSuffix(word, r.suffix) || len(word) <= len(r.suffix) {
			continue
		}
		candidate := word[:len(word)-len(r.suffix)] + r.replacement
		if _, ok := l.lemmas[candidate]; !ok {
			continue
		}
		if best == "" || len(candidate) < len(best) {
			best = candidate
		}
	}
	return best, best != ""
}
