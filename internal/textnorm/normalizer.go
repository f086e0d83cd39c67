// Package textnorm turns free text into the normalized token stream
// consumed by the catalog index: lowercase, tokenized, stopword-free, lemmatized.
package textnorm

import (
	"bufio"
	"bytes"
	_ "embed"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	//go:embed data/stopwords.txt
	stopwordsData []byte
	//go:embed data/lemmas.txt
	lemmasData []byte
	//go:embed data/exceptions.txt
	exceptionsData []byte

	// Words with inner apostrophes or hyphens stay whole ("don't", "t-shirt").
	tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['-][\p{L}\p{N}]+)*`)
)

// Normalizer is safe for concurrent use; it holds only read-only tables.
type Normalizer struct {
	stopwords map[string]struct{}
	lemmas    *Lemmatizer
}

// englishDictionary loads the golem English lemma table once per process.
var englishDictionary = sync.OnceValues(func() (*golem.Lemmatizer, error) {
	return golem.New(en.New())
})

// New returns a normalizer backed by the embedded English stopword list,
// the curated apparel lemmas and the golem English dictionary.
func New() *Normalizer {
	dict, err := englishDictionary()
	if err != nil {
		panic(err) // the dictionary is compiled into the binary
	}
	lemmas := NewLemmatizer(readLines(lemmasData), readPairs(exceptionsData)).WithDictionary(dict)
	return NewWith(readLines(stopwordsData), lemmas)
}

// NewWith builds a normalizer from explicit tables.
func NewWith(stopwords []string, lemmas *Lemmatizer) *Normalizer {
	n := &Normalizer{
		stopwords: make(map[string]struct{}, len(stopwords)),
		lemmas:    lemmas,
	}
	for _, w := range stopwords {
		n.stopwords[strings.ToLower(w)] = struct{}{}
	}
	return n
}

// Normalize returns the normalized tokens of text joined by single spaces.
// Empty input yields "".
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

// Tokens lowercases and tokenizes text, drops stopwords and lemmatizes what remains.
func (n *Normalizer) Tokens(text string) []string {
	if text == "" {
		return nil
	}

	raw := tokenPattern.FindAllString(fold(text), -1)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if _, stop := n.stopwords[tok]; stop {
			continue
		}
		if n.lemmas != nil {
			tok = n.lemmas.Lemmatize(tok)
		}
		out = append(out, tok)
	}
	return out
}

// fold lowercases text and strips combining marks ("Café" -> "cafe").
// Transformers are stateful, so a fresh chain is built per call.
func fold(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, text)
	if err != nil {
		s = text
	}
	s = strings.ReplaceAll(s, "’", "'")
	return cases.Lower(language.Und).String(s)
}

// readLines returns non-empty, non-comment lines.
func readLines(data []byte) []string {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// readPairs parses "form lemma" lines.
func readPairs(data []byte) map[string]string {
	out := make(map[string]string)
	for _, line := range readLines(data) {
		fields := strings.Fields(line)
		if len(fields) == 2 {
			out[fields[0]] = fields[1]
		}
	}
	return out
}
