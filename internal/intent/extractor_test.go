package intent

import (
	"reflect"
	"testing"
)

func texts(ms []Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Text
	}
	return out
}

func TestExtract_Defaults(t *testing.T) {
	e := Default()

	tests := []struct {
		query      string
		colors     []string
		categories []string
	}{
		{"red hoodie", []string{"red"}, []string{"hoodie"}},
		{"Black T-Shirt and a BLACK jacket", []string{"black", "black"}, []string{"t-shirt", "jacket"}},
		{"grey tee", []string{"grey"}, []string{"tee"}},
		{"something comfortable", []string{}, []string{}},
		{"reddish hoodies", []string{}, []string{}},
		{"shirt, dress; skirt!", []string{}, []string{"shirt", "dress", "skirt"}},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			got := e.Extract(tc.query)
			if c := texts(got.Colors); !reflect.DeepEqual(c, tc.colors) {
				t.Errorf("colors = %v, want %v", c, tc.colors)
			}
			if k := texts(got.Categories); !reflect.DeepEqual(k, tc.categories) {
				t.Errorf("categories = %v, want %v", k, tc.categories)
			}
		})
	}
}

func TestExtract_Canonical(t *testing.T) {
	got := Default().Extract("Grey TEE")
	if got.Colors[0].Canonical != "gray" {
		t.Errorf("canonical color = %q", got.Colors[0].Canonical)
	}
	if got.Categories[0].Canonical != "t-shirt" {
		t.Errorf("canonical category = %q", got.Categories[0].Canonical)
	}
}

func TestIntent_Matches(t *testing.T) {
	in := Default().Extract("grey tee")

	if !in.MatchesColors([]string{"White", "Gray"}) {
		t.Error("grey should match Gray via canonical form")
	}
	if in.MatchesColors([]string{"Blue"}) {
		t.Error("grey should not match Blue")
	}
	if !in.MatchesCategoryText("t-shirts basics") {
		t.Error("tee should match t-shirts via canonical form")
	}
	if in.MatchesCategoryText("hoodies casual") {
		t.Error("tee should not match hoodies")
	}

	hoodie := Default().Extract("hoodie")
	if !hoodie.MatchesCategoryText("hoodies casual") {
		t.Error("hoodie should occur in hoodies")
	}
	if hoodie.HasColors() || !hoodie.HasCategories() {
		t.Errorf("unexpected detection flags: %+v", hoodie)
	}
}

func TestNewExtractor_Custom(t *testing.T) {
	e, err := NewExtractor(
		[]Term{{Canonical: "navy", Synonyms: []string{"dark blue"}}},
		[]Term{{Canonical: "sneakers", Synonyms: []string{"trainers", "kicks"}}},
	)
	if err != nil {
		t.Fatal(err)
	}
	got := e.Extract("dark blue kicks or navy trainers")
	if c := texts(got.Colors); !reflect.DeepEqual(c, []string{"dark blue", "navy"}) {
		t.Errorf("colors = %v", c)
	}
	if k := texts(got.Categories); !reflect.DeepEqual(k, []string{"kicks", "trainers"}) {
		t.Errorf("categories = %v", k)
	}
	if got.Categories[0].Canonical != "sneakers" {
		t.Errorf("canonical = %q", got.Categories[0].Canonical)
	}
}

func TestNewLexicon_Errors(t *testing.T) {
	if _, err := NewLexicon([]Term{{Canonical: " "}}); err == nil {
		t.Error("expected error for empty canonical")
	}
	_, err := NewLexicon([]Term{
		{Canonical: "gray", Synonyms: []string{"ash"}},
		{Canonical: "silver", Synonyms: []string{"ash"}},
	})
	if err == nil {
		t.Error("expected error for ambiguous synonym")
	}
}

func TestLexicon_Empty(t *testing.T) {
	l, err := NewLexicon(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := l.Find("red"); got != nil {
		t.Errorf("Find() = %v", got)
	}
}
