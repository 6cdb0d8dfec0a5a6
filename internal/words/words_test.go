package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"  Planet ", "planet", true},
		{"a", "a", false},
		{"don't", "don't", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := normalize(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("normalize(%q) = %q, %v", c.in, got, ok)
		}
	}
}

func TestEmbeddedLists(t *testing.T) {
	ws, err := embeddedAnagram()
	if err != nil {
		t.Fatal(err)
	}
	lengths := map[int]int{}
	for _, w := range ws {
		lengths[len(w)]++
	}
	for _, n := range []int{4, 5, 6} {
		if lengths[n] == 0 {
			t.Errorf("no %d-letter anagram words", n)
		}
	}

	cs, err := embeddedColors()
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) < 2 {
		t.Fatalf("only %d color words", len(cs))
	}
	for _, c := range cs {
		if c.Color != strings.ToLower(c.Color) {
			t.Errorf("color %q not lowercased", c.Color)
		}
	}
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	wp := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(wp, []byte("Stone\nnotes\n\n12ab\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ws, err := readWordFile(wp)
	if err != nil {
		t.Fatal(err)
	}
	if len(ws) != 2 || ws[0] != "stone" {
		t.Errorf("got %v", ws)
	}

	cp := filepath.Join(dir, "colors.json")
	doc := `{"words":[{"text":"Red","color":"#FF0000"},{"text":"","color":"#000"}]}`
	if err := os.WriteFile(cp, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cs, err := readColorFile(cp)
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 1 || cs[0] != (Colored{Text: "Red", Color: "#ff0000"}) {
		t.Errorf("got %+v", cs)
	}
}
