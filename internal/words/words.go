// apps/go-server/internal/words/words.go
//
// Word lists for the word-based games.
//
// Responsibilities:
//   - Load the anagram dictionary and the colors word/color table.
//   - Let deployments swap either list for a file on disk.
//   - Fall back to the lists embedded under assets/games/.
//
// Initialization behavior (Init):
//   1. ANAGRAM_WORDS_FILE, when set, is read one word per line.
//      Otherwise assets/games/anagram/words.json is used.
//   2. COLORS_WORDS_FILE, when set, is read as JSON of the same shape as
//      assets/games/colors/words.json.
//
// Constraints:
//   • Anagram words are lowercase a–z only, at least 2 letters.
//   • Color words need both text and color; colors are lowercased.
//   • Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/minigames/apps/go-server/assets"
)

// Colored is a color name paired with the color it means.
type Colored struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

var (
	initOnce   sync.Once
	anagram    []string
	colored    []Colored
	initialErr error
)

var (
	ErrNoAnagramWords = errors.New("words: anagram list is empty")
	ErrNoColorWords   = errors.New("words: colors list is empty")
)

// Init loads both lists exactly once.
func Init() error {
	initOnce.Do(func() {
		var err error
		if p := os.Getenv("ANAGRAM_WORDS_FILE"); p != "" {
			anagram, err = readWordFile(p)
		} else {
			anagram, err = embeddedAnagram()
		}
		if err != nil {
			initialErr = fmt.Errorf("anagram words: %w", err)
			return
		}
		if len(anagram) == 0 {
			initialErr = ErrNoAnagramWords
			return
		}

		if p := os.Getenv("COLORS_WORDS_FILE"); p != "" {
			colored, err = readColorFile(p)
		} else {
			colored, err = embeddedColors()
		}
		if err != nil {
			initialErr = fmt.Errorf("color words: %w", err)
			return
		}
		if len(colored) == 0 {
			initialErr = ErrNoColorWords
		}
	})
	return initialErr
}

// Anagram returns the anagram dictionary. Call Init first.
func Anagram() []string { return anagram }

// Colors returns the colors table. Call Init first.
func Colors() []Colored { return colored }

// Stats returns counts of loaded entries: (anagram words, color words).
func Stats() (anagramCount, colorCount int) {
	return len(anagram), len(colored)
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w, ok := normalize(sc.Text()); ok {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

func embeddedAnagram() ([]string, error) {
	f, err := assets.Open("anagram", "words.json")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var doc struct {
		Words []string `json:"words"`
	}
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, err
	}
	var out []string
	for _, w := range doc.Words {
		if w, ok := normalize(w); ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func readColorFile(path string) ([]Colored, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeColors(f)
}

func embeddedColors() ([]Colored, error) {
	f, err := assets.Open("colors", "words.json")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeColors(f)
}

func decodeColors(r io.Reader) ([]Colored, error) {
	var doc struct {
		Words []Colored `json:"words"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	out := make([]Colored, 0, len(doc.Words))
	for _, c := range doc.Words {
		c.Text = strings.TrimSpace(c.Text)
		c.Color = strings.ToLower(strings.TrimSpace(c.Color))
		if c.Text == "" || c.Color == "" {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// normalize lowercases and trims s, keeping only alphabetic words.
func normalize(s string) (string, bool) {
	w := strings.TrimSpace(strings.ToLower(s))
	return w, len(w) >= 2 && isAlpha(w)
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
