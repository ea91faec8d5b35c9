package service

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/ccojocar/zxcvbn-go/frequency"
)

// Dictionary is an immutable lowercase word list. It is safe for concurrent
// use once built.
type Dictionary struct {
	words map[string]struct{}
	byLen map[int][]string
}

func NewDictionary(lists ...[]string) *Dictionary {
	d := &Dictionary{
		words: make(map[string]struct{}),
		byLen: make(map[int][]string),
	}
	for _, list := range lists {
		for _, w := range list {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			if _, ok := d.words[w]; ok {
				continue
			}
			d.words[w] = struct{}{}
			n := len(w)
			d.byLen[n] = append(d.byLen[n], w)
		}
	}
	return d
}

// EnglishDictionary combines the English and common-password frequency lists
// bundled with zxcvbn, plus any extra lists.
func EnglishDictionary(extra ...[]string) *Dictionary {
	lists := [][]string{
		frequency.Lists["English"].List,
		frequency.Lists["Passwords"].List,
	}
	return NewDictionary(append(lists, extra...)...)
}

// LoadWordFile reads one word per line. Blank lines and lines starting with
// '#' are skipped.
func LoadWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return words, nil
}

func (d *Dictionary) Len() int {
	return len(d.words)
}

func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[word]
	return ok
}

// Check is exact membership, also accepting the capitalized form of a
// listed word ("Dragon" for "dragon").
func (d *Dictionary) Check(word string) bool {
	if word == "" {
		return false
	}
	if d.Contains(word) {
		return true
	}
	lower := strings.ToLower(word)
	return word == capitalize(lower) && d.Contains(lower)
}

// Suggest returns the listed words within edit distance 1 of word.
func (d *Dictionary) Suggest(word string) []string {
	if word == "" {
		return nil
	}
	var out []string
	n := len(word)
	for l := n - 1; l <= n+1; l++ {
		for _, candidate := range d.byLen[l] {
			if levenshtein.ComputeDistance(word, candidate) <= 1 {
				out = append(out, candidate)
			}
		}
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
