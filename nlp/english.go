package nlp

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"
)

//go:embed words.txt
var embeddedWords []byte

// English is the default Model: Zipf costs from a frequency ordered word
// list, Snowball stems as lemmas and a verb synonym table for similarity.
type English struct {
	costs   map[string]float64
	maxWord int
	groups  map[string]string
}

// NewEnglish builds the model from the embedded word list.
func NewEnglish() (*English, error) {
	return readEnglish(bytes.NewReader(embeddedWords))
}

// LoadEnglish builds the model from a whitespace separated word list file,
// most frequent word first.
func LoadEnglish(path string) (*English, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	defer f.Close()
	return readEnglish(f)
}

func readEnglish(r io.Reader) (*English, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		words = append(words, strings.ToLower(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read word list: %v", ErrModelUnavailable, err)
	}
	return FromWords(words)
}

// FromWords builds the model from words ordered by descending frequency.
// The cost of the word at rank i is log((i+1) * log(n)).
func FromWords(words []string) (*English, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: empty word list", ErrModelUnavailable)
	}

	scale := math.Log(float64(len(words)))
	if scale <= 0 {
		scale = 1
	}

	m := &English{
		costs:  make(map[string]float64, len(words)),
		groups: make(map[string]string),
	}
	for i, w := range words {
		if _, seen := m.costs[w]; seen {
			continue
		}
		m.costs[w] = math.Log(float64(i+1) * scale)
		if n := utf8.RuneCountInString(w); n > m.maxWord {
			m.maxWord = n
		}
	}
	for verb, synonyms := range verbSynonyms {
		m.groups[m.Lemmatize(verb)] = verb
		for _, s := range synonyms {
			m.groups[m.Lemmatize(s)] = verb
		}
	}
	return m, nil
}

// Lemmatize implements Model.
func (m *English) Lemmatize(word string) string {
	if word == "id" {
		return word
	}
	return english.Stem(word, false)
}

// WordCost implements Model.
func (m *English) WordCost(word string) (float64, bool) {
	c, ok := m.costs[word]
	return c, ok
}

// MaxWordLen implements Model.
func (m *English) MaxWordLen() int {
	return m.maxWord
}
