// Package description prepares free-text description fields for matching.
package description

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/c360studio/semtag/tag"
)

// PlainText drops HTML markup and decodes entities. Text without markup is
// returned unchanged.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			// block and inline elements both separate words
			b.WriteByte(' ')
		}
	}
}

// Sentences returns the sentences of a description with annotations and
// markup removed.
func Sentences(desc string) []string {
	text := PlainText(tag.Strip(desc))
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var sentences []string
	for _, line := range strings.Split(text, "\n") {
		sentences = append(sentences, splitSentences(line)...)
	}
	return sentences
}

// splitSentences splits on sentence-ending punctuation followed by a space
// or the end of the text.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])
		if runes[i] != '.' && runes[i] != '?' && runes[i] != '!' {
			continue
		}
		if i == len(runes)-1 || runes[i+1] == ' ' || runes[i+1] == '\t' {
			flush()
		}
	}
	flush()

	return sentences
}
