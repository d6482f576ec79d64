package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Heading is a markdown heading found in the document
type Heading struct {
	Line  int
	Level int
	Title string
	Slug  string
}

// Document is the text shown in the scroll surface
type Document struct {
	Name     string
	Lines    []string
	Width    int
	Headings []Heading
}

// ReadDocument reads r into a document. Tabs are expanded so column math
// stays in cells.
func ReadDocument(name string, r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return NewDocument(name, string(data)), nil
}

// NewDocument splits text into lines and indexes its headings
func NewDocument(name, text string) *Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")

	doc := &Document{Name: name}
	if text == "" {
		return doc
	}

	seen := make(map[string]int)
	for i, line := range strings.Split(text, "\n") {
		line = strings.ReplaceAll(line, "\t", "    ")
		doc.Lines = append(doc.Lines, line)
		if w := runewidth.StringWidth(line); w > doc.Width {
			doc.Width = w
		}

		level, title := parseHeading(line)
		if level == 0 {
			continue
		}
		slug := Slugify(title)
		if n := seen[slug]; n > 0 {
			seen[slug] = n + 1
			slug = fmt.Sprintf("%s-%d", slug, n)
		} else {
			seen[slug] = 1
		}
		doc.Headings = append(doc.Headings, Heading{Line: i, Level: level, Title: title, Slug: slug})
	}
	return doc
}

func parseHeading(line string) (int, string) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level >= len(line) || line[level] != ' ' {
		return 0, ""
	}
	return level, strings.TrimSpace(line[level:])
}

// Slugify turns a heading title into its anchor the way markdown renderers do
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('-')
		}
	}
	return b.String()
}

// HeadingAfter returns the first heading below line
func (d *Document) HeadingAfter(line int) (Heading, bool) {
	for _, h := range d.Headings {
		if h.Line > line {
			return h, true
		}
	}
	return Heading{}, false
}

// HeadingBefore returns the last heading above line
func (d *Document) HeadingBefore(line int) (Heading, bool) {
	for i := len(d.Headings) - 1; i >= 0; i-- {
		if d.Headings[i].Line < line {
			return d.Headings[i], true
		}
	}
	return Heading{}, false
}
