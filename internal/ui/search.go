package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Search holds the matches of a case-insensitive text query over a document
type Search struct {
	query   string
	matches []int // line indices, ascending
	current int
}

// Start runs query against doc. The current match becomes the first one at or
// after line from, wrapping to the first match of the document.
func (s *Search) Start(doc *Document, query string, from int) (int, bool) {
	s.Clear()
	if query == "" {
		return 0, false
	}
	s.query = query

	needle := strings.ToLower(query)
	for i, line := range doc.Lines {
		if strings.Contains(strings.ToLower(line), needle) {
			s.matches = append(s.matches, i)
		}
	}
	if len(s.matches) == 0 {
		return 0, false
	}
	for i, line := range s.matches {
		if line >= from {
			s.current = i
			break
		}
	}
	return s.matches[s.current], true
}

// Clear forgets the query
func (s *Search) Clear() {
	s.query = ""
	s.matches = nil
	s.current = 0
}

// Active reports whether a query with at least one match is set
func (s *Search) Active() bool {
	return len(s.matches) > 0
}

// Query returns the current query
func (s *Search) Query() string {
	return s.query
}

// Next moves to the next match, wrapping around
func (s *Search) Next() (int, bool) {
	if len(s.matches) == 0 {
		return 0, false
	}
	s.current = (s.current + 1) % len(s.matches)
	return s.matches[s.current], true
}

// Previous moves to the previous match, wrapping around
func (s *Search) Previous() (int, bool) {
	if len(s.matches) == 0 {
		return 0, false
	}
	s.current--
	if s.current < 0 {
		s.current = len(s.matches) - 1
	}
	return s.matches[s.current], true
}

// Position returns the 1-based index of the current match and the count
func (s *Search) Position() (int, int) {
	if len(s.matches) == 0 {
		return 0, 0
	}
	return s.current + 1, len(s.matches)
}

// searchPrompt is the text input shown in the status line while typing a query
type searchPrompt struct {
	input  textinput.Model
	active bool
}

func newSearchPrompt() searchPrompt {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.CharLimit = 256
	return searchPrompt{input: ti}
}

func (p *searchPrompt) open() tea.Cmd {
	p.active = true
	p.input.Reset()
	return p.input.Focus()
}

func (p *searchPrompt) close() {
	p.active = false
	p.input.Blur()
	p.input.Reset()
}

// handleKey feeds msg to the input. submitted is set when enter closed the
// prompt; esc closes it without a query.
func (p *searchPrompt) handleKey(msg tea.KeyMsg) (query string, submitted bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.close()
		return "", false, nil
	case "enter":
		query = p.input.Value()
		p.close()
		return query, true, nil
	}
	p.input, cmd = p.input.Update(msg)
	return "", false, cmd
}

func (p *searchPrompt) View() string {
	return p.input.View()
}
