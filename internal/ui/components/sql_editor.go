package components

import (
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rebeliceyang/crux/internal/ui/theme"
)

// SQLEditor is a multiline SQL editor component with history recall
type SQLEditor struct {
	// Content, one rune slice per line
	lines     [][]rune
	cursorRow int // Current cursor row (0-indexed)
	cursorCol int // Current cursor column in runes (0-indexed)

	// Dimensions of the text area, gutter included
	Width  int
	Height int

	Focused bool
	Theme   theme.Theme

	// History, most recent first. historyIdx is -1 while editing a draft.
	history    []string
	historyIdx int
	draft      string

	scrollRow int
	scrollCol int
}

// NewSQLEditor creates a new SQL editor
func NewSQLEditor(th theme.Theme) *SQLEditor {
	return &SQLEditor{
		lines:      [][]rune{{}},
		Theme:      th,
		history:    []string{},
		historyIdx: -1,
	}
}

// GetContent returns the full content as a single string
func (e *SQLEditor) GetContent() string {
	parts := make([]string, len(e.lines))
	for i, line := range e.lines {
		parts[i] = string(line)
	}
	return strings.Join(parts, "\n")
}

// SetContent sets the editor content and moves the cursor to the end
func (e *SQLEditor) SetContent(content string) {
	e.lines = e.lines[:0]
	for _, line := range strings.Split(content, "\n") {
		e.lines = append(e.lines, []rune(line))
	}
	e.MoveCursorToDocEnd()
}

// Clear clears the editor content
func (e *SQLEditor) Clear() {
	e.lines = [][]rune{{}}
	e.cursorRow = 0
	e.cursorCol = 0
	e.scrollRow = 0
	e.scrollCol = 0
	e.historyIdx = -1
	e.draft = ""
}

// Cursor returns the cursor position as (row, column)
func (e *SQLEditor) Cursor() (int, int) {
	return e.cursorRow, e.cursorCol
}

// SetHistory replaces the recall list; queries are ordered most recent first
func (e *SQLEditor) SetHistory(queries []string) {
	e.history = append([]string(nil), queries...)
	e.historyIdx = -1
}

// PushHistory records a query as the most recent entry, dropping an identical
// entry further down the list.
func (e *SQLEditor) PushHistory(query string) {
	if strings.TrimSpace(query) == "" {
		return
	}
	kept := []string{query}
	for _, q := range e.history {
		if q != query {
			kept = append(kept, q)
		}
	}
	e.history = kept
	e.historyIdx = -1
}

// HistoryPrev replaces the content with the previous (older) query
func (e *SQLEditor) HistoryPrev() bool {
	if e.historyIdx+1 >= len(e.history) {
		return false
	}
	if e.historyIdx == -1 {
		e.draft = e.GetContent()
	}
	e.historyIdx++
	e.SetContent(e.history[e.historyIdx])
	return true
}

// HistoryNext replaces the content with the next (newer) query, returning to
// the draft after the newest entry.
func (e *SQLEditor) HistoryNext() bool {
	if e.historyIdx < 0 {
		return false
	}
	e.historyIdx--
	if e.historyIdx == -1 {
		e.SetContent(e.draft)
		return true
	}
	e.SetContent(e.history[e.historyIdx])
	return true
}

// HandleKey applies an editing key and reports whether it was consumed
func (e *SQLEditor) HandleKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyLeft:
		e.MoveCursorLeft()
	case tea.KeyRight:
		e.MoveCursorRight()
	case tea.KeyUp:
		e.MoveCursorUp()
	case tea.KeyDown:
		e.MoveCursorDown()
	case tea.KeyHome, tea.KeyCtrlA:
		e.MoveCursorToLineStart()
	case tea.KeyEnd, tea.KeyCtrlE:
		e.MoveCursorToLineEnd()
	case tea.KeyCtrlHome:
		e.MoveCursorToDocStart()
	case tea.KeyCtrlEnd:
		e.MoveCursorToDocEnd()
	case tea.KeyEnter:
		e.InsertNewline()
	case tea.KeyBackspace:
		e.DeleteCharBefore()
	case tea.KeyDelete:
		e.DeleteCharAfter()
	case tea.KeyCtrlP:
		e.HistoryPrev()
	case tea.KeyCtrlN:
		e.HistoryNext()
	case tea.KeySpace:
		e.InsertChar(' ')
	case tea.KeyRunes:
		e.InsertText(string(msg.Runes))
	default:
		return false
	}
	return true
}

// MoveCursorLeft moves cursor left
func (e *SQLEditor) MoveCursorLeft() {
	if e.cursorCol > 0 {
		e.cursorCol--
	} else if e.cursorRow > 0 {
		// Move to end of previous line
		e.cursorRow--
		e.cursorCol = len(e.lines[e.cursorRow])
	}
}

// MoveCursorRight moves cursor right
func (e *SQLEditor) MoveCursorRight() {
	if e.cursorCol < len(e.lines[e.cursorRow]) {
		e.cursorCol++
	} else if e.cursorRow < len(e.lines)-1 {
		// Move to start of next line
		e.cursorRow++
		e.cursorCol = 0
	}
}

// MoveCursorUp moves cursor up
func (e *SQLEditor) MoveCursorUp() {
	if e.cursorRow > 0 {
		e.cursorRow--
		e.cursorCol = min(e.cursorCol, len(e.lines[e.cursorRow]))
	}
}

// MoveCursorDown moves cursor down
func (e *SQLEditor) MoveCursorDown() {
	if e.cursorRow < len(e.lines)-1 {
		e.cursorRow++
		e.cursorCol = min(e.cursorCol, len(e.lines[e.cursorRow]))
	}
}

// MoveCursorToLineStart moves cursor to start of line
func (e *SQLEditor) MoveCursorToLineStart() {
	e.cursorCol = 0
}

// MoveCursorToLineEnd moves cursor to end of line
func (e *SQLEditor) MoveCursorToLineEnd() {
	e.cursorCol = len(e.lines[e.cursorRow])
}

// MoveCursorToDocStart moves cursor to start of document
func (e *SQLEditor) MoveCursorToDocStart() {
	e.cursorRow = 0
	e.cursorCol = 0
}

// MoveCursorToDocEnd moves cursor to end of document
func (e *SQLEditor) MoveCursorToDocEnd() {
	e.cursorRow = len(e.lines) - 1
	e.cursorCol = len(e.lines[e.cursorRow])
}

// InsertChar inserts a character at cursor position
func (e *SQLEditor) InsertChar(ch rune) {
	line := e.lines[e.cursorRow]
	newLine := make([]rune, 0, len(line)+1)
	newLine = append(newLine, line[:e.cursorCol]...)
	newLine = append(newLine, ch)
	newLine = append(newLine, line[e.cursorCol:]...)
	e.lines[e.cursorRow] = newLine
	e.cursorCol++
}

// InsertText inserts pasted or typed text, splitting on newlines
func (e *SQLEditor) InsertText(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, ch := range text {
		switch ch {
		case '\n', '\r':
			e.InsertNewline()
		case '\t':
			e.InsertChar(' ')
		default:
			e.InsertChar(ch)
		}
	}
}

// InsertNewline inserts a new line at cursor position
func (e *SQLEditor) InsertNewline() {
	line := e.lines[e.cursorRow]
	before := append([]rune(nil), line[:e.cursorCol]...)
	after := append([]rune(nil), line[e.cursorCol:]...)

	e.lines[e.cursorRow] = before
	e.lines = append(e.lines, nil)
	copy(e.lines[e.cursorRow+2:], e.lines[e.cursorRow+1:])
	e.lines[e.cursorRow+1] = after

	e.cursorRow++
	e.cursorCol = 0
}

// DeleteCharBefore deletes character before cursor (backspace)
func (e *SQLEditor) DeleteCharBefore() {
	if e.cursorCol > 0 {
		line := e.lines[e.cursorRow]
		e.lines[e.cursorRow] = append(line[:e.cursorCol-1:e.cursorCol-1], line[e.cursorCol:]...)
		e.cursorCol--
	} else if e.cursorRow > 0 {
		// Merge with previous line
		prevLine := e.lines[e.cursorRow-1]
		e.cursorCol = len(prevLine)
		e.lines[e.cursorRow-1] = append(prevLine[:len(prevLine):len(prevLine)], e.lines[e.cursorRow]...)
		e.lines = append(e.lines[:e.cursorRow], e.lines[e.cursorRow+1:]...)
		e.cursorRow--
	}
}

// DeleteCharAfter deletes character after cursor (delete key)
func (e *SQLEditor) DeleteCharAfter() {
	line := e.lines[e.cursorRow]
	if e.cursorCol < len(line) {
		e.lines[e.cursorRow] = append(line[:e.cursorCol:e.cursorCol], line[e.cursorCol+1:]...)
	} else if e.cursorRow < len(e.lines)-1 {
		// Merge with next line
		e.lines[e.cursorRow] = append(line[:len(line):len(line)], e.lines[e.cursorRow+1]...)
		e.lines = append(e.lines[:e.cursorRow+1], e.lines[e.cursorRow+2:]...)
	}
}

// SQL keywords for syntax highlighting
var sqlKeywords = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "AND": true, "OR": true,
	"INSERT": true, "INTO": true, "VALUES": true, "UPDATE": true, "SET": true,
	"DELETE": true, "CREATE": true, "TABLE": true, "DROP": true, "ALTER": true,
	"INDEX": true, "VIEW": true, "JOIN": true, "LEFT": true, "RIGHT": true,
	"INNER": true, "OUTER": true, "FULL": true, "ON": true, "AS": true,
	"ORDER": true, "BY": true, "GROUP": true, "HAVING": true, "LIMIT": true,
	"OFFSET": true, "UNION": true, "ALL": true, "DISTINCT": true, "CASE": true,
	"WHEN": true, "THEN": true, "ELSE": true, "END": true, "NULL": true,
	"NOT": true, "IN": true, "EXISTS": true, "BETWEEN": true, "LIKE": true,
	"IS": true, "TRUE": true, "FALSE": true, "ASC": true, "DESC": true,
	"PRIMARY": true, "KEY": true, "FOREIGN": true, "REFERENCES": true,
	"DEFAULT": true, "WITH": true, "RETURNING": true, "PRAGMA": true,
	"SHOW": true, "DESCRIBE": true, "EXPLAIN": true, "COUNT": true,
}

// TokenType represents the type of a syntax token
type TokenType int

const (
	TokenText TokenType = iota
	TokenKeyword
	TokenString
	TokenNumber
	TokenComment
	TokenOperator
)

// Token represents a syntax-highlighted token
type Token struct {
	Type  TokenType
	Value []rune
}

// tokenizeLine tokenizes a single line for syntax highlighting
func tokenizeLine(line []rune) []Token {
	var tokens []Token
	i := 0

	for i < len(line) {
		start := i
		switch ch := line[i]; {
		case unicode.IsSpace(ch):
			for i < len(line) && unicode.IsSpace(line[i]) {
				i++
			}
			tokens = append(tokens, Token{Type: TokenText, Value: line[start:i]})

		case ch == '-' && i+1 < len(line) && line[i+1] == '-':
			return append(tokens, Token{Type: TokenComment, Value: line[i:]})

		case ch == '\'':
			i++
			for i < len(line) {
				if line[i] == '\'' {
					if i+1 < len(line) && line[i+1] == '\'' {
						i += 2
						continue
					}
					i++
					break
				}
				i++
			}
			tokens = append(tokens, Token{Type: TokenString, Value: line[start:i]})

		case unicode.IsDigit(ch):
			for i < len(line) && (unicode.IsDigit(line[i]) || line[i] == '.') {
				i++
			}
			tokens = append(tokens, Token{Type: TokenNumber, Value: line[start:i]})

		case unicode.IsLetter(ch) || ch == '_':
			for i < len(line) && (unicode.IsLetter(line[i]) || unicode.IsDigit(line[i]) || line[i] == '_') {
				i++
			}
			kind := TokenText
			if sqlKeywords[strings.ToUpper(string(line[start:i]))] {
				kind = TokenKeyword
			}
			tokens = append(tokens, Token{Type: kind, Value: line[start:i]})

		case strings.ContainsRune("=<>!+-*/%&|^~", ch):
			for i < len(line) && strings.ContainsRune("=<>!+-*/%&|^~", line[i]) {
				i++
			}
			tokens = append(tokens, Token{Type: TokenOperator, Value: line[start:i]})

		default:
			i++
			tokens = append(tokens, Token{Type: TokenText, Value: line[start:i]})
		}
	}

	return tokens
}

func (e *SQLEditor) tokenStyle(kind TokenType) lipgloss.Style {
	switch kind {
	case TokenKeyword:
		return lipgloss.NewStyle().Foreground(e.Theme.Keyword).Bold(true)
	case TokenString:
		return lipgloss.NewStyle().Foreground(e.Theme.String)
	case TokenNumber:
		return lipgloss.NewStyle().Foreground(e.Theme.Number)
	case TokenComment:
		return lipgloss.NewStyle().Foreground(e.Theme.Comment).Italic(true)
	case TokenOperator:
		return lipgloss.NewStyle().Foreground(e.Theme.Operator)
	default:
		return lipgloss.NewStyle().Foreground(e.Theme.Foreground)
	}
}

// View renders the visible lines, scrolled so the cursor stays in view
func (e *SQLEditor) View() string {
	height := max(e.Height, 1)
	gutter := e.gutterWidth()
	textW := max(e.Width-gutter, 1)

	// Keep the cursor inside the window
	if e.cursorRow < e.scrollRow {
		e.scrollRow = e.cursorRow
	} else if e.cursorRow >= e.scrollRow+height {
		e.scrollRow = e.cursorRow - height + 1
	}
	if e.cursorCol < e.scrollCol {
		e.scrollCol = e.cursorCol
	} else if e.cursorCol >= e.scrollCol+textW {
		e.scrollCol = e.cursorCol - textW + 1
	}

	lines := make([]string, 0, height)
	for i := e.scrollRow; i < e.scrollRow+height; i++ {
		if i < len(e.lines) {
			lines = append(lines, e.renderLine(i, gutter, textW))
		} else {
			lines = append(lines, e.renderEmptyLine(gutter))
		}
	}
	return strings.Join(lines, "\n")
}

// renderLine renders a single line with line number and syntax highlighting
func (e *SQLEditor) renderLine(lineNum, gutter, textW int) string {
	lineNumStyle := lipgloss.NewStyle().Foreground(e.Theme.Metadata)
	sepStyle := lipgloss.NewStyle().Foreground(e.Theme.Border)
	cursorStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Background).
		Background(e.Theme.Cursor)

	var b strings.Builder
	b.WriteString(lineNumStyle.Render(fmt.Sprintf("%*d", gutter-3, lineNum+1)))
	b.WriteString(sepStyle.Render(" │ "))

	line := e.lines[lineNum]
	hasCursor := e.Focused && lineNum == e.cursorRow

	col := 0
	for _, token := range tokenizeLine(line) {
		style := e.tokenStyle(token.Type)
		for _, ch := range token.Value {
			if col >= e.scrollCol && col < e.scrollCol+textW {
				if hasCursor && col == e.cursorCol {
					b.WriteString(cursorStyle.Render(string(ch)))
				} else {
					b.WriteString(style.Render(string(ch)))
				}
			}
			col++
		}
	}

	// Cursor at end of line
	if hasCursor && e.cursorCol >= len(line) {
		b.WriteString(cursorStyle.Render(" "))
	}

	return b.String()
}

// renderEmptyLine renders a placeholder for lines past the end of the buffer
func (e *SQLEditor) renderEmptyLine(gutter int) string {
	lineNumStyle := lipgloss.NewStyle().Foreground(e.Theme.Metadata)
	sepStyle := lipgloss.NewStyle().Foreground(e.Theme.Border)
	return lineNumStyle.Render(fmt.Sprintf("%*s", gutter-3, "~")) + sepStyle.Render(" │ ")
}

// gutterWidth returns the width of line numbers plus the separator
func (e *SQLEditor) gutterWidth() int {
	digits := len(fmt.Sprintf("%d", max(len(e.lines), 10)))
	return digits + 3
}
