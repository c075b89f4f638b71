package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rebeliceyang/crux/internal/ui/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(e *SQLEditor, text string) {
	e.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestSQLEditor_Typing(t *testing.T) {
	e := NewSQLEditor(theme.DefaultTheme())

	typeText(e, "SELECT")
	e.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	typeText(e, "1")
	assert.Equal(t, "SELECT 1", e.GetContent())

	e.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	typeText(e, "FROM t")
	assert.Equal(t, "SELECT 1\nFROM t", e.GetContent())

	row, col := e.Cursor()
	assert.Equal(t, 1, row)
	assert.Equal(t, 6, col)
}

func TestSQLEditor_MultibyteEditing(t *testing.T) {
	e := NewSQLEditor(theme.DefaultTheme())
	typeText(e, "'héllo'")

	e.MoveCursorLeft()
	e.MoveCursorLeft()
	e.DeleteCharBefore()
	assert.Equal(t, "'hélo'", e.GetContent())

	e.MoveCursorToLineStart()
	e.MoveCursorRight()
	e.MoveCursorRight()
	e.DeleteCharAfter()
	assert.Equal(t, "'hlo'", e.GetContent())
}

func TestSQLEditor_LineMerging(t *testing.T) {
	e := NewSQLEditor(theme.DefaultTheme())
	e.SetContent("SELECT\n1")

	e.MoveCursorToLineStart()
	e.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "SELECT1", e.GetContent())

	row, col := e.Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 6, col)

	e.InsertNewline()
	e.MoveCursorUp()
	e.MoveCursorToLineEnd()
	e.HandleKey(tea.KeyMsg{Type: tea.KeyDelete})
	assert.Equal(t, "SELECT1", e.GetContent())
}

func TestSQLEditor_InsertTextSplitsLines(t *testing.T) {
	e := NewSQLEditor(theme.DefaultTheme())
	e.InsertText("SELECT *\r\nFROM t\twhere")
	assert.Equal(t, "SELECT *\nFROM t where", e.GetContent())
}

func TestSQLEditor_Clear(t *testing.T) {
	e := NewSQLEditor(theme.DefaultTheme())
	e.SetContent("SELECT 1")
	e.Clear()

	assert.Equal(t, "", e.GetContent())
	row, col := e.Cursor()
	assert.Zero(t, row)
	assert.Zero(t, col)
}

func TestSQLEditor_History(t *testing.T) {
	e := NewSQLEditor(theme.DefaultTheme())
	e.SetHistory([]string{"SELECT 2", "SELECT 1"})
	e.SetContent("draft")

	require.True(t, e.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlP}))
	assert.Equal(t, "SELECT 2", e.GetContent())

	e.HistoryPrev()
	assert.Equal(t, "SELECT 1", e.GetContent())

	assert.False(t, e.HistoryPrev(), "oldest entry reached")
	assert.Equal(t, "SELECT 1", e.GetContent())

	e.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, "SELECT 2", e.GetContent())

	e.HistoryNext()
	assert.Equal(t, "draft", e.GetContent())
	assert.False(t, e.HistoryNext())
}

func TestSQLEditor_PushHistory(t *testing.T) {
	e := NewSQLEditor(theme.DefaultTheme())
	e.SetHistory([]string{"SELECT 2", "SELECT 1"})

	e.PushHistory("SELECT 1")
	e.PushHistory("   ")

	e.HistoryPrev()
	assert.Equal(t, "SELECT 1", e.GetContent())
	e.HistoryPrev()
	assert.Equal(t, "SELECT 2", e.GetContent())
	assert.False(t, e.HistoryPrev())
}

func TestSQLEditor_UnhandledKey(t *testing.T) {
	e := NewSQLEditor(theme.DefaultTheme())
	assert.False(t, e.HandleKey(tea.KeyMsg{Type: tea.KeyTab}))
	assert.False(t, e.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}))
}

func TestSQLEditor_View(t *testing.T) {
	e := NewSQLEditor(theme.DefaultTheme())
	e.Width = 40
	e.Height = 3
	e.SetContent("SELECT *\nFROM users\nWHERE id = 1\nLIMIT 10")

	lines := strings.Split(e.View(), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[2], "LIMIT 10", "view scrolls to the cursor line")
	assert.NotContains(t, e.View(), "SELECT")

	e.MoveCursorToDocStart()
	assert.Contains(t, e.View(), "SELECT")
}

func TestTokenizeLine(t *testing.T) {
	tokens := tokenizeLine([]rune("SELECT 'it''s' -- note"))

	var kinds []TokenType
	for _, tok := range tokens {
		if strings.TrimSpace(string(tok.Value)) != "" {
			kinds = append(kinds, tok.Type)
		}
	}
	assert.Equal(t, []TokenType{TokenKeyword, TokenString, TokenComment}, kinds)
}
