package components

import (
	"strings"
	"testing"

	"github.com/rebeliceyang/crux/internal/ui/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewPane_ShowsFullValues(t *testing.T) {
	p := NewPreviewPane(theme.DefaultTheme())
	p.Width = 40
	p.Height = 20

	long := strings.Repeat("z", 60)
	p.SetRow([]string{"id", "body"}, []string{"7", long}, 6)

	assert.Empty(t, p.View(), "hidden pane renders nothing")

	p.Toggle()
	view := p.View()
	assert.Contains(t, view, "Row 7")
	assert.Contains(t, view, "body")
	assert.Equal(t, 60, strings.Count(view, "z"), "value is wrapped, not truncated")
}

func TestPreviewPane_PrettyPrintsJSON(t *testing.T) {
	p := NewPreviewPane(theme.DefaultTheme())
	p.Width = 40
	p.Height = 20
	p.SetRow([]string{"doc"}, []string{`{"a":1}`}, 0)
	p.Toggle()

	assert.Contains(t, p.View(), `"a": 1`)
}

func TestPreviewPane_Scroll(t *testing.T) {
	p := NewPreviewPane(theme.DefaultTheme())
	p.Width = 40
	p.Height = 3
	p.SetRow([]string{"a", "b", "c"}, []string{"1", "2", "3"}, 0)
	p.Toggle()

	p.ScrollUp()
	require.Len(t, strings.Split(p.View(), "\n"), 3)

	for i := 0; i < 10; i++ {
		p.ScrollDown()
	}
	assert.Equal(t, 4, p.scrollY, "six content lines, two visible")

	p.SetRow([]string{"a", "b", "c"}, []string{"1", "2", "4"}, 0)
	assert.Zero(t, p.scrollY, "new row resets scrolling")
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{"abc", "def", "g"}, wrapText("abcdefg", 3))
	assert.Equal(t, []string{"ab", "c"}, wrapText("ab\nc", 3))
	assert.Equal(t, []string{""}, wrapText("", 3))
}
