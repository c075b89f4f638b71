package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanel_OuterSize(t *testing.T) {
	p := Panel{Title: "Results", Content: "1\n2\n3\n4\n5\n6", Width: 20, Height: 6}

	view := p.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 6, "content beyond the inner height is dropped")
	for _, line := range lines {
		assert.Equal(t, 20, lipgloss.Width(line))
	}
	assert.Contains(t, lines[1], "Results")
	assert.Contains(t, lines[2], "1")
	assert.NotContains(t, view, "4")
}

func TestPanel_Dimensions(t *testing.T) {
	p := Panel{Title: "Tables", Width: 30, Height: 10}
	assert.Equal(t, 28, p.InnerWidth())
	assert.Equal(t, 7, p.ContentHeight())

	p.Title = ""
	assert.Equal(t, 8, p.ContentHeight())
}

func TestPanel_TooSmall(t *testing.T) {
	p := Panel{Width: 2, Height: 5}
	assert.Empty(t, p.View())
}
