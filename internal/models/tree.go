package models

// TreeNodeType represents the type of tree node
type TreeNodeType string

const (
	TreeNodeTypeSchema TreeNodeType = "schema"
	TreeNodeTypeTable  TreeNodeType = "table"
)

// TreeNode is either a schema header or a table belonging to the nearest
// preceding schema node. Expanded is only meaningful for schema nodes.
type TreeNode struct {
	Type     TreeNodeType
	Schema   string
	Name     string
	Expanded bool
}

// IsSchema reports whether the node is a schema header
func (n TreeNode) IsSchema() bool {
	return n.Type == TreeNodeTypeSchema
}

// Label returns the display text of the node
func (n TreeNode) Label() string {
	if n.IsSchema() {
		return n.Schema
	}
	return n.Name
}

// Tree is the two-level schema → table navigation model.
//
// Selected and ScrollOffset are plain indices: Selected points into the full
// node sequence, ScrollOffset into the visible subsequence.
type Tree struct {
	Nodes        []TreeNode
	Selected     int
	ScrollOffset int
}

// BuildSchemaTree groups tables by schema, keeping catalog order: schemas in
// order of first appearance, tables in the order they were listed. Every
// schema starts expanded.
func BuildSchemaTree(tables []TableRef) *Tree {
	var schemas []string
	grouped := make(map[string][]string)
	for _, table := range tables {
		if _, seen := grouped[table.Schema]; !seen {
			schemas = append(schemas, table.Schema)
		}
		grouped[table.Schema] = append(grouped[table.Schema], table.Name)
	}

	t := &Tree{Nodes: make([]TreeNode, 0, len(tables)+len(schemas))}
	for _, schema := range schemas {
		t.Nodes = append(t.Nodes, TreeNode{
			Type:     TreeNodeTypeSchema,
			Schema:   schema,
			Name:     schema,
			Expanded: true,
		})
		for _, name := range grouped[schema] {
			t.Nodes = append(t.Nodes, TreeNode{
				Type:   TreeNodeTypeTable,
				Schema: schema,
				Name:   name,
			})
		}
	}

	return t
}

// Len returns the number of nodes in the full sequence
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// IsVisible reports whether the node at index i is displayable: schema nodes
// always are, table nodes only when the nearest preceding schema is expanded.
func (t *Tree) IsVisible(i int) bool {
	if i < 0 || i >= len(t.Nodes) {
		return false
	}
	if t.Nodes[i].IsSchema() {
		return true
	}
	for j := i - 1; j >= 0; j-- {
		if t.Nodes[j].IsSchema() {
			return t.Nodes[j].Expanded
		}
	}
	return true
}

// VisibleIndices returns raw node indices of all visible nodes, in order
func (t *Tree) VisibleIndices() []int {
	visible := make([]int, 0, len(t.Nodes))
	expanded := true
	for i, node := range t.Nodes {
		if node.IsSchema() {
			expanded = node.Expanded
			visible = append(visible, i)
			continue
		}
		if expanded {
			visible = append(visible, i)
		}
	}
	return visible
}

// VisibleNodes returns the visible nodes, in order
func (t *Tree) VisibleNodes() []TreeNode {
	indices := t.VisibleIndices()
	nodes := make([]TreeNode, len(indices))
	for i, idx := range indices {
		nodes[i] = t.Nodes[idx]
	}
	return nodes
}

// SelectedVisiblePosition returns the position of the selection within the
// visible sequence, or -1 when the selected node is hidden.
func (t *Tree) SelectedVisiblePosition() int {
	for pos, idx := range t.VisibleIndices() {
		if idx == t.Selected {
			return pos
		}
	}
	return -1
}

// SelectNext moves to the next visible node, wrapping at the end.
// A hidden selection snaps to the first visible node.
func (t *Tree) SelectNext() {
	visible := t.VisibleIndices()
	if len(visible) == 0 {
		return
	}
	pos := t.SelectedVisiblePosition()
	if pos < 0 {
		t.Selected = visible[0]
		return
	}
	t.Selected = visible[(pos+1)%len(visible)]
}

// SelectPrev moves to the previous visible node, wrapping at the start.
// A hidden selection snaps to the first visible node.
func (t *Tree) SelectPrev() {
	visible := t.VisibleIndices()
	if len(visible) == 0 {
		return
	}
	pos := t.SelectedVisiblePosition()
	if pos < 0 {
		t.Selected = visible[0]
		return
	}
	t.Selected = visible[(pos+len(visible)-1)%len(visible)]
}

// ToggleSelected flips the expansion of the selected schema node. The
// selection index never moves.
func (t *Tree) ToggleSelected() {
	node := t.SelectedNode()
	if node == nil || !node.IsSchema() {
		return
	}
	node.Expanded = !node.Expanded
}

// Collapse collapses the selected schema node if it is expanded
func (t *Tree) Collapse() {
	node := t.SelectedNode()
	if node != nil && node.IsSchema() && node.Expanded {
		node.Expanded = false
	}
}

// SelectByClick selects the node shown at a position of the visible sequence.
// Out-of-range positions are ignored.
func (t *Tree) SelectByClick(visibleIndex int) bool {
	visible := t.VisibleIndices()
	if visibleIndex < 0 || visibleIndex >= len(visible) {
		return false
	}
	t.Selected = visible[visibleIndex]
	return true
}

// UpdateScroll keeps the selection inside a window of visibleHeight rows
// using minimal scrolling.
func (t *Tree) UpdateScroll(visibleHeight int) {
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	pos := t.SelectedVisiblePosition()
	if pos < 0 {
		pos = 0
	}
	t.ScrollOffset = ClampScroll(t.ScrollOffset, pos, visibleHeight)

	maxScroll := len(t.VisibleIndices()) - visibleHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if t.ScrollOffset > maxScroll {
		t.ScrollOffset = maxScroll
	}
}

// SelectedNode returns the selected node, or nil for an empty tree
func (t *Tree) SelectedNode() *TreeNode {
	if t.Selected < 0 || t.Selected >= len(t.Nodes) {
		return nil
	}
	return &t.Nodes[t.Selected]
}

// IsSelectedSchema reports whether the selection is a schema node
func (t *Tree) IsSelectedSchema() bool {
	node := t.SelectedNode()
	return node != nil && node.IsSchema()
}

// SelectedTable returns the selected table, if the selection is a table node
func (t *Tree) SelectedTable() (TableRef, bool) {
	node := t.SelectedNode()
	if node == nil || node.IsSchema() {
		return TableRef{}, false
	}
	return TableRef{Schema: node.Schema, Name: node.Name}, true
}

// ClampScroll returns the scroll offset that keeps pos within
// [offset, offset+height), moving the window as little as possible.
func ClampScroll(offset, pos, height int) int {
	if height < 1 {
		height = 1
	}
	if pos < offset {
		return pos
	}
	if pos >= offset+height {
		return pos - height + 1
	}
	return offset
}
