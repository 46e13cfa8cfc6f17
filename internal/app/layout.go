// layout.go centralizes the terminal layout calculations for the three-pane UI.
//
// The entry list takes a bounded column on the left. The editor and the
// markdown preview split the remaining width evenly. The bottom footer
// reserves two or three rows depending on how much help text fits.
package app

// LayoutDimensions holds all calculated layout dimensions for the UI.
type LayoutDimensions struct {
	ListWidth      int // entry list pane, including border/padding
	EditorWidth    int // editor pane, including border/padding
	PreviewWidth   int // preview pane, including border/padding
	ContentHeight  int // terminal height minus footer
	ViewportWidth  int // usable width inside the preview pane
	ViewportHeight int // usable height inside the preview pane, below its header
}

// calculateLayout computes all UI dimensions based on terminal size.
func (m *Model) calculateLayout() LayoutDimensions {
	listWidth := min(DefaultListWidth, m.width/ListWidthDivider)
	rest := max(0, m.width-listWidth)
	editorWidth := rest / 2
	previewWidth := rest - editorWidth
	contentHeight := max(0, m.height-m.footerHeightForWidth(m.width))

	return LayoutDimensions{
		ListWidth:      listWidth,
		EditorWidth:    editorWidth,
		PreviewWidth:   previewWidth,
		ContentHeight:  contentHeight,
		ViewportWidth:  max(0, previewWidth-previewPane.GetHorizontalFrameSize()),
		ViewportHeight: max(0, contentHeight-previewPane.GetVerticalFrameSize()-1),
	}
}

// footerHeightForWidth returns how many rows should be reserved for the footer.
func (m *Model) footerHeightForWidth(width int) int {
	_, fit := m.buildStatusRows(width, FooterMinRows)
	if fit {
		return FooterMinRows
	}
	return FooterMaxRows
}

// updateLayout sizes the widgets to the current terminal.
func (m *Model) updateLayout() {
	layout := m.calculateLayout()
	m.viewport.Width = layout.ViewportWidth
	m.viewport.Height = layout.ViewportHeight

	editorInnerWidth := max(0, layout.EditorWidth-editPane.GetHorizontalFrameSize())
	editorInnerHeight := max(0, layout.ContentHeight-editPane.GetVerticalFrameSize()-1)
	m.editor.SetWidth(editorInnerWidth)
	m.editor.SetHeight(editorInnerHeight)
	m.input.Width = max(0, editorInnerWidth-4)
	m.filter.Width = max(0, layout.ListWidth-listPane.GetHorizontalFrameSize()-4)
	m.adjustListOffset()
}

// listVisibleRows returns how many entries fit in the list pane.
func (m *Model) listVisibleRows() int {
	layout := m.calculateLayout()
	rows := layout.ContentHeight - listPane.GetVerticalFrameSize() - 1
	if m.filterActive() {
		rows--
	}
	return max(0, rows)
}
