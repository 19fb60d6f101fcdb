package editor

// Tool is the active annotation tool.
type Tool int

const (
	ToolNone Tool = iota
	ToolBlur
	ToolShape
	ToolText
)

func (t Tool) String() string {
	switch t {
	case ToolBlur:
		return "blur"
	case ToolShape:
		return "shape"
	case ToolText:
		return "text"
	}
	return "none"
}

// Selection names the selected entity. ID zero means nothing is selected.
type Selection struct {
	Tool Tool
	ID   int
}

// EditorState is the tool mode and selection. One tool is active at a time
// and only an entity of that tool's kind can be selected.
type EditorState struct {
	activeTool Tool
	selection  Selection
}

// ActiveTool returns the active tool.
func (s EditorState) ActiveTool() Tool { return s.activeTool }

// Selection returns the current selection.
func (s EditorState) Selection() Selection { return s.selection }

// Selected returns the selected entity ID for kind t, or zero.
func (s EditorState) Selected(t Tool) int {
	if s.selection.Tool != t {
		return 0
	}
	return s.selection.ID
}

// SetTool activates t. Switching tools clears the selection.
func (s *EditorState) SetTool(t Tool) bool {
	if s.activeTool == t {
		return false
	}
	s.activeTool = t
	s.selection = Selection{}
	return true
}

// Select activates t and selects id, dropping any selection of another kind.
func (s *EditorState) Select(t Tool, id int) {
	s.activeTool = t
	s.selection = Selection{Tool: t, ID: id}
	if id == 0 || t == ToolNone {
		s.selection = Selection{}
	}
}

// ClearSelection deselects without changing the tool.
func (s *EditorState) ClearSelection() bool {
	if s.selection.ID == 0 {
		return false
	}
	s.selection = Selection{}
	return true
}

// EventType identifies editor events.
type EventType int

const (
	// EventChanged fires whenever the next render would differ.
	EventChanged EventType = iota
	EventSelectionChanged
	EventToolChanged
	EventImageLoaded
	EventHistoryChanged
	// EventRestored fires when an undo or redo finished decoding its
	// raster snapshot.
	EventRestored
)

// EventListener is called when an event occurs.
type EventListener func(data any)
