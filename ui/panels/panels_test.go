package panels

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"snapframe/internal/config"
	"snapframe/internal/editor"
	"snapframe/internal/layout"
	"snapframe/internal/mask"
	"snapframe/internal/render"
)

func newPanel(t *testing.T) (*SidePanel, *editor.Editor) {
	t.Helper()
	test.NewApp()
	ed := editor.New(config.DefaultConfig(), render.New(nil, nil))
	return NewSidePanel(ed), ed
}

func TestSyncDoesNotRecordHistory(t *testing.T) {
	sp, ed := newPanel(t)
	before := ed.History().Len()
	sp.Sync()
	sp.Sync()
	if got := ed.History().Len(); got != before {
		t.Errorf("history entries = %d after sync, want %d", got, before)
	}
}

func TestPanelFollowsEditor(t *testing.T) {
	sp, ed := newPanel(t)
	ed.SetShadow(42)
	ed.SetAspect(layout.AspectSquare)
	ed.SetMask(mask.Settings{Kind: mask.KindStar, Size: 80, Ratio: 1, PositionX: 50, PositionY: 50})

	if got := sp.background.shadow.slider.Value; got != 42 {
		t.Errorf("shadow slider = %v, want 42", got)
	}
	if got := sp.image.aspect.Selected; got != string(layout.AspectSquare) {
		t.Errorf("aspect = %q", got)
	}
	if got := sp.image.maskKind.Selected; got != string(mask.KindStar) {
		t.Errorf("mask kind = %q", got)
	}
	if got := sp.image.maskSize.slider.Value; got != 80 {
		t.Errorf("mask size = %v, want 80", got)
	}
}

func TestSliderCommitsOnRelease(t *testing.T) {
	sp, ed := newPanel(t)
	s := sp.background.size.slider
	s.OnChanged(30)
	if ed.Controls().BackgroundSize == 30 {
		t.Fatal("value committed before the drag ended")
	}
	s.OnChangeEnded(30)
	if got := ed.Controls().BackgroundSize; got != 30 {
		t.Errorf("background size = %v, want 30", got)
	}
}

func TestToolRadioSetsTool(t *testing.T) {
	sp, ed := newPanel(t)
	sp.tools.tool.SetSelected("Shape")
	st := ed.State()
	if st.ActiveTool() != editor.ToolShape {
		t.Errorf("tool = %v, want shape", st.ActiveTool())
	}

	ed.SetTool(editor.ToolBlur)
	if got := sp.tools.tool.Selected; got != "Blur" {
		t.Errorf("radio = %q, want Blur", got)
	}
}

func TestAddAndUpdateText(t *testing.T) {
	sp, ed := newPanel(t)
	tp := sp.tools
	tp.textEntry.SetText("hello")
	tp.onAddText()

	texts := ed.Texts()
	if len(texts) != 1 || texts[0].Text != "hello" {
		t.Fatalf("texts = %+v", texts)
	}
	if tp.textStatus.Text == "" {
		t.Error("selected text not reflected in the panel")
	}

	tp.textEntry.SetText("bye")
	tp.applyText()
	if got := ed.Texts()[0].Text; got != "bye" {
		t.Errorf("text = %q, want bye", got)
	}
}
