package draw

import (
	"fmt"
	"testing"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
	"github.com/r3d91ll/qmreport/pkg/theme"
)

// fakeSurface records the operations it receives and fails after failAt calls.
type fakeSurface struct {
	ops    []string
	failAt int
	err    error
}

func (f *fakeSurface) record(op string) {
	f.ops = append(f.ops, op)
	if f.failAt > 0 && len(f.ops) >= f.failAt && f.err == nil {
		f.err = fmt.Errorf("surface exhausted")
	}
}

func (f *fakeSurface) AddPage() { f.record("page") }

func (f *fakeSurface) FillRect(x, y, w, h float64, c theme.Color) { f.record("fill") }

func (f *fakeSurface) StrokeRect(x, y, w, h float64, c theme.Color, width float64) {
	f.record("stroke")
}

func (f *fakeSurface) Line(x1, y1, x2, y2 float64, c theme.Color, width float64) {
	f.record("line")
}

func (f *fakeSurface) FillCircle(x, y, r float64, c theme.Color, alpha float64) {
	f.record("circle")
}

func (f *fakeSurface) Text(t Text) { f.record("text:" + t.Body) }

func (f *fakeSurface) Err() error { return f.err }

// ---- Recorder Tests ----

func TestRecorderTextColorIsSticky(t *testing.T) {
	th := theme.Default()
	r := NewRecorder(th)
	r.SetTextColor(th.Primary)
	r.SetFont(Bold, 12)
	r.Text("a", 1, 2)
	r.Text("b", 3, 4, Centered())

	cmds := r.Commands()
	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}
	for _, c := range cmds {
		txt := c.(Text)
		if txt.Color != th.Primary {
			t.Errorf("expected primary text color, got %v", txt.Color)
		}
		if txt.Font != (Font{Style: Bold, Size: 12}) {
			t.Errorf("expected bold 12, got %+v", txt.Font)
		}
	}
	if cmds[1].(Text).Align != AlignCenter {
		t.Error("expected second run to be centered")
	}
}

func TestBorderDefaults(t *testing.T) {
	th := theme.Default()
	r := NewRecorder(th)
	r.Border(0, 0, 10, 10)

	s := r.Commands()[0].(StrokeRect)
	if s.Color != th.LightGray {
		t.Errorf("expected light gray border, got %v", s.Color)
	}
	if s.Width != 0.5 {
		t.Errorf("expected width 0.5, got %.2f", s.Width)
	}
}

func TestRotatedOption(t *testing.T) {
	r := NewRecorder(theme.Default())
	r.Text("Actual", 0, 0, Centered(), Rotated(90))
	txt := r.Commands()[0].(Text)
	if txt.Angle != 90 || txt.Align != AlignCenter {
		t.Errorf("unexpected text options: %+v", txt)
	}
}

func TestSince(t *testing.T) {
	r := NewRecorder(theme.Default())
	r.NewPage()
	mark := r.Len()
	r.FillRect(0, 0, 1, 1, theme.RGB(1, 2, 3))
	if got := r.Since(mark); len(got) != 1 {
		t.Errorf("expected 1 command since mark, got %d", len(got))
	}
	if got := r.Since(r.Len()); got != nil {
		t.Errorf("expected nil at end, got %v", got)
	}
}

// ---- Execute Tests ----

func TestExecuteReplaysInOrder(t *testing.T) {
	r := NewRecorder(theme.Default())
	r.NewPage()
	r.FillRect(0, 0, 1, 1, theme.RGB(0, 0, 0))
	r.Text("hello", 1, 1)

	s := &fakeSurface{}
	if err := Execute(s, r.Commands()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"page", "fill", "text:hello"}
	if fmt.Sprint(s.ops) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, s.ops)
	}
}

func TestExecuteStopsOnSurfaceError(t *testing.T) {
	r := NewRecorder(theme.Default())
	r.NewPage()
	r.FillRect(0, 0, 1, 1, theme.RGB(0, 0, 0))
	r.Line(0, 0, 1, 1, theme.RGB(0, 0, 0), 1)
	r.Line(0, 0, 1, 1, theme.RGB(0, 0, 0), 1)

	s := &fakeSurface{failAt: 2}
	err := Execute(s, r.Commands())
	if err == nil {
		t.Fatal("expected error")
	}
	if !werrors.IsCode(err, werrors.ErrRenderFailed) {
		t.Errorf("expected RENDER_FAILED, got %v", err)
	}
	if len(s.ops) != 2 {
		t.Errorf("expected replay to stop after 2 ops, got %d", len(s.ops))
	}
}

// ---- Page Tests ----

func TestPagesAndSplit(t *testing.T) {
	r := NewRecorder(theme.Default())
	r.FillRect(0, 0, 1, 1, theme.RGB(0, 0, 0)) // dropped: before first page
	r.NewPage()
	r.Text("one", 0, 0)
	r.NewPage()
	r.Text("two", 0, 0)
	r.Text("three", 0, 0)

	cmds := r.Commands()
	if Pages(cmds) != 2 {
		t.Errorf("expected 2 pages, got %d", Pages(cmds))
	}
	pages := Split(cmds)
	if len(pages) != 2 || len(pages[0]) != 1 || len(pages[1]) != 2 {
		t.Errorf("unexpected split: %d pages", len(pages))
	}
}

func TestDescribeDistinguishesCommands(t *testing.T) {
	a := Describe(Text{Body: "x", Align: AlignLeft})
	b := Describe(Text{Body: "x", Align: AlignRight})
	if a == b {
		t.Error("expected alignment to change the description")
	}
	if Describe(NewPage{}) != "page" {
		t.Error("unexpected page description")
	}
}
