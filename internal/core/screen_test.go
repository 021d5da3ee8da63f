package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 6x3", s.Width(), s.Height())
	}
	want := "      \n      \n      "
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDrawTextClipsAtEdges(t *testing.T) {
	s := NewScreen(5, 2)
	s.DrawText(3, 0, "2048")
	s.DrawText(-2, 1, "1024")

	if got := strings.Split(s.String(), "\n"); got[0] != "   20" || got[1] != "24   " {
		t.Errorf("rows = %q, want tile text clipped to the screen", got)
	}
}

func TestColoredCells(t *testing.T) {
	s := NewScreen(8, 1)
	s.DrawTextColored(1, 0, "64", ColorYellow)
	s.SetColored(4, 0, '░', ColorGray)

	if c := s.GetCell(1, 0); c.Rune != '6' || c.Color != ColorYellow {
		t.Errorf("GetCell(1, 0) = %+v", c)
	}
	if c := s.GetCell(4, 0); c.Rune != '░' || c.Color != ColorGray {
		t.Errorf("GetCell(4, 0) = %+v", c)
	}
	if c := s.GetCell(0, 0); c.Color != ColorDefault {
		t.Errorf("untouched cell color = %v, want default", c.Color)
	}
	if c := s.GetCell(20, 5); c != blank {
		t.Errorf("out-of-bounds GetCell = %+v, want blank", c)
	}
}

func TestDrawTextCentered(t *testing.T) {
	s := NewScreen(12, 1)
	s.DrawTextCentered(0, "PAUSED")
	if got := s.String(); got != "   PAUSED   " {
		t.Errorf("String() = %q", got)
	}
}

func TestOverlayBox(t *testing.T) {
	s := NewScreen(8, 4)
	s.DrawText(0, 1, "xxxxxxxx")

	box := Rect{X: 1, Y: 0, W: 6, H: 4}
	s.DrawRect(box, ' ')
	s.DrawBox(box)

	want := []string{
		" ┌────┐ ",
		"x│    │x",
		" │    │ ",
		" └────┘ ",
	}
	if got := strings.Split(s.String(), "\n"); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("overlay =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestClearResetsColors(t *testing.T) {
	s := NewScreen(3, 1)
	s.DrawTextColored(0, 0, "128", ColorMagenta)
	s.Clear()
	for x := range 3 {
		if c := s.GetCell(x, 0); c != blank {
			t.Errorf("cell %d = %+v after Clear", x, c)
		}
	}
}

func TestResizeKeepsOverlap(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")
	s.DrawText(0, 1, "efgh")

	s.Resize(2, 3)
	if got, want := s.String(), "ab\nef\n  "; got != want {
		t.Errorf("after shrink = %q, want %q", got, want)
	}

	s.Resize(2, 3)
	if got := s.GetCell(1, 1).Rune; got != 'f' {
		t.Errorf("same-size Resize changed content, got %q", got)
	}
}
