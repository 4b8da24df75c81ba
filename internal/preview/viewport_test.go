package preview

import (
	"testing"

	"github.com/kaji-lab/finch/internal/fs"
)

func TestRevealLinesKeepsBlankRowsAboveContent(t *testing.T) {
	lines := []string{"a", "b", "c"}
	got := revealLines(lines, 5, 2)
	want := []string{"", "", "a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRevealLinesClipsToHeight(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}
	got := revealLines(lines, 3, 0)
	if len(got) != 3 {
		t.Fatalf("got %d rows for a 3-row pane", len(got))
	}
	got = revealLines(lines, 3, 2)
	if len(got) != 3 || got[0] != "" || got[1] != "" || got[2] != "a" {
		t.Fatalf("revealed rows %q, want [\"\" \"\" a]", got)
	}
}

func TestStepRevealRunsDown(t *testing.T) {
	vp := viewport{height: 4, reveal: 2}
	if !vp.stepReveal() {
		t.Fatalf("stepReveal reported done with reveal remaining")
	}
	if vp.stepReveal() {
		t.Fatalf("stepReveal reported more frames at zero")
	}
	if vp.reveal != 0 {
		t.Fatalf("reveal = %d after animation, want 0", vp.reveal)
	}
}

func TestScrollByClampsToContent(t *testing.T) {
	vp := viewport{height: 5}
	vp.scrollBy(10, 8)
	if vp.scroll != 3 {
		t.Fatalf("scroll = %d, want clamp at 3", vp.scroll)
	}
	vp.scrollBy(-100, 8)
	if vp.scroll != 0 {
		t.Fatalf("scroll = %d, want clamp at 0", vp.scroll)
	}
}

func TestResizeShrinksRevealOffset(t *testing.T) {
	vp := viewport{height: 10, reveal: 10}
	vp.resize(80, 4)
	if vp.reveal != 4 {
		t.Fatalf("reveal = %d after shrink, want 4", vp.reveal)
	}
}

func TestTargetDispatchesToLiveVariant(t *testing.T) {
	listing := NewListingView("/root/dir", []fs.Entry{
		{Name: "sub", FullPath: "/root/dir/sub", IsDir: true},
		{Name: "a.txt", FullPath: "/root/dir/a.txt"},
	})
	target := Target{Kind: KindListing, Listing: listing}
	target.Resize(40, 6)

	lines := target.VisibleLines()
	if len(lines) != 2 || lines[0] != "sub/" || lines[1] != "a.txt" {
		t.Fatalf("listing lines %q, want [sub/ a.txt]", lines)
	}

	target.SetReveal(3)
	if !target.Revealing() {
		t.Fatalf("reveal offset not applied through the target")
	}
	lines = target.VisibleLines()
	if lines[0] != "" {
		t.Fatalf("revealing target shows content at the top row")
	}
}

func TestExternalTargetUsesTextView(t *testing.T) {
	view := NewTextViewLines([]string{"rendered by previewer"})
	target := Target{Kind: KindExternal, Text: view}
	target.Resize(40, 6)

	lines := target.VisibleLines()
	if len(lines) != 1 || lines[0] != "rendered by previewer" {
		t.Fatalf("external target lines %q", lines)
	}
}
