package preview

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/kaji-lab/finch/internal/cancel"
	"github.com/kaji-lab/finch/internal/fs"
	"github.com/kaji-lab/finch/internal/proc"
)

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatal(err)
	}
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	writeFile(t, path, "#!/bin/sh\n"+body+"\n", 0755)
	return path
}

// previewersFixture builds a previewer directory with a text previewer for
// pdf, a graphics previewer for jpg, and the built-in text definition.
func previewersFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeScript(t, dir, "pdf", "echo pdf-preview")
	writeScript(t, dir, "jpg.g", "echo /tmp/rendered.png")
	writeScript(t, filepath.Join(dir, "definitions"), "text", "cat \"$1\"")
	return dir
}

func entryFor(t *testing.T, path string) fs.Entry {
	t.Helper()
	return fs.Entry{Name: filepath.Base(path), FullPath: path}
}

func TestFindPreviewerMatchesTextByExtension(t *testing.T) {
	dir := previewersFixture(t)
	file := entryFor(t, filepath.Join(t.TempDir(), "paper.pdf"))

	got, err := FindPreviewer(dir, file, false)
	if err != nil {
		t.Fatalf("FindPreviewer failed: %v", err)
	}
	if got.Graphics {
		t.Fatalf("pdf previewer resolved as graphics-producing")
	}
	if filepath.Base(got.Path) != "pdf" {
		t.Fatalf("resolved %q, want the pdf previewer", got.Path)
	}
}

func TestFindPreviewerPrefersGraphicsInGraphicsMode(t *testing.T) {
	dir := previewersFixture(t)
	file := entryFor(t, filepath.Join(t.TempDir(), "photo.jpg"))

	got, err := FindPreviewer(dir, file, true)
	if err != nil {
		t.Fatalf("FindPreviewer failed: %v", err)
	}
	if !got.Graphics {
		t.Fatalf("jpg.g not resolved as graphics-producing")
	}
	if filepath.Base(got.Path) != "jpg.g" {
		t.Fatalf("resolved %q, want jpg.g", got.Path)
	}
}

func TestFindPreviewerIgnoresGraphicsOutsideGraphicsMode(t *testing.T) {
	dir := previewersFixture(t)
	path := filepath.Join(t.TempDir(), "photo.jpg")
	writeFile(t, path, "\x00\x01binary", 0644)

	_, err := FindPreviewer(dir, entryFor(t, path), false)
	if !errors.Is(err, ErrNoPreviewer) {
		t.Fatalf("got %v, want ErrNoPreviewer for binary jpg without graphics", err)
	}
}

func TestFindPreviewerFallsBackToTextDefinition(t *testing.T) {
	dir := previewersFixture(t)
	path := filepath.Join(t.TempDir(), "script.xyz")
	writeFile(t, path, "plain readable content\n", 0644)

	got, err := FindPreviewer(dir, entryFor(t, path), false)
	if err != nil {
		t.Fatalf("FindPreviewer failed: %v", err)
	}
	if got.Graphics {
		t.Fatalf("text fallback resolved as graphics-producing")
	}
	want := filepath.Join(dir, "definitions", "text")
	if got.Path != want {
		t.Fatalf("resolved %q, want %q", got.Path, want)
	}
}

func TestFindPreviewerIsDeterministic(t *testing.T) {
	dir := previewersFixture(t)
	file := entryFor(t, filepath.Join(t.TempDir(), "paper.pdf"))

	first, err := FindPreviewer(dir, file, true)
	if err != nil {
		t.Fatalf("FindPreviewer failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := FindPreviewer(dir, file, true)
		if err != nil {
			t.Fatalf("FindPreviewer failed on repeat %d: %v", i, err)
		}
		if got != first {
			t.Fatalf("resolution changed across calls: %+v vs %+v", got, first)
		}
	}
}

func TestRunExternalCapturesStdoutLines(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("previewer scripts require a POSIX shell")
	}
	script := writeScript(t, t.TempDir(), "lines", "echo one; echo two")
	registry := proc.NewRegistry()

	lines, err := runExternal([]string{script, "unused"}, registry, cancel.NewToken())
	if err != nil {
		t.Fatalf("runExternal failed: %v", err)
	}
	if len(lines) != 2 || lines[0] != "one" || lines[1] != "two" {
		t.Fatalf("got lines %q, want [one two]", lines)
	}
	if registry.Current() != 0 {
		t.Fatalf("registry not cleared after completion")
	}
}

func TestRunExternalFailsStaleWithoutRenderingOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("previewer scripts require a POSIX shell")
	}
	script := writeScript(t, t.TempDir(), "lines", "echo one")
	registry := proc.NewRegistry()

	tok := cancel.NewToken()
	tok.SetStale()

	_, err := runExternal([]string{script, "unused"}, registry, tok)
	if !errors.Is(err, ErrStale) {
		t.Fatalf("got %v, want ErrStale", err)
	}
	// The entry is left for the next generation's kill to reap.
	registry.Kill()
}

func TestRegistryKillTerminatesRunningPreviewer(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("process-group signaling requires a POSIX system")
	}
	script := writeScript(t, t.TempDir(), "slow", "sleep 5")
	registry := proc.NewRegistry()

	done := make(chan error, 1)
	go func() {
		_, err := runExternal([]string{script, "unused"}, registry, cancel.NewToken())
		done <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for registry.Current() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if registry.Current() == 0 {
		t.Fatalf("previewer group never recorded")
	}

	start := time.Now()
	registry.Kill()

	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("killed previewer reported success")
		}
		if elapsed := time.Since(start); elapsed > 2*time.Second {
			t.Fatalf("previewer survived %v after group kill", elapsed)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("previewer still running after group kill")
	}
}
