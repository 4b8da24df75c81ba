package preview

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/kaji-lab/finch/internal/cancel"
	"github.com/kaji-lab/finch/internal/fs"
	"github.com/kaji-lab/finch/internal/proc"
)

// Extension marking a previewer script as graphics-producing: its output is
// a path to a rendered image instead of text lines.
const graphicsMarkerExt = ".g"

// ExternalPreviewer is a resolved previewer program.
type ExternalPreviewer struct {
	Path string
	// Graphics previewers emit the path of a rendered image on the first
	// output line; text previewers emit the preview itself.
	Graphics bool
}

// FindPreviewer locates the external previewer for file in previewersDir.
// With graphics allowed, a script named `<ext>.g` wins; otherwise a script
// named exactly `<ext>`; otherwise text-like files fall back to the built-in
// text definition. Resolution is deterministic for a fixed directory.
func FindPreviewer(previewersDir string, file fs.Entry, graphics bool) (ExternalPreviewer, error) {
	ext := file.Ext()

	if ext != "" {
		if graphics {
			candidate := filepath.Join(previewersDir, ext+graphicsMarkerExt)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return ExternalPreviewer{Path: candidate, Graphics: true}, nil
			}
		}

		candidate := filepath.Join(previewersDir, ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return ExternalPreviewer{Path: candidate}, nil
		}
	}

	// Files that sniff as text get the built-in text definition.
	if sample, err := fs.ReadTextSample(file.FullPath); err == nil && fs.IsTextFile(sample) {
		return ExternalPreviewer{Path: filepath.Join(previewersDir, "definitions", "text")}, nil
	}

	return ExternalPreviewer{}, fmt.Errorf("%w for %s", ErrNoPreviewer, file.Name)
}

// runExternal spawns argv in its own process group, records the group in the
// registry, and captures stdout as lines. The token is checked right after
// the spawn and right after the exit, so superseded output is never
// rendered; on a stale result the registry entry is left for the next
// generation's kill to reap.
func runExternal(argv []string, registry *proc.Registry, tok cancel.Token) ([]string, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	proc.SetProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn previewer %s: %w", argv[0], err)
	}
	registry.Record(proc.GroupID(cmd))

	if tok.IsStale() {
		go func() { _ = cmd.Wait() }()
		return nil, ErrStale
	}

	waitErr := cmd.Wait()

	if tok.IsStale() {
		return nil, ErrStale
	}
	registry.Clear()

	if waitErr != nil {
		return nil, fmt.Errorf("previewer %s: %w", argv[0], waitErr)
	}

	out := stdout.Bytes()
	if !utf8.Valid(out) {
		return nil, fmt.Errorf("%w: %s", ErrOutputNotText, argv[0])
	}
	if len(out) == 0 {
		return nil, nil
	}
	return strings.Split(strings.TrimSuffix(string(out), "\n"), "\n"), nil
}
