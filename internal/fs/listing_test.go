package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"beta.txt", "alpha.txt", ".hidden"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestListHidesDotfilesByDefault(t *testing.T) {
	dir := writeTestTree(t)

	entries, err := DirLister{}.List(dir, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for _, e := range entries {
		if e.IsHidden() {
			t.Fatalf("hidden entry %q included with showHidden=false", e.Name)
		}
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
}

func TestListIncludesDotfilesOnRequest(t *testing.T) {
	dir := writeTestTree(t)

	entries, err := DirLister{}.List(dir, true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
}

func TestListSortsDirectoriesFirst(t *testing.T) {
	dir := writeTestTree(t)

	entries, err := DirLister{}.List(dir, false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !entries[0].IsDir || entries[0].Name != "sub" {
		t.Fatalf("first entry is %q (dir=%v), want directory sub", entries[0].Name, entries[0].IsDir)
	}
	if entries[1].Name != "alpha.txt" || entries[2].Name != "beta.txt" {
		t.Fatalf("files not sorted by name: %q, %q", entries[1].Name, entries[2].Name)
	}
}

func TestEntryExt(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/a/photo.JPG", "jpg"},
		{"/a/archive.tar.gz", "gz"},
		{"/a/README", ""},
	}
	for _, tc := range cases {
		e := Entry{FullPath: tc.path, Name: filepath.Base(tc.path)}
		if got := e.Ext(); got != tc.want {
			t.Fatalf("Ext(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
