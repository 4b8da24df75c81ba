package fs

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// ErrMimeUndetermined means no MIME type could be derived from either the
// extension or the file content.
var ErrMimeUndetermined = errors.New("fs: mime type undetermined")

// Mime is a parsed media type.
type Mime struct {
	Type    string
	Subtype string
}

func (m Mime) String() string {
	return m.Type + "/" + m.Subtype
}

// IsPlainText reports text/plain.
func (m Mime) IsPlainText() bool {
	return m.Type == "text" && m.Subtype == "plain"
}

// MimeResolver classifies files. The previewer consumes this interface so
// tests can force specific classifications.
type MimeResolver interface {
	MimeType(path string) (Mime, error)
}

// SniffResolver is the default MimeResolver: extension classes first, then
// the platform MIME table, then a content sniff that degrades unknown text
// to text/plain.
type SniffResolver struct{}

var mediaExtClasses = map[string]string{
	".bmp":  "image",
	".gif":  "image",
	".ico":  "image",
	".jpeg": "image",
	".jpg":  "image",
	".png":  "image",
	".psd":  "image",
	".svg":  "image",
	".tif":  "image",
	".tiff": "image",
	".webp": "image",

	".avi":  "video",
	".flv":  "video",
	".m4v":  "video",
	".mkv":  "video",
	".mov":  "video",
	".mp4":  "video",
	".mpeg": "video",
	".mpg":  "video",
	".webm": "video",
	".wmv":  "video",

	".aac":  "audio",
	".flac": "audio",
	".m4a":  "audio",
	".mp3":  "audio",
	".ogg":  "audio",
	".opus": "audio",
	".wav":  "audio",
	".wma":  "audio",
}

// MimeType resolves the media type of path. Failures are soft for callers:
// the previewer falls back to a blank view when this errors.
func (SniffResolver) MimeType(path string) (Mime, error) {
	ext := strings.ToLower(filepath.Ext(path))

	if class, ok := mediaExtClasses[ext]; ok {
		return Mime{Type: class, Subtype: strings.TrimPrefix(ext, ".")}, nil
	}

	if byTable := mime.TypeByExtension(ext); byTable != "" {
		if m, ok := parseMime(byTable); ok {
			return m, nil
		}
	}

	sample, err := ReadTextSample(path)
	if err != nil {
		return Mime{}, fmt.Errorf("%w: %s: %v", ErrMimeUndetermined, path, err)
	}
	if IsTextFile(sample) {
		return Mime{Type: "text", Subtype: "plain"}, nil
	}

	return Mime{}, fmt.Errorf("%w: %s", ErrMimeUndetermined, path)
}

func parseMime(value string) (Mime, bool) {
	if i := strings.IndexByte(value, ';'); i >= 0 {
		value = value[:i]
	}
	parts := strings.SplitN(strings.TrimSpace(value), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Mime{}, false
	}
	return Mime{Type: parts[0], Subtype: parts[1]}, true
}
