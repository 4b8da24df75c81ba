package preview

// MediaKind distinguishes the media stream variants.
type MediaKind int

const (
	MediaVideo MediaKind = iota
	MediaAudio
)

func (k MediaKind) String() string {
	if k == MediaAudio {
		return "audio"
	}
	return "video"
}

// MediaView previews a video or audio stream. The media command produces a
// representative frame (video) or stream description (audio) as text lines.
type MediaView struct {
	viewport
	kind   MediaKind
	source string
	lines  []string
}

// NewMediaView wraps rendered media lines for source.
func NewMediaView(kind MediaKind, source string, lines []string) *MediaView {
	return &MediaView{kind: kind, source: source, lines: lines}
}

// Kind returns the stream variant.
func (v *MediaView) Kind() MediaKind {
	return v.kind
}

func (v *MediaView) visibleLines() []string {
	return revealLines(v.lines, v.height, v.reveal)
}
