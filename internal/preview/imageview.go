package preview

// ImageView previews a still image. The pixels are rendered to text lines
// by the media command (or, for graphics-producing previewers, the rendered
// artifact the previewer left behind).
type ImageView struct {
	viewport
	source string
	lines  []string
}

// NewImageView wraps rendered image lines for source.
func NewImageView(source string, lines []string) *ImageView {
	return &ImageView{source: source, lines: lines}
}

// Source returns the path of the previewed image.
func (v *ImageView) Source() string {
	return v.source
}

func (v *ImageView) visibleLines() []string {
	return revealLines(v.lines, v.height, v.reveal)
}
