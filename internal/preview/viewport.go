package preview

// viewport carries the geometry shared by every preview view: pane size,
// scroll position, and the slide-up reveal offset.
type viewport struct {
	width  int
	height int
	scroll int
	reveal int
}

func (vp *viewport) resize(w, h int) {
	vp.width = w
	vp.height = h
	if vp.reveal > h {
		vp.reveal = h
	}
}

func (vp *viewport) scrollBy(delta, lineCount int) {
	max := lineCount - vp.height
	if max < 0 {
		max = 0
	}
	vp.scroll += delta
	if vp.scroll > max {
		vp.scroll = max
	}
	if vp.scroll < 0 {
		vp.scroll = 0
	}
}

func (vp *viewport) setReveal(n int) {
	if n < 0 {
		n = 0
	}
	vp.reveal = n
}

// stepReveal advances the slide-up animation one frame and reports whether
// more frames remain.
func (vp *viewport) stepReveal() bool {
	if vp.reveal > 0 {
		vp.reveal--
	}
	return vp.reveal > 0
}

// revealLines applies the reveal offset: content rises from the bottom of
// the pane, so `reveal` blank rows are kept above it.
func revealLines(lines []string, height, reveal int) []string {
	if height <= 0 {
		return nil
	}
	if reveal <= 0 {
		if len(lines) > height {
			return lines[:height]
		}
		return lines
	}
	if reveal > height {
		reveal = height
	}

	out := make([]string, 0, height)
	for i := 0; i < reveal; i++ {
		out = append(out, "")
	}
	for _, line := range lines {
		if len(out) >= height {
			break
		}
		out = append(out, line)
	}
	return out
}
