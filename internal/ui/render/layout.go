package render

type rect struct {
	x, y, w, h int
}

func (r rect) inner() rect {
	in := rect{x: r.x + 1, y: r.y + 1, w: r.w - 2, h: r.h - 2}
	if in.w < 0 {
		in.w = 0
	}
	if in.h < 0 {
		in.h = 0
	}
	return in
}

type layoutMetrics struct {
	header  rect
	list    rect
	details rect
	preview rect
	footer  rect
}

const (
	headerHeight       = 3
	footerHeight       = 3
	minBodyHeight      = 5
	detailsHeightRatio = 0.25
)

// computeLayout splits the screen into a header bar, a two-column body
// (file list | details over preview) and a footer bar.
func computeLayout(w, h int) layoutMetrics {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	headerH := min(headerHeight, h)
	footerH := min(footerHeight, max(h-headerH, 0))
	bodyH := h - headerH - footerH
	if bodyH < minBodyHeight {
		// Too short for chrome; give everything to the body.
		headerH, footerH, bodyH = 0, 0, h
	}

	m := layoutMetrics{
		header: rect{x: 0, y: 0, w: w, h: headerH},
		footer: rect{x: 0, y: h - footerH, w: w, h: footerH},
	}

	listW := w / 2
	rightW := w - listW
	m.list = rect{x: 0, y: headerH, w: listW, h: bodyH}

	detailsH := int(float64(bodyH)*detailsHeightRatio + 0.5)
	m.details = rect{x: listW, y: headerH, w: rightW, h: detailsH}
	m.preview = rect{x: listW, y: headerH + detailsH, w: rightW, h: bodyH - detailsH}
	return m
}

// overlayRect places the prompt box just above the footer, spanning the
// screen minus a one-cell margin.
func overlayRect(w, h, contentLines int) rect {
	height := contentLines + 2
	if height > h {
		height = h
	}
	width := max(w-2, 0)
	y := max(h-height-1, 0)
	return rect{x: 1, y: y, w: width, h: height}
}

// listWindow returns the first visible row so that selected stays within a
// window of rows lines, moving prev as little as possible.
func listWindow(prev, selected, rows, total int) int {
	if rows <= 0 || total <= rows {
		return 0
	}
	offset := prev
	if selected < offset {
		offset = selected
	}
	if selected >= offset+rows {
		offset = selected - rows + 1
	}
	if offset > total-rows {
		offset = total - rows
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
