package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kk-code-lab/wayfinder/internal/textutil"
)

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if ru < 128 {
		r.runeWidthCacheMu.RLock()
		width := r.runeWidthCache[ru]
		r.runeWidthCacheMu.RUnlock()

		if width == 0 && ru != 0 {
			actualWidth := runewidth.RuneWidth(ru)
			if actualWidth < 0 {
				actualWidth = 0
			}
			r.runeWidthCacheMu.Lock()
			r.runeWidthCache[ru] = actualWidth + 1
			r.runeWidthCacheMu.Unlock()
			return actualWidth
		}
		return width - 1
	}

	if cached, ok := r.runeWidthWide.Load(ru); ok {
		return cached.(int)
	}

	width := runewidth.RuneWidth(ru)
	if width < 0 {
		width = 0
	}
	r.runeWidthWide.Store(ru, width)
	return width
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += r.cachedRuneWidth(ru)
	}
	return width
}

// drawTextLine writes text from startX and returns the column after the
// last cell drawn. Zero-width runes are attached to the preceding cell.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		mainc := runes[i]
		w := r.cachedRuneWidth(mainc)
		if x-startX+w > maxWidth {
			break
		}
		i++

		var combc []rune
		for i < len(runes) && r.cachedRuneWidth(runes[i]) == 0 {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}

	return x
}

func (r *Renderer) fillRow(startX, endX, y int, style tcell.Style) {
	for x := startX; x < endX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawCell draws one sanitized, width-bounded line and pads the rest of the
// row with the same style.
func (r *Renderer) drawCell(startX, y, width int, text string, style tcell.Style) {
	if width <= 0 {
		return
	}
	end := r.drawTextLine(startX, y, width, textutil.DisplayLine(text, width), style)
	r.fillRow(end, startX+width, y, style)
}

// wrapLines splits body into rows no wider than width. Empty lines are
// kept so paragraph breaks survive.
func (r *Renderer) wrapLines(body string, width int) []string {
	if width <= 0 {
		return nil
	}
	var rows []string
	for _, line := range strings.Split(body, "\n") {
		line = textutil.Sanitize(textutil.ExpandTabs(line, textutil.TabWidth))
		if line == "" {
			rows = append(rows, "")
			continue
		}
		var b strings.Builder
		col := 0
		for _, ru := range line {
			w := r.cachedRuneWidth(ru)
			if col+w > width && col > 0 {
				rows = append(rows, b.String())
				b.Reset()
				col = 0
			}
			b.WriteRune(ru)
			col += w
		}
		rows = append(rows, b.String())
	}
	return rows
}

// fitBreadcrumb trims the path from the left, keeping its most specific end.
func (r *Renderer) fitBreadcrumb(path string, width int) string {
	if width <= 0 {
		return ""
	}
	if r.measureTextWidth(path) <= width {
		return path
	}

	const ellipsis = "…"
	available := width - r.cachedRuneWidth('…')
	if available <= 0 {
		return ellipsis
	}

	runes := []rune(path)
	start := len(runes)
	currentWidth := 0
	for i := len(runes) - 1; i >= 0; i-- {
		w := r.cachedRuneWidth(runes[i])
		if currentWidth+w > available {
			break
		}
		currentWidth += w
		start = i
	}
	return ellipsis + string(runes[start:])
}
