package render

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/kk-code-lab/wayfinder/internal/state"
	"github.com/kk-code-lab/wayfinder/internal/textutil"
)

const appTitle = "Wayfinder"

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	listOffset       int
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	r.screen.HideCursor()

	w, h := r.screen.Size()
	layout := computeLayout(w, h)

	r.drawHeader(state, layout.header)
	r.drawFileList(state, layout.list)
	r.drawDetails(state, layout.details)
	r.drawPreview(state, layout.preview)
	r.drawFooter(state, layout.footer)
	r.drawOverlay(state, w, h)

	r.screen.Show()
}

func (r *Renderer) baseStyle() tcell.Style {
	return tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
}

// drawBox outlines area and writes title into its top border.
func (r *Renderer) drawBox(area rect, title string) {
	if area.w < 2 || area.h < 2 {
		return
	}
	style := r.baseStyle().Foreground(r.theme.BorderFg)
	right, bottom := area.x+area.w-1, area.y+area.h-1

	for x := area.x + 1; x < right; x++ {
		r.screen.SetContent(x, area.y, tcell.RuneHLine, nil, style)
		r.screen.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := area.y + 1; y < bottom; y++ {
		r.screen.SetContent(area.x, y, tcell.RuneVLine, nil, style)
		r.screen.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
	r.screen.SetContent(area.x, area.y, tcell.RuneULCorner, nil, style)
	r.screen.SetContent(right, area.y, tcell.RuneURCorner, nil, style)
	r.screen.SetContent(area.x, bottom, tcell.RuneLLCorner, nil, style)
	r.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)

	if title != "" {
		title = textutil.Truncate(textutil.Sanitize(title), area.w-2)
		r.drawTextLine(area.x+1, area.y, area.w-2, title, r.baseStyle().Bold(true))
	}
}

// clearArea paints area with the base style so overlays hide what is below.
func (r *Renderer) clearArea(area rect) {
	style := r.baseStyle()
	for y := area.y; y < area.y+area.h; y++ {
		r.fillRow(area.x, area.x+area.w, y, style)
	}
}

// drawHeader renders the top bar with title and current path
func (r *Renderer) drawHeader(state *statepkg.AppState, area rect) {
	if area.h == 0 {
		return
	}
	r.drawBox(area, "Current Directory")
	in := area.inner()
	if in.h == 0 || in.w == 0 {
		return
	}

	titleStyle := r.baseStyle().Foreground(r.theme.TitleFg).Bold(true)
	x := r.drawTextLine(in.x, in.y, in.w, appTitle, titleStyle)
	x = r.drawTextLine(x, in.y, in.x+in.w-x, " - ", r.baseStyle())

	path := textutil.Sanitize(state.CurrentPath)
	path = r.fitBreadcrumb(path, in.x+in.w-x)
	r.drawTextLine(x, in.y, in.x+in.w-x, path, r.baseStyle().Foreground(r.theme.PathFg))
}

// drawFileList renders the entries with a highlight bar on the selection.
func (r *Renderer) drawFileList(state *statepkg.AppState, area rect) {
	r.drawBox(area, "Files")
	in := area.inner()
	if in.h == 0 || in.w == 0 {
		return
	}

	r.listOffset = listWindow(r.listOffset, state.SelectedIndex, in.h, len(state.Files))

	for row := 0; row < in.h; row++ {
		idx := r.listOffset + row
		if idx >= len(state.Files) {
			break
		}
		r.drawFileRow(state.Files[idx], idx == state.SelectedIndex, in.x, in.y+row, in.w)
	}
}

func (r *Renderer) drawFileRow(entry statepkg.FileEntry, selected bool, x, y, width int) {
	marker := "[F]"
	if entry.IsDir {
		marker = "[D]"
	}
	nameStyle := r.baseStyle().Foreground(r.theme.FileFg)
	switch {
	case entry.IsSymlink:
		nameStyle = nameStyle.Foreground(r.theme.SymlinkFg)
	case entry.IsDir:
		nameStyle = nameStyle.Foreground(r.theme.DirectoryFg)
	}
	markerStyle := r.baseStyle().Foreground(r.theme.MarkerFg)
	prefix := "  "

	if selected {
		bar := r.baseStyle().Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg).Bold(true)
		nameStyle, markerStyle = bar, bar
		prefix = "> "
	}

	end := x + width
	cx := r.drawTextLine(x, y, width, prefix, nameStyle)
	cx = r.drawTextLine(cx, y, end-cx, marker, markerStyle)
	cx = r.drawTextLine(cx, y, end-cx, " ", nameStyle)
	if end > cx {
		name := textutil.DisplayLine(entry.Name, end-cx)
		cx = r.drawTextLine(cx, y, end-cx, name, nameStyle)
	}
	if selected {
		r.fillRow(cx, end, y, nameStyle)
	}
}

func (r *Renderer) drawDetails(state *statepkg.AppState, area rect) {
	r.drawBox(area, "Details")
	r.drawWrapped(area.inner(), state.DescribeSelection(), r.baseStyle())
}

func (r *Renderer) drawPreview(state *statepkg.AppState, area rect) {
	r.drawBox(area, state.Preview.Title)
	r.drawWrapped(area.inner(), state.Preview.Body, r.baseStyle().Foreground(r.theme.PreviewFg))
}

func (r *Renderer) drawWrapped(area rect, body string, style tcell.Style) {
	if area.h == 0 || area.w == 0 {
		return
	}
	for i, line := range r.wrapLines(body, area.w) {
		if i >= area.h {
			break
		}
		r.drawTextLine(area.x, area.y+i, area.w, line, style)
	}
}

// drawFooter renders status, pending count and key help.
func (r *Renderer) drawFooter(state *statepkg.AppState, area rect) {
	if area.h == 0 {
		return
	}
	r.drawBox(area, "")
	in := area.inner()
	if in.h == 0 {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	r.drawCell(in.x, in.y, in.w, state.FooterText(), style)
}

// drawOverlay renders the search/command/confirm prompt above the footer.
func (r *Renderer) drawOverlay(state *statepkg.AppState, w, h int) {
	title, content, ok := state.OverlayPrompt()
	if !ok {
		return
	}
	lines := strings.Split(content, "\n")
	area := overlayRect(w, h, len(lines))
	if area.w < 2 || area.h < 2 {
		return
	}

	r.clearArea(area)
	r.drawBox(area, title)
	in := area.inner()
	for i, line := range lines {
		if i >= in.h {
			break
		}
		r.drawCell(in.x, in.y+i, in.w, line, r.baseStyle())
	}

	if _, isConfirm := state.Mode.(statepkg.ConfirmMode); !isConfirm && in.h > 0 {
		cursorX := in.x + r.measureTextWidth(textutil.Sanitize(lines[0]))
		if cursorX < in.x+in.w {
			r.screen.ShowCursor(cursorX, in.y)
		}
	}
}
