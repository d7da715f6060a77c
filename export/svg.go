// Package export writes rendered frames to SVG, and to PNG or JPEG through headless Chrome
package export

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/nri-constellation/blend"
	"github.com/lixenwraith/nri-constellation/host"
	"github.com/lixenwraith/nri-constellation/render"
)

const fontFamily = "IBM Plex Mono, Menlo, monospace"

// Formats accepted by Write
var Formats = []string{"svg", "png", "jpg"}

// ValidFormat reports whether format is one of Formats, "jpeg" included
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case "svg", "png", "jpg", "jpeg":
		return true
	}
	return false
}

// FileName builds an export path that cannot collide across sessions
func FileName(dir, scene string, session uuid.UUID, format string) string {
	ext := strings.ToLower(format)
	if ext == "jpeg" {
		ext = "jpg"
	}
	id := strings.SplitN(session.String(), "-", 2)[0]
	return filepath.Join(dir, fmt.Sprintf("nri-%s-%s-%s.%s", scene, id, uuid.NewString()[:8], ext))
}

// Advance ticks surface from the clock's current time until at has elapsed, one frame per step
func Advance(s *host.Surface, clock *blend.MockClock, at, step time.Duration) int {
	if step <= 0 {
		step = time.Second / host.DefaultFPS
	}
	frames := 0
	for elapsed := time.Duration(0); elapsed < at; elapsed += step {
		clock.Advance(step)
		s.Tick(clock.Now())
		frames++
	}
	return frames
}

// SVG writes the canvas as it appears on a terminal: two rects per cell plus the text layer
// Horizontal runs of equal color are merged into one rect
func SVG(c *render.Canvas, w io.Writer) error {
	cols, rows := c.Cells()
	cw, ch := c.CellSize()
	half := float64(ch) / 2

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`+"\n",
		cols*cw, rows*ch, cols*cw, rows*ch)

	top := make([]render.RGB, cols)
	bottom := make([]render.RGB, cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top[col], bottom[col] = c.Dots(col, row)
		}
		y := float64(row * ch)
		writeRuns(bw, top, cw, y, half)
		writeRuns(bw, bottom, cw, y+half, half)
	}

	fmt.Fprintf(bw, `<g font-family="%s" font-size="%d" dominant-baseline="middle">`+"\n", fontFamily, ch*3/4)
	for row := 0; row < rows; row++ {
		writeText(bw, c, row, cols, cw, ch)
	}
	bw.WriteString("</g>\n</svg>\n")
	return bw.Flush()
}

func writeRuns(w *bufio.Writer, line []render.RGB, cw int, y, h float64) {
	start := 0
	for col := 1; col <= len(line); col++ {
		if col < len(line) && line[col] == line[start] {
			continue
		}
		fmt.Fprintf(w, `<rect x="%d" y="%g" width="%d" height="%g" fill="%s"/>`+"\n",
			start*cw, y, (col-start)*cw, h, line[start])
		start = col
	}
}

// writeText emits one <text> per contiguous run of glyphs sharing style
func writeText(w *bufio.Writer, c *render.Canvas, row, cols, cw, ch int) {
	var run strings.Builder
	var style render.TextCell
	start := -1

	flush := func() {
		if start < 0 {
			return
		}
		weight := ""
		if style.Bold {
			weight = ` font-weight="bold"`
		}
		fmt.Fprintf(w, `<text x="%d" y="%g" fill="%s" fill-opacity="%.3f"%s xml:space="preserve">`,
			start*cw, float64(row*ch)+float64(ch)/2, style.Fg, style.Alpha, weight)
		xml.EscapeText(w, []byte(run.String()))
		w.WriteString("</text>\n")
		run.Reset()
		start = -1
	}

	for col := 0; col < cols; col++ {
		cell := c.TextAt(col, row)
		if cell.Cont {
			continue
		}
		if cell.Rune == 0 {
			flush()
			continue
		}
		if start >= 0 && (cell.Fg != style.Fg || cell.Alpha != style.Alpha || cell.Bold != style.Bold) {
			flush()
		}
		if start < 0 {
			start, style = col, cell
		}
		run.WriteRune(cell.Rune)
	}
	flush()
}
