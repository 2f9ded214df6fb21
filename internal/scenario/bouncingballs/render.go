package bouncingballs

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// One terminal cell covers this many world units.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

// Rows taken by everything except the ball area: two border rows, the
// status line and the host's help line.
const chromeRows = 4

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFAA00"))
)

// areaFor returns the ball area in cells for a terminal of the given size.
func areaFor(width, height int) (cols, rows int) {
	return max(width-2, 1), max(height-chromeRows, 1)
}

// configFor returns a Config covering cols by rows cells.
func configFor(cols, rows, balls int) Config {
	return Config{
		BallCount: balls,
		Width:     float64(cols) * cellWidth,
		Height:    float64(rows) * cellHeight,
	}
}

// Render draws a snapshot into a cols by rows grid with a status line.
// Non-positive dimensions are derived from the snapshot's area.
func Render(s Snapshot, cols, rows int) string {
	if cols <= 0 {
		cols = max(int(math.Ceil(s.Width/cellWidth)), 1)
	}
	if rows <= 0 {
		rows = max(int(math.Ceil(s.Height/cellHeight)), 1)
	}

	grid := make([][]string, rows)
	for r := range grid {
		grid[r] = make([]string, cols)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}

	for _, b := range s.Balls {
		c := clamp(int(b.X/cellWidth), cols)
		r := clamp(int(b.Y/cellHeight), rows)
		color := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", b.Color[0], b.Color[1], b.Color[2]))
		grid[r][c] = lipgloss.NewStyle().Foreground(color).Render("●")
	}

	lines := make([]string, rows)
	for r, row := range grid {
		lines[r] = strings.Join(row, "")
	}

	status := infoStyle.Render(fmt.Sprintf("balls: %d  bounces: %d  tick: %d", len(s.Balls), s.Bounces, s.Tick))
	if s.Paused {
		status += "  " + pausedStyle.Render("PAUSED")
	}

	return frameStyle.Render(strings.Join(lines, "\n")) + "\n" + status
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
