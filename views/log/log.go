package log

import (
	"fmt"

	"simple-storage-tui/helpers"
	"simple-storage-tui/styles"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// reservedRows covers the header, nav and panel chrome around the log
const reservedRows = 12

// Height returns the number of log lines that fit under a screen of h rows
func Height(h int) int {
	avail := helpers.Max(3, h-reservedRows)
	return helpers.Min(avail, helpers.Max(3, helpers.Min(h/3, 12)))
}

// Render renders the activity log panel
func Render(width, height int, ready bool, spinnerView string, vp viewport.Model) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Render("Activity")

	rows := Height(height)
	vp.Height = rows

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(helpers.Max(0, width-2)).
		Height(rows + 2)

	if !ready {
		return box.Render(title + "\n\n" + spinnerView + " starting logger")
	}

	// scroll position once the log overflows
	if vp.TotalLineCount() > vp.Height {
		title += styles.MutedStyle.Render(fmt.Sprintf(" [%d%%] ", int(vp.ScrollPercent()*100))) +
			styles.Key("PgUp/PgDn")
	}

	return box.Render(title + "\n\n" + vp.View())
}
