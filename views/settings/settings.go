package settings

import (
	"simple-storage-tui/config"
	"simple-storage-tui/styles"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for settings view
func Nav(width int, settingsMode string) string {
	var left string
	if settingsMode == "add" {
		left = strings.Join([]string{
			styles.Key("Tab") + " next field",
			styles.Key("Enter") + " save",
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("↑/↓") + " select",
			styles.Key("Enter") + " activate",
			styles.Key("a") + " add",
			styles.Key("d") + " delete",
			styles.Key("p") + " signing prompt",
			styles.Key("w") + " wait receipt",
			styles.Key("l") + " debug log",
			styles.Key("Esc") + " back",
		}, "   ")
	}

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the RPC settings view
func Render(cfg config.Config, selectedIdx int) string {
	h := styles.TitleStyle.Render("RPC Settings")

	// List mode
	lines := []string{h, ""}

	if len(cfg.RPCURLs) == 0 {
		lines = append(lines, styles.MutedStyle.Render("No RPC URLs configured."))
		lines = append(lines, "")
		lines = append(lines, styles.MutedStyle.Render("Press ")+styles.Key("a")+styles.MutedStyle.Render(" to add your first RPC URL."))
	} else {
		lines = append(lines, styles.MutedStyle.Render("Configured RPC Endpoints:"))
		lines = append(lines, "")

		for i, rpc := range cfg.RPCURLs {
			var marker string
			if rpc.Active {
				marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("● ")
			} else {
				marker = lipgloss.NewStyle().Foreground(styles.CMuted).Render("○ ")
			}

			nameStyle := lipgloss.NewStyle().Foreground(styles.CText)
			urlStyle := lipgloss.NewStyle().Foreground(styles.CMuted)

			if i == selectedIdx {
				nameStyle = nameStyle.Background(styles.CPanel).Foreground(styles.CAccent2).Bold(true)
				urlStyle = urlStyle.Background(styles.CPanel)
				marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Render("▶ ")
			}

			line := marker + nameStyle.Render(rpc.Name)
			lines = append(lines, line)
			lines = append(lines, "  "+urlStyle.Render(rpc.URL))
			lines = append(lines, "")
		}
	}

	lines = append(lines, styles.MutedStyle.Render("Wallet"))
	lines = append(lines, toggle("Signing prompt", !cfg.SkipSigningPrompt))
	lines = append(lines, toggle("Wait for receipt", cfg.WaitReceipt))

	return strings.Join(lines, "\n")
}

func toggle(label string, on bool) string {
	state := lipgloss.NewStyle().Foreground(styles.CMuted).Render("off")
	if on {
		state = lipgloss.NewStyle().Foreground(styles.CAccent).Render("on")
	}
	return "  " + lipgloss.NewStyle().Foreground(styles.CText).Render(label+": ") + state
}
