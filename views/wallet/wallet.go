package wallet

import (
	"fmt"
	"strings"

	"simple-storage-tui/dapp"
	"simple-storage-tui/helpers"
	"simple-storage-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Render renders the wallet connection panel
func Render(conn dapp.Connection, connecting bool, url string, spinnerView string) string {
	h := styles.TitleStyle.Render("Wallet")

	if !conn.Connected {
		if connecting {
			return h + "\n\n" + spinnerView + " Connecting..."
		}
		button := styles.ButtonStyle.Render("Connect Wallet")
		hint := styles.MutedStyle.Render("press ") + styles.Key("c") + styles.MutedStyle.Render(" to connect")
		return h + "\n\n" + button + "\n" + hint
	}

	label := lipgloss.NewStyle().Foreground(styles.CMuted)
	var addr string
	if conn.Account != nil {
		addr = lipgloss.NewStyle().Foreground(styles.CAccent).Render(helpers.ShortenAddr(conn.Account.Hex()))
	} else {
		addr = lipgloss.NewStyle().Foreground(styles.CWarn).Render("read-only (no signing key)")
	}

	lines := []string{
		h,
		"",
		label.Render("Address: ") + addr,
		label.Render(fmt.Sprintf("Chain ID: %d", conn.ChainID)),
		label.Render("Endpoint: ") + lipgloss.NewStyle().Foreground(styles.CText).Render(url),
	}
	return strings.Join(lines, "\n")
}
