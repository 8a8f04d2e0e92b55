package storage

import (
	"strings"

	"simple-storage-tui/dapp"
	"simple-storage-tui/helpers"
	"simple-storage-tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
)

// Nav returns the navigation bar for the storage view
func Nav(width int, inputFocused bool, connected bool) string {
	var keys []string
	if inputFocused {
		keys = []string{
			styles.Key("Enter") + " set value",
			styles.Key("Esc") + " leave input",
		}
	} else {
		if connected {
			keys = append(keys,
				styles.Key("Tab")+" input",
				styles.Key("r")+" refresh",
				styles.Key("y")+" copy address",
				styles.Key("x")+" qr",
				styles.Key("d")+" disconnect",
			)
		} else {
			keys = append(keys, styles.Key("c")+" connect")
		}
		keys = append(keys,
			styles.Key("s")+" settings",
			styles.Key("l")+" logger",
			styles.Key("q")+" quit",
		)
	}
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

// RenderValue renders the contract value card
func RenderValue(v dapp.RemoteValue, enabled bool, spinnerView string) string {
	h := styles.MutedStyle.Render("Contract Value")

	var body string
	switch {
	case !enabled:
		// nothing read on this connection
		return h + "\n" + styles.MutedStyle.Render("—")
	case v.Loading && !v.Available():
		body = spinnerView + " Loading..."
	case v.Available():
		body = lipgloss.NewStyle().Foreground(styles.CText).Bold(true).Render(helpers.FormatValue(v.Raw))
		if v.Loading {
			body += " " + spinnerView
		}
	default:
		body = styles.MutedStyle.Render("unavailable")
	}

	foot := styles.MutedStyle.Render(helpers.ReadAt(v.FetchedAt, v.Loading))
	if v.Err != nil && !v.Loading {
		foot = lipgloss.NewStyle().Foreground(styles.CWarn).Render("⚠ read unavailable, press ") + styles.Key("r")
	}
	return h + "\n" + body + "\n" + foot
}

// RenderStatus renders the transaction status line
func RenderStatus(tx dapp.Transaction) string {
	switch tx.Status {
	case dapp.StatusPending:
		return lipgloss.NewStyle().Foreground(styles.CWarn).Render("⏳ Transaction pending...")
	case dapp.StatusSuccess:
		line := lipgloss.NewStyle().Foreground(styles.CAccent).Render("✅ Transaction sent")
		if tx.TxHash != (common.Hash{}) {
			line += " " + styles.MutedStyle.Render(helpers.ShortenAddr(tx.TxHash.Hex()))
		}
		return line
	case dapp.StatusError:
		return lipgloss.NewStyle().Foreground(styles.CDanger).Render("❌ " + tx.Kind.Message())
	}
	return ""
}

// RenderForm renders the value input and the Set Value button
func RenderForm(inputView string, canSubmit bool, pending bool) string {
	label := "Set Value"
	if pending {
		label = "Updating..."
	}
	button := styles.DisabledButtonStyle.Render(label)
	if canSubmit {
		button = styles.ButtonStyle.Render(label)
	}
	return inputView + "\n\n" + button
}

// RenderQR renders an EIP-681 QR code for signing on another device
func RenderQR(uri string) string {
	return styles.TitleStyle.Render("Sign on mobile (EIP-681)") + "\n\n" +
		helpers.QRCode(uri) + "\n" +
		styles.MutedStyle.Render(uri) + "\n\n" +
		styles.MutedStyle.Render("Press ESC or x to close")
}
