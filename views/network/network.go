package network

import (
	"simple-storage-tui/dapp"
	"simple-storage-tui/styles"
)

// Label is the display name of the accepted network
const Label = "Avalanche Fuji"

// Badge renders the network indicator
func Badge(conn dapp.Connection, guard dapp.Guard) string {
	if !conn.Connected {
		return styles.MutedStyle.Render("○ Not connected")
	}
	if !guard.IsAuthorized(conn.ChainID) {
		return styles.BadBadgeStyle.Render("Wrong Network")
	}
	return styles.OkBadgeStyle.Render(Label)
}
