package main

import (
	"simple-storage-tui/styles"
)

// -------------------- THEME (Lip Gloss) --------------------
// Styles now come from the styles package

var (
	cBorder  = styles.CBorder
	cMuted   = styles.CMuted
	cText    = styles.CText
	cAccent  = styles.CAccent
	cAccent2 = styles.CAccent2
	cWarn    = styles.CWarn
	cDanger  = styles.CDanger

	appStyle   = styles.AppStyle
	panelStyle = styles.PanelStyle
)
