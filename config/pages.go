package config

// Page identifies a screen of the app
type Page int

const (
	PageStorage Page = iota
	PageSettings
)
