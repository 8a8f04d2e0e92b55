package main

import (
	"fmt"
	"os"
	"path/filepath"

	"simple-storage-tui/config"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// -------------------- MAIN --------------------

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Warn("could not load .env", "err", err)
	}

	settings, err := config.LoadSettings(nil)
	if err != nil {
		log.Fatal("refusing to start", "err", err)
	}

	homeDir, _ := os.UserHomeDir()
	configPath := filepath.Join(homeDir, ".simple-storage-config.json")

	m := newModel(settings, configPath)
	defer m.cancel()

	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
