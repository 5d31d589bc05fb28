package main

import (
	"flag"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()
	setupLogging(*debug)
	loadEmbeddedEnv()
	log.Debugf("blockfall start debug=%v", *debug)
	program := tea.NewProgram(NewModel(), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Errorf("program error: %v", err)
		os.Exit(1)
	}
}
