package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vedanttarate/gesture-detection/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	endpoint := flag.String("endpoint", "http://localhost:8000/predict", "prediction service endpoint")
	flag.Parse()

	if *showVersion {
		fmt.Printf("gesture-detection %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
		os.Exit(0)
	}

	p := tea.NewProgram(ui.InitialModel(*endpoint), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
