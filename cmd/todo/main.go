package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RaushanShrivastwa/todo-app/internal/apiclient"
	"github.com/RaushanShrivastwa/todo-app/internal/config"
	"github.com/RaushanShrivastwa/todo-app/internal/tui"
	"github.com/RaushanShrivastwa/todo-app/pkg/logger"
)

func main() {
	cfg := config.LoadClient()

	diag, err := logger.NewFile(cfg.LogPath, "info")
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
		os.Exit(1)
	}
	defer diag.Sync()

	client := apiclient.New(cfg.APIBaseURL)
	model := tui.NewModel(client, diag)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
