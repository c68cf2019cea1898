package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"coinlens/console/client"
	"coinlens/console/tui"
)

func main() {
	// Load environment
	_ = godotenv.Load()

	// Parse command-line flags
	apiURL := flag.String("url", client.GetEnvOrDefault("COINLENS_API_URL", "http://localhost:8080"), "CoinLens API URL")
	flag.Parse()

	// Create the console model
	m := tui.NewModel(client.NewClient(*apiURL))

	// Create the tea program
	program := tea.NewProgram(m, tea.WithAltScreen())

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		program.Quit()
	}()

	// Run the program
	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
