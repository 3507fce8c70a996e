package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/habitual/internal/export"
	"github.com/sadopc/habitual/internal/logger"
	"github.com/sadopc/habitual/internal/store"
	"github.com/sadopc/habitual/internal/tui"
)

var cli struct {
	DB     string `help:"Path to the database file." type:"path"`
	Debug  bool   `help:"Enable debug logging to stderr."`
	Seed   bool   `help:"Seed sample habits when the database is empty."`
	Reset  bool   `help:"Delete all stored data and exit."`
	Export string `help:"Write a full JSON backup to PATH and exit." placeholder:"PATH" type:"path"`
	Import string `help:"Replace all data from a JSON backup at PATH and exit." placeholder:"PATH" type:"path"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("habitual"),
		kong.Description("Habit tracking and focus timer for the terminal."),
	)

	dbPath := cli.DB
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	lg, err := logger.New(filepath.Dir(dbPath), cli.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error setting up logging: %v\n", err)
		os.Exit(1)
	}

	s, err := store.New(dbPath, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	switch {
	case cli.Reset:
		ctx.FatalIfErrorf(s.ResetAllData())
		fmt.Println("All data deleted.")
		return
	case cli.Export != "":
		ctx.FatalIfErrorf(export.ToJSON(s, cli.Export))
		fmt.Println("Exported to", cli.Export)
		return
	case cli.Import != "":
		ctx.FatalIfErrorf(export.FromJSON(s, cli.Import))
		fmt.Println("Imported from", cli.Import)
		return
	}

	if cli.Seed {
		rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		ctx.FatalIfErrorf(s.InitializeSampleData(rng))
	}

	app := tui.NewApp(s)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
