// tabbedbox generates cut files for finger-jointed boxes.
//
// Usage:
//
//	tabbedbox generate -length 80 -width 100 -depth 40 -thickness 3 -o box.svg
//	tabbedbox generate -preset drawer -stock "Plywood 600x400x3" -o drawer.nc
//	tabbedbox batch -i boxes.xlsx -dir out/
//	tabbedbox presets list|save|show|delete
//	tabbedbox serve
//
// Set STDERR_LOG or pass -v for debug logging.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/piwi3910/tabbedbox/internal/engine"
	"github.com/piwi3910/tabbedbox/internal/model"
)

const usageText = `Usage: tabbedbox <command> [flags]

Commands:
  generate     generate one box and write it to a file
  batch        generate every box listed in a CSV or Excel file
  presets      list, save, show or delete named box presets
  inventory    list or import stock sheets and tools
  profiles     list, import or export G-code profiles
  backup       export or import all saved settings
  inspect      list the pieces of a DXF file
  gcode-stats  summarise a G-code program
  enums        list accepted enum values
  serve        run the HTTP API

Run "tabbedbox <command> -h" for the flags of a command.
`

type command func(args []string) error

var commands = map[string]command{
	"generate":    runGenerate,
	"batch":       runBatch,
	"presets":     runPresets,
	"inventory":   runInventory,
	"profiles":    runProfiles,
	"backup":      runBackup,
	"inspect":     runInspect,
	"gcode-stats": runGCodeStats,
	"enums":       runEnums,
	"serve":       runServe,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}
	name, args := os.Args[1], os.Args[2:]
	if name == "help" || name == "-h" || name == "--help" {
		fmt.Print(usageText)
		return
	}
	run, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "tabbedbox: unknown command %q\n\n%s", name, usageText)
		os.Exit(2)
	}
	if err := run(args); err != nil {
		os.Exit(reportError(os.Stderr, err))
	}
}

// reportError prints err and returns the exit status. Validation problems
// are printed one per line.
func reportError(w io.Writer, err error) int {
	var verrs model.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			fmt.Fprintln(w, e)
		}
		return 1
	}
	fmt.Fprintln(w, "tabbedbox:", err)
	return 1
}

// setupLogging sends engine debug logs to stderr when verbose is set or
// STDERR_LOG is present in the environment.
func setupLogging(verbose bool) *slog.Logger {
	if !verbose && os.Getenv("STDERR_LOG") == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	engine.SetLogger(l)
	return l
}
