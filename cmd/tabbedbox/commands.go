package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/piwi3910/tabbedbox/internal/config"
	"github.com/piwi3910/tabbedbox/internal/gcode"
	"github.com/piwi3910/tabbedbox/internal/importer"
	"github.com/piwi3910/tabbedbox/internal/model"
	"github.com/piwi3910/tabbedbox/internal/project"
	"github.com/piwi3910/tabbedbox/internal/server"
)

// subcommand splits args into an action and its arguments.
func subcommand(args []string, usage string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, fmt.Errorf("usage: %s", usage)
	}
	return args[0], args[1:], nil
}

func runPresets(args []string) error {
	const usage = "tabbedbox presets list | save -name NAME [box flags] | show NAME | delete NAME"
	action, rest, err := subcommand(args, usage)
	if err != nil {
		return err
	}
	store, err := project.LoadDefaultPresets()
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	switch action {
	case "list":
		return listPresets(os.Stdout, store)

	case "save":
		cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		base, err := baseOptions(cfg, presetName(rest))
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("presets save", flag.ContinueOnError)
		name := fs.String("name", "", "preset name")
		desc := fs.String("desc", "", "preset description")
		fs.String("preset", "", "start from an existing preset")
		bf := registerBoxFlags(fs, base)
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *name == "" {
			return fmt.Errorf("a preset name is required (-name)")
		}
		opts, err := bf.options()
		if err != nil {
			return err
		}
		if _, err := opts.Resolve(); err != nil {
			return err
		}
		if old := store.FindByName(*name); old != nil {
			store.Remove(old.ID)
		}
		store.Add(model.NewPreset(*name, *desc, opts))
		if err := project.SaveDefaultPresets(store); err != nil {
			return err
		}
		fmt.Printf("Saved preset %q\n", *name)
		return nil

	case "show":
		if len(rest) != 1 {
			return fmt.Errorf("usage: %s", usage)
		}
		p := store.FindByName(rest[0])
		if p == nil {
			p = store.FindByID(rest[0])
		}
		if p == nil {
			return fmt.Errorf("preset %q not found", rest[0])
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)

	case "delete":
		if len(rest) != 1 {
			return fmt.Errorf("usage: %s", usage)
		}
		key := rest[0]
		if p := store.FindByName(key); p != nil {
			key = p.ID
		}
		if !store.Remove(key) {
			return fmt.Errorf("preset %q not found", rest[0])
		}
		return project.SaveDefaultPresets(store)
	}
	return fmt.Errorf("unknown presets action %q\nusage: %s", action, usage)
}

func listPresets(w io.Writer, store model.PresetStore) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tBOX\tUPDATED\tDESCRIPTION")
	for _, p := range store.Presets {
		o := p.Options
		fmt.Fprintf(tw, "%s\t%gx%gx%g %s, %g thick\t%s\t%s\n",
			p.Name, o.Length, o.Width, o.Height, o.Unit, o.Thickness, p.UpdatedAt, p.Description)
	}
	return tw.Flush()
}

func runInventory(args []string) error {
	const usage = "tabbedbox inventory list | import FILE | export FILE"
	action, rest, err := subcommand(args, usage)
	if err != nil {
		return err
	}
	inv, path, err := project.LoadOrCreateInventory()
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}

	switch action {
	case "list":
		return listInventory(os.Stdout, inv)
	case "import":
		if len(rest) != 1 {
			return fmt.Errorf("usage: %s", usage)
		}
		merged, err := project.ImportInventory(rest[0], inv)
		if err != nil {
			return err
		}
		if err := project.SaveInventory(path, merged); err != nil {
			return err
		}
		fmt.Printf("Inventory now has %d tools and %d stock sheets\n", len(merged.Tools), len(merged.Stocks))
		return nil
	case "export":
		if len(rest) != 1 {
			return fmt.Errorf("usage: %s", usage)
		}
		return project.ExportInventory(rest[0], inv)
	}
	return fmt.Errorf("unknown inventory action %q\nusage: %s", action, usage)
}

func listInventory(w io.Writer, inv model.Inventory) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STOCK\tSIZE\tMATERIAL\tPRICE")
	for _, s := range inv.Stocks {
		fmt.Fprintf(tw, "%s\t%gx%gx%g\t%s\t%.2f\n", s.Name, s.Width, s.Height, s.Thickness, s.Material, s.PricePerSheet)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "TOOL\tDIAMETER\tFEED/PLUNGE\tSPINDLE")
	for _, t := range inv.Tools {
		fmt.Fprintf(tw, "%s\t%g\t%g/%g\t%d\n", t.Name, t.ToolDiameter, t.FeedRate, t.PlungeRate, t.SpindleSpeed)
	}
	return tw.Flush()
}

func runProfiles(args []string) error {
	const usage = "tabbedbox profiles list | import FILE | export NAME FILE"
	action, rest, err := subcommand(args, usage)
	if err != nil {
		return err
	}
	custom, err := project.LoadCustomProfilesFromDefault()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	switch action {
	case "list":
		for _, name := range model.GetProfileNames() {
			fmt.Printf("%s (built-in)\n", name)
		}
		for _, p := range custom {
			fmt.Printf("%s\n", p.Name)
		}
		return nil
	case "import":
		if len(rest) != 1 {
			return fmt.Errorf("usage: %s", usage)
		}
		p, err := project.ImportProfile(rest[0])
		if err != nil {
			return err
		}
		p.IsBuiltIn = false
		kept := custom[:0]
		for _, c := range custom {
			if c.Name != p.Name {
				kept = append(kept, c)
			}
		}
		if err := project.SaveCustomProfiles(project.DefaultProfilesPath(), append(kept, p)); err != nil {
			return err
		}
		fmt.Printf("Imported profile %q\n", p.Name)
		return nil
	case "export":
		if len(rest) != 2 {
			return fmt.Errorf("usage: %s", usage)
		}
		p, ok := project.FindProfile(rest[0], custom)
		if !ok {
			return fmt.Errorf("profile %q not found", rest[0])
		}
		return project.ExportProfile(rest[1], p)
	}
	return fmt.Errorf("unknown profiles action %q\nusage: %s", action, usage)
}

func runBackup(args []string) error {
	const usage = "tabbedbox backup export FILE | import FILE"
	action, rest, err := subcommand(args, usage)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("usage: %s", usage)
	}

	switch action {
	case "export":
		data, err := project.SnapshotDefaults()
		if err != nil {
			return err
		}
		return project.ExportAllData(rest[0], data)
	case "import":
		data, err := project.ImportAllData(rest[0])
		if err != nil {
			return err
		}
		if err := project.RestoreDefaults(data); err != nil {
			return err
		}
		fmt.Printf("Restored backup from %s (%s)\n", rest[0], data.CreatedAt)
		return nil
	}
	return fmt.Errorf("unknown backup action %q\nusage: %s", action, usage)
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: tabbedbox inspect FILE.dxf")
	}

	res := importer.ImportDXF(fs.Arg(0))
	for _, w := range res.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			fmt.Fprintln(os.Stderr, "error:", e)
		}
		return fmt.Errorf("failed to read %s", fs.Arg(0))
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PIECE\tSIZE\tPATHS\tHOLES\tCUT LENGTH")
	for _, p := range res.Pieces {
		fmt.Fprintf(tw, "%s\t%.2fx%.2f\t%d\t%d\t%.1f\n", p.Name, p.Width, p.Height, len(p.Paths), len(p.Circles), p.CutLength())
	}
	return tw.Flush()
}

func runGCodeStats(args []string) error {
	fs := flag.NewFlagSet("gcode-stats", flag.ContinueOnError)
	rapid := fs.Float64("rapid", gcode.DefaultRapidRate, "rapid traverse rate, mm/min")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: tabbedbox gcode-stats [-rapid RATE] FILE")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	st := gcode.ComputeStats(gcode.ParseGCode(string(data)), *rapid)
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}
	fmt.Printf("Moves:     %d (%d plunges, %d arcs)\n", st.Moves, st.Plunges, st.Arcs)
	fmt.Printf("Cutting:   %.1f mm\n", st.CutDistance)
	fmt.Printf("Rapids:    %.1f mm\n", st.RapidDistance)
	fmt.Printf("Depth:     %.2f mm\n", st.MaxDepth)
	fmt.Printf("Extent:    %.1f x %.1f mm\n", st.Max.X-st.Min.X, st.Max.Y-st.Min.Y)
	fmt.Printf("Time:      %.1f min\n", st.Minutes)
	return nil
}

func runEnums(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("usage: tabbedbox enums")
	}
	return printEnums(os.Stdout)
}

func printEnums(w io.Writer) error {
	choices := model.EnumChoices()
	keys := make([]string, 0, len(choices))
	for k := range choices {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s:\n", k)
		for _, c := range choices[k] {
			fmt.Fprintf(w, "  %d  %s\n", c.Value, c.Name)
		}
	}
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if *verbose {
		setupLogging(true)
	}

	cfg := config.Load()
	appCfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	inv, _, err := project.LoadOrCreateInventory()
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}

	app := server.New(cfg, server.NewBoxHandler(inv, appCfg.Machine), log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
		errc <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	done := make(chan error, 1)
	go func() { done <- app.Shutdown() }()
	select {
	case err := <-done:
		return err
	case <-time.After(10 * time.Second):
		return fmt.Errorf("shutdown timed out")
	}
}
