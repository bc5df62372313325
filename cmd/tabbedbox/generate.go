package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/piwi3910/tabbedbox/internal/engine"
	"github.com/piwi3910/tabbedbox/internal/export"
	"github.com/piwi3910/tabbedbox/internal/gcode"
	"github.com/piwi3910/tabbedbox/internal/importer"
	"github.com/piwi3910/tabbedbox/internal/model"
	"github.com/piwi3910/tabbedbox/internal/project"
)

// outputFlags are shared by generate and batch.
type outputFlags struct {
	format  string
	stock   string
	trim    float64
	waste   float64
	tool    string
	profile string
	verbose bool
}

func registerOutputFlags(fs *flag.FlagSet, cfg model.AppConfig) *outputFlags {
	o := &outputFlags{}
	fs.StringVar(&o.format, "format", "", "output format: svg, dxf, pdf, labels, xlsx, stl, json, gcode (default from file extension)")
	fs.StringVar(&o.stock, "stock", "", "nest pieces onto this inventory stock sheet, one file per sheet")
	fs.Float64Var(&o.trim, "trim", 0, "unusable border around each stock sheet")
	fs.Float64Var(&o.waste, "waste", 10, "waste percentage for the material estimate")
	fs.StringVar(&o.tool, "tool", "", "inventory tool whose feeds and speeds are used for G-code")
	fs.StringVar(&o.profile, "profile", cfg.Machine.GCodeProfile, "G-code post-processor profile")
	fs.BoolVar(&o.verbose, "v", false, "debug logging to stderr")
	return o
}

// job is everything needed to write one generated box.
type job struct {
	cfg     model.AppConfig
	out     *outputFlags
	format  export.Format
	res     model.BoxResult
	path    string
	stdout  io.Writer
	written []string
}

func runGenerate(args []string) error {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	base, err := baseOptions(cfg, presetName(args))
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.String("preset", "", "start from a saved preset")
	bf := registerBoxFlags(fs, base)
	of := registerOutputFlags(fs, cfg)
	outPath := fs.String("o", "", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogging(of.verbose)

	if *outPath == "" {
		return fmt.Errorf("an output file is required (-o)")
	}
	format, err := resolveFormat(of.format, *outPath, cfg)
	if err != nil {
		return err
	}

	opts, err := bf.options()
	if err != nil {
		return err
	}
	res, err := generateBox(context.Background(), opts)
	if err != nil {
		return err
	}

	j := &job{cfg: cfg, out: of, format: format, res: res, path: *outPath, stdout: os.Stdout}
	if err := j.write(); err != nil {
		return err
	}

	for _, p := range j.written {
		cfg.AddRecentOutput(p)
	}
	if err := project.SaveAppConfig(project.DefaultConfigPath(), cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save config: %v\n", err)
	}
	return nil
}

// resolveFormat picks the format from the flag, the file extension, then
// the configured default.
func resolveFormat(flagValue, path string, cfg model.AppConfig) (export.Format, error) {
	if flagValue != "" {
		return export.ParseFormat(flagValue)
	}
	if f, err := export.FormatFromPath(path); err == nil {
		return f, nil
	}
	return export.ParseFormat(cfg.DefaultFormat)
}

func generateBox(ctx context.Context, opts model.BoxOptions) (model.BoxResult, error) {
	settings, err := opts.Resolve()
	if err != nil {
		return model.BoxResult{}, err
	}
	return engine.New(settings).Generate(ctx)
}

// write writes the box to j.path, or one file per sheet when nesting.
func (j *job) write() error {
	sheets := []model.BoxResult{j.res}
	var est *model.MaterialEstimate

	if j.out.stock != "" {
		inv, _, err := project.LoadOrCreateInventory()
		if err != nil {
			return fmt.Errorf("failed to load inventory: %w", err)
		}
		stock := inv.FindStock(j.out.stock)
		if stock == nil {
			return fmt.Errorf("stock %q not found in inventory", j.out.stock)
		}

		nest := engine.NewNester(j.res.Settings.Kerf, j.out.trim).NestBox(j.res, []model.StockPreset{*stock})
		if len(nest.Unplaced) > 0 {
			return fmt.Errorf("pieces do not fit on %s: %s", stock.Name, strings.Join(nest.Unplaced, ", "))
		}
		sheets = sheets[:0]
		for i, s := range nest.Sheets {
			sheets = append(sheets, engine.ArrangeSheet(j.res, s))
			fmt.Fprintf(j.stdout, "Sheet %d: %d pieces, %.1f%% used\n", i+1, len(s.Placements), s.Efficiency())
		}

		e := model.EstimateMaterial(j.res, *stock, j.out.waste)
		est = &e
		fmt.Fprintf(j.stdout, "Estimate: %d sheets (%d with %.0f%% waste), cut length %.0f %s, cost %.2f\n",
			e.SheetsNeededMin, e.SheetsWithWaste, e.WastePercent, e.CutLength, j.res.Settings.Unit, e.EstimatedCost)
	}

	if j.format == export.FormatGCode {
		return j.writeGCode(sheets)
	}
	for i, sheet := range sheets {
		path := sheetPath(j.path, i, len(sheets))
		if err := writeSheet(path, j.format, sheet, est); err != nil {
			return err
		}
		j.written = append(j.written, path)
		fmt.Fprintf(j.stdout, "Wrote %s (%d pieces)\n", path, len(sheet.Pieces))
	}
	return nil
}

func writeSheet(path string, f export.Format, res model.BoxResult, est *model.MaterialEstimate) error {
	if f != export.FormatXLSX || est == nil {
		return export.WriteFile(path, f, res)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.ExportCutList(out, res, est); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (j *job) writeGCode(sheets []model.BoxResult) error {
	machine := j.cfg.Machine
	if j.out.tool != "" {
		inv, _, err := project.LoadOrCreateInventory()
		if err != nil {
			return fmt.Errorf("failed to load inventory: %w", err)
		}
		tool := inv.FindToolByName(j.out.tool)
		if tool == nil {
			return fmt.Errorf("tool %q not found in inventory", j.out.tool)
		}
		tool.ApplyToMachine(&machine)
	}

	custom, err := project.LoadCustomProfilesFromDefault()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}
	profile, ok := project.FindProfile(j.out.profile, custom)
	if !ok {
		return fmt.Errorf("unknown G-code profile %q", j.out.profile)
	}
	machine.GCodeProfile = profile.Name

	codes, err := gcode.NewWithProfile(machine, profile).GenerateAll(sheets)
	if err != nil {
		return err
	}
	for i, code := range codes {
		collisions, err := gcode.CheckClampCollisions(sheets[i], machine)
		if err != nil {
			return err
		}
		for _, w := range gcode.FormatCollisionWarnings(collisions) {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}

		path := sheetPath(j.path, i, len(codes))
		if err := os.WriteFile(path, []byte(code), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		j.written = append(j.written, path)
		st := gcode.ComputeStats(gcode.ParseGCode(code), gcode.DefaultRapidRate)
		fmt.Fprintf(j.stdout, "Wrote %s (%d moves, about %.1f min)\n", path, st.Moves, st.Minutes)
	}
	return nil
}

// sheetPath numbers the output file when there is more than one sheet:
// box.svg becomes box-sheet2.svg.
func sheetPath(path string, i, n int) string {
	if n <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-sheet%d%s", strings.TrimSuffix(path, ext), i+1, ext)
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// fileName turns a job name into a safe file name stem.
func fileName(name string) string {
	s := strings.Trim(unsafeName.ReplaceAllString(name, "_"), "_")
	if s == "" {
		return "box"
	}
	return s
}

func runBatch(args []string) error {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	input := fs.String("i", "", "CSV or Excel box list")
	dir := fs.String("dir", ".", "output directory")
	preset := fs.String("preset", "", "preset supplying options the list leaves out")
	of := registerOutputFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogging(of.verbose)

	if *input == "" {
		return fmt.Errorf("an input file is required (-i)")
	}
	format, err := resolveFormat(of.format, "", cfg)
	if err != nil {
		return err
	}
	base, err := baseOptions(cfg, *preset)
	if err != nil {
		return err
	}

	imp := importer.ImportFile(*input, base)
	for _, w := range imp.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	for _, e := range imp.Errors {
		fmt.Fprintln(os.Stderr, "error:", e)
	}
	if len(imp.Jobs) == 0 {
		return fmt.Errorf("no boxes to generate in %s", *input)
	}
	if err := os.MkdirAll(*dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", *dir, err)
	}

	ext := string(format)
	switch format {
	case export.FormatLabels:
		ext = "pdf"
	case export.FormatGCode:
		ext = "nc"
	}

	ctx := context.Background()
	for _, bj := range imp.Jobs {
		res, err := generateBox(ctx, bj.Options)
		if err != nil {
			return fmt.Errorf("%s: %w", bj.Name, err)
		}
		j := &job{
			cfg:    cfg,
			out:    of,
			format: format,
			res:    res,
			path:   filepath.Join(*dir, fileName(bj.Name)+"."+ext),
			stdout: os.Stdout,
		}
		if bj.Quantity > 1 {
			fmt.Printf("%s: quantity %d\n", bj.Name, bj.Quantity)
		}
		if err := j.write(); err != nil {
			return fmt.Errorf("%s: %w", bj.Name, err)
		}
	}
	if len(imp.Errors) > 0 {
		return fmt.Errorf("%d rows could not be imported", len(imp.Errors))
	}
	return nil
}
