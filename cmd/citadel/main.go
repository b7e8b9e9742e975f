// Command citadel computes troop requirements for a loadout file.
//
//	citadel [-config file] [-catalog file] [-copy] [-server url] loadout.yaml
//
// The loadout file is YAML with the same fields as the web form; "-" reads stdin.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/pefman/citadel-calc/internal/api"
	"github.com/pefman/citadel-calc/internal/catalog"
	"github.com/pefman/citadel-calc/internal/config"
	"github.com/pefman/citadel-calc/internal/game"
	"github.com/pefman/citadel-calc/internal/logger"
	"github.com/pefman/citadel-calc/internal/models"
)

var writeClipboard = clipboard.WriteAll

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fl := flag.NewFlagSet("citadel", flag.ContinueOnError)
	fl.SetOutput(stderr)
	configPath := fl.String("config", "", "YAML config file (default $CITADEL_CONFIG)")
	catalogPath := fl.String("catalog", "", "catalog JSON file (default: embedded sample)")
	copyOut := fl.Bool("copy", false, "copy the export text to the clipboard")
	serverURL := fl.String("server", "", "calculate on a running server instead of locally")
	fl.Usage = func() {
		fmt.Fprintln(stderr, "usage: citadel [-config file] [-catalog file] [-copy] [-server url] loadout.yaml")
		fl.PrintDefaults()
	}
	if err := fl.Parse(args); err != nil {
		return 2
	}
	if fl.NArg() != 1 {
		fl.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	log := logger.Must(cfg.LogLevel, cfg.LogEncoding).Named("cli")
	defer func() { _ = log.Sync() }()
	if err != nil {
		log.Error("load config", zap.Error(err))
		return 1
	}
	if *catalogPath != "" {
		cfg.CatalogPath = *catalogPath
	}

	in, err := readLoadout(fl.Arg(0), stdin)
	if err != nil {
		log.Error("read loadout", zap.Error(err))
		return 1
	}

	var (
		rep   *game.Report
		warns []models.Warning
	)
	if *serverURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		res, err := api.NewClient(*serverURL).Calculate(ctx, in)
		if err != nil {
			log.Error("calculate on server", zap.String("server", *serverURL), zap.Error(err))
			return 1
		}
		rep, warns = res.Report, res.Warnings
	} else {
		cat, err := loadCatalog(cfg.CatalogPath)
		if err != nil {
			log.Error("load catalog", zap.String("path", cfg.CatalogPath), zap.Error(err))
			return 1
		}
		l := game.NewLoadout(cat, cfg.Tuning)
		for _, err := range l.Apply(in) {
			warns = append(warns, models.NewWarning(err))
		}
		rep = l.Calculate()
	}
	if rep == nil {
		log.Error("server returned no report")
		return 1
	}

	for _, w := range warns {
		fmt.Fprintf(stderr, "warning: %s\n", w.Message)
	}
	printReport(stdout, rep)

	if *copyOut {
		if err := writeClipboard(rep.Text); err != nil {
			// needs xclip/xsel or wl-clipboard on Linux
			log.Warn("clipboard copy failed, printing export instead", zap.Error(err))
			fmt.Fprintf(stdout, "\n%s\n", rep.Text)
		} else {
			fmt.Fprintln(stderr, "Export copied to clipboard.")
		}
	}
	return 0
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(path)
}

func readLoadout(path string, stdin io.Reader) (game.Input, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return game.Input{}, err
	}
	var in game.Input
	if err := yaml.Unmarshal(b, &in); err != nil {
		return game.Input{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return in, nil
}

func printReport(w io.Writer, rep *game.Report) {
	fmt.Fprintf(w, "%s, %s\n", rep.CitadelLabel, rep.ModeLabel)
	if rep.FirstStrikeLosses > 0 {
		fmt.Fprintf(w, "First strike losses: %d\n", rep.FirstStrikeLosses)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Slot\tTroop\tBonus\tTarget HP\tRequired")
	for _, s := range rep.Slots {
		if s.Troop == "" {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%g%%\t%.0f\t%d\n", s.Label, s.Troop, s.EffectiveBonus, s.Target, s.Required)
	}
	if rep.Wall.Troop != "" {
		fmt.Fprintf(tw, "Wall\t%s\t%g%%\t%.0f\t%d\n", rep.Wall.Troop, rep.Wall.EffectiveBonus, rep.Wall.WallHP, rep.Wall.Required)
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 24))
	fmt.Fprintln(w, rep.Text)
}
