package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ripopov/wavescout/internal/canvas"
	"github.com/ripopov/wavescout/internal/config"
	"github.com/ripopov/wavescout/internal/ui"
	"github.com/ripopov/wavescout/internal/vcd"
	"github.com/ripopov/wavescout/internal/wave"
	"github.com/ripopov/wavescout/pkg/timefmt"
)

func main() {
	outFlag := flag.String("o", "", "Render a PNG snapshot to this path instead of starting the UI")
	widthFlag := flag.Int("W", 1920, "Snapshot width in pixels")
	heightFlag := flag.Int("H", 1080, "Snapshot height in pixels")
	configFlag := flag.String("config", "", "Config file path (default: user config dir)")
	logFlag := flag.String("log", "", "Write debug logs to this file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wavescout [-o out.png] [-W width] [-H height] <file.vcd>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	if *logFlag != "" {
		f, err := os.Create(*logFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	db, err := vcd.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if *outFlag != "" {
		if err := snapshot(db, cfg, *outFlag, *widthFlag, *heightFlag, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	model := ui.NewModel(db, path, cfg, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// snapshot renders the whole trace into a single PNG.
func snapshot(db *vcd.File, cfg *config.Config, out string, width, height int, logger *slog.Logger) error {
	vars := db.Vars()
	rows := make([]canvas.Row, 0, len(vars))
	budget := height - cfg.Display.HeaderHeight
	for _, v := range vars {
		if budget < cfg.Display.RowHeight {
			break
		}
		rows = append(rows, canvas.Row{ID: v.ID, Name: v.Name, Format: wave.DefaultFormat(v)})
		budget -= cfg.Display.RowHeight
	}

	unit, ok := timefmt.UnitFromString(cfg.Ruler.TimeUnit)
	if !ok {
		unit = timefmt.Nanoseconds
	}
	img, err := canvas.Snapshot(canvas.Params{
		Width:         width,
		Height:        height,
		Viewport:      wave.NewViewport(db.TotalDuration()),
		Rows:          rows,
		RowHeight:     cfg.Display.RowHeight,
		HeaderHeight:  cfg.Display.HeaderHeight,
		Theme:         cfg.Theme,
		TickDensity:   cfg.Ruler.TickDensity,
		TextSize:      cfg.Ruler.TextSize,
		TimeUnit:      unit,
		ShowGridLines: cfg.Ruler.ShowGridLines,
		Selected:      -1,
	}, db, logger)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
