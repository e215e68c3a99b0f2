package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration.
type Config struct {
	Theme       ThemeConfig      `toml:"theme"`
	Ruler       RulerConfig      `toml:"ruler"`
	Display     DisplayConfig    `toml:"display"`
	Keybindings KeybindingConfig `toml:"keybindings"`
}

// ThemeConfig defines the color scheme. All values are hex colors.
type ThemeConfig struct {
	Background       string   `toml:"background"`       // outside the recorded range
	BackgroundValid  string   `toml:"background_valid"` // inside the recorded range
	HeaderBackground string   `toml:"header_background"`
	RulerLine        string   `toml:"ruler_line"`
	GridLine         string   `toml:"grid_line"`
	Text             string   `toml:"text"`
	TextMuted        string   `toml:"text_muted"`
	Cursor           string   `toml:"cursor"`
	Marker           string   `toml:"marker"`
	Selection        string   `toml:"selection"`
	Undefined        string   `toml:"undefined"`
	HighImpedance    string   `toml:"high_impedance"`
	SignalColors     []string `toml:"signal_colors"` // assigned round-robin to rows
}

// RulerConfig controls the time ruler and background grid.
type RulerConfig struct {
	TickDensity   float64 `toml:"tick_density"` // 0.5 sparse .. 1.0 dense
	TextSize      float64 `toml:"text_size"`    // label font size in pixels
	TimeUnit      string  `toml:"time_unit"` // preferred display unit ("ns", ...)
	ShowGridLines bool    `toml:"show_grid_lines"`
}

// DisplayConfig holds layout options.
type DisplayConfig struct {
	RowHeight    int `toml:"row_height"`    // base signal row height in pixels
	HeaderHeight int `toml:"header_height"` // ruler header height in pixels
}

// KeybindingConfig allows customizing keybindings.
type KeybindingConfig struct {
	Quit      []string `toml:"quit"`
	ZoomIn    []string `toml:"zoom_in"`
	ZoomOut   []string `toml:"zoom_out"`
	PanLeft   []string `toml:"pan_left"`
	PanRight  []string `toml:"pan_right"`
	FitAll    []string `toml:"fit_all"`
	GotoTime  []string `toml:"goto_time"`
	SetMarker []string `toml:"set_marker"`
	ZoomROI   []string `toml:"zoom_roi"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Theme: ThemeConfig{
			Background:       "#141414",
			BackgroundValid:  "#1e1e1e",
			HeaderBackground: "#262626",
			RulerLine:        "#5a5a5a",
			GridLine:         "#3e3e42",
			Text:             "#d4d4d4",
			TextMuted:        "#808080",
			Cursor:           "#ffcc00",
			Marker:           "#ff5555",
			Selection:        "#3a6ea5",
			Undefined:        "#e05555",
			HighImpedance:    "#c8a030",
			SignalColors: []string{
				"#33c3a0", "#569cd6", "#dcdcaa", "#c586c0",
				"#4ec9b0", "#ce9178", "#9cdcfe", "#d16969",
			},
		},
		Ruler: RulerConfig{
			TickDensity:   0.8,
			TextSize:      10,
			TimeUnit:      "ns",
			ShowGridLines: true,
		},
		Display: DisplayConfig{
			RowHeight:    20,
			HeaderHeight: 24,
		},
		Keybindings: KeybindingConfig{
			Quit:      []string{"q", "ctrl+c"},
			ZoomIn:    []string{"+", "="},
			ZoomOut:   []string{"-"},
			PanLeft:   []string{"h"},
			PanRight:  []string{"l"},
			FitAll:    []string{"f"},
			GotoTime:  []string{"t"},
			SetMarker: []string{"m"},
			ZoomROI:   []string{"r"},
		},
	}
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "wavescout", "config.toml")
}

// Load reads config from the default path, falling back to defaults
// for a missing file.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads config from a specific path. A malformed file is an
// error; silently ignoring it would make color typos very hard to find.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk, creating directories as needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SignalColor returns the theme color for the i-th signal row.
func (t ThemeConfig) SignalColor(i int) string {
	if len(t.SignalColors) == 0 {
		return "#33c3a0"
	}
	return t.SignalColors[i%len(t.SignalColors)]
}
