package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/atomicstack/style-browser/internal/app"
	"github.com/atomicstack/style-browser/internal/library"
	"github.com/atomicstack/style-browser/internal/model"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig       = "STYLE_BROWSER_CONFIG"
	envLibrary      = "STYLE_BROWSER_LIBRARY"
	envPreviewSizes = "STYLE_BROWSER_PREVIEW_SIZES"
	envWidth        = "STYLE_BROWSER_WIDTH"
	envHeight       = "STYLE_BROWSER_HEIGHT"
	envSort         = "STYLE_BROWSER_SORT"
	envTrace        = "STYLE_BROWSER_TRACE"
	envLogFile      = "STYLE_BROWSER_LOG_FILE"

	defaultConfigPath  = "~/.config/style-browser/config.toml"
	defaultLibraryPath = "~/.config/style-browser/library.toml"
)

// fileConfig is the optional TOML config file. Every field is a default
// that environment variables and flags override.
type fileConfig struct {
	Library      string   `toml:"library"`
	PreviewSizes []string `toml:"preview_sizes"`
	Width        int      `toml:"width"`
	Height       int      `toml:"height"`
	Sort         string   `toml:"sort"`
	Trace        bool     `toml:"trace"`
	LogFile      string   `toml:"log_file"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Flags beat
// environment variables, which beat the config file.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	configPath, explicit := locateConfig(args, env)
	file, err := readFile(configPath, explicit)
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("style-browser", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", configPath, "path to a TOML config file")
	libraryPath := fs.String("library", envOrDefault(env, envLibrary, orDefault(file.Library, defaultLibraryPath)), "path to the style library TOML file")
	sizes := fs.String("preview-sizes", envOrDefault(env, envPreviewSizes, strings.Join(file.PreviewSizes, ",")), "extra preview sizes, e.g. 32,48x24")
	width := fs.Int("width", envOrInt(env, envWidth, file.Width), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, file.Height), "desired viewport height in rows (0 uses terminal height)")
	sortOrder := fs.String("sort", envOrDefault(env, envSort, orDefault(file.Sort, "ascending")), "initial sort order: ascending or descending")
	trace := fs.Bool("trace", envOrBool(env, envTrace, file.Trace), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, file.LogFile), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	previewSizes, err := parseSizes(*sizes)
	if err != nil {
		return Config{}, err
	}
	descending, err := parseSort(*sortOrder)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			LibraryPath:  strings.TrimSpace(*libraryPath),
			PreviewSizes: previewSizes,
			Width:        *width,
			Height:       *height,
			Descending:   descending,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File: configPath,
		Flags: map[string]string{
			"library":       *libraryPath,
			"preview-sizes": *sizes,
			"width":         strconv.Itoa(*width),
			"height":        strconv.Itoa(*height),
			"sort":          *sortOrder,
			"trace":         strconv.FormatBool(*trace),
			"logFile":       *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// locateConfig finds the config file path before the flag set exists,
// since the file supplies the flag defaults. The bool reports whether the
// user named the file.
func locateConfig(args []string, env map[string]string) (string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value, true
		}
		if i+1 < len(args) {
			return args[i+1], true
		}
	}
	if v, ok := env[envConfig]; ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	return defaultConfigPath, false
}

func readFile(path string, explicit bool) (fileConfig, error) {
	var file fileConfig
	resolved, err := library.ExpandPath(path)
	if err != nil {
		return file, fmt.Errorf("config path: %w", err)
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return file, nil
		}
		return file, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parse config %s: %w", resolved, err)
	}
	return file, nil
}

func parseSizes(raw string) ([]model.Size, error) {
	var sizes []model.Size
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		size, err := model.ParseSize(part)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}

func parseSort(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "asc", "ascending":
		return false, nil
	case "desc", "descending":
		return true, nil
	}
	return false, fmt.Errorf("sort must be ascending or descending (got %q)", raw)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.LibraryPath == "" {
		return fmt.Errorf("a library path is required")
	}
	return nil
}
