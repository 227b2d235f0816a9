package main

import (
	"fmt"
	"maps"
	"os"
	"time"

	"github.com/atomicstack/style-browser/internal/app"
	"github.com/atomicstack/style-browser/internal/config"
	"github.com/atomicstack/style-browser/internal/logging"
	"github.com/atomicstack/style-browser/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	events.App.Start(startupTracePayload(cfg))
	err := app.Run(cfg.App)
	events.App.Stop(err)
	if err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload records what the browser was asked to open and the
// terminal it is about to draw on.
func startupTracePayload(cfg config.Config) map[string]any {
	flags := maps.Clone(cfg.Flags)
	if flags == nil {
		flags = map[string]string{}
	}
	flags["trace"] = fmt.Sprint(cfg.Logging.Trace)
	flags["log-file"] = cfg.Logging.FilePath

	payload := map[string]any{
		"argv":       cfg.Args,
		"flags":      flags,
		"config":     cfg,
		"configFile": cfg.File,
		"library":    describeLibrary(cfg.App.LibraryPath),
		"terminals":  probeTerminals(),
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

type libraryFile struct {
	Path     string    `json:"path"`
	Size     int64     `json:"size,omitempty"`
	Modified time.Time `json:"modified,omitzero"`
	Error    string    `json:"error,omitempty"`
}

func describeLibrary(path string) libraryFile {
	desc := libraryFile{Path: path}
	info, err := os.Stat(path)
	if err != nil {
		desc.Error = err.Error()
		return desc
	}
	desc.Size = info.Size()
	desc.Modified = info.ModTime()
	return desc
}

type terminalProbe struct {
	Stream   string `json:"stream"`
	Terminal bool   `json:"terminal"`
	Cols     int    `json:"cols,omitempty"`
	Rows     int    `json:"rows,omitempty"`
	Error    string `json:"error,omitempty"`
}

// probeTerminals reports which standard streams are terminals and how big
// they are.
func probeTerminals() []terminalProbe {
	streams := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	probes := make([]terminalProbe, 0, len(streams))
	for _, f := range streams {
		probe := terminalProbe{Stream: f.Name()}
		fd := int(f.Fd())
		if probe.Terminal = term.IsTerminal(fd); probe.Terminal {
			cols, rows, err := term.GetSize(fd)
			if err != nil {
				probe.Error = err.Error()
			}
			probe.Cols, probe.Rows = cols, rows
		}
		probes = append(probes, probe)
	}
	return probes
}
