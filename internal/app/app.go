package app

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/style-browser/internal/backend"
	"github.com/atomicstack/style-browser/internal/data/dispatcher"
	"github.com/atomicstack/style-browser/internal/library"
	"github.com/atomicstack/style-browser/internal/model"
	"github.com/atomicstack/style-browser/internal/preview"
	"github.com/atomicstack/style-browser/internal/style"
	"github.com/atomicstack/style-browser/internal/ui"
	"github.com/atomicstack/style-browser/internal/view"
)

// Config describes user-provided application options.
type Config struct {
	LibraryPath  string
	PreviewSizes []model.Size
	Width        int
	Height       int
	Descending   bool
}

// session is the registry and the layers stacked on it for one run.
type session struct {
	library  *style.Library
	renderer *preview.Renderer
	view     *view.View
}

// openSession loads the library file into a fresh registry and builds the
// preview renderer and the view over it.
func openSession(cfg Config) (*session, error) {
	snap, err := library.Load(cfg.LibraryPath)
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	lib := style.NewLibrary()
	if res := dispatcher.New(lib).Apply(snap); res.Err != nil {
		return nil, fmt.Errorf("apply library %s: %w", snap.Path, res.Err)
	}
	order := view.Ascending
	if cfg.Descending {
		order = view.Descending
	}
	renderer := preview.New(lib)
	v := view.New(lib, view.WithPreviewer(renderer), view.WithSortOrder(order))
	v.Model().SetPreviewSizes(cfg.PreviewSizes)
	return &session{library: lib, renderer: renderer, view: v}, nil
}

func (s *session) Close() {
	s.view.Close()
	s.renderer.Close()
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	// The watcher republishes the file it just read; applying it again
	// changes nothing.
	watcher, err := backend.NewWatcher(cfg.LibraryPath, backend.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("watch library: %w", err)
	}
	defer watcher.Stop()

	m := ui.NewModel(s.library, s.view, cfg.Width, cfg.Height, watcher)
	defer m.Close()
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
