package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/dashgrid/dashgrid/pkg/api"
	"github.com/dashgrid/dashgrid/pkg/board"
	"github.com/dashgrid/dashgrid/pkg/layout"
)

// templateReloadDelay coalesces editor write bursts into one reload.
const templateReloadDelay = 300 * time.Millisecond

// serveCommand creates the serve command for running the layout HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		templates string
		watch     bool
	)
	flags := &storeFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout HTTP API",
		Long: `Serve the layout HTTP API.

Endpoints (under /api/v1):
  GET    /breakpoints                   the tier table
  GET    /layouts/{category}            saved layouts
  PUT    /layouts/{category}            replace saved layouts (normalized)
  DELETE /layouts/{category}            remove saved layouts
  POST   /layouts/{category}/defaults   compute default layouts
  POST   /layouts/{category}/reconcile  merge saved layouts with an item set

With --watch the curated template file is reloaded on change, so template
edits apply without a restart.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, templates, watch, flags)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&templates, "templates", "", "TOML file with curated templates (default: built-in)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the template file on change (requires --templates)")
	flags.register(cmd)

	return cmd
}

// runServe starts the HTTP server and blocks until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, templates string, watch bool, flags *storeFlags) error {
	st, err := flags.open(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	reg, err := loadTemplates(templates)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	server := api.NewServer(api.Config{
		Store:     st,
		Templates: reg,
		Logger:    c.Logger,
	})

	if watch {
		if templates == "" {
			return fmt.Errorf("--watch requires --templates")
		}
		stop, err := c.watchTemplates(templates, server)
		if err != nil {
			return fmt.Errorf("watch templates: %w", err)
		}
		defer stop()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("layout API listening", "addr", addr, "store", flags.backend, "templates", reg.Categories())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// watchTemplates reloads the template registry when the file changes.
// Editors often replace files via rename, so the parent directory is watched
// and events are filtered by name. Reloads are debounced; a file that fails
// to parse keeps the previous registry.
func (c *CLI) watchTemplates(path string, server *api.Server) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	reload := board.NewDebouncer(templateReloadDelay)
	target := filepath.Clean(path)

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				reload.Trigger(func() {
					reg, err := layout.LoadRegistry(path)
					if err != nil {
						c.Logger.Warn("template reload failed, keeping previous", "path", path, "err", err)
						return
					}
					server.SetTemplates(reg)
					c.Logger.Info("templates reloaded", "path", path, "categories", reg.Categories())
				})
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				c.Logger.Warn("template watcher error", "err", err)
			}
		}
	}()

	return func() {
		reload.Cancel()
		_ = w.Close()
	}, nil
}
