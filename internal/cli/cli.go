// Package cli implements the dashgrid command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dashgrid/dashgrid/pkg/buildinfo"
	"github.com/dashgrid/dashgrid/pkg/layout"
	"github.com/dashgrid/dashgrid/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "dashgrid"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "dashgrid",
		Short:        "Dashgrid arranges dashboard charts on a responsive grid",
		Long:         `Dashgrid is the layout engine behind chart dashboards: it generates default arrangements, repairs user-edited ones, and persists them per breakpoint tier.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.patchCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Store Factory
// =============================================================================

// storeFlags holds the persistence backend selection shared by the store and
// serve commands.
type storeFlags struct {
	backend   string // memory | file | redis | mongo
	dir       string // file backend root (default XDG data dir)
	redisAddr string
	redisDB   int
	mongoURI  string
}

// register adds the backend flags to a command. They are persistent so that
// subcommands (store get/set/delete) see them too.
func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.backend, "store", "file", "layout store backend: file, memory, redis, mongo")
	cmd.PersistentFlags().StringVar(&f.dir, "store-dir", "", "directory for the file backend (default: XDG data dir)")
	cmd.PersistentFlags().StringVar(&f.redisAddr, "redis-addr", "localhost:6379", "redis address for the redis backend")
	cmd.PersistentFlags().IntVar(&f.redisDB, "redis-db", 0, "redis database number")
	cmd.PersistentFlags().StringVar(&f.mongoURI, "mongo-uri", "mongodb://localhost:27017", "connection string for the mongo backend")
}

// open creates the selected store backend.
func (f *storeFlags) open(ctx context.Context) (store.Store, error) {
	switch f.backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file":
		dir := f.dir
		if dir == "" {
			var err error
			if dir, err = dataDir(); err != nil {
				return nil, fmt.Errorf("resolve data dir: %w", err)
			}
		}
		return store.NewFileStore(dir)
	case "redis":
		return store.NewRedisStore(ctx, store.RedisConfig{Addr: f.redisAddr, DB: f.redisDB})
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{URI: f.mongoURI})
	default:
		return nil, fmt.Errorf("unknown store backend %q", f.backend)
	}
}

// =============================================================================
// Paths
// =============================================================================

// dataDir returns the layout data directory using XDG standard
// (~/.local/share/dashgrid/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// =============================================================================
// Input Helpers
// =============================================================================

// resolveItems builds the item-id list from --items and/or --items-file.
func resolveItems(items string, itemsFile string) ([]string, error) {
	var ids []string
	if items != "" {
		for _, id := range strings.Split(items, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	if itemsFile != "" {
		data, err := os.ReadFile(itemsFile)
		if err != nil {
			return nil, fmt.Errorf("read items file: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "#") {
				ids = append(ids, line)
			}
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no items given (use --items or --items-file)")
	}
	return ids, nil
}

// loadTemplates loads curated templates from --templates, falling back to the
// built-in registry.
func loadTemplates(path string) (*layout.Registry, error) {
	if path == "" {
		return layout.BuiltinRegistry(), nil
	}
	return layout.LoadRegistry(path)
}

// readLayoutFile reads a persisted Responsive from a JSON file ("-" = stdin).
func readLayoutFile(path string) (layout.Responsive, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read layouts: %w", err)
	}
	return layout.UnmarshalResponsive(data)
}

// writeLayoutOutput writes a Responsive as JSON to a file, or stdout when
// path is empty.
func writeLayoutOutput(r layout.Responsive, path string) error {
	data, err := layout.MarshalResponsive(r)
	if err != nil {
		return fmt.Errorf("marshal layouts: %w", err)
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
