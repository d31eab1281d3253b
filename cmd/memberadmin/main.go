package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/jask/memberadmin/internal/config"
	"github.com/jask/memberadmin/internal/service"
	"github.com/jask/memberadmin/internal/testdata"
	"github.com/jask/memberadmin/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flagSet := pflag.NewFlagSet("memberadmin", pflag.ContinueOnError)
	config.AddFlags(flagSet)
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(os.Stderr, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(os.Stderr, flagSet)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	cfg, err := config.Load(flagSet)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	console := service.NewConsole(cfg.UI.PageSize, logger)
	members, source := memberSource(cfg, logger)
	logger.Info("starting", "source", source, "page_size", cfg.UI.PageSize)

	program := tea.NewProgram(tui.New(ctx, console, members, source, logger), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// memberSource picks the fetch loader, or generated members in demo mode.
func memberSource(cfg config.Config, logger *slog.Logger) (tui.MemberSource, string) {
	if cfg.Demo.Members > 0 {
		return demoSource{n: cfg.Demo.Members}, fmt.Sprintf("demo:%d", cfg.Demo.Members)
	}
	return &service.Loader{
		Client:    &http.Client{},
		Logger:    logger,
		UserAgent: "memberadmin",
		Timeout:   cfg.Source.Timeout,
	}, cfg.Source.URL
}

type demoSource struct {
	n int
}

func (d demoSource) Load(context.Context, string) (service.LoadResult, error) {
	return service.LoadResult{Records: testdata.Demo(d.n, 0)}, nil
}

// openLogger writes JSON records to the configured file. The terminal
// belongs to the TUI, so nothing goes to stderr.
func openLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(handler), func() { file.Close() }, nil
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `memberadmin: browse, search, select, edit and delete members in the terminal.

Members are fetched once at startup from --source (an http(s) URL, a
file:// URL or a local JSON/JSONC path). Edits and deletes stay in memory.

Settings are read from ~/.config/memberadmin/config.toml, then
MEMBERADMIN_* environment variables, then flags.

Usage:
  memberadmin [flags]

Examples:
  # Fetch the default member list
  memberadmin

  # Browse a local fixture, 20 rows per page
  memberadmin --source ./members.jsonc --page-size 20

  # Try it offline with generated members
  memberadmin --demo 60

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
