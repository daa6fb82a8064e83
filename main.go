// Package main provides the CLI entrypoint for moodgarden.
//
// Running without a subcommand opens the garden window for the current month.
// The log, list, calendar and clear subcommands manage the saved moods.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/quasilyte/gdata/v2"
	"github.com/spf13/cobra"

	"github.com/decker502/moodgarden/pkg/app"
	"github.com/decker502/moodgarden/pkg/calendar"
	"github.com/decker502/moodgarden/pkg/config"
	"github.com/decker502/moodgarden/pkg/embedded"
	"github.com/decker502/moodgarden/pkg/history"
	"github.com/decker502/moodgarden/pkg/mood"
)

// rootOptions 所有子命令共享的参数
type rootOptions struct {
	configPath string
	store      string
	dbPath     string
	month      string
	verbose    bool

	now func() time.Time
}

func main() {
	// 初始化嵌入资源（必须在任何配置加载之前）
	embedded.Init(dataFS)

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{now: time.Now}

	rootCmd := &cobra.Command{
		Use:           "moodgarden",
		Short:         "Walk through a garden grown from your moods",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			app.ConfigureLogging(opts.verbose)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGarden(cmd.Context(), opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "garden config file (.yaml or .toml)")
	flags.StringVar(&opts.store, "store", mood.BackendGdata, "mood store backend: gdata or sqlite")
	flags.StringVar(&opts.dbPath, "db", config.DefaultDBPath(), "SQLite database path (with --store sqlite)")
	flags.StringVar(&opts.month, "month", "", "month to show as YYYY-MM (default: current month)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newLogCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newCalendarCmd(opts))
	rootCmd.AddCommand(newClearCmd(opts))
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the garden window (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGarden(cmd.Context(), opts)
		},
	}
}

func runGarden(ctx context.Context, opts *rootOptions) error {
	cfg, err := loadGardenConfig(opts.configPath)
	if err != nil {
		return err
	}
	layout, err := resolveLayout(opts, cfg.Columns)
	if err != nil {
		return err
	}

	st, err := mood.OpenStore(opts.store, config.AppName, opts.dbPath)
	if err != nil {
		return err
	}
	defer closeStore(st)

	// 设置存储失败时退化为仅内存设置
	settings, err := gdata.Open(gdata.Config{AppName: config.AppName})
	if err != nil {
		log.Printf("[Main] Warning: settings storage unavailable: %v", err)
		settings = nil
	}

	a, err := app.NewApp(ctx, app.Config{
		Garden:   cfg,
		Layout:   layout,
		Source:   st,
		Settings: settings,
		Verbose:  opts.verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to start garden: %w", err)
	}
	return a.Run()
}

func newLogCmd(opts *rootOptions) *cobra.Command {
	var emoji, note, date string
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Save how you feel today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if date == "" {
				date = opts.now().Format(calendar.DateLayout)
			}
			r, err := mood.NewRecord(emoji, note, date)
			if err != nil {
				return err
			}

			st, err := mood.OpenStore(opts.store, config.AppName, opts.dbPath)
			if err != nil {
				return err
			}
			defer closeStore(st)

			if err := st.Append(cmd.Context(), r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mood saved! 🌷 %s %s\n", r.Emoji, r.Date)
			return nil
		},
	}
	cmd.Flags().StringVar(&emoji, "emoji", "", "how you feel, e.g. 😄 🙂 😐 😔 😡 😭 😴 🤩")
	cmd.Flags().StringVar(&note, "text", "", "a short note about your day")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default: today)")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every saved mood",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := loadRecords(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), history.NewPrinter(cmd.OutOrStdout()).List(records))
			return nil
		},
	}
}

func newCalendarCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar",
		Short: "Show the mood calendar for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			layout, err := resolveLayout(opts, weekdayColumns)
			if err != nil {
				return err
			}
			records, err := loadRecords(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			p := history.NewPrinter(out)
			rng := rand.New(rand.NewSource(opts.now().UnixNano()))
			fmt.Fprint(out, p.Calendar(layout, records))
			fmt.Fprintln(out)
			fmt.Fprint(out, p.Comfort(mood.RandomComfortMessage(rng)))
			return nil
		},
	}
}

func newClearCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved moods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Clear all saved moods?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing cleared.")
					return nil
				}
			}

			st, err := mood.OpenStore(opts.store, config.AppName, opts.dbPath)
			if err != nil {
				return err
			}
			defer closeStore(st)

			if err := st.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All moods cleared.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the garden config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config to " + config.DefaultConfigPath(),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.DefaultConfigPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to stat config: %w", err)
			}

			data, err := embedded.GardenConfig()
			if err != nil {
				return fmt.Errorf("failed to read default config: %w", err)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(initCmd)
	return configCmd
}

// weekdayColumns 历史月历固定按一周 7 天排列
const weekdayColumns = 7

// loadGardenConfig 按优先级加载配置：--config 指定的文件、默认路径下的文件、嵌入的默认配置
func loadGardenConfig(path string) (*config.GardenConfig, error) {
	if path != "" {
		return config.LoadGardenConfig(path)
	}

	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		log.Printf("[Main] Using config %s", defaultPath)
		return config.LoadGardenConfig(defaultPath)
	}

	data, err := embedded.GardenConfig()
	if err != nil {
		log.Printf("[Main] Embedded config unavailable: %v (using built-in defaults)", err)
		return config.DefaultGardenConfig(), nil
	}
	return config.ParseGardenConfig(data)
}

// resolveLayout 解析 --month，为空时使用当前月份
func resolveLayout(opts *rootOptions, columns int) (calendar.MonthLayout, error) {
	if opts.month == "" {
		return calendar.ForTime(opts.now(), columns), nil
	}
	year, month, err := calendar.ParseMonth(opts.month)
	if err != nil {
		return calendar.MonthLayout{}, err
	}
	return calendar.NewMonthLayout(year, month, columns), nil
}

func loadRecords(ctx context.Context, opts *rootOptions) ([]mood.Record, error) {
	st, err := mood.OpenStore(opts.store, config.AppName, opts.dbPath)
	if err != nil {
		return nil, err
	}
	defer closeStore(st)
	return st.Load(ctx)
}

func closeStore(st mood.Store) {
	if err := st.Close(); err != nil {
		log.Printf("[Main] Warning: failed to close mood store: %v", err)
	}
}

func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
