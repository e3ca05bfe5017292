package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/san-kum/ringsim/internal/bells"
	"github.com/san-kum/ringsim/internal/config"
	"github.com/san-kum/ringsim/internal/logging"
	"github.com/spf13/cobra"
)

var (
	configFile string
	dataDir    string
	logLevel   string
	logFile    string

	// ringing flags shared by several commands
	delay     string
	cover     bool
	sound     string
	changes   int
	raw       bool
	lineBell  int
	keyIndex  int
	tenorBell int

	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
)

// main wires the command tree. With no subcommand the live view rings the
// configured method.
func main() {
	rootCmd := &cobra.Command{
		Use:               "ringsim",
		Short:             "change ringing simulator",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
		Args: cobra.MaximumNArgs(1),
		RunE: runLive,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory for recorded touches")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
	addRingingFlags(rootCmd)

	ringCmd := &cobra.Command{
		Use:   "ring [method|notation]",
		Short: "ring a method until interrupted",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRing,
	}
	addRingingFlags(ringCmd)
	ringCmd.Flags().IntVar(&changes, "changes", 0, "stop after this many changes (0 rings until interrupted)")

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list known methods",
		Args:  cobra.NoArgs,
		RunE:  listMethods,
	}

	showCmd := &cobra.Command{
		Use:   "show [method|notation]",
		Short: "show the parsed lead of a method",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showMethod,
	}
	showCmd.Flags().BoolVar(&cover, "cover", false, "add a covering tenor to odd stages")
	showCmd.Flags().BoolVar(&raw, "raw", false, "treat the argument as place notation")

	rowsCmd := &cobra.Command{
		Use:   "rows [method|notation]",
		Short: "print the rows a method rings",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printRows,
	}
	rowsCmd.Flags().IntVar(&changes, "changes", 0, "number of rows (default two rounds and one lead)")
	rowsCmd.Flags().BoolVar(&cover, "cover", false, "add a covering tenor to odd stages")
	rowsCmd.Flags().BoolVar(&raw, "raw", false, "treat the argument as place notation")

	lineCmd := &cobra.Command{
		Use:   "line [method|notation]",
		Short: "plot the blue line of one bell",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotLine,
	}
	lineCmd.Flags().IntVar(&changes, "changes", 0, "number of rows (default two rounds and one lead)")
	lineCmd.Flags().IntVar(&lineBell, "bell", 2, "bell to trace")
	lineCmd.Flags().BoolVar(&cover, "cover", false, "add a covering tenor to odd stages")
	lineCmd.Flags().BoolVar(&raw, "raw", false, "treat the argument as place notation")

	recordCmd := &cobra.Command{
		Use:   "record [method|notation]",
		Short: "record rows to the data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  recordTouch,
	}
	recordCmd.Flags().IntVar(&changes, "changes", 0, "number of rows (default two rounds and one lead)")
	recordCmd.Flags().BoolVar(&cover, "cover", false, "add a covering tenor to odd stages")
	recordCmd.Flags().BoolVar(&raw, "raw", false, "treat the argument as place notation")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded touches",
		Args:  cobra.NoArgs,
		RunE:  listTouches,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [touch_id]",
		Short: "export recorded rows to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configCmd.AddCommand(
		&cobra.Command{
			Use:   "init [path]",
			Short: "write a default config file",
			Args:  cobra.ExactArgs(1),
			RunE:  initConfig,
		},
		&cobra.Command{
			Use:   "show",
			Short: "print the effective config",
			Args:  cobra.NoArgs,
			RunE:  showConfig,
		},
	)

	rootCmd.AddCommand(ringCmd, methodsCmd, showCmd, rowsCmd, lineCmd, recordCmd, listCmd, exportCSVCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRingingFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&delay, "delay", "", "time between bells, e.g. 200ms")
	cmd.Flags().BoolVar(&cover, "cover", false, "add a covering tenor to odd stages")
	cmd.Flags().StringVar(&sound, "sound", "", "sound output (text, audio, silent)")
	cmd.Flags().BoolVar(&raw, "raw", false, "treat the argument as place notation")
	cmd.Flags().IntVar(&keyIndex, "key", 0, "peal index, lowest first")
	cmd.Flags().IntVar(&tenorBell, "tenor", 0, "absolute bell used as the tenor (0 follows the method)")
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Lookup("delay") != nil && flags.Changed("delay") {
		d, err := parseDelay(delay)
		if err != nil {
			return err
		}
		cfg.Delay = d
	}
	if flags.Lookup("sound") != nil && flags.Changed("sound") {
		cfg.Sound = sound
	}
	if flags.Lookup("key") != nil && flags.Changed("key") {
		cfg.Peal.Key = keyIndex
	}
	if flags.Lookup("tenor") != nil && flags.Changed("tenor") {
		cfg.Peal.Tenor = tenorBell
	}
	if err := cfg.Validate(len(bells.DefaultPeals)); err != nil {
		return err
	}

	// The live view owns the terminal; it logs to --log-file only.
	var console io.Writer = os.Stderr
	if cmd == cmd.Root() {
		console = nil
	}

	var err error
	logger, logCloser, err = logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Console: console,
		File:    cfg.LogFile,
	})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

var errNoMethod = errors.New("no method given and none configured")
