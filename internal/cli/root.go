// Package cli implements the command-line interface.
package cli

import (
	"io"
	"os"
	"strings"

	aw "github.com/deanishe/awgo"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/c2nes/alfred-time/internal/config"
	"github.com/c2nes/alfred-time/internal/feedback"
	"github.com/c2nes/alfred-time/internal/log"
	"github.com/c2nes/alfred-time/internal/resolve"
	"github.com/c2nes/alfred-time/internal/workflow"
	"github.com/c2nes/alfred-time/internal/zone"
)

// Flag names. Each one overrides the config key of the same meaning.
const (
	flagConfig   = "config"
	flagTimezone = "timezone"
	flagOutput   = "output"
	flagDayFirst = "day-first"
	flagDebug    = "debug"
)

type options struct {
	configPath string
	timezone   string
	output     string
	dayFirst   bool
	debug      bool

	// Set by the pre-run hook.
	processor *workflow.Processor
}

// newRootCmd builds the command. env supplies Alfred workflow variables and
// terminal reports whether stdout is a terminal.
func newRootCmd(env aw.Env, terminal bool) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "alfred-time [query]",
		Short: "Convert a date, time or timestamp into common formats",
		Long: `alfred-time resolves a query into a moment and prints it as a
millisecond timestamp followed by five date/time formats.

Queries are "now", y/yy/... for days back, t/tt/... for days ahead,
Unix timestamps in seconds or milliseconds, or a date/time string.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			cfg.ApplyWorkflow(aw.NewConfig(env))
			applyFlags(cmd.Flags(), opts, cfg)

			if cfg.Debug {
				log.SetLevel(log.LevelDebug)
			}
			log.Debug("config loaded", "timezone", cfg.Timezone, "output", cfg.Output, "day_first", cfg.DayFirst)

			z, err := zone.Detect(cfg.Timezone)
			if err != nil {
				return err
			}
			kind, err := feedback.ParseKind(cfg.Output)
			if err != nil {
				return err
			}
			emitter, err := feedback.New(kind, feedback.Options{
				BundleID: cfg.BundleID,
				Icon:     cfg.Icon,
				Terminal: terminal,
			})
			if err != nil {
				return err
			}

			r := resolve.New(z, resolve.Options{DayFirst: cfg.DayFirst})
			opts.processor = workflow.New(r, emitter, cmd.OutOrStdout())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.processor.Process(queryFromArgs(args))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, flagConfig, "", "Path to config file (TOML or YAML)")
	flags.StringVarP(&opts.timezone, flagTimezone, "z", "", "IANA timezone for results (default: detected)")
	flags.StringVarP(&opts.output, flagOutput, "o", "", "Output: auto, alfred, json, yaml or text")
	flags.BoolVar(&opts.dayFirst, flagDayFirst, false, "Read ambiguous dates as day/month")
	flags.BoolVar(&opts.debug, flagDebug, false, "Log debug output to stderr")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// applyFlags copies explicitly set flags over cfg.
func applyFlags(fs *pflag.FlagSet, opts *options, cfg *config.Config) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case flagTimezone:
			cfg.Timezone = opts.timezone
		case flagOutput:
			cfg.Output = opts.output
		case flagDayFirst:
			cfg.DayFirst = opts.dayFirst
		case flagDebug:
			cfg.Debug = opts.debug
		}
	})
}

// queryFromArgs joins args with single spaces. No args means no query.
func queryFromArgs(args []string) *string {
	if len(args) == 0 {
		return nil
	}
	q := strings.Join(args, " ")
	return &q
}

// protectNegative ends flag parsing before the first argument that reads as
// a negative number, so "-1041335973" is a query and not a shorthand flag.
func protectNegative(args []string) []string {
	for i, arg := range args {
		if arg == "--" {
			return args
		}
		if len(arg) > 1 && arg[0] == '-' && (arg[1] == '.' || (arg[1] >= '0' && arg[1] <= '9')) {
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		}
	}
	return args
}

// osEnv reads workflow variables from the process environment.
type osEnv struct{}

func (osEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Execute runs the CLI.
func Execute() error {
	return run(os.Args[1:], os.Stdout, os.Stderr, osEnv{}, isatty.IsTerminal(os.Stdout.Fd()))
}

func run(args []string, stdout, stderr io.Writer, env aw.Env, terminal bool) error {
	log.SetOutput(stderr)
	cmd := newRootCmd(env, terminal)
	cmd.SetArgs(protectNegative(args))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		log.Error("command failed", err)
		return err
	}
	return nil
}
