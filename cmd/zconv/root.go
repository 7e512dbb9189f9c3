package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aretw0/zconv"
	"github.com/aretw0/zconv/internal/cli"
	"github.com/aretw0/zconv/internal/config"
	"github.com/aretw0/zconv/internal/logging"
	"github.com/aretw0/zconv/pkg/adapters/terminal"
)

// configKeyAnnotation links a flag to the dotted configuration key it overrides.
const configKeyAnnotation = "zconv/config-key"

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "zconv",
	Short: "zconv converts strings through the conversion API",
	Long: `zconv drives the conversion page: type a string, see its converted output,
browse and clear the history kept by the conversion API.

Without a subcommand it starts the interactive terminal session.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runSession,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "YAML configuration file")
	flags.String("env-file", ".env", "dotenv file read before ZCONV_* variables")
	bindFlag(flags, "api-url", "api_url", "", "base URL of the conversion API")
	bindFlag(flags, "log-level", "log_level", "", "log level: debug, info, warn or error")
	bindFlag(flags, "style", "style", "", "terminal style: auto, plain, ansi or markdown")
	flags.Bool("stale-guard", true, "discard responses superseded by a newer request")
	_ = flags.SetAnnotation("stale-guard", configKeyAnnotation, []string{"stale_guard"})

	rootCmd.Flags().Bool("no-banner", false, "do not print the banner")

	runCmd.Flags().Bool("no-banner", false, "do not print the banner")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive terminal session (default)",
	Args:  cobra.NoArgs,
	RunE:  runSession,
}

func bindFlag(flags *pflag.FlagSet, name, key, value, usage string) {
	flags.String(name, value, usage)
	_ = flags.SetAnnotation(name, configKeyAnnotation, []string{key})
}

// loadConfig merges defaults, files, environment and the flags the user set.
func loadConfig(cmd *cobra.Command, _ []string) error {
	overrides := map[string]any{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		keys := f.Annotations[configKeyAnnotation]
		if len(keys) == 0 {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			overrides[keys[0]] = sv.GetSlice()
			return
		}
		overrides[keys[0]] = f.Value.String()
	})

	file, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	loaded, err := config.Load(config.Source{File: file, EnvFile: envFile, Overrides: overrides})
	if err != nil {
		return err
	}

	level, _ := logging.ParseLevel(loaded.LogLevel)
	cfg = loaded
	logger = logging.New(level)
	logger.Debug("Configuration loaded", "file", file, "api_url", cfg.APIURL)
	return nil
}

func consoleOptions() []zconv.Option {
	return []zconv.Option{
		zconv.WithAPIURL(cfg.APIURL),
		zconv.WithStaleGuard(cfg.StaleGuard),
		zconv.WithLogger(logger),
	}
}

func runOptions(cmd *cobra.Command) cli.RunOptions {
	style, _ := terminal.ParseStyle(cfg.Style)
	return cli.RunOptions{
		In:      cmd.InOrStdin(),
		Out:     cmd.OutOrStdout(),
		Style:   style,
		Logger:  logger,
		Console: consoleOptions(),
	}
}

func runSession(cmd *cobra.Command, _ []string) error {
	noBanner, _ := cmd.Flags().GetBool("no-banner")
	opts := runOptions(cmd)
	opts.Banner = !noBanner

	sigCtx := cli.NewSignalContext(cmd.Context())
	defer sigCtx.Cancel()
	return cli.Run(sigCtx, opts)
}
