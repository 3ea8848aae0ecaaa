// Command daybreak opens a window and bootstraps a Vulkan device on it.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/carsonclarke570/daybreak"
	"github.com/carsonclarke570/daybreak/config"
	"github.com/carsonclarke570/daybreak/vkdriver"
	"github.com/carsonclarke570/daybreak/window"
	"github.com/spf13/cobra"
)

func init() {
	// GLFW and the window surface must stay on the main thread.
	runtime.LockOSThread()
}

type flags struct {
	config   string
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "daybreak",
		Short:         "Bootstrap a Vulkan rendering context in a window",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(f)
		},
	}
	root.PersistentFlags().StringVarP(&f.config, "config", "c", config.DefaultPath, "configuration file")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.AddCommand(newInfoCmd(f))
	return root
}

func newInfoCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the configuration version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(f.logLevel)
			if err != nil {
				return err
			}
			cfg, err := config.Load(f.config)
			if err != nil {
				return err
			}
			logger.Info("using config", slog.String("path", f.config), slog.Int("version", cfg.Version))
			fmt.Fprintf(cmd.OutOrStdout(), "config version %d\n", cfg.Version)
			return nil
		},
	}
}

func newLogger(level string) (*slog.Logger, error) {
	if level == "" {
		return daybreak.NewLogger(os.Stderr), nil
	}
	l, err := daybreak.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return daybreak.NewLoggerLevel(os.Stderr, l), nil
}

func run(f *flags) error {
	logger, err := newLogger(f.logLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	logger.Info("using config", slog.Int("version", cfg.Version))

	if err := window.Init(); err != nil {
		return err
	}
	defer window.Terminate()

	driver, err := vkdriver.Open(window.ProcAddr())
	if err != nil {
		return err
	}

	app, err := daybreak.NewApp(driver, window.Provider{}, daybreak.Settings{
		Window:      cfg.WindowConfig(),
		Identity:    cfg.Identity(),
		Requirement: cfg.Requirement(),
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer app.Destroy()

	app.Run()
	return nil
}

// fatal reports err and exits. Resources are already released by the
// time Execute returns.
func fatal(err error) {
	report(os.Stderr, err)
	os.Exit(1)
}

// report writes err as one line; the core logs nothing above debug on
// a failed bootstrap, so this is the only line the user sees.
func report(w io.Writer, err error) {
	fmt.Fprintf(w, "daybreak: %v\n", err)
}
