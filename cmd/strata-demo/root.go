package main

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/xraph/strata"
	"github.com/xraph/strata/config"
	"github.com/xraph/strata/demo"
	"github.com/xraph/strata/logsink"
	"github.com/xraph/strata/resources"
)

// screenName is the screen the root command launches.
const screenName = "MainActivity"

// app holds the state shared by the commands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "strata-demo",
		Short: "Scoped dependency injection walkthrough",
		Long: `Launch MainActivity in a scoped container. Application strings are built
once, activity strings once per screen instance and view-model strings once per
view model. Every consumer logs the strings it receives.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		RunE: a.run,
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: .strata/config.yaml or ~/.config/strata/config.yaml)")
	root.PersistentFlags().String("locale", "", "application locale")
	root.PersistentFlags().String("screen-locale", "", "screen locale (defaults to --locale)")
	root.PersistentFlags().String("resources-dir", "", "directory of <locale>.yaml string bundles")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "", "log format (console, json)")
	root.Flags().Int("recreate", 0, "number of configuration changes to simulate")
	root.Flags().Bool("metrics", false, "record and print container metrics")

	_ = a.v.BindPFlag("locale", root.PersistentFlags().Lookup("locale"))
	_ = a.v.BindPFlag("screen_locale", root.PersistentFlags().Lookup("screen-locale"))
	_ = a.v.BindPFlag("resources_dir", root.PersistentFlags().Lookup("resources-dir"))
	_ = a.v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", root.PersistentFlags().Lookup("log-format"))
	_ = a.v.BindPFlag("metrics.enabled", root.Flags().Lookup("metrics"))

	root.AddCommand(newGraphCmd(a))

	return root
}

func (a *app) bundle() (*resources.Bundle, error) {
	if a.cfg.ResourcesDir == "" {
		return resources.Default(), nil
	}
	return resources.LoadDir(a.cfg.ResourcesDir, resources.DefaultLocale)
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	recreate, _ := cmd.Flags().GetInt("recreate")
	if recreate < 0 {
		return fmt.Errorf("--recreate must not be negative, got %d", recreate)
	}

	logger := logsink.NewLogger(a.cfg.Log, cmd.ErrOrStderr())
	defer func() { _ = logger.Sync() }()

	bundle, err := a.bundle()
	if err != nil {
		return err
	}

	mw := []strata.Middleware{strata.NewLoggingMiddleware(logger)}

	var reg *prometheus.Registry
	if a.cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		metrics, err := strata.NewMetricsMiddleware(reg)
		if err != nil {
			return err
		}
		mw = append(mw, metrics)
	}

	host, err := demo.NewHost(demo.Options{
		Bundle:       bundle,
		Locale:       a.cfg.Locale,
		ScreenLocale: a.cfg.EffectiveScreenLocale(),
		Sink:         logsink.New(logger),
		Middleware:   mw,
	})
	if err != nil {
		return fmt.Errorf("building container: %w", err)
	}

	err = a.drive(cmd.OutOrStdout(), host, recreate)
	err = multierr.Append(err, host.Close())

	if reg != nil {
		err = multierr.Append(err, printMetrics(cmd.OutOrStdout(), reg))
	}

	return err
}

// drive launches the screen, recreates it and finishes it.
func (a *app) drive(out io.Writer, host *demo.Host, recreate int) error {
	screen, err := host.Launch(screenName)
	if err != nil {
		return err
	}
	if err := printScreen(out, host, screen); err != nil {
		return err
	}

	for i := 0; i < recreate; i++ {
		if screen, err = host.Recreate(screenName); err != nil {
			return err
		}
		if err := printScreen(out, host, screen); err != nil {
			return err
		}
	}

	return host.Finish(screenName)
}

func printScreen(out io.Writer, host *demo.Host, screen *demo.MainScreen) error {
	scope, _ := host.ScreenScope(screenName)

	vm, err := screen.ViewModel()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "%s %s\n  %s = %s\n  %s = %s\n  %s = %s\n",
		cyan(screenName), scope.ID(),
		demo.FirstNamedTestString.Name(), screen.StringFromModule(),
		demo.MainActivityString1.Name(), screen.StringFromMainModule(),
		demo.TestViewModelString1.Name(), vm.TestString2(),
	)

	return err
}

func printMetrics(out io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}

	for _, family := range families {
		for _, m := range family.GetMetric() {
			labels := ""
			for _, l := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", l.GetName(), l.GetValue())
			}

			value := m.GetCounter().GetValue() + m.GetGauge().GetValue()
			if _, err := fmt.Fprintf(out, "%s%s %s\n", yellow(family.GetName()), labels, fmt.Sprint(value)); err != nil {
				return err
			}
		}
	}

	return nil
}

// nopSink is used by commands that build a container without running it.
func nopSink() logsink.Sink {
	return logsink.New(zap.NewNop())
}
