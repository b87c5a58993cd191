// Package cli is the enigma command line: machine listing, encryption,
// cracking and the web server.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"enigmaCrackerBackend/internal/adapter/loader"
	"enigmaCrackerBackend/internal/config"
	"enigmaCrackerBackend/internal/core/service"
	"enigmaCrackerBackend/internal/pkg/logging"
	"enigmaCrackerBackend/internal/pkg/metrics"
	"enigmaCrackerBackend/internal/port"
)

var (
	Version   = "dev"
	GitCommit = "not set"
	BuildDate = "not set"
)

// app is the state shared by the commands of one invocation.
type app struct {
	cfgFile     string
	machineFile string

	v       *viper.Viper
	cfg     *config.Config
	logger  *zap.Logger
	machine *loader.Machine
}

func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:     "enigma",
		Short:   "A rotor cipher machine and a parallel code breaker",
		Long:    `enigma simulates a configurable rotor and reflector cipher machine and breaks its codes by dictionary scored brute force.`,
		Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),

		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.enigma.yaml)")
	flags.StringVarP(&a.machineFile, "machine", "m", "", "the machine file to use instead of the builtin machine")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-encoding", "", "log encoding: console or json")
	cobra.CheckErr(a.v.BindPFlag("log.level", flags.Lookup("log-level")))
	cobra.CheckErr(a.v.BindPFlag("log.encoding", flags.Lookup("log-encoding")))

	root.AddCommand(
		newSpecCommand(a),
		newEncryptCommand(a),
		newCrackCommand(a),
		newServeCommand(a),
	)
	return root
}

// Execute runs the root command. It is called by main.main.
func Execute() {
	cobra.CheckErr(NewRootCommand().Execute())
}

// init reads the configuration, builds the logger and loads the machine.
func (a *app) init() error {
	config.SetDefaults(a.v)
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".enigma")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	a.logger = logger
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("using config file", zap.String("path", used))
	}

	m, err := loader.Open(a.machineFile)
	if err != nil {
		return err
	}
	a.machine = m
	return nil
}

// newService wires a cracking service from the configuration. The returned
// func releases the metrics report.
func (a *app) newService(repo port.Repository, opts ...service.Option) (*service.CrackingService, func(), error) {
	opts = append([]service.Option{
		service.WithLogger(a.logger),
		service.WithDefaults(a.cfg.Cracker.Agents, a.cfg.Cracker.MissionSize, a.cfg.Cracker.Timeout),
		service.WithMaxAgents(a.cfg.Cracker.MaxAgents),
	}, opts...)

	release := func() {}
	if path := a.cfg.Report.Path; path != "" {
		reporter, err := metrics.NewReporter(path)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, service.WithReporter(reporter))
		release = func() {
			if err := reporter.Close(); err != nil {
				a.logger.Warn("failed to close metrics report", zap.Error(err))
			}
		}
	}
	return service.NewCrackingService(repo, opts...), release, nil
}
