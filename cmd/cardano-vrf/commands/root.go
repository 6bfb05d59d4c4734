package commands

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfg "github.com/Finschia/cardano-vrf/config"
	"github.com/Finschia/cardano-vrf/libs/log"
	"github.com/Finschia/cardano-vrf/privval"
)

var (
	config = cfg.DefaultConfig()
	logger = log.NewOCLogger(log.NewSyncWriter(os.Stderr))

	// metrics is shared by every signer and verifier built in this process.
	metrics     = privval.NopMetrics()
	metricsOnce sync.Once
)

func init() {
	registerFlagsRootCmd(RootCmd)
}

func registerFlagsRootCmd(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log_level", config.LogLevel, "log level")
	cmd.PersistentFlags().String("log_format", config.LogFormat, "log format (plain | json)")
}

// ParseConfig retrieves the default environment configuration,
// sets up the root directory and ensures that the root exists
func ParseConfig() (*cfg.Config, error) {
	conf := cfg.DefaultConfig()
	err := viper.Unmarshal(conf)
	if err != nil {
		return nil, err
	}
	conf.SetRoot(conf.RootDir)
	if err := conf.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("error in config file: %v", err)
	}
	return conf, nil
}

// RootCmd is the root command for the cardano-vrf tool.
var RootCmd = &cobra.Command{
	Use:   "cardano-vrf",
	Short: "Cardano compatible ECVRF key management, proving and verification",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if cmd.Name() == VersionCmd.Name() {
			return nil
		}

		config, err = ParseConfig()
		if err != nil {
			return err
		}

		logger, err = newLogger(config)
		if err != nil {
			return err
		}
		logger = logger.With("module", "main")

		if config.Instrumentation.Prometheus {
			metricsOnce.Do(func() {
				metrics = privval.PrometheusMetrics(config.Instrumentation.Namespace)
			})
		}
		return nil
	},
}

func newLogger(conf *cfg.Config) (log.Logger, error) {
	if path := conf.Log.FilePath(); path != "" {
		return log.NewZeroLogLogger(log.NewZeroLogConfig(
			conf.LogFormat == cfg.LogFormatPlain,
			conf.LogLevel,
			path,
			conf.Log.MaxAge,
			conf.Log.MaxSize,
			conf.Log.MaxBackups,
		), os.Stderr)
	}

	var base log.Logger
	if conf.LogFormat == cfg.LogFormatJSON {
		base = log.NewOCJSONLogger(log.NewSyncWriter(os.Stderr))
	} else {
		base = log.NewOCLogger(log.NewSyncWriter(os.Stderr))
	}
	return log.ParseLogLevel(conf.LogLevel, base, cfg.DefaultLogLevel)
}

func operationLogger() *log.OperationLogger {
	lvl, err := log.ParseOperationLevel(config.Log.OperationLevel)
	if err != nil {
		lvl = log.LevelInfo
	}
	return log.NewOperationLogger(logger.With("module", "signer"), lvl)
}

// newSigner builds the configured backend wrapped with operation logging
// and metrics.
func newSigner() (*privval.InstrumentedSigner, error) {
	signer, err := config.Signer.NewSigner()
	if err != nil {
		return nil, err
	}
	return privval.NewInstrumentedSigner(signer, operationLogger(), metrics), nil
}

func newVerifier(v privval.Verifier) *privval.InstrumentedVerifier {
	return privval.NewInstrumentedVerifier(v, operationLogger(), metrics)
}

// handle dispatches one request and turns an error carried in the response
// into a returned error.
func handle(signer privval.Signer, verifier privval.Verifier, req privval.Message) (privval.Message, error) {
	res, err := privval.DefaultRequestHandler(signer, verifier, req)
	if err != nil {
		return nil, err
	}
	if err := privval.ResponseError(res); err != nil {
		return nil, err
	}
	return res, nil
}
