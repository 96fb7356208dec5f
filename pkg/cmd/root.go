package cmd

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/c9s/glassnode/pkg/datasource/glassnode"
	"github.com/c9s/glassnode/pkg/envvar"
)

const defaultHTTPTimeout = 15 * time.Second

var RootCmd = &cobra.Command{
	Use:   "glassnode",
	Short: "glassnode market data client",
	Long:  "query asset metadata, metric catalog, metric metadata and metric time-series from the glassnode api",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Once the flags are parsed, we can bind config keys with flags.
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		setupLogging()

		if addr := viper.GetString("metrics-listen"); addr != "" {
			go serveMetrics(addr)
		}

		return nil
	},
}

func init() {
	timeout, _ := envvar.Duration("HTTP_TIMEOUT", defaultHTTPTimeout)

	RootCmd.PersistentFlags().Bool("debug", false, "debug flag")
	RootCmd.PersistentFlags().String("api-key", "", "glassnode api key, defaults to $GLASSNODE_API_KEY")
	RootCmd.PersistentFlags().String("api-url", glassnode.DefaultAPIURL, "glassnode api url")
	RootCmd.PersistentFlags().Duration("timeout", timeout, "http request timeout")
	RootCmd.PersistentFlags().StringP("output", "o", string(outputTable), "output format: table, json or yaml")
	RootCmd.PersistentFlags().String("metrics-listen", "", "serve prometheus metrics on this address, e.g. :9090")
}

func setupLogging() {
	log.SetFormatter(&prefixed.TextFormatter{})

	logger := log.StandardLogger()
	if viper.GetBool("debug") {
		logger.SetLevel(log.DebugLevel)
	}

	environment, _ := envvar.String("ENV")
	switch environment {
	case "production", "prod":
		writer := &lumberjack.Logger{
			Filename:   filepath.Join("log", "glassnode.log"),
			MaxSize:    100, // megabytes
			MaxBackups: 7,
			MaxAge:     28, // days
		}

		logger.AddHook(
			lfshook.NewHook(
				lfshook.WriterMap{
					log.DebugLevel: writer,
					log.InfoLevel:  writer,
					log.WarnLevel:  writer,
					log.ErrorLevel: writer,
					log.FatalLevel: writer,
				},
				&log.JSONFormatter{},
			),
		)
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	log.Infof("serving prometheus metrics on %s/metrics", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Errorf("metrics server error")
	}
}

func Execute() {
	for _, f := range []string{".env.local", ".env"} {
		if err := godotenv.Load(f); err == nil {
			log.Debugf("loaded env file %s", f)
		}
	}

	viper.SetEnvPrefix("glassnode")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// Enable environment variable binding, e.g. --api-key falls back to GLASSNODE_API_KEY
	viper.AutomaticEnv()

	if err := RootCmd.Execute(); err != nil {
		log.WithError(err).Fatalf("cannot execute command")
	}
}
