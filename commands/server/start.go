package server

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/settle/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind    = "bind"
	flagDebug   = "debug"
	flagMetrics = "metrics"
)

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags. Collectors created
// by the application must be registered with given registerer.
type AppGenerator func(home string, logger log.Logger, reg prometheus.Registerer, debug bool) (abci.Application, error)

// StartCmd runs the application as an ABCI socket server until the process
// receives an interrupt.
func StartCmd(gen AppGenerator, logger log.Logger) *cobra.Command {
	c := startCmd{gen: gen, logger: logger}
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		RunE:  c.run,
	}
	cmd.Flags().String(flagBind, "tcp://localhost:26658", "address server listens on")
	cmd.Flags().Bool(flagDebug, false, "call stack returned on error")
	cmd.Flags().String(flagMetrics, "", "address the prometheus metrics endpoint listens on, disabled when empty")
	return cmd
}

type startCmd struct {
	gen    AppGenerator
	logger log.Logger
}

// StartConfig holds everything needed to run the server.
type StartConfig struct {
	Home    string
	Bind    string
	Metrics string
	Debug   bool
}

func (c startCmd) run(cmd *cobra.Command, args []string) error {
	conf := StartConfig{Home: homeDir(cmd)}
	var err error
	if conf.Bind, err = cmd.Flags().GetString(flagBind); err != nil {
		return err
	}
	if conf.Debug, err = cmd.Flags().GetBool(flagDebug); err != nil {
		return err
	}
	if conf.Metrics, err = cmd.Flags().GetString(flagMetrics); err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		<-stop
		close(done)
	}()
	return Serve(conf, c.gen, c.logger, done)
}

// Serve generates the application and serves it until done is closed.
func Serve(conf StartConfig, gen AppGenerator, logger log.Logger, done <-chan struct{}) error {
	reg := prometheus.NewRegistry()
	app, err := gen(conf.Home, logger, reg, conf.Debug)
	if err != nil {
		return errors.Wrap(err, "generate application")
	}

	logger.Info("Starting ABCI app", "bind", conf.Bind)
	svr, err := server.NewServer(conf.Bind, "socket", app)
	if err != nil {
		return errors.Wrap(err, "create listener")
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "start abci server")
	}

	if conf.Metrics != "" {
		metrics := &http.Server{
			Addr:    conf.Metrics,
			Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}
		go func() {
			logger.Info("Serving metrics", "bind", conf.Metrics)
			if err := metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server failed", "err", err)
			}
		}()
		defer metrics.Close()
	}

	<-done
	logger.Info("Stopping ABCI app")
	return svr.Stop()
}
