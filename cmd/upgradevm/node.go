// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/upgradevm/config"
	"github.com/ava-labs/upgradevm/host"
	"github.com/ava-labs/upgradevm/rpc"
	"github.com/ava-labs/upgradevm/server"
	"github.com/ava-labs/upgradevm/storage"
	"github.com/ava-labs/upgradevm/trace"
)

const databaseNamespace = "db"

var nodeFlags = map[string]string{
	"http-address": "httpAddress",
	"data-dir":     "dataDir",
	"log-level":    "logLevel",
	"log-dir":      "logDir",
}

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Serve the counter over JSON-RPC",
	RunE: func(cmd *cobra.Command, _ []string) error {
		for flag, key := range nodeFlags {
			if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
				return err
			}
			if err := viper.BindEnv(key); err != nil {
				return err
			}
		}
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runNode(ctx, cfg)
	},
}

func init() {
	defaults := config.NewConfig()
	nodeCmd.Flags().String("http-address", defaults.HTTPAddress, "Address the JSON-RPC server listens on")
	nodeCmd.Flags().String("data-dir", defaults.DataDir, "Directory holding the database")
	nodeCmd.Flags().String("log-level", defaults.LogLevel, "Log level")
	nodeCmd.Flags().String("log-dir", defaults.LogDir, "Directory for rotated log files (disabled when empty)")
	rootCmd.AddCommand(nodeCmd)
}

func runNode(ctx context.Context, cfg config.Config) error {
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Stop()

	tracer, err := trace.New(&cfg.Trace)
	if err != nil {
		return err
	}
	defer tracer.Close()

	db, dbGatherer, err := storage.New(cfg.Storage, cfg.DataDir, databaseNamespace)
	if err != nil {
		return err
	}
	registry := prometheus.NewRegistry()
	h, err := host.New(ctx, log, tracer, registry, db, host.NewDefaultRegistry(), host.ContractCode)
	if err != nil {
		return errors.Join(err, db.Close())
	}

	listener, err := net.Listen("tcp", cfg.HTTPAddress)
	if err != nil {
		return errors.Join(err, h.Close())
	}
	srv, err := server.New(
		"",
		log,
		listener,
		cfg.HTTP,
		cfg.AllowedOrigins,
		cfg.AllowedHosts,
		cfg.ShutdownTimeout,
	)
	if err != nil {
		return errors.Join(err, h.Close())
	}
	handler, err := server.NewHandler(rpc.NewJSONRPCServer(log, tracer, h), rpc.Name, cfg.MaxRequestSize)
	if err != nil {
		return errors.Join(err, h.Close())
	}
	metricsHandler := promhttp.HandlerFor(
		prometheus.Gatherers{registry, dbGatherer},
		promhttp.HandlerOpts{},
	)
	errs := wrappers.Errs{}
	errs.Add(
		srv.AddRoute(handler, "", rpc.JSONRPCEndpoint),
		srv.AddRoute(metricsHandler, "", rpc.MetricsEndpoint),
	)
	if errs.Errored() {
		return errors.Join(errs.Err, h.Close())
	}

	log.Info("node started",
		zap.Stringer("address", srv.Addr()),
		zap.String("dataDir", cfg.DataDir),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Dispatch(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return srv.Shutdown()
	})

	errs = wrappers.Errs{}
	errs.Add(g.Wait(), h.Close())
	if errs.Errored() {
		log.Error("node stopped", zap.Error(errs.Err))
		return errs.Err
	}
	log.Info("node stopped")
	return nil
}
