package main

import (
	"context"

	"github.com/lintang-b-s/water-network-maxflow/pkg/http"
	"github.com/lintang-b-s/water-network-maxflow/pkg/http/usecases"
	"github.com/lintang-b-s/water-network-maxflow/pkg/logger"
	"github.com/lintang-b-s/water-network-maxflow/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		logger.Sugar().Warnf("config file not loaded, using defaults: %v", err)
	}
	viper.SetDefault("SOLVE_TIMEOUT", "30s")

	solverService := usecases.NewSolverService(logger, viper.GetDuration("SOLVE_TIMEOUT"))

	api := http.NewServer(logger)
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	if _, err := api.Use(ctx, logger, solverService); err != nil {
		panic(err)
	}

	signal := http.GracefulShutdown()

	logger.Info("Water Network Max Flow Server Stopped", zap.String("signal", signal.String()))
	cleanup()
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
