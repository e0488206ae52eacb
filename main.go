package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/chaincolawallet/netpay-wallet-sub001/api"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/catalog"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/config"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/logging"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/operator"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/payment"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/service"
)

func main() {
	logger := logging.SetupLogging()
	logger.Info("netpay-wallet starting")

	if err := config.LoadDotEnv(); err != nil {
		logger.WithError(err).Fatal("config.LoadDotEnv")
		return
	}

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	if err := logging.SetLevel(logger, envConfig.LogLevel); err != nil {
		logger.WithError(err).Fatal("logging.SetLevel")
		return
	}
	logrus.SetLevel(logger.GetLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	delegator := operator.NewOperatorDelegator(envConfig.PaymentWorkers, envConfig.PaymentQueueSize, logger)
	delegator.Start()

	gateway := payment.NewSimulatedGateway(envConfig.PaymentDelay, logger)
	svc := service.NewService(catalog.Default(), service.NewPooledExecutor(delegator, gateway), envConfig.SubmitTimeout, logger)

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.Port,
		Service: svc,
	}
	if err := httpRest.Serve(ctx); err != nil {
		logger.WithError(err).Error("api.Rest.Serve")
	}

	svc.Flow.Shutdown()
	delegator.Stop()
	logger.Info("netpay-wallet stopped")
}
