package service

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/catalog"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/flow"
)

// Service holds all business logic services.
type Service struct {
	Catalog *catalog.Catalog
	Flow    *FlowService
}

// NewService creates a new Service that sends payments to executor.
func NewService(cat *catalog.Catalog, executor flow.PaymentExecutor, submitTimeout time.Duration, logger *logrus.Logger) *Service {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Service{
		Catalog: cat,
		Flow:    NewFlowService(cat, executor, submitTimeout, logger),
	}
}
