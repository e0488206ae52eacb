// Package payment holds the payment collaborators the flow controller talks to.
package payment

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/flow"
)

const DefaultDelay = 2 * time.Second

// SimulatedGateway stands in for a real provider integration. Every payment
// succeeds after Delay unless ctx ends first.
type SimulatedGateway struct {
	Delay  time.Duration
	Logger *logrus.Logger
}

func NewSimulatedGateway(delay time.Duration, logger *logrus.Logger) *SimulatedGateway {
	if delay < 0 {
		delay = 0
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SimulatedGateway{Delay: delay, Logger: logger}
}

func (g *SimulatedGateway) SubmitPayment(ctx context.Context, request flow.TransactionRequest) (flow.PaymentResponse, error) {
	log := g.Logger.WithFields(logrus.Fields{
		"component": "gateway",
		"token":     request.IdempotencyToken.String(),
		"category":  string(request.CategoryID),
	})

	timer := time.NewTimer(g.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		log.WithError(ctx.Err()).Info("SimulatedGateway.SubmitPayment.abandoned")
		return flow.PaymentResponse{}, ctx.Err()
	case <-timer.C:
	}

	providerRef, err := uuid.NewV4()
	if err != nil {
		return flow.PaymentResponse{}, err
	}

	log.WithField("amount", request.Amount.String()).Info("SimulatedGateway.SubmitPayment.approved")
	return flow.PaymentResponse{
		Success:           true,
		ProviderReference: providerRef.String(),
	}, nil
}
