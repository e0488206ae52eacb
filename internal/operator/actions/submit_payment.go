package actions

import (
	"context"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/flow"
)

// SubmitPayment forwards a request to the payment collaborator. Response is
// only meaningful when Perform returned nil.
type SubmitPayment struct {
	Executor flow.PaymentExecutor
	Request  flow.TransactionRequest
	Response flow.PaymentResponse

	IAction
}

func (s *SubmitPayment) Perform(ctx context.Context) error {
	resp, err := s.Executor.SubmitPayment(ctx, s.Request)
	if err != nil {
		return err
	}

	s.Response = resp
	return nil
}
