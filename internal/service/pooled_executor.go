package service

import (
	"context"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/flow"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/operator/actions"
)

type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// PooledExecutor runs payments for all flows on a bounded worker pool.
type PooledExecutor struct {
	processor actionProcessor
	gateway   flow.PaymentExecutor
}

func NewPooledExecutor(processor actionProcessor, gateway flow.PaymentExecutor) *PooledExecutor {
	return &PooledExecutor{processor: processor, gateway: gateway}
}

func (p *PooledExecutor) SubmitPayment(ctx context.Context, request flow.TransactionRequest) (flow.PaymentResponse, error) {
	action := &actions.SubmitPayment{
		Executor: p.gateway,
		Request:  request,
	}
	if err := p.processor.Process(ctx, action); err != nil {
		return flow.PaymentResponse{}, err
	}
	return action.Response, nil
}
