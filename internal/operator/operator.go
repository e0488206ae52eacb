package operator

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/operator/actions"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	id     int
	queue  chan ActionItem
	logger *logrus.Logger
}

func NewOperator(id int, queue chan ActionItem, logger *logrus.Logger) *Operator {
	return &Operator{
		id:     id,
		queue:  queue,
		logger: logger,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	// The caller gave up while the item sat in the queue.
	if err := item.ctx.Err(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	err := item.action.Perform(item.ctx)
	if err != nil {
		o.logger.WithError(err).WithField("operator", o.id).Debug("Operator.processItem.actionFailed")
	}

	item.response <- ActionItemResponse{err: err}
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
