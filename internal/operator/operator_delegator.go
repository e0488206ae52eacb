package operator

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/operator/actions"
)

const DefaultQueueSize = 1000

var ErrStopped = errors.New("operator: delegator stopped")

// OperatorDelegator manages the queue, starts/stops Operators (workers), and enqueues items.
type OperatorDelegator struct {
	queue      chan ActionItem
	numWorkers int
	logger     *logrus.Logger

	// guards queue against sends after close
	mu      sync.RWMutex
	stopped bool

	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewOperatorDelegator(numWorkers, queueSize int, logger *logrus.Logger) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if queueSize < 1 {
		queueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OperatorDelegator{
		queue:      make(chan ActionItem, queueSize),
		numWorkers: numWorkers,
		logger:     logger,
	}
}

func (d *OperatorDelegator) Start() {
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		op := NewOperator(i, d.queue, d.logger)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
	d.logger.WithField("workers", d.numWorkers).Info("OperatorDelegator.Start")
}

// Stop closes the queue and waits for queued items to drain.
func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.stopped = true
		close(d.queue)
		d.mu.Unlock()

		d.wg.Wait()
		d.logger.Info("OperatorDelegator.Stop")
	})
}

// Process enqueues action and blocks until a worker has performed it or ctx ends.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	if err := d.enqueue(ctx, item); err != nil {
		return err
	}

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *OperatorDelegator) enqueue(ctx context.Context, item ActionItem) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrStopped
	}

	select {
	case d.queue <- item:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
