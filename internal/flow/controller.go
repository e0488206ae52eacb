package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/catalog"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/validator"
)

var (
	ErrSubmitInFlight  = errors.New("flow: a submission is already in flight")
	ErrNotSubmitting   = errors.New("flow: no submission in flight")
	ErrUnknownCategory = errors.New("flow: unknown category")
	ErrClosed          = errors.New("flow: controller closed")
)

// Config configures a Controller. Only Executor is required.
type Config struct {
	Catalog *catalog.Catalog
	// Category binds the controller to one purchase screen. Drafts that leave
	// CategoryID empty use it.
	Category      catalog.CategoryID
	Executor      PaymentExecutor
	References    *ReferenceGenerator
	Clock         func() time.Time
	SubmitTimeout time.Duration
	Logger        *logrus.Logger
}

// Controller drives a single purchase flow:
//
//	Idle -> Validating -> Submitting -> Succeeded | Failed
//
// At most one request is in flight at a time. A Controller shares no mutable
// state with other controllers.
type Controller struct {
	catalog    *catalog.Catalog
	category   catalog.CategoryID
	executor   PaymentExecutor
	references *ReferenceGenerator
	clock      func() time.Time
	timeout    time.Duration
	log        *logrus.Entry

	mu         sync.Mutex
	state      State
	request    *TransactionRequest
	result     *TransactionResult
	reason     validator.Reason
	liveToken  uuid.UUID
	cancelCall context.CancelFunc
	closed     bool

	// guarded by mu
	pending      []Event
	dispatching  bool
	listeners    map[uint64]Listener
	nextListener uint64

	inflight sync.WaitGroup
}

func NewController(cfg Config) (*Controller, error) {
	if cfg.Executor == nil {
		return nil, errors.New("flow: executor is required")
	}
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if cfg.Category != "" {
		if _, ok := cfg.Catalog.Category(cfg.Category); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, cfg.Category)
		}
	}
	if cfg.References == nil {
		cfg.References = DefaultReferences()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Controller{
		catalog:    cfg.Catalog,
		category:   cfg.Category,
		executor:   cfg.Executor,
		references: cfg.References,
		clock:      cfg.Clock,
		timeout:    cfg.SubmitTimeout,
		log:        logger.WithFields(logrus.Fields{"component": "flow", "category": string(cfg.Category)}),
		state:      StateIdle,
		listeners:  make(map[uint64]Listener),
	}, nil
}

// Subscribe registers a listener and returns a function that removes it.
// Listeners run on the goroutine that caused the transition and should return quickly.
func (c *Controller) Subscribe(listener Listener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextListener
	c.nextListener++
	c.listeners[id] = listener

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		State:            c.state,
		Request:          copyRequest(c.request),
		Result:           copyResult(c.result),
		ValidationReason: c.reason,
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit validates the draft and, if valid, dispatches it to the executor.
// It returns a *validator.ValidationError for invalid drafts, leaving the
// controller Idle, and ErrSubmitInFlight while a request is outstanding.
// Submitting from a terminal state starts a new attempt.
func (c *Controller) Submit(ctx context.Context, draft validator.Draft) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state == StateSubmitting || c.state == StateValidating {
		token := c.liveToken
		c.mu.Unlock()
		c.log.WithField("token", token.String()).Warn("Controller.Submit.inFlight")
		return ErrSubmitInFlight
	}

	c.clearAttempt()
	c.transition(StateValidating, Event{})

	category := c.resolveCategory(draft.CategoryID)
	outcome := validator.Validate(draft, category)
	if !outcome.Valid {
		c.reason = outcome.Reason
		err := outcome.Err()
		c.transition(StateIdle, Event{ValidationReason: outcome.Reason, Err: err})
		c.unlockAndFlush()

		c.log.WithField("reason", outcome.Reason.String()).Info("Controller.Submit.invalid")
		return err
	}

	req, err := c.buildRequest(draft, *category)
	if err != nil {
		c.transition(StateIdle, Event{Err: err})
		c.unlockAndFlush()
		return err
	}

	callCtx, cancel := c.callContext(ctx)
	c.request = &req
	c.liveToken = req.IdempotencyToken
	c.cancelCall = cancel
	c.transition(StateSubmitting, Event{Request: copyRequest(&req)})
	c.inflight.Add(1)
	c.unlockAndFlush()

	c.log.WithFields(logrus.Fields{
		"token":  req.IdempotencyToken.String(),
		"amount": req.Amount.String(),
	}).Info("Controller.Submit.dispatched")

	go c.execute(callCtx, cancel, req)
	return nil
}

// Cancel abandons the in-flight request. The attempt ends Failed with reason
// UserCancelled and any response that arrives later is discarded.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	if c.state != StateSubmitting {
		c.mu.Unlock()
		return ErrNotSubmitting
	}

	req := c.abandon()
	c.unlockAndFlush()

	c.log.WithField("token", req.IdempotencyToken.String()).Info("Controller.Cancel")
	return nil
}

// Close cancels the in-flight request, if any, and makes every later Submit
// and Reset fail with ErrClosed. Calls made before Close may still be running;
// Wait for them.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true

	entry := c.log
	if c.state == StateSubmitting {
		req := c.abandon()
		entry = entry.WithField("token", req.IdempotencyToken.String())
	}
	c.unlockAndFlush()

	entry.Info("Controller.Close")
}

// abandon ends the in-flight attempt as cancelled. Caller holds mu and has
// checked the state is Submitting.
func (c *Controller) abandon() TransactionRequest {
	req := *c.request
	c.cancelCall()
	result := newResult(req, OutcomeFailed, c.clock())
	result.FailureReason = FailureUserCancelled
	c.finish(result)
	return req
}

// Reset returns a finished controller to Idle.
func (c *Controller) Reset() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state == StateSubmitting || c.state == StateValidating {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}

	c.clearAttempt()
	c.transition(StateIdle, Event{})
	c.unlockAndFlush()
	return nil
}

// Wait blocks until no executor call is outstanding.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

type callOutcome struct {
	response PaymentResponse
	err      error
}

func (c *Controller) execute(ctx context.Context, cancel context.CancelFunc, req TransactionRequest) {
	defer c.inflight.Done()
	defer cancel()

	done := make(chan callOutcome, 1)
	go func() {
		resp, err := c.executor.SubmitPayment(ctx, req)
		done <- callOutcome{response: resp, err: err}
	}()

	select {
	case out := <-done:
		c.complete(req, out.response, out.err)
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.complete(req, PaymentResponse{}, ctx.Err())
			return
		}
		// Cancelled: the late response still goes through the token check.
		out := <-done
		c.complete(req, out.response, out.err)
	}
}

func (c *Controller) complete(req TransactionRequest, resp PaymentResponse, err error) {
	entry := c.log.WithField("token", req.IdempotencyToken.String())

	c.mu.Lock()
	if c.state != StateSubmitting || c.liveToken != req.IdempotencyToken {
		c.mu.Unlock()
		entry.Info("Controller.complete.staleResponse")
		return
	}

	result := newResult(req, OutcomeSucceeded, c.clock())
	switch {
	case err != nil:
		result.Outcome = OutcomeFailed
		result.FailureReason = failureReason(err)
	case !resp.Success:
		result.Outcome = OutcomeFailed
		result.FailureReason = strings.TrimSpace(resp.Reason)
		if result.FailureReason == "" {
			result.FailureReason = FailureDeclined
		}
	default:
		result.Reference = c.references.Next()
		result.ProviderReference = resp.ProviderReference
	}

	c.finish(result)
	c.unlockAndFlush()

	if result.Succeeded() {
		entry.WithField("reference", result.Reference).Info("Controller.complete.succeeded")
	} else {
		entry.WithField("reason", result.FailureReason).Warn("Controller.complete.failed")
	}
}

func failureReason(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	return err.Error()
}

// finish records a terminal result. Caller holds mu.
func (c *Controller) finish(result TransactionResult) {
	c.result = &result
	c.liveToken = uuid.Nil
	c.cancelCall = nil

	event := Event{Request: copyRequest(c.request), Result: copyResult(&result)}
	if result.Succeeded() {
		c.transition(StateSucceeded, event)
		return
	}
	event.Err = &PaymentError{Reason: result.FailureReason}
	c.transition(StateFailed, event)
}

// clearAttempt drops the previous attempt's data. Caller holds mu.
func (c *Controller) clearAttempt() {
	c.request = nil
	c.result = nil
	c.reason = validator.ReasonNone
	c.liveToken = uuid.Nil
	c.cancelCall = nil
}

func (c *Controller) resolveCategory(id catalog.CategoryID) *catalog.ServiceCategory {
	if id == "" {
		id = c.category
	}
	if id == "" || (c.category != "" && id != c.category) {
		return nil
	}
	category, ok := c.catalog.Category(id)
	if !ok {
		return nil
	}
	return &category
}

func (c *Controller) buildRequest(draft validator.Draft, category catalog.ServiceCategory) (TransactionRequest, error) {
	token, err := uuid.NewV4()
	if err != nil {
		return TransactionRequest{}, fmt.Errorf("flow: idempotency token: %w", err)
	}
	amount, err := validator.ParseAmount(draft.Amount)
	if err != nil {
		return TransactionRequest{}, err
	}

	req := TransactionRequest{
		IdempotencyToken: token,
		CategoryID:       category.ID,
		CategoryLabel:    category.Name,
		Recipient:        strings.TrimSpace(draft.Recipient),
		Amount:           amount,
		CreatedAt:        c.clock().UTC(),
	}
	if provider, ok := category.Provider(strings.TrimSpace(draft.ProviderID)); ok {
		req.ProviderID = provider.ID
		req.ProviderName = provider.Name
	}
	return req, nil
}

// callContext detaches the executor call from the caller's cancellation while
// keeping its values. Only Cancel and the submit timeout end the call.
func (c *Controller) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(parent)
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

// transition moves to state and queues an event. Caller holds mu.
func (c *Controller) transition(state State, event Event) {
	event.Previous = c.state
	event.State = state
	c.state = state
	c.pending = append(c.pending, event)
}

// unlockAndFlush releases mu and delivers queued events in order. Only one
// goroutine delivers at a time, so listeners may call back into the controller.
func (c *Controller) unlockAndFlush() {
	if c.dispatching {
		c.mu.Unlock()
		return
	}
	c.dispatching = true

	for {
		events := c.pending
		c.pending = nil
		if len(events) == 0 {
			c.dispatching = false
			c.mu.Unlock()
			return
		}
		listeners := make([]Listener, 0, len(c.listeners))
		for _, l := range c.listeners {
			listeners = append(listeners, l)
		}
		c.mu.Unlock()

		for _, event := range events {
			for _, l := range listeners {
				l(event)
			}
		}

		c.mu.Lock()
	}
}

func copyRequest(r *TransactionRequest) *TransactionRequest {
	if r == nil {
		return nil
	}
	out := *r
	return &out
}

func copyResult(r *TransactionResult) *TransactionResult {
	if r == nil {
		return nil
	}
	out := *r
	return &out
}
