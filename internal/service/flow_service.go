package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/catalog"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/flow"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/validator"
)

var ErrFlowNotFound = errors.New("service: flow not found")

// FlowService keeps one flow controller per open purchase screen.
type FlowService struct {
	catalog    *catalog.Catalog
	executor   flow.PaymentExecutor
	references *flow.ReferenceGenerator
	timeout    time.Duration
	logger     *logrus.Logger
	clock      func() time.Time

	mu    sync.RWMutex
	flows map[uuid.UUID]*session
}

type session struct {
	id          uuid.UUID
	categoryID  catalog.CategoryID
	controller  *flow.Controller
	unsubscribe func()
	createdAt   time.Time
}

// NewFlowService creates a FlowService. All flows share cat, executor and a
// single reference generator.
func NewFlowService(cat *catalog.Catalog, executor flow.PaymentExecutor, submitTimeout time.Duration, logger *logrus.Logger) *FlowService {
	if cat == nil {
		cat = catalog.Default()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &FlowService{
		catalog:    cat,
		executor:   executor,
		references: flow.DefaultReferences(),
		timeout:    submitTimeout,
		logger:     logger,
		clock:      time.Now,
		flows:      make(map[uuid.UUID]*session),
	}
}

// NewFlow opens a flow bound to categoryID.
func (s *FlowService) NewFlow(ctx context.Context, categoryID catalog.CategoryID) (FlowView, error) {
	controller, err := flow.NewController(flow.Config{
		Catalog:       s.catalog,
		Category:      categoryID,
		Executor:      s.executor,
		References:    s.references,
		Clock:         s.clock,
		SubmitTimeout: s.timeout,
		Logger:        s.logger,
	})
	if err != nil {
		return FlowView{}, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return FlowView{}, fmt.Errorf("service: flow id: %w", err)
	}

	sess := &session{
		id:         id,
		categoryID: categoryID,
		controller: controller,
		createdAt:  s.clock().UTC(),
	}
	log := s.logger.WithField("flow", id.String())
	sess.unsubscribe = controller.Subscribe(func(event flow.Event) {
		entry := log.WithFields(logrus.Fields{
			"from": event.Previous.String(),
			"to":   event.State.String(),
		})
		if event.Err != nil {
			entry = entry.WithError(event.Err)
		}
		entry.Debug("FlowService.transition")
	})

	s.mu.Lock()
	s.flows[id] = sess
	s.mu.Unlock()

	log.WithField("category", string(categoryID)).Info("FlowService.NewFlow")
	return newFlowView(sess, controller.Snapshot()), nil
}

// Submit validates and dispatches draft on the flow. A validation failure
// returns the updated view together with a *validator.ValidationError.
func (s *FlowService) Submit(ctx context.Context, id uuid.UUID, draft validator.Draft) (FlowView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return FlowView{}, err
	}

	if draft.CategoryID == "" {
		draft.CategoryID = sess.categoryID
	}
	err = sess.controller.Submit(ctx, draft)
	return newFlowView(sess, sess.controller.Snapshot()), closedAsNotFound(id, err)
}

func (s *FlowService) Cancel(id uuid.UUID) (FlowView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return FlowView{}, err
	}

	err = sess.controller.Cancel()
	return newFlowView(sess, sess.controller.Snapshot()), err
}

func (s *FlowService) Reset(id uuid.UUID) (FlowView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return FlowView{}, err
	}

	err = sess.controller.Reset()
	return newFlowView(sess, sess.controller.Snapshot()), closedAsNotFound(id, err)
}

func (s *FlowService) Get(id uuid.UUID) (FlowView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return FlowView{}, err
	}
	return newFlowView(sess, sess.controller.Snapshot()), nil
}

// Close cancels any in-flight request and forgets the flow. It returns once
// the flow's payment calls have finished; none start afterwards.
func (s *FlowService) Close(id uuid.UUID) error {
	s.mu.Lock()
	sess, ok := s.flows[id]
	delete(s.flows, id)
	s.mu.Unlock()

	if !ok {
		return ErrFlowNotFound
	}

	s.release(sess)
	sess.controller.Wait()
	s.logger.WithField("flow", id.String()).Info("FlowService.Close")
	return nil
}

// Validate checks a draft without touching any flow.
func (s *FlowService) Validate(draft validator.Draft) validator.Outcome {
	var category *catalog.ServiceCategory
	if c, ok := s.catalog.Category(draft.CategoryID); ok {
		category = &c
	}
	return validator.Validate(draft, category)
}

// Shutdown closes every flow and waits for outstanding payment calls.
func (s *FlowService) Shutdown() {
	s.mu.Lock()
	sessions := make([]*session, 0, len(s.flows))
	for id, sess := range s.flows {
		sessions = append(sessions, sess)
		delete(s.flows, id)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		s.release(sess)
	}
	for _, sess := range sessions {
		sess.controller.Wait()
	}
	s.logger.WithField("flows", len(sessions)).Info("FlowService.Shutdown")
}

// Len returns the number of open flows.
func (s *FlowService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.flows)
}

func (s *FlowService) release(sess *session) {
	sess.controller.Close()
	sess.unsubscribe()
}

// closedAsNotFound reports a flow closed by a concurrent Close the same way
// as one that was never there.
func closedAsNotFound(id uuid.UUID, err error) error {
	if errors.Is(err, flow.ErrClosed) {
		return fmt.Errorf("%w: %s", ErrFlowNotFound, id)
	}
	return err
}

func (s *FlowService) lookup(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.flows[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFlowNotFound, id)
	}
	return sess, nil
}
