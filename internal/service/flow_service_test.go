package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/catalog"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/flow"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/handoff"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/validator"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestFlowService(t *testing.T, executor flow.PaymentExecutor) *FlowService {
	t.Helper()
	svc := NewFlowService(nil, executor, time.Second, quietLogger())
	t.Cleanup(svc.Shutdown)
	return svc
}

func waitForState(t *testing.T, svc *FlowService, id uuid.UUID, state flow.State) FlowView {
	t.Helper()
	var view FlowView
	require.Eventually(t, func() bool {
		var err error
		view, err = svc.Get(id)
		return err == nil && view.State == state
	}, 2*time.Second, 5*time.Millisecond)
	return view
}

func bettingDraft() validator.Draft {
	return validator.Draft{
		ProviderID: "bet9ja",
		Recipient:  "1234567890",
		Amount:     "100",
	}
}

func TestNewFlow(t *testing.T) {
	svc := newTestFlowService(t, flow.NewMockPaymentExecutor(t))

	view, err := svc.NewFlow(context.Background(), catalog.CategoryBetting)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, view.ID)
	assert.Equal(t, catalog.CategoryBetting, view.CategoryID)
	assert.Equal(t, flow.StateIdle, view.State)
	assert.Nil(t, view.Payload)
	assert.Equal(t, 1, svc.Len())
}

func TestNewFlow_UnknownCategory(t *testing.T) {
	svc := newTestFlowService(t, flow.NewMockPaymentExecutor(t))

	_, err := svc.NewFlow(context.Background(), "lottery")

	assert.ErrorIs(t, err, flow.ErrUnknownCategory)
	assert.Equal(t, 0, svc.Len())
}

func TestSubmit_SucceedsWithPayload(t *testing.T) {
	executor := flow.NewMockPaymentExecutor(t)
	executor.EXPECT().SubmitPayment(mock.Anything, mock.Anything).
		Return(flow.PaymentResponse{Success: true, ProviderReference: "B9J-1"}, nil)
	svc := newTestFlowService(t, executor)

	created, err := svc.NewFlow(context.Background(), catalog.CategoryBetting)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), created.ID, bettingDraft())
	require.NoError(t, err)

	view := waitForState(t, svc, created.ID, flow.StateSucceeded)
	require.NotNil(t, view.Result)
	assert.Regexp(t, `^TXN\d+$`, view.Result.Reference)
	assert.Equal(t, "₦100", view.Payload[handoff.KeyAmount])
	assert.Equal(t, handoff.StatusSuccessful, view.Payload[handoff.KeyStatus])
	assert.Equal(t, "Betting", view.Payload[handoff.KeyType])
}

func TestSubmit_ValidationFailureKeepsFlowIdle(t *testing.T) {
	svc := newTestFlowService(t, flow.NewMockPaymentExecutor(t))
	created, err := svc.NewFlow(context.Background(), catalog.CategoryEducation)
	require.NoError(t, err)

	view, err := svc.Submit(context.Background(), created.ID, validator.Draft{
		ProviderID: "waec",
		Recipient:  "STU-001",
		Amount:     "500",
	})

	reason, ok := validator.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, validator.AmountBelowMinimum, reason)
	assert.Equal(t, flow.StateIdle, view.State)
	assert.Equal(t, validator.AmountBelowMinimum, view.ValidationReason)
}

func TestSubmit_InFlight(t *testing.T) {
	release := make(chan struct{})
	executor := flow.NewMockPaymentExecutor(t)
	executor.EXPECT().SubmitPayment(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ flow.TransactionRequest) (flow.PaymentResponse, error) {
			<-release
			return flow.PaymentResponse{Success: true}, nil
		}).Once()
	svc := newTestFlowService(t, executor)
	created, err := svc.NewFlow(context.Background(), catalog.CategoryBetting)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), created.ID, bettingDraft())
	require.NoError(t, err)
	view, err := svc.Submit(context.Background(), created.ID, bettingDraft())

	assert.ErrorIs(t, err, flow.ErrSubmitInFlight)
	assert.Equal(t, flow.StateSubmitting, view.State)
	close(release)
	waitForState(t, svc, created.ID, flow.StateSucceeded)
}

func TestCancel(t *testing.T) {
	executor := flow.NewMockPaymentExecutor(t)
	executor.EXPECT().SubmitPayment(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ flow.TransactionRequest) (flow.PaymentResponse, error) {
			<-ctx.Done()
			return flow.PaymentResponse{}, ctx.Err()
		})
	svc := newTestFlowService(t, executor)
	created, err := svc.NewFlow(context.Background(), catalog.CategoryBetting)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), created.ID, bettingDraft())
	require.NoError(t, err)

	view, err := svc.Cancel(created.ID)

	require.NoError(t, err)
	assert.Equal(t, flow.StateFailed, view.State)
	assert.Equal(t, flow.FailureUserCancelled, view.Payload[handoff.KeyReason])
	assert.Equal(t, handoff.StatusFailed, view.Payload[handoff.KeyStatus])
}

func TestCancel_NotSubmitting(t *testing.T) {
	svc := newTestFlowService(t, flow.NewMockPaymentExecutor(t))
	created, err := svc.NewFlow(context.Background(), catalog.CategoryBetting)
	require.NoError(t, err)

	_, err = svc.Cancel(created.ID)

	assert.ErrorIs(t, err, flow.ErrNotSubmitting)
}

func TestReset(t *testing.T) {
	executor := flow.NewMockPaymentExecutor(t)
	executor.EXPECT().SubmitPayment(mock.Anything, mock.Anything).
		Return(flow.PaymentResponse{}, errors.New("gateway down"))
	svc := newTestFlowService(t, executor)
	created, err := svc.NewFlow(context.Background(), catalog.CategoryBetting)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), created.ID, bettingDraft())
	require.NoError(t, err)
	waitForState(t, svc, created.ID, flow.StateFailed)

	view, err := svc.Reset(created.ID)

	require.NoError(t, err)
	assert.Equal(t, flow.StateIdle, view.State)
	assert.Nil(t, view.Result)
	assert.Nil(t, view.Payload)
}

func TestUnknownFlow(t *testing.T) {
	svc := newTestFlowService(t, flow.NewMockPaymentExecutor(t))
	id := uuid.Must(uuid.NewV4())

	_, err := svc.Get(id)
	assert.ErrorIs(t, err, ErrFlowNotFound)
	_, err = svc.Submit(context.Background(), id, bettingDraft())
	assert.ErrorIs(t, err, ErrFlowNotFound)
	_, err = svc.Cancel(id)
	assert.ErrorIs(t, err, ErrFlowNotFound)
	_, err = svc.Reset(id)
	assert.ErrorIs(t, err, ErrFlowNotFound)
	assert.ErrorIs(t, svc.Close(id), ErrFlowNotFound)
}

func TestClose_CancelsInFlight(t *testing.T) {
	cancelled := make(chan struct{})
	executor := flow.NewMockPaymentExecutor(t)
	executor.EXPECT().SubmitPayment(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ flow.TransactionRequest) (flow.PaymentResponse, error) {
			<-ctx.Done()
			close(cancelled)
			return flow.PaymentResponse{}, ctx.Err()
		})
	svc := newTestFlowService(t, executor)
	created, err := svc.NewFlow(context.Background(), catalog.CategoryBetting)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), created.ID, bettingDraft())
	require.NoError(t, err)

	require.NoError(t, svc.Close(created.ID))

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("executor context was not cancelled")
	}
	_, err = svc.Get(created.ID)
	assert.ErrorIs(t, err, ErrFlowNotFound)
}

func TestClose_ConcurrentSubmitNeverReachesExecutorAfterClose(t *testing.T) {
	for i := 0; i < 50; i++ {
		var closed atomic.Bool
		var late atomic.Int32
		executor := flow.NewMockPaymentExecutor(t)
		executor.EXPECT().SubmitPayment(mock.Anything, mock.Anything).
			RunAndReturn(func(ctx context.Context, _ flow.TransactionRequest) (flow.PaymentResponse, error) {
				if closed.Load() {
					late.Add(1)
				}
				<-ctx.Done()
				return flow.PaymentResponse{}, ctx.Err()
			}).Maybe()
		svc := NewFlowService(nil, executor, 0, quietLogger())
		created, err := svc.NewFlow(context.Background(), catalog.CategoryBetting)
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := svc.Submit(context.Background(), created.ID, bettingDraft()); err != nil {
				assert.ErrorIs(t, err, ErrFlowNotFound)
			}
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.Close(created.ID))
			closed.Store(true)
		}()
		wg.Wait()

		_, err = svc.Submit(context.Background(), created.ID, bettingDraft())
		assert.ErrorIs(t, err, ErrFlowNotFound)
		svc.Shutdown()
		assert.Zero(t, late.Load(), "iteration %d", i)
	}
}

func TestFlowsAreIndependent(t *testing.T) {
	executor := flow.NewMockPaymentExecutor(t)
	executor.EXPECT().SubmitPayment(mock.Anything, mock.Anything).
		Return(flow.PaymentResponse{Success: true}, nil)
	svc := newTestFlowService(t, executor)

	first, err := svc.NewFlow(context.Background(), catalog.CategoryBetting)
	require.NoError(t, err)
	second, err := svc.NewFlow(context.Background(), catalog.CategoryBetting)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), first.ID, bettingDraft())
	require.NoError(t, err)
	done := waitForState(t, svc, first.ID, flow.StateSucceeded)

	other, err := svc.Get(second.ID)
	require.NoError(t, err)
	assert.Equal(t, flow.StateIdle, other.State)

	_, err = svc.Submit(context.Background(), second.ID, bettingDraft())
	require.NoError(t, err)
	again := waitForState(t, svc, second.ID, flow.StateSucceeded)
	assert.NotEqual(t, done.Result.Reference, again.Result.Reference)
}

func TestValidate(t *testing.T) {
	svc := newTestFlowService(t, flow.NewMockPaymentExecutor(t))

	tests := []struct {
		name  string
		draft validator.Draft
		want  validator.Reason
	}{
		{
			name:  "valid betting",
			draft: validator.Draft{CategoryID: catalog.CategoryBetting, ProviderID: "bet9ja", Recipient: "1234567890", Amount: "100"},
			want:  validator.ReasonNone,
		},
		{
			name:  "unknown category",
			draft: validator.Draft{CategoryID: "lottery", Recipient: "1234567890", Amount: "100"},
			want:  validator.MissingCategory,
		},
		{
			name:  "airtime above max",
			draft: validator.Draft{CategoryID: catalog.CategoryAirtime, ProviderID: "mtn", Recipient: "08031234567", Amount: "50001"},
			want:  validator.AmountAboveMaximum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := svc.Validate(tt.draft)

			assert.Equal(t, tt.want == validator.ReasonNone, outcome.Valid)
			assert.Equal(t, tt.want, outcome.Reason)
		})
	}
}

func TestShutdown(t *testing.T) {
	executor := flow.NewMockPaymentExecutor(t)
	executor.EXPECT().SubmitPayment(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ flow.TransactionRequest) (flow.PaymentResponse, error) {
			<-ctx.Done()
			return flow.PaymentResponse{}, ctx.Err()
		})
	svc := NewFlowService(nil, executor, 0, quietLogger())

	for i := 0; i < 3; i++ {
		created, err := svc.NewFlow(context.Background(), catalog.CategoryBetting)
		require.NoError(t, err)
		_, err = svc.Submit(context.Background(), created.ID, bettingDraft())
		require.NoError(t, err)
	}

	done := make(chan struct{})
	go func() {
		svc.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return")
	}
	assert.Equal(t, 0, svc.Len())
}
