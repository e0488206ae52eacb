package payment

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/catalog"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/flow"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testRequest() flow.TransactionRequest {
	return flow.TransactionRequest{
		IdempotencyToken: uuid.Must(uuid.NewV4()),
		CategoryID:       catalog.CategoryAirtime,
		ProviderID:       "mtn",
		Recipient:        "08031234567",
		Amount:           decimal.NewFromInt(500),
	}
}

func TestSimulatedGateway_Succeeds(t *testing.T) {
	gw := NewSimulatedGateway(time.Millisecond, quietLogger())

	resp, err := gw.SubmitPayment(context.Background(), testRequest())

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.ProviderReference)
	assert.Empty(t, resp.Reason)
}

func TestSimulatedGateway_UniqueProviderReferences(t *testing.T) {
	gw := NewSimulatedGateway(0, quietLogger())

	first, err := gw.SubmitPayment(context.Background(), testRequest())
	require.NoError(t, err)
	second, err := gw.SubmitPayment(context.Background(), testRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first.ProviderReference, second.ProviderReference)
}

func TestSimulatedGateway_HonoursCancellation(t *testing.T) {
	gw := NewSimulatedGateway(time.Hour, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := gw.SubmitPayment(ctx, testRequest())

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, resp.Success)
}

func TestSimulatedGateway_HonoursDeadline(t *testing.T) {
	gw := NewSimulatedGateway(time.Hour, quietLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := gw.SubmitPayment(ctx, testRequest())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNewSimulatedGateway_ClampsNegativeDelay(t *testing.T) {
	gw := NewSimulatedGateway(-time.Second, nil)

	assert.Equal(t, time.Duration(0), gw.Delay)
	assert.NotNil(t, gw.Logger)
}
