package flow

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/catalog"
)

// TransactionRequest is a validated purchase ready to be sent to the payment
// collaborator. It is built by the Controller and never mutated.
type TransactionRequest struct {
	IdempotencyToken uuid.UUID
	CategoryID       catalog.CategoryID
	CategoryLabel    string
	ProviderID       string
	ProviderName     string
	Recipient        string
	Amount           decimal.Decimal
	CreatedAt        time.Time
}

// PaymentResponse is what the payment collaborator reports for a request.
type PaymentResponse struct {
	Success           bool
	ProviderReference string
	Reason            string
}

// PaymentExecutor executes payments. Implementations must honour ctx.
//
//go:generate mockery --name PaymentExecutor --output mock_PaymentExecutor.go
type PaymentExecutor interface {
	SubmitPayment(ctx context.Context, request TransactionRequest) (PaymentResponse, error)
}

// Outcome is the terminal result of an attempt.
type Outcome int8

const (
	OutcomeSucceeded Outcome = iota + 1
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "Succeeded"
	case OutcomeFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

const (
	FailureUserCancelled = "UserCancelled"
	FailureTimeout       = "Timeout"
	FailureDeclined      = "Payment declined"
)

// TransactionResult describes a finished attempt. FailureReason is only set
// when Outcome is OutcomeFailed; Reference only when it succeeded.
type TransactionResult struct {
	Outcome           Outcome
	Reference         string
	ProviderReference string
	Amount            decimal.Decimal
	Recipient         string
	CategoryID        catalog.CategoryID
	CategoryLabel     string
	ProviderName      string
	CompletedAt       time.Time
	FailureReason     string
}

// Succeeded reports whether the attempt succeeded.
func (r TransactionResult) Succeeded() bool {
	return r.Outcome == OutcomeSucceeded
}

// Cancelled reports whether the attempt was cancelled by the user.
func (r TransactionResult) Cancelled() bool {
	return r.Outcome == OutcomeFailed && r.FailureReason == FailureUserCancelled
}

// Equal compares all observable fields. Amounts and timestamps compare by value.
func (r TransactionResult) Equal(other TransactionResult) bool {
	return r.Outcome == other.Outcome &&
		r.Reference == other.Reference &&
		r.ProviderReference == other.ProviderReference &&
		r.Amount.Equal(other.Amount) &&
		r.Recipient == other.Recipient &&
		r.CategoryID == other.CategoryID &&
		r.CategoryLabel == other.CategoryLabel &&
		r.ProviderName == other.ProviderName &&
		r.CompletedAt.Equal(other.CompletedAt) &&
		r.FailureReason == other.FailureReason
}

// PaymentError is reported to listeners when an attempt fails.
type PaymentError struct {
	Reason string
}

func (e *PaymentError) Error() string {
	return "payment failed: " + e.Reason
}

// Cancelled reports whether the failure was a user cancellation.
func (e *PaymentError) Cancelled() bool {
	return e.Reason == FailureUserCancelled
}

func newResult(req TransactionRequest, outcome Outcome, completedAt time.Time) TransactionResult {
	return TransactionResult{
		Outcome:       outcome,
		Amount:        req.Amount,
		Recipient:     req.Recipient,
		CategoryID:    req.CategoryID,
		CategoryLabel: req.CategoryLabel,
		ProviderName:  req.ProviderName,
		CompletedAt:   completedAt.UTC().Truncate(time.Second),
	}
}
