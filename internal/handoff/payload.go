// Package handoff converts finished transactions to and from the flat string
// map the navigation layer passes to the confirmation and detail screens.
package handoff

import (
	"errors"
	"fmt"
	"time"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/catalog"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/flow"
)

const (
	KeyType              = "type"
	KeyAmount            = "amount"
	KeyRecipient         = "recipient"
	KeyReference         = "reference"
	KeyDate              = "date"
	KeyTime              = "time"
	KeyStatus            = "status"
	KeyCategory          = "category"
	KeyProvider          = "provider"
	KeyProviderReference = "providerReference"
	KeyReason            = "reason"
)

const (
	StatusSuccessful = "Successful"
	StatusFailed     = "Failed"
)

const (
	dateLayout = "Jan 2, 2006"
	timeLayout = "3:04:05 PM"
)

var ErrMalformedPayload = errors.New("handoff: malformed payload")

// Payload is the flat navigation payload.
type Payload map[string]string

// ToNavigationPayload formats a result for the navigation layer. Timestamps
// are rendered in UTC.
func ToNavigationPayload(result flow.TransactionResult) Payload {
	completedAt := result.CompletedAt.UTC()

	status := StatusFailed
	if result.Succeeded() {
		status = StatusSuccessful
	}

	return Payload{
		KeyType:              result.CategoryLabel,
		KeyAmount:            FormatAmount(result.Amount),
		KeyRecipient:         result.Recipient,
		KeyReference:         result.Reference,
		KeyDate:              completedAt.Format(dateLayout),
		KeyTime:              completedAt.Format(timeLayout),
		KeyStatus:            status,
		KeyCategory:          string(result.CategoryID),
		KeyProvider:          result.ProviderName,
		KeyProviderReference: result.ProviderReference,
		KeyReason:            result.FailureReason,
	}
}

// FromNavigationPayload rebuilds a result from a payload produced by
// ToNavigationPayload. Other formats are rejected.
func FromNavigationPayload(p Payload) (flow.TransactionResult, error) {
	for _, key := range []string{KeyType, KeyAmount, KeyRecipient, KeyDate, KeyTime, KeyStatus} {
		if _, ok := p[key]; !ok {
			return flow.TransactionResult{}, fmt.Errorf("%w: missing %q", ErrMalformedPayload, key)
		}
	}

	result := flow.TransactionResult{
		Reference:         p[KeyReference],
		ProviderReference: p[KeyProviderReference],
		Recipient:         p[KeyRecipient],
		CategoryID:        catalog.CategoryID(p[KeyCategory]),
		CategoryLabel:     p[KeyType],
		ProviderName:      p[KeyProvider],
		FailureReason:     p[KeyReason],
	}

	switch p[KeyStatus] {
	case StatusSuccessful:
		if result.FailureReason != "" {
			return flow.TransactionResult{}, fmt.Errorf("%w: reason on successful transaction", ErrMalformedPayload)
		}
		result.Outcome = flow.OutcomeSucceeded
	case StatusFailed:
		if result.FailureReason == "" {
			return flow.TransactionResult{}, fmt.Errorf("%w: failed transaction without reason", ErrMalformedPayload)
		}
		result.Outcome = flow.OutcomeFailed
	default:
		return flow.TransactionResult{}, fmt.Errorf("%w: status %q", ErrMalformedPayload, p[KeyStatus])
	}

	amount, err := ParseAmount(p[KeyAmount])
	if err != nil {
		return flow.TransactionResult{}, err
	}
	result.Amount = amount

	completedAt, err := time.Parse(dateLayout+" "+timeLayout, p[KeyDate]+" "+p[KeyTime])
	if err != nil {
		return flow.TransactionResult{}, fmt.Errorf("%w: date/time: %v", ErrMalformedPayload, err)
	}
	result.CompletedAt = completedAt

	return result, nil
}
