package flow

import (
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/validator"
)

// Event is published on every state transition. Errors of any kind
// (validation, payment failure, cancellation) travel on Err.
type Event struct {
	State            State
	Previous         State
	Request          *TransactionRequest
	Result           *TransactionResult
	ValidationReason validator.Reason
	Err              error
}

// Listener receives events in transition order.
type Listener func(Event)

// Snapshot is a point-in-time copy of the controller state.
type Snapshot struct {
	State            State
	Request          *TransactionRequest
	Result           *TransactionResult
	ValidationReason validator.Reason
}
