package service

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/catalog"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/flow"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/handoff"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/validator"
)

// FlowView is the externally visible state of one purchase flow.
type FlowView struct {
	ID               uuid.UUID
	CategoryID       catalog.CategoryID
	State            flow.State
	ValidationReason validator.Reason
	Request          *flow.TransactionRequest
	Result           *flow.TransactionResult
	// Payload is set once the flow is Succeeded or Failed.
	Payload   handoff.Payload
	CreatedAt time.Time
}

func newFlowView(s *session, snap flow.Snapshot) FlowView {
	view := FlowView{
		ID:               s.id,
		CategoryID:       s.categoryID,
		State:            snap.State,
		ValidationReason: snap.ValidationReason,
		Request:          snap.Request,
		Result:           snap.Result,
		CreatedAt:        s.createdAt,
	}
	if snap.State.Terminal() && snap.Result != nil {
		view.Payload = handoff.ToNavigationPayload(*snap.Result)
	}
	return view
}
