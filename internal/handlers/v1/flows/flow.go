package flows

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/catalog"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/flow"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/service"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/validator"
)

type flowService interface {
	NewFlow(ctx context.Context, categoryID catalog.CategoryID) (service.FlowView, error)
	Submit(ctx context.Context, id uuid.UUID, draft validator.Draft) (service.FlowView, error)
	Cancel(id uuid.UUID) (service.FlowView, error)
	Reset(id uuid.UUID) (service.FlowView, error)
	Get(id uuid.UUID) (service.FlowView, error)
	Close(id uuid.UUID) error
	Validate(draft validator.Draft) validator.Outcome
}

// Flow is the API response model for a purchase flow.
type Flow struct {
	ID                string            `json:"id" doc:"Flow UUID"`
	CategoryID        string            `json:"categoryID" doc:"Service category the flow is bound to"`
	State             string            `json:"state" enum:"Idle,Validating,Submitting,Succeeded,Failed" doc:"Controller state"`
	ValidationReason  string            `json:"validationReason,omitempty" doc:"Reason the last draft was rejected"`
	ValidationMessage string            `json:"validationMessage,omitempty" doc:"User-visible validation message"`
	Request           *Request          `json:"request,omitempty" doc:"Request of the current attempt"`
	Result            map[string]string `json:"result,omitempty" doc:"Navigation payload, set once the flow is finished"`
	CreatedAt         string            `json:"createdAt" doc:"RFC3339 creation time"`
}

// Request is the API model of a dispatched transaction request.
type Request struct {
	IdempotencyToken string `json:"idempotencyToken" doc:"Token identifying this attempt"`
	ProviderID       string `json:"providerID,omitempty" doc:"Selected provider"`
	Recipient        string `json:"recipient" doc:"Phone, meter, smartcard, student or account number"`
	Amount           string `json:"amount" doc:"Decimal amount in naira"`
}

// FlowPath identifies a flow in the URL.
type FlowPath struct {
	FlowID string `path:"flowID" format:"uuid" doc:"Flow UUID"`
}

// FlowOutput is the Huma output for operations returning a flow.
type FlowOutput struct {
	Status int
	Body   Flow
}

func toFlow(view service.FlowView) Flow {
	out := Flow{
		ID:         view.ID.String(),
		CategoryID: string(view.CategoryID),
		State:      view.State.String(),
		Result:     view.Payload,
		CreatedAt:  view.CreatedAt.Format(time.RFC3339),
	}
	if view.ValidationReason != validator.ReasonNone {
		out.ValidationReason = view.ValidationReason.String()
		out.ValidationMessage = view.ValidationReason.Message()
	}
	if view.Request != nil {
		out.Request = &Request{
			IdempotencyToken: view.Request.IdempotencyToken.String(),
			ProviderID:       view.Request.ProviderID,
			Recipient:        view.Request.Recipient,
			Amount:           view.Request.Amount.String(),
		}
	}
	return out
}

func flowOutput(status int, view service.FlowView) *FlowOutput {
	return &FlowOutput{Status: status, Body: toFlow(view)}
}

func parseFlowID(raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid flowID", err)
	}
	return id, nil
}

// toHTTPError maps service and controller errors onto HTTP statuses.
func toHTTPError(err error) error {
	var validationErr *validator.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return huma.NewError(http.StatusUnprocessableEntity, validationErr.Reason.Message(), &huma.ErrorDetail{
			Message:  validationErr.Reason.Message(),
			Location: "body",
			Value:    validationErr.Reason.String(),
		})
	case errors.Is(err, service.ErrFlowNotFound), errors.Is(err, flow.ErrClosed):
		return huma.NewError(http.StatusNotFound, "flow not found", err)
	case errors.Is(err, flow.ErrUnknownCategory):
		return huma.NewError(http.StatusNotFound, "unknown category", err)
	case errors.Is(err, flow.ErrSubmitInFlight):
		return huma.NewError(http.StatusConflict, "a submission is already in flight", err)
	case errors.Is(err, flow.ErrNotSubmitting):
		return huma.NewError(http.StatusConflict, "no submission in flight", err)
	default:
		return huma.NewError(http.StatusInternalServerError, "flow operation failed", err)
	}
}
