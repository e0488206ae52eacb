package flows

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/catalog"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/validator"
)

// ValidateBody mirrors SubmitFlowBody. Missing fields are reported as
// validation reasons rather than schema errors.
type ValidateBody struct {
	CategoryID string `json:"categoryID,omitempty" doc:"Service category"`
	ProviderID string `json:"providerID,omitempty" doc:"Provider id"`
	Recipient  string `json:"recipient,omitempty" doc:"Recipient identifier"`
	Amount     string `json:"amount,omitempty" doc:"Amount in naira"`
}

type ValidateInput struct {
	Body ValidateBody
}

type ValidateResponse struct {
	Valid   bool   `json:"valid" doc:"Whether the form can be submitted"`
	Reason  string `json:"reason,omitempty" doc:"First failing check"`
	Message string `json:"message,omitempty" doc:"User-visible message"`
}

type ValidateOutput struct {
	Body ValidateResponse
}

// ValidateHandler handles POST /v1/validate for live form feedback.
type ValidateHandler struct {
	Service flowService
}

func NewValidateHandler(svc flowService) *ValidateHandler {
	return &ValidateHandler{Service: svc}
}

func (h *ValidateHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "validate-draft",
		Method:      http.MethodPost,
		Path:        "/v1/validate",
		Summary:     "Validate purchase form",
		Description: "Runs the purchase checks without opening or changing a flow.",
		Tags:        []string{"Flows"},
	}, h.handle)
}

func (h *ValidateHandler) handle(ctx context.Context, input *ValidateInput) (*ValidateOutput, error) {
	outcome := h.Service.Validate(validator.Draft{
		CategoryID: catalog.CategoryID(input.Body.CategoryID),
		ProviderID: input.Body.ProviderID,
		Recipient:  input.Body.Recipient,
		Amount:     input.Body.Amount,
	})

	out := &ValidateOutput{Body: ValidateResponse{Valid: outcome.Valid}}
	if !outcome.Valid {
		out.Body.Reason = outcome.Reason.String()
		out.Body.Message = outcome.Reason.Message()
	}
	return out, nil
}
