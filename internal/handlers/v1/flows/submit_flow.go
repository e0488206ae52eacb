package flows

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/catalog"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/logging"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/validator"
)

// SubmitFlowBody carries the raw purchase form. Fields are validated by the
// flow, not by the schema, so users get the same reasons everywhere.
type SubmitFlowBody struct {
	CategoryID string `json:"categoryID,omitempty" doc:"Defaults to the flow's category"`
	ProviderID string `json:"providerID,omitempty" doc:"Provider id, required for categories with providers"`
	Recipient  string `json:"recipient,omitempty" doc:"Phone, meter, smartcard, student or account number"`
	Amount     string `json:"amount,omitempty" doc:"Amount in naira, e.g. 1000 or 1,000.50"`
}

type SubmitFlowInput struct {
	FlowPath
	Body SubmitFlowBody
}

// SubmitFlowHandler handles POST /v1/flows/{flowID}/submit.
type SubmitFlowHandler struct {
	Service flowService
}

func NewSubmitFlowHandler(svc flowService) *SubmitFlowHandler {
	return &SubmitFlowHandler{Service: svc}
}

func (h *SubmitFlowHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "submit-flow",
		Method:        http.MethodPost,
		Path:          "/v1/flows/{flowID}/submit",
		Summary:       "Submit purchase",
		Description:   "Validates the form and dispatches the payment. Poll the flow for the outcome.",
		Tags:          []string{"Flows"},
		DefaultStatus: http.StatusAccepted,
	}, h.handle)
}

func (h *SubmitFlowHandler) handle(ctx context.Context, input *SubmitFlowInput) (*FlowOutput, error) {
	id, err := parseFlowID(input.FlowID)
	if err != nil {
		return nil, err
	}
	logData := logging.GetLogData(ctx)
	logData.AddData("flow", input.FlowID)

	view, err := h.Service.Submit(ctx, id, validator.Draft{
		CategoryID: catalog.CategoryID(input.Body.CategoryID),
		ProviderID: input.Body.ProviderID,
		Recipient:  input.Body.Recipient,
		Amount:     input.Body.Amount,
	})
	if err != nil {
		return nil, toHTTPError(err)
	}

	if view.Request != nil {
		logData.AddData("token", view.Request.IdempotencyToken.String())
	}
	return flowOutput(http.StatusAccepted, view), nil
}
