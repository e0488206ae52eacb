package flows

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/catalog"
	"github.com/chaincolawallet/netpay-wallet-sub001/internal/logging"
)

// CreateFlowBody is the request body for opening a flow.
type CreateFlowBody struct {
	CategoryID string `json:"categoryID" required:"true" minLength:"1" doc:"Service category, e.g. betting"`
}

// CreateFlowInput is the Huma input for opening a flow.
type CreateFlowInput struct {
	Body CreateFlowBody
}

// CreateFlowHandler handles POST /v1/flows.
type CreateFlowHandler struct {
	Service flowService
}

// NewCreateFlowHandler creates a new CreateFlowHandler.
func NewCreateFlowHandler(svc flowService) *CreateFlowHandler {
	return &CreateFlowHandler{Service: svc}
}

// Register registers the create flow endpoint with the Huma API.
func (h *CreateFlowHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-flow",
		Method:        http.MethodPost,
		Path:          "/v1/flows",
		Summary:       "Open purchase flow",
		Description:   "Opens a purchase flow bound to one service category.",
		Tags:          []string{"Flows"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateFlowHandler) handle(ctx context.Context, input *CreateFlowInput) (*FlowOutput, error) {
	logData := logging.GetLogData(ctx)
	logData.AddData("category", input.Body.CategoryID)

	view, err := h.Service.NewFlow(ctx, catalog.CategoryID(input.Body.CategoryID))
	if err != nil {
		return nil, toHTTPError(err)
	}

	logData.AddData("flow", view.ID.String())
	return flowOutput(http.StatusCreated, view), nil
}
