package flows

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/logging"
)

// GetFlowHandler handles GET /v1/flows/{flowID}.
type GetFlowHandler struct {
	Service flowService
}

func NewGetFlowHandler(svc flowService) *GetFlowHandler {
	return &GetFlowHandler{Service: svc}
}

func (h *GetFlowHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-flow",
		Method:      http.MethodGet,
		Path:        "/v1/flows/{flowID}",
		Summary:     "Get purchase flow",
		Description: "Returns the flow state and, once finished, the navigation payload.",
		Tags:        []string{"Flows"},
	}, h.handle)
}

func (h *GetFlowHandler) handle(ctx context.Context, input *FlowPath) (*FlowOutput, error) {
	id, err := parseFlowID(input.FlowID)
	if err != nil {
		return nil, err
	}
	logging.GetLogData(ctx).AddData("flow", input.FlowID)

	view, err := h.Service.Get(id)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return flowOutput(http.StatusOK, view), nil
}
