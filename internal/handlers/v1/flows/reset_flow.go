package flows

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/logging"
)

// ResetFlowHandler handles POST /v1/flows/{flowID}/reset.
type ResetFlowHandler struct {
	Service flowService
}

func NewResetFlowHandler(svc flowService) *ResetFlowHandler {
	return &ResetFlowHandler{Service: svc}
}

func (h *ResetFlowHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "reset-flow",
		Method:      http.MethodPost,
		Path:        "/v1/flows/{flowID}/reset",
		Summary:     "Reset purchase flow",
		Description: "Returns a finished flow to Idle.",
		Tags:        []string{"Flows"},
	}, h.handle)
}

func (h *ResetFlowHandler) handle(ctx context.Context, input *FlowPath) (*FlowOutput, error) {
	id, err := parseFlowID(input.FlowID)
	if err != nil {
		return nil, err
	}
	logging.GetLogData(ctx).AddData("flow", input.FlowID)

	view, err := h.Service.Reset(id)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return flowOutput(http.StatusOK, view), nil
}
