package flows

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/logging"
)

// CancelFlowHandler handles POST /v1/flows/{flowID}/cancel.
type CancelFlowHandler struct {
	Service flowService
}

func NewCancelFlowHandler(svc flowService) *CancelFlowHandler {
	return &CancelFlowHandler{Service: svc}
}

func (h *CancelFlowHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "cancel-flow",
		Method:      http.MethodPost,
		Path:        "/v1/flows/{flowID}/cancel",
		Summary:     "Cancel purchase",
		Description: "Abandons the in-flight payment. The flow ends Failed with reason UserCancelled.",
		Tags:        []string{"Flows"},
	}, h.handle)
}

func (h *CancelFlowHandler) handle(ctx context.Context, input *FlowPath) (*FlowOutput, error) {
	id, err := parseFlowID(input.FlowID)
	if err != nil {
		return nil, err
	}
	logging.GetLogData(ctx).AddData("flow", input.FlowID)

	view, err := h.Service.Cancel(id)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return flowOutput(http.StatusOK, view), nil
}
