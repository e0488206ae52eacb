package flows

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/logging"
)

// CloseFlowHandler handles DELETE /v1/flows/{flowID}.
type CloseFlowHandler struct {
	Service flowService
}

func NewCloseFlowHandler(svc flowService) *CloseFlowHandler {
	return &CloseFlowHandler{Service: svc}
}

func (h *CloseFlowHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "close-flow",
		Method:        http.MethodDelete,
		Path:          "/v1/flows/{flowID}",
		Summary:       "Close purchase flow",
		Description:   "Cancels any in-flight payment and forgets the flow.",
		Tags:          []string{"Flows"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *CloseFlowHandler) handle(ctx context.Context, input *FlowPath) (*struct{}, error) {
	id, err := parseFlowID(input.FlowID)
	if err != nil {
		return nil, err
	}
	logging.GetLogData(ctx).AddData("flow", input.FlowID)

	if err := h.Service.Close(id); err != nil {
		return nil, toHTTPError(err)
	}
	return nil, nil
}
