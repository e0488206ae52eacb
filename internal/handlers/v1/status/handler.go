package status

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type flowCounter interface {
	Len() int
}

type StatusOutput struct {
	Body struct {
		Status    string `json:"status" doc:"Always ok while the server is up"`
		OpenFlows int    `json:"openFlows" doc:"Number of open purchase flows"`
	}
}

// Handler handles GET /status.
type Handler struct {
	Flows flowCounter
}

func NewHandler(flows flowCounter) *Handler {
	return &Handler{Flows: flows}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "status",
		Method:      http.MethodGet,
		Path:        "/status",
		Summary:     "Health check",
		Tags:        []string{"Status"},
	}, h.handle)
}

func (h *Handler) handle(ctx context.Context, _ *struct{}) (*StatusOutput, error) {
	out := &StatusOutput{}
	out.Body.Status = "ok"
	out.Body.OpenFlows = h.Flows.Len()
	return out, nil
}
