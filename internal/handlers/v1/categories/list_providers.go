package categories

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/catalog"
)

type ListProvidersInput struct {
	CategoryID string `path:"categoryID" doc:"Category id"`
}

type ListProvidersOutput struct {
	Body struct {
		Providers []Provider `json:"providers" doc:"Providers in display order, empty when the category has none"`
	}
}

// ListProvidersHandler handles GET /v1/categories/{categoryID}/providers.
type ListProvidersHandler struct {
	Catalog catalogReader
}

func NewListProvidersHandler(c catalogReader) *ListProvidersHandler {
	return &ListProvidersHandler{Catalog: c}
}

func (h *ListProvidersHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-providers",
		Method:      http.MethodGet,
		Path:        "/v1/categories/{categoryID}/providers",
		Summary:     "List providers",
		Description: "Lists the providers of one category.",
		Tags:        []string{"Catalog"},
	}, h.handle)
}

func (h *ListProvidersHandler) handle(ctx context.Context, input *ListProvidersInput) (*ListProvidersOutput, error) {
	id := catalog.CategoryID(input.CategoryID)
	if _, ok := h.Catalog.Category(id); !ok {
		return nil, huma.Error404NotFound("unknown category " + input.CategoryID)
	}

	out := &ListProvidersOutput{}
	out.Body.Providers = toProviders(h.Catalog.ProvidersFor(id))
	return out, nil
}
