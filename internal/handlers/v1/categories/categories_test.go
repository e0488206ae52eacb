package categories

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaincolawallet/netpay-wallet-sub001/internal/catalog"
)

func newTestAPI(t *testing.T, c catalogReader) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewListCategoriesHandler(c).Register(api)
	NewListProvidersHandler(c).Register(api)
	return api
}

func TestHTTP_ListCategories_Default(t *testing.T) {
	resp := newTestAPI(t, catalog.Default()).Get("/v1/categories")

	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Categories []Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	ids := make([]string, len(body.Categories))
	for i, c := range body.Categories {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"airtime", "data", "electricity", "cabletv", "education", "betting"}, ids)

	betting := body.Categories[5]
	assert.Equal(t, "100", betting.MinAmount)
	require.NotNil(t, betting.MaxAmount)
	assert.Equal(t, "500000", *betting.MaxAmount)
	assert.True(t, betting.RequiresProvider)

	education := body.Categories[4]
	assert.Nil(t, education.MaxAmount)
	assert.Equal(t, "1000", education.MinAmount)
}

func TestHTTP_ListProviders(t *testing.T) {
	resp := newTestAPI(t, catalog.Default()).Get("/v1/categories/airtime/providers")

	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Providers []Provider `json:"providers"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Providers)
	assert.Equal(t, "mtn", body.Providers[0].ID)
	for _, p := range body.Providers {
		assert.Equal(t, "airtime", p.CategoryID)
	}
}

func TestHTTP_ListProviders_CategoryWithoutProviders(t *testing.T) {
	c := catalog.New(catalog.ServiceCategory{
		ID:            "donations",
		Name:          "Donations",
		MinAmount:     decimal.NewFromInt(10),
		RecipientKind: catalog.RecipientAccountNumber,
	})

	resp := newTestAPI(t, c).Get("/v1/categories/donations/providers")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"providers":[]}`, stripSchema(t, resp.Body.Bytes()))
}

func TestHTTP_ListProviders_UnknownCategory(t *testing.T) {
	resp := newTestAPI(t, catalog.Default()).Get("/v1/categories/lottery/providers")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

// stripSchema drops the $schema link huma adds to response bodies.
func stripSchema(t *testing.T, body []byte) string {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	delete(m, "$schema")
	out, err := json.Marshal(m)
	require.NoError(t, err)
	return string(out)
}
