package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProducts_List(t *testing.T) {
	env := setupAPI(t)

	rec := env.get("/api/v1/products", env.profileCookie(t, "p-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	var products []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 7)
	require.Equal(t, "Producto 1", products[0]["name"])
	require.Equal(t, float64(1000), products[0]["price"])
	require.Equal(t, false, products[0]["liked"])

	stars := products[0]["stars"].(map[string]any)
	require.Equal(t, float64(3), stars["full"])
	require.Equal(t, float64(1), stars["half"])
	require.Equal(t, float64(1), stars["empty"])
}

func TestProducts_GetNotFound(t *testing.T) {
	env := setupAPI(t)

	rec := env.get("/api/v1/products/99", env.profileCookie(t, "p-1"))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.get("/api/v1/products/x", env.profileCookie(t, "p-1"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProducts_ToggleLike(t *testing.T) {
	env := setupAPI(t)
	cookie := env.profileCookie(t, "p-1")

	rec := env.doJSON(t, http.MethodPost, "/api/v1/products/2/like", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, true, decodeBody(t, rec)["liked"])

	rec = env.get("/api/v1/products/2", cookie)
	require.Equal(t, true, decodeBody(t, rec)["liked"])

	rec = env.doJSON(t, http.MethodPost, "/api/v1/products/2/like", nil, cookie)
	require.Equal(t, false, decodeBody(t, rec)["liked"])

	rec = env.doJSON(t, http.MethodPost, "/api/v1/products/99/like", nil, cookie)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
