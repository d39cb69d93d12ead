package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	domaccount "example.com/storefront/internal/domain/account"
	"example.com/storefront/internal/infra/persistence/kvrepo"
	"example.com/storefront/internal/infra/persistence/memory"
	"example.com/storefront/internal/infra/security"
	accountuc "example.com/storefront/internal/usecase/account"
	checkoutuc "example.com/storefront/internal/usecase/checkout"
	productuc "example.com/storefront/internal/usecase/product"
)

type testEnv struct {
	router chi.Router
	kv     *memory.KVStore
	tokens *security.JWTService
}

func setupAPI(t *testing.T) *testEnv {
	t.Helper()
	kv := memory.NewKVStore()
	tokens := security.NewJWTService("test-secret", time.Hour)

	api := NewAPI(Dependencies{
		ProductService:  productuc.NewService(memory.NewProductRepository(memory.DefaultCatalog())),
		AccountService:  accountuc.NewService(kvrepo.NewAccountRepository(kv), security.NewBcryptService(4), tokens, nil, nil),
		CheckoutService: checkoutuc.NewService(nil),
		Sessions:        NewSessions(kv, time.Hour, nil),
		TokenService:    tokens,
		ProfileTTL:      time.Hour,
	})
	return &testEnv{router: api.Router(), kv: kv, tokens: tokens}
}

// profileCookie signs a cookie for a known profile id.
func (e *testEnv) profileCookie(t *testing.T, id string) *http.Cookie {
	t.Helper()
	token, err := e.tokens.GenerateToken(domaccount.Profile{ID: id})
	require.NoError(t, err)
	return &http.Cookie{Name: profileCookie, Value: token}
}

func (e *testEnv) serve(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doJSON(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	return e.serve(req, cookie)
}

func (e *testEnv) doForm(t *testing.T, path string, values url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.serve(req, cookie)
}

func (e *testEnv) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	return e.serve(httptest.NewRequest(http.MethodGet, path, nil), cookie)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func responseCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == profileCookie {
			return c
		}
	}
	return nil
}

func TestHealth(t *testing.T) {
	env := setupAPI(t)

	rec := env.get("/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decodeBody(t, rec)["status"])
	require.Nil(t, responseCookie(rec))
}

func TestProfile_IssuedWhenMissing(t *testing.T) {
	env := setupAPI(t)

	rec := env.get("/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	cookie := responseCookie(rec)
	require.NotNil(t, cookie)
	require.True(t, cookie.HttpOnly)

	profile, err := env.tokens.ParseToken(cookie.Value)
	require.NoError(t, err)
	require.NotEmpty(t, profile.ID)
}

func TestProfile_InvalidCookieIsReplaced(t *testing.T) {
	env := setupAPI(t)

	rec := env.get("/api/v1/cart", &http.Cookie{Name: profileCookie, Value: "garbage"})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, responseCookie(rec))
}

func TestProfile_ValidCookieIsKept(t *testing.T) {
	env := setupAPI(t)

	rec := env.get("/api/v1/cart", env.profileCookie(t, "p-1"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, responseCookie(rec))
}

func TestSessions_LoadStoredCart(t *testing.T) {
	env := setupAPI(t)
	stored := `[{"id":3,"name":"Producto 3","price":1000,"image":"p3.jpg","quantity":2}]`
	require.NoError(t, env.kv.Set(context.Background(), "profile:p-1:cart", []byte(stored)))

	rec := env.get("/api/v1/cart", env.profileCookie(t, "p-1"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, float64(2), body["item_count"])
	require.Equal(t, float64(2000), body["total"])
}

func TestSessions_MalformedStoredCartStartsEmpty(t *testing.T) {
	env := setupAPI(t)
	require.NoError(t, env.kv.Set(context.Background(), "profile:p-1:cart", []byte("not json")))

	rec := env.get("/api/v1/cart", env.profileCookie(t, "p-1"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, float64(0), body["item_count"])
	require.Empty(t, body["items"])
}
