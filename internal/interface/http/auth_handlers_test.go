package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func registerBody() map[string]any {
	return map[string]any{
		"name":                  "Maria",
		"last_name":             "Lopez",
		"email":                 "maria@example.com",
		"phone":                 "+525512345678",
		"password":              "Secret1!",
		"password_confirmation": "Secret1!",
		"birth":                 "1990-05-20",
		"country":               "MX",
		"city":                  "CDMX",
		"cologne":               "Centro",
		"address":               "Calle 1",
		"zip_code":              "06000",
		"terms":                 true,
	}
}

func TestAuth_RegisterSuccess(t *testing.T) {
	env := setupAPI(t)

	rec := env.doJSON(t, http.MethodPost, "/api/v1/auth/register", registerBody(), env.profileCookie(t, "p-1"))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Equal(t, "maria", body["welcome_name"])
	require.Equal(t, "maria@example.com", body["email"])
}

func TestAuth_RegisterDuplicateReturns409(t *testing.T) {
	env := setupAPI(t)
	cookie := env.profileCookie(t, "p-1")

	rec := env.doJSON(t, http.MethodPost, "/api/v1/auth/register", registerBody(), cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/api/v1/auth/register", registerBody(), cookie)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestAuth_RegisterInvalidReturnsFieldDetails(t *testing.T) {
	env := setupAPI(t)
	body := registerBody()
	body["password"] = "weak"
	body["zip_code"] = ""

	rec := env.doJSON(t, http.MethodPost, "/api/v1/auth/register", body, env.profileCookie(t, "p-1"))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	details := decodeBody(t, rec)["details"].(map[string]any)
	require.Contains(t, details, "password")
	require.Contains(t, details, "password_confirmation")
	require.Contains(t, details, "zip_code")
}

func TestAuth_LoginFlow(t *testing.T) {
	env := setupAPI(t)
	cookie := env.profileCookie(t, "p-1")
	rec := env.doJSON(t, http.MethodPost, "/api/v1/auth/register", registerBody(), cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    "maria@example.com",
		"password": "Secret1!",
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Equal(t, "maria", body["welcome_name"])
	require.NotEmpty(t, body["token"])
	require.NotNil(t, responseCookie(rec))

	profile, err := env.tokens.ParseToken(body["token"].(string))
	require.NoError(t, err)
	require.Equal(t, "p-1", profile.ID)
	require.Equal(t, "maria@example.com", profile.Email)
}

func TestAuth_LoginWrongPasswordReturns401(t *testing.T) {
	env := setupAPI(t)
	cookie := env.profileCookie(t, "p-1")
	env.doJSON(t, http.MethodPost, "/api/v1/auth/register", registerBody(), cookie)

	rec := env.doJSON(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    "maria@example.com",
		"password": "Wrong1!!",
	}, cookie)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_LoginMissingFieldsReturns400(t *testing.T) {
	env := setupAPI(t)

	rec := env.doJSON(t, http.MethodPost, "/api/v1/auth/login", map[string]any{"email": "maria@example.com"}, env.profileCookie(t, "p-1"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
