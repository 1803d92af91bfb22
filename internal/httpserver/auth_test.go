package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkravets/storefront/internal/models"
)

func TestRegisterHandler(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{"username": "test_user", "password": "password"}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", payload)
	require.NoError(t, env.A.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var user models.User
	decodeJSON(t, rec, &user)
	require.Equal(t, "test_user", user.Username)
	require.Equal(t, "user", user.Role)
	require.NotZero(t, user.ID)
	require.NotContains(t, rec.Body.String(), "password_hash")

	rec, c = env.doJSONRequest(http.MethodPost, "/api/v1/register", payload)
	require.NoError(t, env.A.Register(c))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterHandlerValidation(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", map[string]string{"username": "", "password": "pw"})
	require.NoError(t, env.A.Register(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginHandler(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "test_user")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", map[string]string{
		"username": "test_user",
		"password": "password",
	})
	require.NoError(t, env.A.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	decodeJSON(t, rec, &resp)
	require.NotEmpty(t, resp["access_token"])
	require.Equal(t, false, resp["is_admin"])

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, "accessToken", cookies[0].Name)
	require.NotEmpty(t, cookies[0].Value)
}

func TestLoginHandlerGenericFailure(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "test_user")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/login", map[string]string{
		"username": "test_user",
		"password": "wrong",
	})
	require.NoError(t, env.A.Login(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	wrongPwBody := rec.Body.String()

	rec, c = env.doJSONRequest(http.MethodPost, "/api/v1/login", map[string]string{
		"username": "no_such_user",
		"password": "password",
	})
	require.NoError(t, env.A.Login(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, wrongPwBody, rec.Body.String(), "unknown user and wrong password are indistinguishable")
}

func TestLogoutHandler(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/logout", nil)
	require.NoError(t, env.A.Logout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, "accessToken", cookies[0].Name)
	require.Empty(t, cookies[0].Value)
}
