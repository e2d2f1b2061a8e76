package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/agrofiscal/mapa-api/internal/interfaces/http"
	pkgjwt "github.com/agrofiscal/mapa-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "mapa-api-test"
	testExpMin    = 60
)

// buildTestApp constrói uma aplicação Fiber mínima com:
//   - AuthMiddleware para validar o JWT e carregar os locals
//   - Um handler que devolve os claims extraídos se o middleware passar
func buildTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar erros internos nos testes
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"user_id":  apphttp.GetUserID(c),
				"is_admin": apphttp.IsAdmin(c),
			})
		},
	)
	return app
}

// tokenFor gera um JWT de teste com o flag de admin indicado.
func tokenFor(t *testing.T, isAdmin bool) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, isAdmin, testIssuer, testExpMin)
	require.NoError(t, err, "deve gerar um token JWT válido")
	return "Bearer " + tok
}

// doRequest dispara uma requisição GET /protected e devolve a resposta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extração de claims do token
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: token válido → HTTP 200 e claims nos locals.
func TestAuthMiddleware_TokenValido_ExtraiClaims(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenFor(t, true))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"token válido deve passar pelo middleware")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"], "o user_id deve vir do claim do token")
	assert.Equal(t, true, body["is_admin"], "o flag de admin deve vir do claim do token")
}

// Caso 1b: usuário comum (is_admin=false) também passa, com o flag correto.
func TestAuthMiddleware_UsuarioComum_IsAdminFalse(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenFor(t, false))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["is_admin"])
}

// Caso 2: sem header Authorization → HTTP 401 MISSING_TOKEN.
func TestAuthMiddleware_SemAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "") // sem header
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN",
		"a resposta de erro deve incluir o código MISSING_TOKEN")
}

// Caso 3: header com formato errado (sem prefixo Bearer) → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Basic abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN",
		"a resposta deve indicar o código INVALID_TOKEN")
}

// Caso 4: token malformado → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenMalformado_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Caso 5: token expirado → HTTP 401.
func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	app := buildTestApp()
	// expMinutes negativo gera um token já vencido.
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, false, testIssuer, -1)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token expirado deve retornar 401")
}

// Caso 6: token assinado com outro secret → HTTP 401.
func TestAuthMiddleware_SecretErrado_Retorna401(t *testing.T) {
	app := buildTestApp()
	tok, err := pkgjwt.Generate("outro-secret-diferente", testUserID, false, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token com assinatura incorreta deve retornar 401")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AdminOnly — restrição das rotas de administração
// ──────────────────────────────────────────────────────────────────────────────

// buildAdminTestApp encadeia AuthMiddleware + AdminOnly, como o grupo /admin
// do router.
func buildAdminTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin/users",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.AdminOnly(),
		func(c *fiber.Ctx) error {
			return c.SendStatus(http.StatusOK)
		},
	)
	return app
}

// Token de admin passa pelo guard.
func TestAdminOnly_Admin_Permitido(t *testing.T) {
	app := buildAdminTestApp()

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", tokenFor(t, true))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"token com is_admin=true deve acessar as rotas de administração")
}

// Usuário comum autenticado recebe 403 FORBIDDEN.
func TestAdminOnly_UsuarioComum_Retorna403(t *testing.T) {
	app := buildAdminTestApp()

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", tokenFor(t, false))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"a resposta deve indicar o código FORBIDDEN")
}

// Sem token nem chega ao guard de admin: o AuthMiddleware barra antes.
func TestAdminOnly_SemToken_Retorna401(t *testing.T) {
	app := buildAdminTestApp()

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests pkg/jwt — integridade do generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, true, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, isAdmin, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err, "o token gerado deve ser parseável com o mesmo secret")
	assert.Equal(t, testUserID, userID)
	assert.True(t, isAdmin)
}

func TestJWT_Generate_SecretVazio_Erro(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, false, testIssuer, testExpMin)
	assert.Error(t, err, "secret vazio deve ser rejeitado")
}

func TestJWT_Parse_SecretErrado_Erro(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, false, testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("secret-incorreto", tok)
	assert.Error(t, err, "parse com secret diferente deve falhar")
}
