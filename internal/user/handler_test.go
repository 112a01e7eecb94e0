package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/makaziyangu/makazi-backend/internal/gateway"
)

// authAs injects a parsed token the way the jwt middleware would, so
// protected handlers can be tested without a real token round trip.
func authAs(uid string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := &jwt.Token{Claims: jwt.MapClaims{"user_id": uid, "email": "amina@example.com"}}
		c.Locals("user", tok)
		return c.Next()
	}
}

func newTestApp(t *testing.T) (*fiber.App, *Handler, *gateway.InMemoryAuthenticator) {
	t.Helper()
	auth := gateway.NewInMemoryAuthenticator()
	h := NewHandler(NewService(auth, NewGatewayRepository(gateway.NewInMemoryStore())))
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	return app, h, auth
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	out := map[string]interface{}{}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return res.StatusCode, out
}

func TestSignUpSendsVerificationAndSignInIsGated(t *testing.T) {
	app, _, auth := newTestApp(t)

	status, body := postJSON(t, app, "/api/v1/sign-up", map[string]string{
		"email": "amina@example.com", "password": "secret123", "name": "Amina Odhiambo",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("sign-up status = %d: %v", status, body)
	}

	// unverified accounts cannot sign in, and the message tells them why
	status, body = postJSON(t, app, "/api/v1/sign-in", map[string]string{
		"email": "amina@example.com", "password": "secret123",
	})
	if status != fiber.StatusUnauthorized {
		t.Fatalf("unverified sign-in status = %d", status)
	}
	if body["message"] != "Please verify your email before signing in. Check your inbox!" {
		t.Fatalf("message = %q", body["message"])
	}
	if _, ok := body["token"]; ok {
		t.Fatalf("unverified sign-in issued a token")
	}

	// after clicking the verification link sign-in succeeds with a token
	acc, err := auth.GetAccountByEmail("amina@example.com")
	if err != nil {
		t.Fatalf("looking up account: %v", err)
	}
	if err := auth.MarkVerified(acc.UID); err != nil {
		t.Fatalf("MarkVerified: %v", err)
	}

	status, body = postJSON(t, app, "/api/v1/sign-in", map[string]string{
		"email": "amina@example.com", "password": "secret123",
	})
	if status != fiber.StatusOK {
		t.Fatalf("verified sign-in status = %d: %v", status, body)
	}
	if tok, _ := body["token"].(string); tok == "" {
		t.Fatalf("verified sign-in returned no token")
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	app, _, _ := newTestApp(t)

	form := map[string]string{"email": "amina@example.com", "password": "secret123", "name": "Amina"}
	if status, _ := postJSON(t, app, "/api/v1/sign-up", form); status != fiber.StatusCreated {
		t.Fatalf("first sign-up status = %d", status)
	}
	status, body := postJSON(t, app, "/api/v1/sign-up", form)
	if status != fiber.StatusConflict {
		t.Fatalf("duplicate sign-up status = %d: %v", status, body)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	app, _, auth := newTestApp(t)

	postJSON(t, app, "/api/v1/sign-up", map[string]string{
		"email": "amina@example.com", "password": "secret123", "name": "Amina",
	})
	acc, _ := auth.GetAccountByEmail("amina@example.com")
	auth.MarkVerified(acc.UID)

	status, _ := postJSON(t, app, "/api/v1/sign-in", map[string]string{
		"email": "amina@example.com", "password": "wrong",
	})
	if status != fiber.StatusUnauthorized {
		t.Fatalf("wrong password status = %d", status)
	}
}

func TestProfileRequiresAuth(t *testing.T) {
	app, h, _ := newTestApp(t)
	h.RegisterProtectedRoutes(app)

	req := httptest.NewRequest("GET", "/api/v1/profile", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", res.StatusCode)
	}
}

func TestProfileReturnsStoredUser(t *testing.T) {
	auth := gateway.NewInMemoryAuthenticator()
	store := gateway.NewInMemoryStore()
	service := NewService(auth, NewGatewayRepository(store))
	h := NewHandler(service)

	profile, err := service.Register(context.Background(), "amina@example.com", "secret123", "Amina Odhiambo")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	app := fiber.New()
	app.Use(authAs(profile.UID))
	h.RegisterProtectedRoutes(app)

	req := httptest.NewRequest("GET", "/api/v1/profile", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}

	var got Profile
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if got.Name != "Amina Odhiambo" || got.IsLandlord {
		t.Fatalf("profile = %+v", got)
	}
}
