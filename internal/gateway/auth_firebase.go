package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	fbauth "firebase.google.com/go/auth"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// FirebaseAuthenticator implements Authenticator against Firebase Auth. The
// Admin SDK manages accounts; password verification and the verification
// email go through the Identity Toolkit REST API since the Admin SDK has no
// password check of its own.
type FirebaseAuthenticator struct {
	client *fbauth.Client
	apiKey string
	http   *http.Client
}

func NewFirebaseAuthenticator(client *fbauth.Client, webAPIKey string) *FirebaseAuthenticator {
	return &FirebaseAuthenticator{client: client, apiKey: webAPIKey, http: http.DefaultClient}
}

func (a *FirebaseAuthenticator) CreateAccount(ctx context.Context, email, password, displayName string) (Account, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	rec, err := a.client.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return Account{}, ErrEmailExists
		}
		return Account{}, err
	}
	return accountFromRecord(rec), nil
}

func (a *FirebaseAuthenticator) SignIn(ctx context.Context, email, password string) (Account, error) {
	var resp struct {
		LocalID string `json:"localId"`
	}
	err := a.post(ctx, "accounts:signInWithPassword", map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return Account{}, ErrInvalidCredentials
	}

	rec, err := a.client.GetUser(ctx, resp.LocalID)
	if err != nil {
		return Account{}, err
	}
	if !rec.EmailVerified {
		return Account{}, ErrEmailNotVerified
	}
	return accountFromRecord(rec), nil
}

// SendVerificationEmail triggers the VERIFY_EMAIL out-of-band flow. The REST
// endpoint wants an id token, so one is minted from a custom token first.
func (a *FirebaseAuthenticator) SendVerificationEmail(ctx context.Context, uid string) error {
	custom, err := a.client.CustomToken(ctx, uid)
	if err != nil {
		return err
	}

	var signIn struct {
		IDToken string `json:"idToken"`
	}
	if err := a.post(ctx, "accounts:signInWithCustomToken", map[string]interface{}{
		"token":             custom,
		"returnSecureToken": true,
	}, &signIn); err != nil {
		return err
	}

	return a.post(ctx, "accounts:sendOobCode", map[string]interface{}{
		"requestType": "VERIFY_EMAIL",
		"idToken":     signIn.IDToken,
	}, nil)
}

func (a *FirebaseAuthenticator) GetAccount(ctx context.Context, uid string) (Account, error) {
	rec, err := a.client.GetUser(ctx, uid)
	if err != nil {
		if fbauth.IsUserNotFound(err) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, err
	}
	return accountFromRecord(rec), nil
}

func (a *FirebaseAuthenticator) SignOut(ctx context.Context, uid string) error {
	return a.client.RevokeRefreshTokens(ctx, uid)
}

func (a *FirebaseAuthenticator) post(ctx context.Context, endpoint string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s?key=%s", identityToolkitURL, endpoint, a.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(res.Body).Decode(&apiErr)
		return fmt.Errorf("identity toolkit %s: %s", endpoint, apiErr.Error.Message)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func accountFromRecord(rec *fbauth.UserRecord) Account {
	return Account{
		UID:           rec.UID,
		Email:         rec.Email,
		DisplayName:   rec.DisplayName,
		EmailVerified: rec.EmailVerified,
	}
}
