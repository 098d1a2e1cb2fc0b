// Account registration, login, and session management against the auth router
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"github.com/solace-cli/solace/internal/client"
	"github.com/solace-cli/solace/internal/models"
	"github.com/solace-cli/solace/internal/shared"
)

// AuthService handles accounts and sessions. Successful logins persist the
// bearer credential in the client's token store; Logout discards it.
type AuthService struct {
	api    *client.Client
	logger *log.Logger
}

// registration payload for the register endpoint
type registerPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type anonymousPayload struct {
	Username string `json:"username"`
}

// Register creates a full account with an email address.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", shared.ErrInvalidInput)
	}

	var user models.User

	payload := registerPayload{Email: email, Username: username, Password: password}
	if err := s.api.Do(ctx, client.Request{Method: http.MethodPost, Path: "/auth/register", Body: payload, NoAuth: true}, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// RegisterAnonymous creates a privacy-preserving account identified only by
// a username.
func (s *AuthService) RegisterAnonymous(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", shared.ErrInvalidInput)
	}

	var user models.User

	if err := s.api.Do(ctx, client.Request{Method: http.MethodPost, Path: "/auth/register-anonymous", Body: anonymousPayload{Username: username}, NoAuth: true}, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Login exchanges a username and password for a bearer token via the OAuth2
// password form and stores the credential for subsequent requests.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var token models.Token

	if err := s.api.Do(ctx, client.Request{Method: http.MethodPost, Path: "/auth/login", Form: form, NoAuth: true}, &token); err != nil {
		return nil, err
	}

	return &token, s.store(token)
}

// LoginAnonymous authenticates an anonymous account by username alone and
// stores the credential.
func (s *AuthService) LoginAnonymous(ctx context.Context, username string) (*models.Token, error) {
	query := url.Values{}
	query.Set("username", username)

	var token models.Token

	if err := s.api.Do(ctx, client.Request{Method: http.MethodPost, Path: "/auth/login-anonymous", Query: query, NoAuth: true}, &token); err != nil {
		return nil, err
	}

	return &token, s.store(token)
}

func (s *AuthService) store(token models.Token) error {
	if token.AccessToken == "" {
		return fmt.Errorf("%w: backend returned an empty token", shared.ErrAuthFailed)
	}

	if err := s.api.Tokens().Set(&oauth2.Token{AccessToken: token.AccessToken, TokenType: token.TokenType}); err != nil {
		return fmt.Errorf("storing credential: %w", err)
	}

	s.logger.Debug("credential stored")

	return nil
}

// Me fetches the authenticated account's profile.
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	var user models.User

	if err := s.api.Get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Logout discards the stored credential. The backend keeps no session
// state, so this is purely local.
func (s *AuthService) Logout() error {
	return s.api.Tokens().Clear()
}

// LoggedIn reports whether a credential is currently stored.
func (s *AuthService) LoggedIn() bool {
	tok := s.api.Tokens().Token()

	return tok != nil && tok.AccessToken != ""
}
