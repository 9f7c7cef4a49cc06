// Copyright (c) 2026 Cinelog. All rights reserved.

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/middleware"
	requestutil "github.com/cinelog/cinelog/internal/platform/request"
	"github.com/cinelog/cinelog/internal/platform/respond"
	"github.com/cinelog/cinelog/internal/platform/sec"
	"github.com/cinelog/cinelog/internal/platform/validate"
)

// # Definitions & Constructors

// RefreshVerifier checks a presented refresh token's signature and expiry
// before the rotation flow consults the stored hash.
type RefreshVerifier interface {
	VerifyRefreshToken(tokenString string) (*sec.AuthClaims, error)
}

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService     *Service
	refreshVerifier RefreshVerifier
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, refreshVerifier RefreshVerifier) *Handler {
	return &Handler{authService: service, refreshVerifier: refreshVerifier}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /register : Creates a new account (public).
//   - POST /login    : Authenticates and returns a token pair (public).
//   - POST /logout   : Revokes the refresh grant (requires access token).
//   - POST /refresh  : Rotates the token pair (requires access token plus
//     a valid refresh token in the body).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Post("/refresh", handler.refresh)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

/*
register handles the creation of a new user account.

POST /api/v1/auth/register

Response:
  - 201: Session (user profile + token pair)
  - 400: Validation failure
  - 409: Email or username already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Email:    input.Email,
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, session)
}

/*
login authenticates a user and establishes a session.

POST /api/v1/auth/login

Response:
  - 200: Session (user profile + token pair)
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

/*
logout terminates the current user session.

POST /api/v1/auth/logout

Response:
  - 204: Refresh grant cleared (idempotent)
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
refresh rotates the session's token pair.

POST /api/v1/auth/refresh

The caller authenticates with its access token; the body carries the current
refresh token, which must verify against the refresh secret AND match the
hash stored for the user. The previous refresh token is invalidated by the
rotation.

Response:
  - 200: New access/refresh pair
  - 401: Missing, invalid, or already-rotated refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input refreshRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.RefreshToken == "" {
		respond.Error(writer, request, validate.RequiredError(FieldRefreshToken, "is required"))
		return
	}

	// Signature/expiry check against the refresh secret, before any
	// database work.
	claims, err := handler.refreshVerifier.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		respond.Error(writer, request, apperr.Unauthorized("Invalid or expired refresh token"))
		return
	}

	// A refresh token can only rotate the session of its own subject.
	if claims.Subject != userID {
		respond.Error(writer, request, apperr.Unauthorized("Access denied"))
		return
	}

	tokens, err := handler.authService.RefreshTokens(request.Context(), userID, input.RefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldAccessToken:  tokens.AccessToken,
		FieldRefreshToken: tokens.RefreshToken,
		FieldTokenType:    "Bearer",
		FieldExpiresIn:    int64(handler.authService.tokenProvider.AccessTTL() / time.Second),
	})
}
