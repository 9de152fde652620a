package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/campus-bookings/internal/apperror"
	"github.com/sakif/campus-bookings/internal/auth"
	"github.com/sakif/campus-bookings/internal/service"
)

// AccountHandler serves registration, login, and the authenticated whoami
// endpoint. Login is the only place tokens are minted; every other endpoint
// either ignores identity or reads it from the request context.
type AccountHandler struct {
	accounts *service.AccountService
	tokens   *auth.TokenService
	logger   *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts *service.AccountService, tokens *auth.TokenService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{accounts: accounts, tokens: tokens, logger: logger}
}

type registerRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	IsProfessor bool   `json:"isProfessor"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse carries the identity the client needs to drive its UI plus
// the bearer token for subsequent authenticated calls.
type loginResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /register
// REQUEST BODY: {"username": "drsmith", "password": "...", "isProfessor": true}
//
// Responds 201 with the created user (password hash excluded by the model's
// json tags), 409 if the username is taken.
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.accounts.Register(r.Context(), req.Username, req.Password, req.IsProfessor)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("account registered",
		slog.String("userId", user.ID),
		slog.Bool("isProfessor", user.IsProfessor))
	writeJSON(w, http.StatusCreated, user)
}

// HandleLogin verifies credentials and issues a JWT.
//
// HTTP: POST /login
// REQUEST BODY: {"username": "drsmith", "password": "..."}
//
// Responds 200 {id, username, role, token}. All credential failures are 401
// with one indistinguishable message; the handler never reveals whether the
// username exists.
func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		h.logger.Error("failed to issue token", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role(),
		Token:    token,
	})
}

// HandleMe returns the account behind the request's token.
//
// HTTP: GET /me (requires auth middleware)
func (h *AccountHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		// Only reachable if the route was wired without RequireAuth.
		writeError(w, apperror.Unauthorized("authentication required"))
		return
	}

	user, err := h.accounts.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
