package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkraj/wholemart/internal/models"
)

type RegisterService interface {
	// Register creates a buyer account pending approval
	Register(ctx context.Context, login, password, businessName string) (*models.User, error)
}

type LoginService interface {
	// Login checks the credentials and returns a session token
	Login(ctx context.Context, login, password string) (string, error)
}

// UserHandler represents HTTP handler for registration and login
type UserHandler struct {
	register RegisterService
	auth     LoginService
}

// NewUserHandler creates new UserHandler instance
func NewUserHandler(register RegisterService, auth LoginService) *UserHandler {
	return &UserHandler{register: register, auth: auth}
}

type registerRequest struct {
	Login        string `json:"login"`
	Password     string `json:"password"`
	BusinessName string `json:"businessName"`
}

type registerResponse struct {
	ID            string `json:"id"`
	Login         string `json:"login"`
	BusinessName  string `json:"businessName"`
	AccountStatus string `json:"accountStatus"`
}

// RegisterUser creates a buyer account. New accounts wait for admin
// approval before they can sign in.
// 201 — account created;
// 400 — malformed request;
// 409 — login already taken;
// 500 — internal server error.
func (uh *UserHandler) RegisterUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if req.Login == "" || req.Password == "" || req.BusinessName == "" {
			http.Error(w, "missing login, password or business name", http.StatusBadRequest)
			return
		}

		user, err := uh.register.Register(r.Context(), req.Login, req.Password, req.BusinessName)
		if err != nil {
			if errors.Is(err, models.ErrConflictData) {
				http.Error(w, "login already taken", http.StatusConflict)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(registerResponse{
			ID:            user.ID.String(),
			Login:         user.Login,
			BusinessName:  user.BusinessName,
			AccountStatus: user.AccountStatus,
		})
	}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginUser checks the credentials and sets the session cookie
// 200 — success;
// 400 — malformed request;
// 401 — wrong login or password;
// 403 — account not approved yet;
// 500 — internal server error.
func (uh *UserHandler) LoginUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		token, err := uh.auth.Login(r.Context(), req.Login, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidCredentials), errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "wrong login or password", http.StatusUnauthorized)
			case errors.Is(err, models.ErrAccountNotApproved):
				http.Error(w, "account is not approved", http.StatusForbidden)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     "auth_token",
			Value:    token,
			Path:     "/",
			HttpOnly: true,
		})
		w.WriteHeader(http.StatusOK)
	}
}
