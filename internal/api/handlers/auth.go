package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yismin/EV-charging-tunisia/internal/api/dto"
	"github.com/yismin/EV-charging-tunisia/internal/auth"
	"github.com/yismin/EV-charging-tunisia/internal/domain"
	"github.com/yismin/EV-charging-tunisia/internal/ports"
)

// AuthHandler exposes account registration and login.
type AuthHandler struct {
	Users  ports.UserRepository
	Tokens *auth.TokenIssuer
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validEmail(email) {
		writeError(w, r, http.StatusBadRequest, "email address is not valid")
		return
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         "member",
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.Users.CreateUser(r.Context(), user); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
}

// Login accepts the OAuth2 password form (username + password fields) and
// returns a bearer token. Unknown emails and wrong passwords produce the
// same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid form body")
		return
	}

	email := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		writeError(w, r, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.Users.GetUserByEmail(r.Context(), email)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, r, http.StatusUnauthorized, "incorrect email or password")
		return
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		writeError(w, r, http.StatusUnauthorized, "incorrect email or password")
		return
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// validEmail applies a light sanity check; real validation happens when
// mail is actually sent.
func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	if at < 1 || at == len(email)-1 {
		return false
	}
	return !strings.ContainsAny(email, " \t")
}
