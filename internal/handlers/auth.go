package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/diewo77/ledgerpro/internal/auth"
	"github.com/diewo77/ledgerpro/internal/httpx"
	"github.com/diewo77/ledgerpro/internal/models"
	"github.com/diewo77/ledgerpro/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	v := make(validation.Violations)
	validation.Required("name", req.Name, v)
	validation.Required("email", req.Email, v)
	validation.MinLen("password", req.Password, 8, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    strings.ToLower(req.Email),
		Password: string(hash),
		Role:     models.UserRoleUser,
		Company:  req.Company,
		Phone:    req.Phone,
	}
	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httpx.JSONError(w, http.StatusBadRequest, "email_already_registered", nil)
			return
		}
		serviceError(w, r, err)
		return
	}

	token := auth.IssueToken(user.ID, auth.TokenTTL)
	httpx.Success(w, http.StatusCreated, authResponse{User: &user, Token: token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var user models.User
	err := h.db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error
	if err != nil {
		// Same answer whether the account exists or not.
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}

	token := auth.IssueToken(user.ID, auth.TokenTTL)
	httpx.Success(w, http.StatusOK, authResponse{User: &user, Token: token})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	httpx.Success(w, http.StatusOK, &user)
}

type updateMeRequest struct {
	Name        *string                 `json:"name"`
	Company     *string                 `json:"company"`
	Phone       *string                 `json:"phone"`
	Preferences *models.UserPreferences `json:"preferences"`
}

func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req updateMeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed",
			validation.Violations{"name": "required"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Company != nil {
		user.Company = *req.Company
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Preferences != nil {
		user.Preferences = *req.Preferences
	}

	if err := h.db.Save(&user).Error; err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, &user)
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword acknowledges the request without revealing whether the
// account exists. Mail delivery is not wired up.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	httpx.Success(w, http.StatusOK, map[string]string{
		"message": "if the account exists, a reset link has been sent",
	})
}
