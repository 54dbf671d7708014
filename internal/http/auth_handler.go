package http

import (
	"net/http"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/auth/domain"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/auth/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth *service.AuthService
	log  *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

type SignupRequestDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequestDTO struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}

type ForgotPasswordRequestDTO struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequestDTO struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type UpdateRoleRequestDTO struct {
	Role domain.Role `json:"role" validate:"required,oneof=customer admin vendor"`
}

type CustomerResponseDTO struct {
	ID       string      `json:"id"`
	Email    string      `json:"email"`
	FullName string      `json:"fullName"`
	Phone    string      `json:"phone"`
	Role     domain.Role `json:"role"`
}

func customerResponse(c *domain.Customer) CustomerResponseDTO {
	return CustomerResponseDTO{
		ID:       c.ID.Hex(),
		Email:    c.Email,
		FullName: c.FullName,
		Phone:    c.Phone,
		Role:     c.Role,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.auth.Signup(r.Context(), req.Email, req.Password, req.FullName, req.Phone); err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "Signup successful"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	accessToken, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message":     "Login successful",
		"accessToken": accessToken,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), customerIDFromContext(r.Context())); err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	customer, err := h.auth.GetProfile(r.Context(), customerIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, customerResponse(customer))
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := h.auth.UpdateProfile(r.Context(), customerIDFromContext(r.Context()), req.FullName, req.Phone)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, customerResponse(customer))
}

func (h *AuthHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.DeleteProfile(r.Context(), customerIDFromContext(r.Context())); err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Account deleted"})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "OTP sent to your email"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Password reset successful"})
}

func (h *AuthHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.auth.ListCustomers(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	out := make([]CustomerResponseDTO, 0, len(customers))
	for i := range customers {
		out = append(out, customerResponse(&customers[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *AuthHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoleRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	customer, err := h.auth.UpdateRole(r.Context(), chi.URLParam(r, "customer_id"), req.Role)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, customerResponse(customer))
}
