package handler

import (
	"errors"
	"strings"

	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/domain/user"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"
	ucsignup "gigboard/internal/usecase/signup"

	"github.com/gofiber/fiber/v3"
)

type SignupHandler struct {
	uc usecase.SignupUsecase
}

type signupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	CompanyName string `json:"company_name"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewSignupHandler(uc usecase.SignupUsecase) *SignupHandler {
	return &SignupHandler{uc: uc}
}

func (h *SignupHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/signup", h.Selector)
	r.Post("/signup/freelancer", h.SignUpFreelancer)
	r.Post("/signup/owner", h.SignUpOwner)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
}

// Selector presents the two registration choices.
func (h *SignupHandler) Selector(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
		"choices": h.uc.Roles(),
	})
}

func (h *SignupHandler) SignUpFreelancer(c fiber.Ctx) error {
	return h.signUp(c, ucsignup.RoleFreelancer)
}

func (h *SignupHandler) SignUpOwner(c fiber.Ctx) error {
	return h.signUp(c, ucsignup.RoleOwner)
}

func (h *SignupHandler) signUp(c fiber.Ctx, role ucsignup.Role) error {
	var req signupRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, access, refresh, err := h.uc.SignUp(c.Context(), role, ucsignup.Input{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		return mapSignupError(err)
	}

	data := map[string]any{
		"user":          newUserResponse(usr),
		"access_token":  access,
		"refresh_token": refresh,
	}
	return response.Success(c, fiber.StatusCreated, "Account created successfully", data)
}

func (h *SignupHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, access, refresh, err := h.uc.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ucsignup.ErrInvalidCredentials) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	data := map[string]any{
		"user":          newUserResponse(usr),
		"access_token":  access,
		"refresh_token": refresh,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *SignupHandler) Refresh(c fiber.Ctx) error {
	tok, ok := bearerFromAuthorizationHeader(c.Get("Authorization"))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	access, refresh, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		if errors.Is(err, usecase.ErrRefreshTokenExpired) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
		}
		if errors.Is(err, usecase.ErrInvalidRefreshToken) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
		}
		if errors.Is(err, usecase.ErrUnauthorized) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	data := map[string]any{
		"access_token":  access,
		"refresh_token": refresh,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func newUserResponse(u user.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		CompanyName:  u.CompanyName,
		IsFreelancer: u.IsFreelancer,
		IsOwner:      u.IsOwner,
		CreatedAt:    u.CreatedAt,
	}
}

func bearerFromAuthorizationHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", false
	}
	return tok, true
}

func mapSignupError(err error) error {
	if err == nil {
		return nil
	}

	var vErr *ucsignup.ValidationError
	if errors.As(err, &vErr) {
		data := map[string]any{
			"user_type": vErr.Role,
			"errors":    vErr.Fields,
			"values":    vErr.Values,
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", data, err)
	}

	switch {
	case errors.Is(err, user.ErrUsernameTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Username already taken", nil, err)
	case errors.Is(err, user.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucsignup.ErrUnknownRole):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
