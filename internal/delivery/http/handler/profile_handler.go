package handler

import (
	"errors"

	"gigboard/internal/delivery/http/dto"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/domain/user"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"
	ucprofile "gigboard/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

type updateProfileRequest struct {
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	ProfilePhotoURL string      `json:"profile_photo_url"`
	Profile         string      `json:"profile"`
	CompanyName     string      `json:"company_name"`
	SkillIDs        []uuid.UUID `json:"skill_ids"`
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// RegisterPublicRoutes mounts the profile page lookup, which needs no
// authentication.
func (h *ProfileHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/users/:username", h.GetByUsername)
}

// RegisterProtectedRoutes mounts the self-profile edit flow. The edited
// record is always the authenticated user; no username parameter exists
// on these routes.
func (h *ProfileHandler) RegisterProtectedRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me/profile", h.GetOwn)
	r.Put("/me/profile", h.Update)
}

func (h *ProfileHandler) GetByUsername(c fiber.Ctx) error {
	username := c.Params("username")

	usr, err := h.uc.GetByUsername(c.Context(), username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
		"profile": dto.NewProfileResponse(usr),
	})
}

func (h *ProfileHandler) GetOwn(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	usr, err := h.uc.GetOwn(c.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
		"profile": dto.NewOwnProfileResponse(usr),
	})
}

func (h *ProfileHandler) Update(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	usr, err := h.uc.Update(c.Context(), userID, ucprofile.UpdateInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfilePhotoURL: req.ProfilePhotoURL,
		Profile:         req.Profile,
		CompanyName:     req.CompanyName,
		SkillIDs:        req.SkillIDs,
	})
	if err != nil {
		var vErr *ucprofile.ValidationError
		if errors.As(err, &vErr) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Validation failed", map[string]any{
				"errors": vErr.Fields,
			}, err)
		}
		if errors.Is(err, user.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, "Your profile is updated successfully.", map[string]any{
		"profile":     dto.NewOwnProfileResponse(usr),
		"profile_url": "/api/v1/users/" + usr.Username,
	})
}
