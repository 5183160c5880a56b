package handler

import (
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/pkg/response"
	"gigboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type FreelancerHandler struct {
	uc usecase.FreelancerListUsecase
}

func NewFreelancerHandler(uc usecase.FreelancerListUsecase) *FreelancerHandler {
	return &FreelancerHandler{uc: uc}
}

func (h *FreelancerHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/freelancers", h.List)
}

func (h *FreelancerHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListFreelancers(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
		"freelancers": items,
	})
}
