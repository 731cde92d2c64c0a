package controller

import (
	"edu-commerce-be/internal/dto"
	"edu-commerce-be/internal/pkg/serverutils"
	"edu-commerce-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	Confirm(ctx *fiber.Ctx) error
}

// paymentController exposes the gateway notification endpoint. The caller is
// the payment provider, not a user, so authentication is the callback
// signature rather than a JWT.
type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(service service.IPaymentService) IPaymentController {
	return &paymentController{service: service}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payments")
	h.Post("/confirm", c.Confirm)
}

func (c *paymentController) Confirm(ctx *fiber.Ctx) error {
	var req dto.GatewayCallbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid notification body")
	}
	if req.OrderId == "" || req.SignatureKey == "" {
		return fiber.NewError(fiber.StatusBadRequest, "order_id and signature_key are required")
	}

	res, err := c.service.Confirm(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notification processed", res))
}
