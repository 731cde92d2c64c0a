package controller

import (
	"edu-commerce-be/internal/dto"
	"edu-commerce-be/internal/pkg/serverutils"
	"edu-commerce-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICouponController interface {
	RegisterRoutes(r fiber.Router)
	Validate(ctx *fiber.Ctx) error
}

type couponController struct {
	service service.ICouponService
}

func NewCouponController(service service.ICouponService) ICouponController {
	return &couponController{service: service}
}

func (c *couponController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/coupons")
	h.Post("/validate", serverutils.JwtMiddleware, c.Validate)
}

func (c *couponController) Validate(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.ValidateCouponRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Validate(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Coupon is valid", res))
}
