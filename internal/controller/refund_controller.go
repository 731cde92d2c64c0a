package controller

import (
	"edu-commerce-be/internal/dto"
	"edu-commerce-be/internal/pkg/serverutils"
	"edu-commerce-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRefundController interface {
	RegisterRoutes(r fiber.Router)
	Request(ctx *fiber.Ctx) error
	ListMine(ctx *fiber.Ctx) error
	Decide(ctx *fiber.Ctx) error
	ListAll(ctx *fiber.Ctx) error
	Process(ctx *fiber.Ctx) error
}

type refundController struct {
	service service.IRefundService
}

func NewRefundController(service service.IRefundService) IRefundController {
	return &refundController{service: service}
}

func (c *refundController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/refund-requests")
	h.Post("/", serverutils.JwtMiddleware, c.Request)
	h.Get("/", serverutils.JwtMiddleware, c.ListMine)
	h.Put("/:id", serverutils.JwtMiddleware, serverutils.AdminMiddleware, c.Decide)

	a := r.Group("/admin/refund-requests", serverutils.JwtMiddleware, serverutils.AdminMiddleware)
	a.Get("/", c.ListAll)
	a.Post("/:id/process", c.Process)
}

func (c *refundController) Request(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.UserRefundRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Request(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Refund request submitted", res))
}

func (c *refundController) ListMine(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListMine(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching refund requests", res))
}

func (c *refundController) Decide(ctx *fiber.Ctx) error {
	adminId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	requestId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid refund request id")
	}

	var req dto.AdminRefundDecisionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Decide(ctx.Context(), adminId, requestId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Refund decision recorded", res))
}

func (c *refundController) ListAll(ctx *fiber.Ctx) error {
	status := ctx.Query("status")
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.ListAll(ctx.Context(), status, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching refund requests", res))
}

func (c *refundController) Process(ctx *fiber.Ctx) error {
	adminId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	requestId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid refund request id")
	}

	res, err := c.service.ProcessApproved(ctx.Context(), adminId, requestId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Refund processed", res))
}
