package controller

import (
	"edu-commerce-be/internal/dto"
	"edu-commerce-be/internal/entity"
	"edu-commerce-be/internal/pkg/serverutils"
	"edu-commerce-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IOrderController interface {
	RegisterRoutes(r fiber.Router)
	CreateOrder(ctx *fiber.Ctx) error
	GetOrderSummary(ctx *fiber.Ctx) error
	GetMyInvoices(ctx *fiber.Ctx) error
}

type orderController struct {
	service service.IOrderService
}

func NewOrderController(service service.IOrderService) IOrderController {
	return &orderController{service: service}
}

func (c *orderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/orders")
	h.Get("/summary", c.GetOrderSummary) // public pricing preview

	h.Post("/", serverutils.JwtMiddleware, c.CreateOrder)
	h.Get("/", serverutils.JwtMiddleware, c.GetMyInvoices)
}

func (c *orderController) CreateOrder(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateOrderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.CreateOrder(ctx.Context(), userId, serverutils.EmailFromLocals(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Order created", res))
}

func (c *orderController) GetOrderSummary(ctx *fiber.Ctx) error {
	itemType := entity.ItemType(ctx.Query("item_type"))
	if !itemType.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "item_type must be course, workshop or campaign")
	}

	itemId, err := uuid.Parse(ctx.Query("item_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item_id format")
	}

	res, err := c.service.GetOrderSummary(ctx.Context(), itemType, itemId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching order summary", res))
}

func (c *orderController) GetMyInvoices(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetMyInvoices(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching invoices", res))
}
