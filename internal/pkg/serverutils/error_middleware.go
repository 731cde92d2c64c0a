package serverutils

import (
	"errors"

	"edu-commerce-be/internal/entity"

	"github.com/gofiber/fiber/v2"
)

type errorMapping struct {
	status int
	reason string
}

// Domain sentinel → HTTP status + machine-readable reason code.
var errorMappings = map[error]errorMapping{
	entity.ErrCouponNotFound:       {fiber.StatusNotFound, "COUPON_NOT_FOUND"},
	entity.ErrCouponInactive:       {fiber.StatusBadRequest, "COUPON_INACTIVE"},
	entity.ErrCouponNotYetValid:    {fiber.StatusBadRequest, "COUPON_NOT_YET_VALID"},
	entity.ErrCouponExpired:        {fiber.StatusBadRequest, "COUPON_EXPIRED"},
	entity.ErrCouponScopeMismatch:  {fiber.StatusBadRequest, "COUPON_SCOPE_MISMATCH"},
	entity.ErrCouponMinPurchase:    {fiber.StatusBadRequest, "COUPON_MIN_PURCHASE_NOT_MET"},
	entity.ErrCouponUsageLimit:     {fiber.StatusConflict, "COUPON_USAGE_LIMIT_EXCEEDED"},
	entity.ErrCouponUserUsageLimit: {fiber.StatusConflict, "COUPON_USER_USAGE_LIMIT_EXCEEDED"},
	entity.ErrCouponExhausted:      {fiber.StatusConflict, "COUPON_EXHAUSTED"},

	entity.ErrItemNotFound:     {fiber.StatusNotFound, "ITEM_NOT_FOUND"},
	entity.ErrItemAlreadyOwned: {fiber.StatusConflict, "ITEM_ALREADY_OWNED"},
	entity.ErrInvoiceNotFound:  {fiber.StatusNotFound, "INVOICE_NOT_FOUND"},
	entity.ErrInvalidSignature: {fiber.StatusForbidden, "INVALID_SIGNATURE"},
	entity.ErrInvalidTotals:    {fiber.StatusInternalServerError, "INVALID_TOTALS"},
	entity.ErrGateway:          {fiber.StatusBadGateway, "GATEWAY_ERROR"},

	entity.ErrRefundNotFound:       {fiber.StatusNotFound, "REFUND_NOT_FOUND"},
	entity.ErrRefundNotAllowed:     {fiber.StatusBadRequest, "REFUND_NOT_ALLOWED"},
	entity.ErrRefundWindowExpired:  {fiber.StatusBadRequest, "REFUND_WINDOW_EXPIRED"},
	entity.ErrRefundConflict:       {fiber.StatusConflict, "REFUND_CONFLICT"},
	entity.ErrRefundReasonTooShort: {fiber.StatusBadRequest, "REFUND_REASON_TOO_SHORT"},
	entity.ErrRefundState:          {fiber.StatusConflict, "REFUND_STATE_ERROR"},
}

// ErrorHandlerMiddleware maps domain errors bubbling out of controllers to
// the JSON envelope. Unrecognized errors become a 500 without leaking detail.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		for sentinel, m := range errorMappings {
			if errors.Is(err, sentinel) {
				return ctx.Status(m.status).JSON(ErrorResponseWithReason(m.status, m.reason, sentinel.Error()))
			}
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}
