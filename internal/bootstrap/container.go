package bootstrap

import (
	"log"
	"time"

	"edu-commerce-be/internal/config"
	"edu-commerce-be/internal/controller"
	"edu-commerce-be/internal/pkg/logger"
	"edu-commerce-be/internal/pkg/mailer"
	"edu-commerce-be/internal/repository/unitofwork"
	"edu-commerce-be/internal/service"
	"edu-commerce-be/pkg/gateway"
	pktNats "edu-commerce-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	CouponController  controller.ICouponController
	OrderController   controller.IOrderController
	PaymentController controller.IPaymentController
	RefundController  controller.IRefundController

	// Background services (main.go runs them)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Infrastructure
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	gatewayClient := gateway.NewMidtransClient(
		cfg.Gateway.ServerKey,
		cfg.Gateway.IsProduction,
		cfg.Gateway.FinishURL,
	)

	// 3. Services
	catalogService := service.NewCatalogService(uowFactory, time.Duration(cfg.Billing.CatalogCacheTTL)*time.Second)
	enrollmentService := service.NewEnrollmentService(uowFactory, sysLogger)
	couponService := service.NewCouponService(uowFactory, catalogService)

	publisherService := service.NewPublisherService(cfg.Billing.EnrollRetryTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Billing.EnrollRetryTopic,
		enrollmentService,
		sysLogger,
	)

	orderService := service.NewOrderService(
		uowFactory,
		catalogService,
		enrollmentService,
		gatewayClient,
		cfg.Billing,
		natsPub,
		sysLogger,
	)
	paymentService := service.NewPaymentService(
		uowFactory,
		gatewayClient,
		enrollmentService,
		publisherService,
		natsPub,
		emailService,
		cfg.Billing,
		sysLogger,
	)
	refundService := service.NewRefundService(
		uowFactory,
		gatewayClient,
		natsPub,
		emailService,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		CouponController:  controller.NewCouponController(couponService),
		OrderController:   controller.NewOrderController(orderService),
		PaymentController: controller.NewPaymentController(paymentService),
		RefundController:  controller.NewRefundController(refundService),

		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
