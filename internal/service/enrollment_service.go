package service

import (
	"context"
	"time"

	"edu-commerce-be/internal/entity"
	"edu-commerce-be/internal/pkg/logger"
	"edu-commerce-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IEnrollmentService interface {
	// Finalize grants access to a purchased item. Calling it again for the
	// same (user, item) triple is a no-op success, so retries are safe.
	Finalize(ctx context.Context, userId uuid.UUID, itemType entity.ItemType, itemId uuid.UUID, invoiceId uuid.UUID) error

	IsEnrolled(ctx context.Context, userId uuid.UUID, itemType entity.ItemType, itemId uuid.UUID) (bool, error)
}

type enrollmentService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewEnrollmentService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IEnrollmentService {
	return &enrollmentService{
		uowFactory: uowFactory,
		log:        log,
	}
}

func (s *enrollmentService) Finalize(ctx context.Context, userId uuid.UUID, itemType entity.ItemType, itemId uuid.UUID, invoiceId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	enrollment := &entity.Enrollment{
		Id:         uuid.New(),
		UserId:     userId,
		ItemType:   itemType,
		ItemId:     itemId,
		InvoiceId:  invoiceId,
		EnrolledAt: time.Now(),
	}

	created, err := uow.EnrollmentRepository().Upsert(ctx, enrollment)
	if err != nil {
		return err
	}

	if created {
		s.log.Info("enrollment", "enrollment granted", map[string]interface{}{
			"user_id":    userId,
			"item_type":  itemType,
			"item_id":    itemId,
			"invoice_id": invoiceId,
		})
	}
	return nil
}

func (s *enrollmentService) IsEnrolled(ctx context.Context, userId uuid.UUID, itemType entity.ItemType, itemId uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.EnrollmentRepository().Exists(ctx, userId, itemType, itemId)
}
