package service

import (
	"context"
	"encoding/json"

	"edu-commerce-be/internal/dto"
	"edu-commerce-be/internal/entity"
	"edu-commerce-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the enrollment retry queue. Finalize is an upsert,
// so redelivered messages are harmless.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	enrollmentService IEnrollmentService
	log               logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	enrollmentService IEnrollmentService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		enrollmentService: enrollmentService,
		log:               log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.FinalizeEnrollmentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "failed to unmarshal enrollment message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // malformed messages would retry forever
		return
	}

	itemType := entity.ItemType(payload.ItemType)
	if !itemType.Valid() {
		cs.log.Error("consumer", "enrollment message carries unknown item type", map[string]interface{}{
			"message_id": msg.UUID,
			"item_type":  payload.ItemType,
		})
		msg.Ack()
		return
	}

	err := cs.enrollmentService.Finalize(ctx, payload.UserId, itemType, payload.ItemId, payload.InvoiceId)
	if err != nil {
		cs.log.Warn("consumer", "enrollment retry failed, will redeliver", map[string]interface{}{
			"invoice_id": payload.InvoiceId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	cs.log.Info("consumer", "enrollment finalized from retry queue", map[string]interface{}{
		"invoice_id": payload.InvoiceId,
		"user_id":    payload.UserId,
	})
	msg.Ack()
}
