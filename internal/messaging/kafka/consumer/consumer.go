package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-hrms/internal/events"
	"go-hrms/internal/ledger"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ErrMalformedEvent marks a message that can never be processed. It is
// committed so it does not block the partition.
var ErrMalformedEvent = errors.New("malformed employee lifecycle event")

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

func NewEmployeeLifecycleReader(broker, groupID string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  groupID,
		Topic:    events.EmployeeLifecycleTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	balances ledger.Ledger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		if err := HandleEmployeeLifecycle(ctx, msg, balances, log); err != nil {
			if !errors.Is(err, ErrMalformedEvent) {
				log.Error("handle employee lifecycle message failed",
					zap.Int64("offset", msg.Offset),
					zap.Error(err),
				)
				continue
			}
			log.Warn("skipping malformed employee lifecycle message",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
		}
	}
}

// HandleEmployeeLifecycle applies one lifecycle message. Balances are seeded
// inside the onboarding transaction, so a created event only fills rows that
// are still missing, such as leave types added after the employee joined.
func HandleEmployeeLifecycle(ctx context.Context, msg kafkago.Message, balances ledger.Ledger, log *zap.Logger) error {
	var event events.EmployeeLifecycleEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	switch event.EventType {
	case events.EmployeeCreatedType:
		employeeID, err := uuid.Parse(event.EmployeeID)
		if err != nil {
			return fmt.Errorf("%w: employee_id %q", ErrMalformedEvent, event.EmployeeID)
		}
		seeded, err := balances.Seed(ctx, employeeID)
		if err != nil {
			return err
		}
		log.Info("employee balances ensured",
			zap.String("employee_id", event.EmployeeID),
			zap.String("employee_code", event.EmployeeCode),
			zap.Int("seeded", seeded),
		)
	case events.EmployeeDeactivatedType:
		log.Info("employee deactivated",
			zap.String("employee_id", event.EmployeeID),
			zap.String("user_id", event.UserID),
		)
	default:
		log.Debug("ignoring employee lifecycle event", zap.String("event_type", event.EventType))
	}
	return nil
}
