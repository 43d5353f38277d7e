package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-hrms/internal/messaging/kafka"
	kafkamock "go-hrms/internal/messaging/kafka/mock"
	"go-hrms/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	written []kafkago.Message
	failFor map[string]error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err := w.failFor[string(m.Key)]; err != nil {
			return err
		}
		w.written = append(w.written, m)
	}
	return nil
}

func header(m kafkago.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkamock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "o-1", RequestID: "req-1", AggregateType: kafka.AggregateLeave, AggregateID: "leave-1", EventType: "leave_status_changed", Topic: "hr.leave.status.v1", Payload: []byte(`{}`)},
			{ID: "o-2", AggregateType: kafka.AggregateEmployee, AggregateID: "emp-1", EventType: "employee_created", Topic: "hr.employee.lifecycle.v1", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkSent(ctx, "o-1").Return(nil)
		repo.EXPECT().MarkSent(ctx, "o-2").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 2, sent)
		if assert.Len(t, writer.written, 2) {
			first := writer.written[0]
			assert.Equal(t, "hr.leave.status.v1", first.Topic)
			assert.Equal(t, "leave-1", string(first.Key))
			assert.Equal(t, "leave_status_changed", header(first, "event_type"))
			assert.Equal(t, "req-1", header(first, "request_id"))
			assert.Empty(t, header(writer.written[1], "request_id"))
		}
	})

	t.Run("failed publish is scheduled for retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkamock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failFor: map[string]error{"emp-1": errors.New("broker down")}}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "o-1", AggregateID: "emp-1", Topic: "t", Payload: []byte(`{}`)},
			{ID: "o-2", AggregateID: "emp-2", Topic: "t", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkFailed(ctx, "o-1", "broker down").Return(nil)
		repo.EXPECT().MarkSent(ctx, "o-2").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("nothing pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkamock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, 50).Return(nil, nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())

		assert.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkamock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())

		assert.Error(t, err)
	})
}
