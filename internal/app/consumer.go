package app

import (
	"context"

	"go-hrms/internal/audit"
	"go-hrms/internal/bootstrap"
	"go-hrms/internal/config"
	"go-hrms/internal/ledger"
	"go-hrms/internal/messaging/kafka/consumer"

	"go.uber.org/zap"
)

// RunConsumer applies employee lifecycle events to the leave ledger until a
// shutdown signal arrives.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	gormDB, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	recorder := audit.NewRecorder(audit.NewRepository(gormDB), cfg.Audit.TrackedTables, logger)
	balances := ledger.NewLedger(ledger.NewRepository(gormDB), recorder, logger)

	reader := consumer.NewEmployeeLifecycleReader(cfg.Kafka.Broker, cfg.Kafka.ConsumerGroup)
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeEmployeeLifecycle(ctx, reader, balances, logger)
	}()

	sig := bootstrap.WaitForSignal()
	log.Info("consumer shutting down", zap.String("signal", sig))
	cancel()
	<-done

	return nil
}
