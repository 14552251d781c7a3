package cron

import (
	"context"
	"encoding/json"
	"time"

	"advisorly/config"
	"advisorly/models"
	"advisorly/services/notification"
	"advisorly/services/tasks"
	"advisorly/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitDeliveryWorker runs the async worker that drains the reminder, email
// and SMS queues in the background.
func InitDeliveryWorker(gateway notification.NotificationGateway, deliverer notification.Deliverer) {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(gateway, logger))
	mux.HandleFunc(tasks.TypeSendEmail, handleEmailTask(deliverer, logger))
	mux.HandleFunc(tasks.TypeSendSMS, handleSMSTask(deliverer, logger))

	go monitorQueueConnection(logger)

	go func() {
		logger.Info("starting delivery worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("delivery worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("delivery worker gave up after max retries")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(gateway notification.NotificationGateway, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		logger.Info("firing session reminder",
			zap.String("sessionId", p.SessionID),
			zap.String("target", p.Target),
			zap.String("targetId", p.TargetID))

		n := models.Notification{
			UserID:  p.TargetID,
			Type:    "session_reminder",
			Title:   p.Title,
			Message: p.Body,
			Data: map[string]string{
				"sessionId": p.SessionID,
				"fireDate":  p.FireDate,
			},
		}
		if err := gateway.SendNotification(ctx, n); err != nil {
			logger.Error("failed to deliver reminder",
				zap.String("sessionId", p.SessionID), zap.Error(err))
			return err
		}
		return nil
	}
}

func handleEmailTask(deliverer notification.Deliverer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var msg models.EmailMessage
		if err := json.Unmarshal(task.Payload(), &msg); err != nil {
			logger.Error("invalid email payload", zap.Error(err))
			return err
		}
		if err := deliverer.DeliverEmail(ctx, msg); err != nil {
			logger.Error("failed to deliver email",
				zap.String("to", msg.To), zap.Error(err))
			return err
		}
		return nil
	}
}

func handleSMSTask(deliverer notification.Deliverer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var msg models.SMSMessage
		if err := json.Unmarshal(task.Payload(), &msg); err != nil {
			logger.Error("invalid sms payload", zap.Error(err))
			return err
		}
		if err := deliverer.DeliverSMS(ctx, msg); err != nil {
			logger.Error("failed to deliver sms",
				zap.String("to", msg.To), zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorQueueConnection pings the queue's Redis periodically so a dropped
// connection shows up in the logs before tasks pile up.
func monitorQueueConnection(logger *zap.Logger) {
	client := utils.NewReminderQueueRedisClient()
	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("delivery queue redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
