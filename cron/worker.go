// Package cron runs the background reminder queue: upcoming sessions get a
// reminder task enqueued at creation time and delivered ahead of the start.
package cron

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"marga/config"
	"marga/models"
	"marga/utils"
)

const TypeSessionReminder = "reminder:session"

// reminderPayload is the task body for a session reminder.
type reminderPayload struct {
	SessionID  string    `json:"sessionId"`
	ClientID   string    `json:"clientId"`
	ClientName string    `json:"clientName"`
	StartTime  time.Time `json:"startTime"`
	Type       string    `json:"type"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// Scheduler enqueues session reminders. It satisfies the command service's
// ReminderScheduler; enqueue failures are reported but the session itself is
// already persisted.
type Scheduler struct {
	client *asynq.Client
	lead   time.Duration
}

func NewScheduler() *Scheduler {
	lead := time.Duration(config.AppConfig.ReminderLeadMins) * time.Minute
	return &Scheduler{client: asynq.NewClient(redisOpts()), lead: lead}
}

// ScheduleSessionReminder queues a reminder to fire lead time before the
// session starts. Sessions already inside the lead window get an immediate
// reminder.
func (s *Scheduler) ScheduleSessionReminder(ctx context.Context, session models.Session, clientName string) error {
	payload, err := json.Marshal(reminderPayload{
		SessionID:  session.ID,
		ClientID:   session.ClientID,
		ClientName: clientName,
		StartTime:  session.StartTime,
		Type:       session.Type,
	})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeSessionReminder, payload)

	fireAt := session.StartTime.Add(-s.lead)
	if fireAt.Before(time.Now()) {
		_, err = s.client.EnqueueContext(ctx, task)
		return err
	}
	_, err = s.client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt))
	return err
}

func (s *Scheduler) Close() error {
	return s.client.Close()
}

// InitReminderWorker starts the asynq worker in the background.
func InitReminderWorker() *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(redisOpts(), asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSessionReminder, handleSessionReminder)

	go func() {
		logger.Info("starting reminder worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("reminder worker stopped", zap.Error(err))
		}
	}()
	return srv
}

// handleSessionReminder delivers one reminder. Delivery is currently a
// structured log line picked up by the practice's alerting pipeline.
func handleSessionReminder(ctx context.Context, t *asynq.Task) error {
	var p reminderPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	utils.GetLogger().Info("session reminder",
		zap.String("sessionId", p.SessionID),
		zap.String("clientId", p.ClientID),
		zap.String("clientName", p.ClientName),
		zap.Time("startTime", p.StartTime),
		zap.String("type", p.Type),
	)
	return nil
}
