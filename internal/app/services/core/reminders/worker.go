package reminders

import (
	"context"
	"medtour-service/internal/app/config"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/utils"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const fallbackCronSpec = "@every 1m"

// Worker periodically sends appointment reminders. Only the instance holding
// the leader lock does work on a given tick.
type Worker struct {
	log       *zap.Logger
	cfg       *config.InternalConfig
	locker    contracts.LockerService
	reminders contracts.AppointmentReminderUsecase
	cron      *cron.Cron
	runCtx    context.Context
	cancel    context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, reminderUsecase contracts.AppointmentReminderUsecase) *Worker {
	return &Worker{log: log, cfg: cfg, locker: lockerSvc, reminders: reminderUsecase}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)

	c := cron.New()
	_, err := c.AddFunc(w.cfg.Reminder.CronSpec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("reminders.worker: invalid cron spec, falling back",
			zap.String("cron_spec", w.cfg.Reminder.CronSpec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(fallbackCronSpec, func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c

	w.log.Info("reminders.worker: started", zap.String("cron_spec", w.cfg.Reminder.CronSpec))
}

// Stop cancels the in-flight run and waits for it to return.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	requestID := utils.GenerateRequestID()
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, requestID)

	ttl := time.Duration(w.cfg.Reminder.LockTTLInSeconds) * time.Second
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyReminderLeaderLock, ttl)
	if err != nil {
		w.log.Warn("reminders.worker: leader lock attempt failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}
	if !acquired {
		w.log.Debug("reminders.worker: leader lock held by another instance",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return
	}
	defer func() {
		if err := w.locker.Unlock(context.WithoutCancel(ctx), constvars.RedisKeyReminderLeaderLock, token); err != nil {
			w.log.Warn("reminders.worker: failed to release leader lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, ttl)
	defer cancel()

	sent, err := w.reminders.SendDueReminders(runCtx)
	if err != nil {
		w.log.Warn("reminders.worker: run failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingCountKey, sent),
			zap.Error(err),
		)
		return
	}
	if sent > 0 {
		w.log.Info("reminders.worker: reminders sent",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingCountKey, sent),
		)
	}
}
