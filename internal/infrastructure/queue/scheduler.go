package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"community-backend/internal/config"
	"community-backend/internal/shared"
)

// Scheduler enqueues the periodic maintenance tasks the worker consumes.
type Scheduler struct {
	scheduler *asynq.Scheduler
	workerCfg config.WorkerConfig
}

func NewScheduler(redisAddr, redisPassword string, redisDB int, workerCfg config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr, Password: redisPassword, DB: redisDB},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		workerCfg: workerCfg,
	}
}

// RegisterJobs wires every recurring task into the scheduler.
func (s *Scheduler) RegisterJobs() error {
	_, err := s.scheduler.Register(
		s.workerCfg.ReconcileSchedule,
		asynq.NewTask(shared.TypeReconcileCommentCounts, nil),
		asynq.Queue("low"),
	)
	return err
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
