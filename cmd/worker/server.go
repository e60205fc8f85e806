package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	postJob "community-backend/internal/domains/post/job"
	"community-backend/internal/shared"
	"community-backend/pkg/container"
)

// startWorker configures the asynq server, registers task handlers and runs
// the server in the background.
func startWorker(c *container.Container) *asynq.Server {
	mux := asynq.NewServeMux()

	reconcile := postJob.NewReconcileCommentCountsHandler(c.PostRepo)
	mux.HandleFunc(shared.TypeReconcileCommentCounts, reconcile.ProcessTask)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		asynq.Config{
			Concurrency: c.Config.Worker.Concurrency,
			Queues: map[string]int{
				"default": 10,
				"low":     5,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("task", task.Type()).Msg("task failed")
			}),
		},
	)

	go func() {
		log.Info().Msg("worker starting")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("worker failed")
		}
	}()

	return srv
}
