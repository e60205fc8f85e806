package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"community-backend/internal/domains/post"
)

// ReconcileCommentCountsHandler repairs comments_cnt drift. The counter is
// maintained inline with every comment insert and delete, but a crash between
// retries can still leave it off by a few; this job restores the true count.
type ReconcileCommentCountsHandler struct {
	postRepo post.Repository
}

func NewReconcileCommentCountsHandler(postRepo post.Repository) *ReconcileCommentCountsHandler {
	return &ReconcileCommentCountsHandler{postRepo: postRepo}
}

func (h *ReconcileCommentCountsHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	fixed, err := h.postRepo.ReconcileCommentCounts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("comment count reconciliation failed")
		return err
	}

	if fixed > 0 {
		log.Warn().Int64("posts_fixed", fixed).Msg("comment counts drifted and were reconciled")
	} else {
		log.Info().Msg("comment counts verified, no drift")
	}
	return nil
}
