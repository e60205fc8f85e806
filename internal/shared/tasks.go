package shared

// Task type names shared between the API, the scheduler and the worker.
const (
	TypeReconcileCommentCounts = "post:reconcile_comment_counts"
)
