package dto

// ReconcileRequest 对账请求参数
type ReconcileRequest struct {
	DryRun  bool   `form:"dry_run"`
	MovieID *int64 `form:"movie_id"`
	Async   bool   `form:"async"`
}

// ReconcileQueuedData 异步对账已投递
type ReconcileQueuedData struct {
	Status  string `json:"status"`
	DryRun  bool   `json:"dry_run"`
	MovieID *int64 `json:"movie_id,omitempty"`
}
