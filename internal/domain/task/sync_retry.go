package task

// SyncRetryTask re-queues a product whose sync failed.
type SyncRetryTask struct {
	ProductID  string `json:"product_id"`
	Category   string `json:"category"`
	RetryCount int    `json:"retry_count"`
	Error      string `json:"error"` // error message from the original failure
}

func (t *SyncRetryTask) TaskType() string {
	return "SyncRetryTask"
}

func (t *SyncRetryTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
