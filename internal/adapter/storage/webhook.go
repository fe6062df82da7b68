package storage

import (
	"context"
	"fmt"
)

// EnqueueWebhook queues a notification job for the background worker. Called
// inside a workflow transaction, so the job only exists if the workflow
// committed.
func (s *Store) EnqueueWebhook(ctx context.Context, url string, payload []byte) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO webhook_jobs (url, payload) VALUES ($1, $2)`, url, payload)
	if err != nil {
		return fmt.Errorf("enqueue webhook: %w", err)
	}
	return nil
}
