package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlejoJamC/banking-account/internal/core/notifications"
)

const maxAttempts = 5

// StartWebhookWorker polls the webhook_jobs table and delivers queued
// notifications. Jobs are claimed with FOR UPDATE SKIP LOCKED so multiple
// instances never double-deliver.
func StartWebhookWorker(db *pgxpool.Pool, secret string) {
	go func() {
		slog.Info("webhook worker started")
		for {
			processJob(db, secret)
			time.Sleep(5 * time.Second)
		}
	}()
}

func processJob(db *pgxpool.Pool, secret string) {
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	if err != nil {
		return
	}
	defer tx.Rollback(ctx)

	var (
		id       string
		url      string
		payload  []byte
		attempts int
	)
	err = tx.QueryRow(ctx, `
		SELECT id, url, payload, attempts
		FROM webhook_jobs
		WHERE status = 'PENDING' AND next_run_at <= now()
		ORDER BY created_at ASC
		LIMIT 1
		FOR UPDATE SKIP LOCKED`).Scan(&id, &url, &payload, &attempts)
	if err != nil {
		return
	}

	slog.Info("processing webhook job", "job_id", id, "url", url, "attempts", attempts)

	if sendErr := notifications.SendWebhook(url, payload, secret); sendErr != nil {
		slog.Error("webhook delivery failed", "error", sendErr, "job_id", id, "attempts", attempts)

		if attempts+1 >= maxAttempts {
			tx.Exec(ctx, `UPDATE webhook_jobs SET status = 'FAILED' WHERE id = $1`, id)
			slog.Error("webhook job abandoned after max attempts", "job_id", id)
		} else {
			nextRun := time.Now().Add(time.Duration(attempts*10+10) * time.Second)
			tx.Exec(ctx, `
				UPDATE webhook_jobs
				SET attempts = attempts + 1, next_run_at = $2
				WHERE id = $1`, id, nextRun)
			slog.Info("webhook retry scheduled", "job_id", id, "next_run", nextRun)
		}
	} else {
		tx.Exec(ctx, `UPDATE webhook_jobs SET status = 'COMPLETED' WHERE id = $1`, id)
		slog.Info("webhook delivered", "job_id", id)
	}

	tx.Commit(ctx)
}
