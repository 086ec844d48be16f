package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"videoSlides/core"
)

// PostgresStore keeps runs in Postgres for deployments where several
// machines share one result set.
type PostgresStore struct {
	conn *pgx.Conn
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS runs (
	job_id     TEXT PRIMARY KEY,
	video_ref  TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS records (
	job_id     TEXT NOT NULL REFERENCES runs(job_id) ON DELETE CASCADE,
	time_key   INTEGER NOT NULL,
	image_path TEXT NOT NULL,
	text       TEXT NOT NULL,
	PRIMARY KEY (job_id, time_key)
);
`

func NewPostgresStore(url string) (*PostgresStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, url)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(ctx, postgresSchema); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("create schema: %v", err)
	}
	return &PostgresStore{conn: conn}, nil
}

func (s *PostgresStore) SaveRun(result core.SelectionResult) error {
	ctx := context.Background()
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO runs (job_id, video_ref, created_at) VALUES ($1, $2, now())
		ON CONFLICT (job_id) DO UPDATE SET video_ref = EXCLUDED.video_ref`,
		result.JobID, result.VideoRef,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM records WHERE job_id = $1`, result.JobID); err != nil {
		return err
	}
	for _, rec := range result.Records {
		if _, err := tx.Exec(ctx, `
			INSERT INTO records (job_id, time_key, image_path, text) VALUES ($1, $2, $3, $4)`,
			result.JobID, rec.TimeKey, rec.ImagePath, rec.Text,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) GetRun(jobID string) (core.SelectionResult, error) {
	ctx := context.Background()
	result := core.SelectionResult{JobID: jobID}

	err := s.conn.QueryRow(ctx,
		`SELECT video_ref FROM runs WHERE job_id = $1`, jobID).Scan(&result.VideoRef)
	if err == pgx.ErrNoRows {
		return result, fmt.Errorf("run %s not found", jobID)
	}
	if err != nil {
		return result, err
	}

	rows, err := s.conn.Query(ctx,
		`SELECT time_key, image_path, text FROM records WHERE job_id = $1 ORDER BY time_key`, jobID)
	if err != nil {
		return result, err
	}
	defer rows.Close()
	for rows.Next() {
		var rec core.FrameRecord
		if err := rows.Scan(&rec.TimeKey, &rec.ImagePath, &rec.Text); err != nil {
			return result, err
		}
		result.Records = append(result.Records, rec)
	}
	return result, rows.Err()
}

func (s *PostgresStore) ListRuns() ([]RunInfo, error) {
	ctx := context.Background()
	rows, err := s.conn.Query(ctx, `
		SELECT r.job_id, r.video_ref, r.created_at, COUNT(rec.time_key)
		FROM runs r
		LEFT JOIN records rec ON rec.job_id = r.job_id
		GROUP BY r.job_id, r.video_ref, r.created_at
		ORDER BY r.created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []RunInfo
	for rows.Next() {
		var info RunInfo
		if err := rows.Scan(&info.JobID, &info.VideoRef, &info.CreatedAt, &info.RecordCount); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func (s *PostgresStore) Close() error { return s.conn.Close(context.Background()) }
