package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"videoSlides/core"
)

// SQLiteStore keeps runs in a local SQLite file, the default durable
// backend for a single-machine tool.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	job_id     TEXT PRIMARY KEY,
	video_ref  TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS records (
	job_id     TEXT NOT NULL REFERENCES runs(job_id) ON DELETE CASCADE,
	time_key   INTEGER NOT NULL,
	image_path TEXT NOT NULL,
	text       TEXT NOT NULL,
	PRIMARY KEY (job_id, time_key)
);
`

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %v", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) SaveRun(result core.SelectionResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO runs (job_id, video_ref, created_at) VALUES (?, ?, ?)`,
		result.JobID, result.VideoRef, time.Now(),
	); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM records WHERE job_id = ?`, result.JobID); err != nil {
		return err
	}
	for _, rec := range result.Records {
		if _, err := tx.Exec(
			`INSERT INTO records (job_id, time_key, image_path, text) VALUES (?, ?, ?, ?)`,
			result.JobID, rec.TimeKey, rec.ImagePath, rec.Text,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetRun(jobID string) (core.SelectionResult, error) {
	result := core.SelectionResult{JobID: jobID}

	err := s.db.QueryRow(`SELECT video_ref FROM runs WHERE job_id = ?`, jobID).Scan(&result.VideoRef)
	if err == sql.ErrNoRows {
		return result, fmt.Errorf("run %s not found", jobID)
	}
	if err != nil {
		return result, err
	}

	rows, err := s.db.Query(
		`SELECT time_key, image_path, text FROM records WHERE job_id = ? ORDER BY time_key`, jobID)
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

func (s *SQLiteStore) ListRuns() ([]RunInfo, error) {
	rows, err := s.db.Query(`
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

func (s *SQLiteStore) Close() error { return s.db.Close() }
