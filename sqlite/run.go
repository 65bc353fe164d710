package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/hoanghai81/lps"
)

// dayLayout stores calendar days without a time component.
const dayLayout = "2006-01-02"

// Compile-time interface verification.
var _ lps.RunService = (*RunService)(nil)

// RunService implements lps.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// hashPage computes the xxHash of a page and returns it hex-encoded.
func hashPage(html string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(html))
	return hex.EncodeToString(b[:])
}

// CreateRun records a new run and assigns its ID.
func (s *RunService) CreateRun(ctx context.Context, run *lps.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, target_day, started_at, channels, programmes, failed)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.TargetDay.Format(dayLayout), run.StartedAt.Format(time.RFC3339),
		run.Channels, run.Programmes, run.Failed)

	return err
}

// FinishRun stamps the run finished with its final counts.
func (s *RunService) FinishRun(ctx context.Context, id string, programmes, failed int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET finished_at = ?, programmes = ?, failed = ?
		WHERE id = ?
	`, time.Now().UTC().Format(time.RFC3339), programmes, failed, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return lps.Errorf(lps.ENOTFOUND, "run not found")
	}
	return nil
}

// FindRuns returns runs matching the filter, most recent first.
func (s *RunService) FindRuns(ctx context.Context, filter lps.RunFilter) ([]*lps.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, target_day, started_at, finished_at, channels, programmes, failed FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY started_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*lps.Run
	for rows.Next() {
		var run lps.Run
		var targetDay, startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &targetDay, &startedAt, &finishedAt,
			&run.Channels, &run.Programmes, &run.Failed); err != nil {
			return nil, err
		}

		if run.TargetDay, err = time.Parse(dayLayout, targetDay); err != nil {
			return nil, fmt.Errorf("failed to parse target_day: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return nil, fmt.Errorf("failed to parse started_at: %w", err)
		}
		if finishedAt != "" {
			if run.FinishedAt, err = time.Parse(time.RFC3339, finishedAt); err != nil {
				return nil, fmt.Errorf("failed to parse finished_at: %w", err)
			}
		}

		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// SaveChannelResult records one fetched page and assigns its ID and page
// hash.
func (s *RunService) SaveChannelResult(ctx context.Context, result *lps.ChannelResult) error {
	if err := result.Validate(); err != nil {
		return err
	}

	result.ID = uuid.New().String()
	result.PageHash = hashPage(result.PageHTML)
	result.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO channel_results (id, run_id, channel_id, day, page_html, page_hash, programmes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, result.ID, result.RunID, result.ChannelID, result.Day.Format(dayLayout),
		result.PageHTML, result.PageHash, result.Programmes, result.CreatedAt.Format(time.RFC3339))

	return err
}

// LastPageHash returns the most recent page hash recorded for the channel
// and day.
func (s *RunService) LastPageHash(ctx context.Context, channelID string, day time.Time) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, `
		SELECT page_hash FROM channel_results
		WHERE channel_id = ? AND day = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, channelID, day.Format(dayLayout)).Scan(&hash)

	if err == sql.ErrNoRows {
		return "", lps.Errorf(lps.ENOTFOUND, "no page recorded for %s on %s", channelID, day.Format(dayLayout))
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}
