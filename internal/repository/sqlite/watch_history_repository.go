package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

type WatchHistoryRepository struct {
	db *sql.DB
}

func NewWatchHistoryRepository(db *sql.DB) repository.WatchHistoryRepository {
	return &WatchHistoryRepository{db: db}
}

// Record moves the video to the front of the user's history.
func (r *WatchHistoryRepository) Record(ctx context.Context, userID, videoID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record history: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	if _, err := tx.ExecContext(ctx, `
DELETE FROM watch_history WHERE user_id = ? AND video_id = ?`,
		userID, videoID,
	); err != nil {
		return fmt.Errorf("delete history entry: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO watch_history (user_id, video_id, watched_at)
VALUES (?, ?, ?)`,
		userID, videoID, time.Now().UTC(),
	); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert history entry: %w", repository.ErrNotFound)
		}
		return fmt.Errorf("insert history entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record history: %w", err)
	}
	return nil
}

// List returns the history most recent first; each video carries its own owner.
// Videos unpublished since they were watched drop out unless the user owns them.
func (r *WatchHistoryRepository) List(ctx context.Context, userID int64) ([]domain.VideoWithOwner, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+videoColumns+`, `+ownerColumns+`
FROM watch_history h
JOIN videos v ON v.id = h.video_id
JOIN users u ON u.id = v.owner_id
WHERE h.user_id = ? AND (v.is_published = 1 OR v.owner_id = h.user_id)
ORDER BY h.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list watch history: %w", err)
	}
	defer rows.Close()

	return collectVideosWithOwner(rows)
}
