package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

type LikeRepository struct {
	db *sql.DB
}

func NewLikeRepository(db *sql.DB) repository.LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Toggle(ctx context.Context, userID int64, target domain.LikeTarget) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin like toggle: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	res, err := tx.ExecContext(ctx, `
DELETE FROM likes WHERE liked_by = ? AND target_kind = ? AND target_id = ?`,
		userID, string(target.Kind), target.ID,
	)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete like rows affected: %w", err)
	}

	liked := false
	if removed == 0 {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO likes (liked_by, target_kind, target_id, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (liked_by, target_kind, target_id) DO NOTHING`,
			userID, string(target.Kind), target.ID, time.Now().UTC(),
		); err != nil {
			return false, fmt.Errorf("insert like: %w", err)
		}
		liked = true
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit like toggle: %w", err)
	}
	return liked, nil
}

func (r *LikeRepository) Count(ctx context.Context, target domain.LikeTarget) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM likes WHERE target_kind = ? AND target_id = ?`,
		string(target.Kind), target.ID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}

// ListLikedVideos returns liked videos, most recently liked first.
func (r *LikeRepository) ListLikedVideos(ctx context.Context, userID int64) ([]domain.LikedVideo, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+videoColumns+`, `+ownerColumns+`, l.created_at
FROM likes l
JOIN videos v ON v.id = l.target_id
JOIN users u ON u.id = v.owner_id
WHERE l.liked_by = ? AND l.target_kind = 'video'
  AND (v.is_published = 1 OR v.owner_id = l.liked_by)
ORDER BY l.created_at DESC, l.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list liked videos: %w", err)
	}
	defer rows.Close()

	liked := make([]domain.LikedVideo, 0)
	for rows.Next() {
		var lv domain.LikedVideo
		v, err := scanVideoWithOwner(rows, &lv.LikedAt)
		if err != nil {
			return nil, err
		}
		lv.VideoWithOwner = *v
		liked = append(liked, lv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate liked videos: %w", err)
	}
	return liked, nil
}
