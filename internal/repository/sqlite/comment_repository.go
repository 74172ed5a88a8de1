package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) repository.CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (int64, error) {
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO comments (video_id, owner_id, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		comment.VideoID,
		comment.OwnerID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("insert comment video: %w", repository.ErrNotFound)
		}
		return 0, fmt.Errorf("insert comment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("comment last insert id: %w", err)
	}
	comment.ID = id
	return id, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, video_id, owner_id, content, created_at, updated_at
FROM comments
WHERE id = ?`, id)
	var c domain.Comment
	if err := scanComment(row, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) ListByVideo(ctx context.Context, videoID int64, page domain.Page) ([]domain.CommentWithOwner, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE video_id = ?`, videoID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at, `+ownerColumns+`
FROM comments c
JOIN users u ON u.id = c.owner_id
WHERE c.video_id = ?
ORDER BY c.created_at DESC, c.id DESC
LIMIT ? OFFSET ?`,
		videoID, page.Limit, page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]domain.CommentWithOwner, 0)
	for rows.Next() {
		var c domain.CommentWithOwner
		if err := scanComment(rows, &c.Comment,
			&c.Owner.ID, &c.Owner.Username, &c.Owner.FullName, &c.Owner.Avatar,
		); err != nil {
			return nil, 0, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, total, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id int64, content string) (*domain.Comment, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`,
		content, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	if err := expectAffected(res, "update comment"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return expectAffected(res, "delete comment")
}

func scanComment(row rowScanner, c *domain.Comment, extra ...any) error {
	dest := []any{&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("comment: %w", repository.ErrNotFound)
		}
		return fmt.Errorf("scan comment: %w", err)
	}
	return nil
}
