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

type CommunityPostRepository struct {
	db *sql.DB
}

func NewCommunityPostRepository(db *sql.DB) repository.CommunityPostRepository {
	return &CommunityPostRepository{db: db}
}

func (r *CommunityPostRepository) Create(ctx context.Context, post *domain.CommunityPost) (int64, error) {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO community_posts (owner_id, content, created_at, updated_at)
VALUES (?, ?, ?, ?)`,
		post.OwnerID, post.Content, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert community post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("community post last insert id: %w", err)
	}
	post.ID = id
	return id, nil
}

func (r *CommunityPostRepository) GetByID(ctx context.Context, id int64) (*domain.CommunityPost, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, owner_id, content, created_at, updated_at
FROM community_posts
WHERE id = ?`, id)
	var p domain.CommunityPost
	if err := scanCommunityPost(row, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CommunityPostRepository) List(ctx context.Context, ownerID int64, page domain.Page) ([]domain.CommunityPostWithOwner, int64, error) {
	// ownerID 0 matches every row
	const where = `WHERE (? = 0 OR p.owner_id = ?)`

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM community_posts p `+where, ownerID, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count community posts: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT p.id, p.owner_id, p.content, p.created_at, p.updated_at, `+ownerColumns+`
FROM community_posts p
JOIN users u ON u.id = p.owner_id
`+where+`
ORDER BY p.created_at DESC, p.id DESC
LIMIT ? OFFSET ?`,
		ownerID, ownerID, page.Limit, page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list community posts: %w", err)
	}
	defer rows.Close()

	posts := make([]domain.CommunityPostWithOwner, 0)
	for rows.Next() {
		var p domain.CommunityPostWithOwner
		if err := scanCommunityPost(rows, &p.CommunityPost,
			&p.Owner.ID, &p.Owner.Username, &p.Owner.FullName, &p.Owner.Avatar,
		); err != nil {
			return nil, 0, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate community posts: %w", err)
	}
	return posts, total, nil
}

func (r *CommunityPostRepository) UpdateContent(ctx context.Context, id int64, content string) (*domain.CommunityPost, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE community_posts SET content = ?, updated_at = ? WHERE id = ?`,
		content, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update community post: %w", err)
	}
	if err := expectAffected(res, "update community post"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *CommunityPostRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM community_posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete community post: %w", err)
	}
	return expectAffected(res, "delete community post")
}

func scanCommunityPost(row rowScanner, p *domain.CommunityPost, extra ...any) error {
	dest := []any{&p.ID, &p.OwnerID, &p.Content, &p.CreatedAt, &p.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("community post: %w", repository.ErrNotFound)
		}
		return fmt.Errorf("scan community post: %w", err)
	}
	return nil
}
