package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"vidtube/internal/domain"
	"vidtube/internal/repository"
)

const videoColumns = `v.id, v.owner_id, v.video_file, v.thumbnail, v.title, v.description, v.duration, v.views, v.is_published, v.created_at, v.updated_at`

const ownerColumns = `u.id, u.username, u.full_name, u.avatar`

var videoSortColumns = map[domain.VideoSort]string{
	domain.SortByCreatedAt: "v.created_at",
	domain.SortByViews:     "v.views",
	domain.SortByDuration:  "v.duration",
	domain.SortByTitle:     "v.title COLLATE NOCASE",
}

type VideoRepository struct {
	db *sql.DB
}

func NewVideoRepository(db *sql.DB) repository.VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) Create(ctx context.Context, video *domain.Video) (int64, error) {
	now := time.Now().UTC()
	video.CreatedAt = now
	video.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO videos (owner_id, video_file, thumbnail, title, description, duration, views, is_published, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		video.OwnerID,
		video.VideoFile,
		video.Thumbnail,
		video.Title,
		video.Description,
		video.Duration,
		video.Views,
		boolToInt(video.IsPublished),
		video.CreatedAt,
		video.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("insert video owner: %w", repository.ErrNotFound)
		}
		return 0, fmt.Errorf("insert video: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("video last insert id: %w", err)
	}
	video.ID = id
	return id, nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*domain.Video, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+videoColumns+` FROM videos v WHERE v.id = ?`, id)
	var video domain.Video
	if err := scanVideo(row, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepository) GetWithOwner(ctx context.Context, id int64) (*domain.VideoWithOwner, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+videoColumns+`, `+ownerColumns+`
FROM videos v
JOIN users u ON u.id = v.owner_id
WHERE v.id = ?`, id)
	return scanVideoWithOwner(row)
}

func (r *VideoRepository) List(ctx context.Context, filter domain.VideoFilter) ([]domain.VideoWithOwner, int64, error) {
	where := []string{"(v.is_published = 1 OR v.owner_id = ?)"}
	args := []any{filter.ViewerID}
	if filter.OwnerID > 0 {
		where = append(where, "v.owner_id = ?")
		args = append(args, filter.OwnerID)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		where = append(where, `(v.title LIKE ? ESCAPE '\' OR v.description LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	clause := strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM videos v WHERE `+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count videos: %w", err)
	}

	column, ok := videoSortColumns[filter.SortBy]
	if !ok {
		column = videoSortColumns[domain.SortByCreatedAt]
	}
	dir := "DESC"
	if filter.Ascending {
		dir = "ASC"
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT `+videoColumns+`, `+ownerColumns+`
FROM videos v
JOIN users u ON u.id = v.owner_id
WHERE `+clause+`
ORDER BY `+column+` `+dir+`, v.id `+dir+`
LIMIT ? OFFSET ?`,
		append(args, filter.Page.Limit, filter.Page.Offset())...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	videos, err := collectVideosWithOwner(rows)
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *VideoRepository) Update(ctx context.Context, video *domain.Video) error {
	video.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE videos
SET title = ?, description = ?, thumbnail = ?, is_published = ?, updated_at = ?
WHERE id = ?`,
		video.Title,
		video.Description,
		video.Thumbnail,
		boolToInt(video.IsPublished),
		video.UpdatedAt,
		video.ID,
	)
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}
	return expectAffected(res, "update video")
}

// Delete removes the video; comments, playlist entries, history and likes go with it.
func (r *VideoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	return expectAffected(res, "delete video")
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE videos SET views = views + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return expectAffected(res, "increment views")
}

func scanVideo(row rowScanner, video *domain.Video, extra ...any) error {
	dest := []any{
		&video.ID,
		&video.OwnerID,
		&video.VideoFile,
		&video.Thumbnail,
		&video.Title,
		&video.Description,
		&video.Duration,
		&video.Views,
		&video.IsPublished,
		&video.CreatedAt,
		&video.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("video: %w", repository.ErrNotFound)
		}
		return fmt.Errorf("scan video: %w", err)
	}
	return nil
}

func scanVideoWithOwner(row rowScanner, extra ...any) (*domain.VideoWithOwner, error) {
	var v domain.VideoWithOwner
	dest := append([]any{
		&v.Owner.ID,
		&v.Owner.Username,
		&v.Owner.FullName,
		&v.Owner.Avatar,
	}, extra...)
	if err := scanVideo(row, &v.Video, dest...); err != nil {
		return nil, err
	}
	return &v, nil
}

func collectVideosWithOwner(rows *sql.Rows) ([]domain.VideoWithOwner, error) {
	videos := make([]domain.VideoWithOwner, 0)
	for rows.Next() {
		v, err := scanVideoWithOwner(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}
	return videos, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
