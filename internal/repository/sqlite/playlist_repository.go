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

const playlistColumns = `p.id, p.owner_id, p.name, p.description,
	(SELECT COUNT(*) FROM playlist_videos pv WHERE pv.playlist_id = p.id),
	p.created_at, p.updated_at`

type PlaylistRepository struct {
	db *sql.DB
}

func NewPlaylistRepository(db *sql.DB) repository.PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) (int64, error) {
	now := time.Now().UTC()
	playlist.CreatedAt = now
	playlist.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO playlists (owner_id, name, description, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		playlist.OwnerID, playlist.Name, playlist.Description, playlist.CreatedAt, playlist.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert playlist: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("playlist last insert id: %w", err)
	}
	playlist.ID = id
	return id, nil
}

func (r *PlaylistRepository) GetByID(ctx context.Context, id int64) (*domain.Playlist, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+playlistColumns+` FROM playlists p WHERE p.id = ?`, id)
	var p domain.Playlist
	if err := scanPlaylist(row, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlaylistRepository) GetDetails(ctx context.Context, id, viewerID int64) (*domain.PlaylistDetails, error) {
	var details domain.PlaylistDetails
	row := r.db.QueryRowContext(ctx, `
SELECT `+playlistColumns+`, `+ownerColumns+`
FROM playlists p
JOIN users u ON u.id = p.owner_id
WHERE p.id = ?`, id)
	if err := scanPlaylist(row, &details.Playlist,
		&details.Owner.ID, &details.Owner.Username, &details.Owner.FullName, &details.Owner.Avatar,
	); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT `+videoColumns+`, `+ownerColumns+`
FROM playlist_videos pv
JOIN videos v ON v.id = pv.video_id
JOIN users u ON u.id = v.owner_id
WHERE pv.playlist_id = ? AND (v.is_published = 1 OR v.owner_id = ?)
ORDER BY pv.id ASC`, id, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list playlist videos: %w", err)
	}
	defer rows.Close()

	details.Videos, err = collectVideosWithOwner(rows)
	if err != nil {
		return nil, err
	}
	details.VideoCount = int64(len(details.Videos))
	return &details, nil
}

func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID int64, page domain.Page) ([]domain.Playlist, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM playlists WHERE owner_id = ?`, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count playlists: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT `+playlistColumns+`
FROM playlists p
WHERE p.owner_id = ?
ORDER BY p.created_at DESC, p.id DESC
LIMIT ? OFFSET ?`,
		ownerID, page.Limit, page.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	playlists := make([]domain.Playlist, 0)
	for rows.Next() {
		var p domain.Playlist
		if err := scanPlaylist(rows, &p); err != nil {
			return nil, 0, err
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate playlists: %w", err)
	}
	return playlists, total, nil
}

func (r *PlaylistRepository) Update(ctx context.Context, playlist *domain.Playlist) error {
	playlist.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE playlists SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		playlist.Name, playlist.Description, playlist.UpdatedAt, playlist.ID,
	)
	if err != nil {
		return fmt.Errorf("update playlist: %w", err)
	}
	return expectAffected(res, "update playlist")
}

func (r *PlaylistRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	return expectAffected(res, "delete playlist")
}

func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID int64) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO playlist_videos (playlist_id, video_id, added_at)
VALUES (?, ?, ?)`,
		playlistID, videoID, time.Now().UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("add playlist video: %w", repository.ErrConflict)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("add playlist video: %w", repository.ErrNotFound)
		}
		return fmt.Errorf("add playlist video: %w", err)
	}
	return r.touch(ctx, playlistID)
}

// RemoveVideo is a no-op when the video is not in the playlist.
func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID int64) error {
	if _, err := r.db.ExecContext(ctx, `
DELETE FROM playlist_videos WHERE playlist_id = ? AND video_id = ?`,
		playlistID, videoID,
	); err != nil {
		return fmt.Errorf("remove playlist video: %w", err)
	}
	return r.touch(ctx, playlistID)
}

func (r *PlaylistRepository) touch(ctx context.Context, playlistID int64) error {
	if _, err := r.db.ExecContext(ctx, `
UPDATE playlists SET updated_at = ? WHERE id = ?`,
		time.Now().UTC(), playlistID,
	); err != nil {
		return fmt.Errorf("touch playlist: %w", err)
	}
	return nil
}

func scanPlaylist(row rowScanner, p *domain.Playlist, extra ...any) error {
	dest := []any{&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.VideoCount, &p.CreatedAt, &p.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("playlist: %w", repository.ErrNotFound)
		}
		return fmt.Errorf("scan playlist: %w", err)
	}
	return nil
}
