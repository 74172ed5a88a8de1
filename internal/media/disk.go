package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskHost keeps files in a local directory served under baseURL.
type DiskHost struct {
	root    string
	baseURL string
}

func NewDiskHost(root, baseURL string) (*DiskHost, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &DiskHost{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (h *DiskHost) Upload(ctx context.Context, localPath string) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", localPath, err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(localPath))
	dst, err := os.Create(filepath.Join(h.root, name))
	if err != nil {
		return nil, fmt.Errorf("create media file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return nil, fmt.Errorf("copy media file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("close media file: %w", err)
	}

	return &Asset{URL: h.baseURL + "/" + name}, nil
}

// Delete ignores URLs this host did not produce.
func (h *DiskHost) Delete(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, h.baseURL+"/") {
		return nil
	}
	name := path.Base(strings.TrimPrefix(url, h.baseURL+"/"))
	if name == "." || name == "/" || name == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(h.root, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}

var _ Host = (*DiskHost)(nil)
