// Package media hands uploaded files to an external host and returns their public URLs.
package media

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrUploadFailed is returned when the host accepted the call but produced no asset.
var ErrUploadFailed = errors.New("media upload failed")

// Asset is a hosted file.
type Asset struct {
	URL string
	// Duration in seconds, when the host can tell.
	Duration float64
}

// Host stores files and serves them by URL.
type Host interface {
	Upload(ctx context.Context, localPath string) (*Asset, error)
	Delete(ctx context.Context, url string) error
}

// Upload sends localPath to host and removes the local file whatever the outcome.
func Upload(ctx context.Context, host Host, localPath string) (asset *Asset, err error) {
	if localPath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrUploadFailed)
	}
	defer func() {
		if rmErr := os.Remove(localPath); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
			err = fmt.Errorf("remove temp file %s: %w", localPath, rmErr)
			asset = nil
		}
	}()

	asset, err = host.Upload(ctx, localPath)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", localPath, err)
	}
	if asset == nil || asset.URL == "" {
		return nil, ErrUploadFailed
	}
	return asset, nil
}
