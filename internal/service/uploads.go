package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"vidtube/internal/media"
)

// discardUploads removes hosted assets of a request that failed after uploading them.
// It runs even when the request context is already cancelled.
func discardUploads(ctx context.Context, host media.Host, logger logrus.FieldLogger, urls ...string) {
	ctx = context.WithoutCancel(ctx)
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := host.Delete(ctx, url); err != nil {
			logger.WithError(err).WithField("url", url).Warn("discard orphaned upload")
		}
	}
}
