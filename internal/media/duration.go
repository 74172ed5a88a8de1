package media

import (
	"context"
	"fmt"
	"math"
	"mime"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CommandRunner executes an external command and returns its stdout.
type CommandRunner func(ctx context.Context, binary string, args ...string) ([]byte, error)

// DurationReader reports the playback length of a local file in seconds.
type DurationReader interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// FFmpegDuration reads container durations with the FFmpeg command-line inspector.
type FFmpegDuration struct {
	Binary  string
	Run     CommandRunner
	Timeout time.Duration
}

func NewFFmpegDuration(binary string, timeout time.Duration) *FFmpegDuration {
	if strings.TrimSpace(binary) == "" {
		binary = "ffprobe"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &FFmpegDuration{
		Binary:  binary,
		Run:     defaultCommandRunner,
		Timeout: timeout,
	}
}

func (d *FFmpegDuration) Duration(ctx context.Context, path string) (float64, error) {
	if d.Run == nil {
		d.Run = defaultCommandRunner
	}

	execCtx, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()

	out, err := d.Run(execCtx, d.Binary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", d.Binary, path, err)
	}

	raw := strings.TrimSpace(string(out))
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", raw, err)
	}
	if seconds < 0 || math.IsInf(seconds, 0) || math.IsNaN(seconds) {
		return 0, fmt.Errorf("invalid duration %q", raw)
	}
	return seconds, nil
}

func defaultCommandRunner(ctx context.Context, binary string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, binary, args...).Output()
}

// WithDuration wraps host so uploaded media carries its length. Images are
// skipped, and a file whose length cannot be read uploads with zero duration.
func WithDuration(host Host, reader DurationReader, logger logrus.FieldLogger) Host {
	return &timedHost{Host: host, reader: reader, logger: logger}
}

type timedHost struct {
	Host
	reader DurationReader
	logger logrus.FieldLogger
}

func (h *timedHost) Upload(ctx context.Context, localPath string) (*Asset, error) {
	// read before uploading; hosts may move the file
	var seconds float64
	if !isImage(localPath) {
		d, err := h.reader.Duration(ctx, localPath)
		if err != nil {
			h.logger.WithError(err).WithField("path", localPath).Debug("read media duration")
		} else {
			seconds = d
		}
	}

	asset, err := h.Host.Upload(ctx, localPath)
	if err != nil {
		return nil, err
	}
	if asset != nil && asset.Duration == 0 {
		asset.Duration = seconds
	}
	return asset, nil
}

func isImage(path string) bool {
	return strings.HasPrefix(mime.TypeByExtension(strings.ToLower(filepath.Ext(path))), "image/")
}
