package media

import (
	"context"
	"errors"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type durationFunc func(ctx context.Context, path string) (float64, error)

func (f durationFunc) Duration(ctx context.Context, path string) (float64, error) {
	return f(ctx, path)
}

func TestFFmpegDuration(t *testing.T) {
	reader := NewFFmpegDuration("", time.Second)
	assert.Equal(t, "ffprobe", reader.Binary)

	reader.Run = func(ctx context.Context, binary string, args ...string) ([]byte, error) {
		want := []string{"-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", "/tmp/clip.mp4"}
		assert.Equal(t, "ffprobe", binary)
		assert.Equal(t, want, args)
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return []byte("12.500000\n"), nil
	}

	seconds, err := reader.Duration(context.Background(), "/tmp/clip.mp4")
	require.NoError(t, err)
	assert.Equal(t, 12.5, seconds)
}

func TestFFmpegDuration_Errors(t *testing.T) {
	tests := []struct {
		name string
		out  string
		err  error
	}{
		{"command fails", "", errors.New("exit status 1")},
		{"not available", "N/A\n", nil},
		{"negative", "-3\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewFFmpegDuration("/usr/bin/inspect", time.Second)
			reader.Run = func(context.Context, string, ...string) ([]byte, error) {
				return []byte(tt.out), tt.err
			}
			_, err := reader.Duration(context.Background(), "clip.mp4")
			assert.Error(t, err)
		})
	}
}

func TestWithDuration(t *testing.T) {
	logger, _ := logtest.NewNullLogger()

	t.Run("video gets its length", func(t *testing.T) {
		p := tempFile(t, "clip.mp4")
		inner := &mockHost{}
		inner.On("Upload", mock.Anything, p).Return(&Asset{URL: "https://cdn.example.com/clip.mp4"}, nil).Once()
		host := WithDuration(inner, durationFunc(func(_ context.Context, path string) (float64, error) {
			assert.Equal(t, p, path)
			return 42.25, nil
		}), logger)

		asset, err := Upload(context.Background(), host, p)
		require.NoError(t, err)
		assert.Equal(t, 42.25, asset.Duration)
		inner.AssertExpectations(t)
	})

	t.Run("unreadable length uploads anyway", func(t *testing.T) {
		p := tempFile(t, "clip.mov")
		inner := &mockHost{}
		inner.On("Upload", mock.Anything, p).Return(&Asset{URL: "https://cdn.example.com/clip.mov"}, nil).Once()
		host := WithDuration(inner, durationFunc(func(context.Context, string) (float64, error) {
			return 0, errors.New("executable file not found")
		}), logger)

		asset, err := Upload(context.Background(), host, p)
		require.NoError(t, err)
		assert.Zero(t, asset.Duration)
	})

	t.Run("images are skipped", func(t *testing.T) {
		p := tempFile(t, "thumb.PNG")
		inner := &mockHost{}
		inner.On("Upload", mock.Anything, p).Return(&Asset{URL: "https://cdn.example.com/thumb.png"}, nil).Once()
		host := WithDuration(inner, durationFunc(func(context.Context, string) (float64, error) {
			t.Fatal("duration read for an image")
			return 0, nil
		}), logger)

		asset, err := Upload(context.Background(), host, p)
		require.NoError(t, err)
		assert.Zero(t, asset.Duration)
	})

	t.Run("delete passes through", func(t *testing.T) {
		inner := &mockHost{}
		inner.On("Delete", mock.Anything, "https://cdn.example.com/clip.mp4").Return(nil).Once()
		host := WithDuration(inner, durationFunc(func(context.Context, string) (float64, error) { return 0, nil }), logger)

		require.NoError(t, host.Delete(context.Background(), "https://cdn.example.com/clip.mp4"))
		inner.AssertExpectations(t)
	})
}
