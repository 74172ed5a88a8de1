package media

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// S3Options conveys upload destination metadata.
type S3Options struct {
	Bucket    string
	KeyPrefix string
	// PublicBaseURL is prepended to object keys, e.g. a CDN origin. Empty uses the
	// location reported by S3.
	PublicBaseURL string
}

// S3Host uploads media to Amazon S3 (or compatible APIs).
type S3Host struct {
	client   *s3.Client
	uploader *manager.Uploader
	opts     S3Options
}

func NewS3Host(client *s3.Client, opts S3Options) (*S3Host, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	opts.KeyPrefix = strings.Trim(opts.KeyPrefix, "/")
	opts.PublicBaseURL = strings.TrimSuffix(opts.PublicBaseURL, "/")
	return &S3Host{
		client:   client,
		uploader: manager.NewUploader(client),
		opts:     opts,
	}, nil
}

func (h *S3Host) Upload(ctx context.Context, localPath string) (*Asset, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", localPath, err)
	}
	defer f.Close()

	key := h.objectKey(filepath.Ext(localPath))
	input := &s3.PutObjectInput{
		Bucket: aws.String(h.opts.Bucket),
		Key:    aws.String(key),
		Body:   f,
		ACL:    types.ObjectCannedACLPublicRead,
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(localPath))); ct != "" {
		input.ContentType = aws.String(ct)
	}

	out, err := h.uploader.Upload(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", localPath, err)
	}

	url := out.Location
	if h.opts.PublicBaseURL != "" {
		url = h.opts.PublicBaseURL + "/" + key
	}
	return &Asset{URL: url}, nil
}

// Delete removes the object behind url. URLs outside this bucket are ignored.
func (h *S3Host) Delete(ctx context.Context, url string) error {
	key, ok := h.keyFromURL(url)
	if !ok {
		return nil
	}
	_, err := h.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(h.opts.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (h *S3Host) objectKey(ext string) string {
	now := time.Now().UTC()
	name := fmt.Sprintf("%04d/%02d/%s%s", now.Year(), now.Month(), uuid.NewString(), strings.ToLower(ext))
	if h.opts.KeyPrefix == "" {
		return name
	}
	return h.opts.KeyPrefix + "/" + name
}

func (h *S3Host) keyFromURL(url string) (string, bool) {
	if h.opts.PublicBaseURL != "" {
		if rest, ok := strings.CutPrefix(url, h.opts.PublicBaseURL+"/"); ok && rest != "" {
			return rest, true
		}
		return "", false
	}
	// S3 locations are bucket-host or path-style; either way the key follows the prefix
	marker := "/" + h.opts.KeyPrefix + "/"
	if h.opts.KeyPrefix == "" {
		return "", false
	}
	if i := strings.Index(url, marker); i >= 0 {
		return url[i+1:], true
	}
	return "", false
}

var _ Host = (*S3Host)(nil)
