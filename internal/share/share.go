// Package share publishes generated posters and videos to S3 and hands back
// presigned GET URLs a creator can paste into a post or send to a phone.
package share

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fpang/creator-studio/internal/chat"
	"github.com/fpang/creator-studio/internal/media"
	"github.com/fpang/creator-studio/internal/metrics"
)

// maxVideoBytes bounds the download of a generated clip.
const maxVideoBytes = 200 << 20

// ObjectStore is the subset of the S3 client used for uploads.
type ObjectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Presigner is the subset of s3.PresignClient used to mint share links.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Publisher uploads media under Prefix in Bucket.
type Publisher struct {
	Store     ObjectStore
	Presigner Presigner
	Bucket    string
	Prefix    string
	Expiry    time.Duration
	// APIKey authorizes the download of provider-hosted video URIs.
	APIKey string
	HTTP   *http.Client
}

// NewPublisher wires a Publisher to an S3 client.
func NewPublisher(client *s3.Client, bucket, prefix string, expiry time.Duration, apiKey string) *Publisher {
	return &Publisher{
		Store:     client,
		Presigner: s3.NewPresignClient(client),
		Bucket:    bucket,
		Prefix:    prefix,
		Expiry:    expiry,
		APIKey:    apiKey,
		HTTP:      &http.Client{Timeout: 5 * time.Minute},
	}
}

// PublishPoster uploads the image inside a data URI.
func (p *Publisher) PublishPoster(ctx context.Context, suggestionID, dataURI string) (string, error) {
	mimeType, data, err := media.ParseDataURI(dataURI)
	if err != nil {
		return "", fmt.Errorf("poster payload: %w", err)
	}
	return p.upload(ctx, "posters", suggestionID, extension(mimeType), mimeType, data)
}

// PublishVideo downloads a provider-hosted clip and re-hosts it.
func (p *Publisher) PublishVideo(ctx context.Context, suggestionID, videoURI string) (string, error) {
	src, err := chat.AuthorizedVideoURL(videoURI, p.APIKey)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", fmt.Errorf("video request: %w", err)
	}
	client := p.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("video download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("video download: unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxVideoBytes))
	if err != nil {
		return "", fmt.Errorf("video download: %w", err)
	}
	return p.upload(ctx, "videos", suggestionID, ".mp4", "video/mp4", data)
}

func (p *Publisher) upload(ctx context.Context, kind, suggestionID, ext, contentType string, data []byte) (string, error) {
	key := path.Join(p.Prefix, kind, suggestionID, uuid.NewString()+ext)

	start := time.Now()
	_, err := p.Store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to S3: %w", kind, err)
	}

	metrics.New().
		Dimension("Kind", kind).
		Metric("SharedObjectBytes", float64(len(data)), metrics.UnitBytes).
		Metric("ShareUploadMs", float64(time.Since(start).Milliseconds()), metrics.UnitMilliseconds).
		Flush()

	result, err := p.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.Bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = p.Expiry
	})
	if err != nil {
		return "", fmt.Errorf("presign GetObject: %w", err)
	}

	log.Info().Str("key", key).Int("bytes", len(data)).Msg("Media shared")
	return result.URL, nil
}

func extension(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
