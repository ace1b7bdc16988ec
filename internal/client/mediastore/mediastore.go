// Package mediastore pushes prescription documents to object storage and
// returns a URL the API can store alongside the file record.
package mediastore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/medreminder/internal/filex"
	"github.com/dmitrijs2005/medreminder/internal/netx"
	"github.com/google/uuid"
)

var ErrNotConfigured = errors.New("media store is not configured")

// Media describes an uploaded document.
type Media struct {
	URL       string
	PublicID  string
	FileName  string
	MimeType  string
	SizeBytes int64
}

type Uploader interface {
	Upload(ctx context.Context, doc *filex.Document) (*Media, error)
}

type Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	// URLExpiry is the lifetime of the returned GET URL.
	URLExpiry time.Duration
}

// Enabled reports whether enough is configured to talk to a bucket.
func (c Config) Enabled() bool {
	return c.Bucket != "" && c.Region != ""
}

const (
	putExpiry        = 15 * time.Minute
	defaultURLExpiry = 7 * 24 * time.Hour
)

var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
	now = time.Now
)

// S3Uploader stores documents in an S3-compatible bucket through presigned
// URLs, so the bytes travel over a plain HTTP PUT.
type S3Uploader struct {
	cfg  Config
	http *http.Client
}

func NewS3Uploader(cfg Config, httpClient *http.Client) (*S3Uploader, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	if cfg.URLExpiry <= 0 {
		cfg.URLExpiry = defaultURLExpiry
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	return &S3Uploader{cfg: cfg, http: httpClient}, nil
}

func (u *S3Uploader) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(u.cfg.Region)}
	if u.cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(u.cfg.AccessKey, u.cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if u.cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(u.cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})
	return newS3PresignClient(client), nil
}

func (u *S3Uploader) Upload(ctx context.Context, doc *filex.Document) (*Media, error) {
	pc, err := u.presignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := u.cfg.Bucket
	key := StorageKey(now(), doc.Name)

	put, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String(doc.MimeType),
	}, s3.WithPresignExpires(putExpiry))
	if err != nil {
		return nil, fmt.Errorf("presign put %s: %w", key, err)
	}

	if err := netx.PutPresigned(ctx, u.http, put.URL, doc.MimeType, doc.Data); err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}

	get, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(u.cfg.URLExpiry))
	if err != nil {
		return nil, fmt.Errorf("presign get %s: %w", key, err)
	}

	return &Media{
		URL:       get.URL,
		PublicID:  key,
		FileName:  doc.Name,
		MimeType:  doc.MimeType,
		SizeBytes: int64(len(doc.Data)),
	}, nil
}

// StorageKey builds a unique object key that keeps the document's extension.
func StorageKey(t time.Time, name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	return fmt.Sprintf("prescriptions/%d/%02d/%02d/%s%s", t.Year(), int(t.Month()), t.Day(), uuid.New(), ext)
}
