package helper

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"stamet_backend/internals/helpers/logger"
)

type OSSConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	SecurityToken string
	Bucket        string
	PublicBase    string
}

func OSSConfigFromEnv() OSSConfig {
	get := func(k string) string { return strings.TrimSpace(os.Getenv(k)) }
	return OSSConfig{
		Endpoint:      get("ALI_OSS_ENDPOINT"),
		AccessKey:     get("ALI_OSS_ACCESS_KEY"),
		SecretKey:     get("ALI_OSS_SECRET_KEY"),
		SecurityToken: get("ALI_OSS_SECURITY_TOKEN"),
		Bucket:        get("ALI_OSS_BUCKET"),
		PublicBase:    get("ALI_OSS_PUBLIC_BASE"),
	}
}

func (c OSSConfig) Complete() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != "" && c.Bucket != ""
}

type OSSStore struct {
	bucket     *oss.Bucket
	endpoint   string
	bucketName string
	publicBase string
}

func NewOSSStore(cfg OSSConfig) (*OSSStore, error) {
	if !cfg.Complete() {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var opts []oss.ClientOption
	if cfg.SecurityToken != "" {
		opts = append(opts, oss.SecurityToken(cfg.SecurityToken))
	}
	client, err := oss.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(cfg.Bucket); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 {
			logger.Warn().Str("bucket", cfg.Bucket).Msg("oss: skip location check (AccessDenied)")
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		logger.Info().Str("bucket", cfg.Bucket).Str("location", loc).Msg("oss bucket siap")
	}

	return &OSSStore{
		bucket:     bkt,
		endpoint:   cfg.Endpoint,
		bucketName: cfg.Bucket,
		publicBase: strings.TrimRight(cfg.PublicBase, "/"),
	}, nil
}

func (s *OSSStore) PutObject(ctx context.Context, key string, r io.Reader, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return s.bucket.PutObject(key, r,
		oss.WithContext(ctx),
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	)
}

func (s *OSSStore) DeleteObject(ctx context.Context, key string) error {
	return s.bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (s *OSSStore) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if s.publicBase != "" {
		return s.publicBase + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, end, key)
}
