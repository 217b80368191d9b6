package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"film-vault/internal/config"
	"film-vault/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ObjectScheme 对象存储下载地址前缀，形如 s3://bucket/path/to/file.mp4
const ObjectScheme = "s3://"

// Presigner 为对象存储中的下载文件生成限时链接
type Presigner struct {
	client *minio.Client
	expiry time.Duration
}

// NewPresigner 初始化 MinIO 客户端
func NewPresigner(cfg *config.MinIOConfig) (*Presigner, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	expiry := cfg.PresignExpiryDuration()
	if expiry <= 0 {
		expiry = time.Hour
	}

	logger.Info("MinIO client initialized",
		zap.String("endpoint", cfg.Endpoint),
		zap.Duration("presign_expiry", expiry),
	)

	return &Presigner{client: client, expiry: expiry}, nil
}

// ParseObjectURL 解析 s3://bucket/key，不是对象存储地址时 ok 为 false
func ParseObjectURL(raw string) (bucket, object string, ok bool) {
	if !strings.HasPrefix(raw, ObjectScheme) {
		return "", "", false
	}
	rest := strings.TrimPrefix(raw, ObjectScheme)
	idx := strings.Index(rest, "/")
	if idx <= 0 || idx == len(rest)-1 {
		return "", "", false
	}
	return rest[:idx], rest[idx+1:], true
}

// PresignedGetURL 生成预签名下载 URL，以附件形式下载
func (p *Presigner) PresignedGetURL(ctx context.Context, bucket, object string) (string, error) {
	reqParams := make(url.Values)
	name := object[strings.LastIndex(object, "/")+1:]
	reqParams.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", name))

	presignedURL, err := p.client.PresignedGetObject(ctx, bucket, object, p.expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned url: %w", err)
	}
	return presignedURL.String(), nil
}
