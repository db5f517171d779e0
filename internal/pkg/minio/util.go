package minio

import (
	"Zheye/internal/api/config"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// ObjectStorage 上层依赖的对象存储能力
type ObjectStorage interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
	PublicURL(objectName string) string
}

type objectStorageImpl struct{}

// NewObjectStorage 基于全局 Client 的实现
func NewObjectStorage() ObjectStorage {
	return &objectStorageImpl{}
}

func (o *objectStorageImpl) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	return UploadFile(ctx, objectName, reader, size, contentType)
}

func (o *objectStorageImpl) Delete(ctx context.Context, objectName string) error {
	return DeleteFile(ctx, objectName)
}

func (o *objectStorageImpl) PublicURL(objectName string) string {
	return GetPublicURL(objectName)
}

// UploadFile 上传文件到MinIO
func UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", errors.New("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, BucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to upload file")
	}

	return uploadInfo.Key, nil
}

// DeleteFile 删除MinIO中的文件
func DeleteFile(ctx context.Context, objectName string) error {
	if Client == nil {
		return errors.New("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "failed to delete file")
	}

	return nil
}

// GetPublicURL 获取文件的公共访问URL，空对象名返回空串
func GetPublicURL(objectName string) string {
	if objectName == "" {
		return ""
	}
	cfg := config.Cfg.MinIO
	endpoint := cfg.PublicEndpoint
	if endpoint == "" {
		endpoint = cfg.Endpoint
	}

	protocol := "http"
	if cfg.UseSSL {
		protocol = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, cfg.Bucket, objectName)
}
