package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"fluxo/internal/api/config"

	"github.com/minio/minio-go/v7"
)

// UploadFile 上传文件到指定桶
func UploadFile(ctx context.Context, bucket, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// DeleteFile 删除指定桶中的文件
func DeleteFile(ctx context.Context, bucket, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GetPublicURL 获取文件的公共访问URL
func GetPublicURL(bucket, objectName string) string {
	if objectName == "" {
		return ""
	}
	cfg := config.Cfg.MinIO

	return fmt.Sprintf("https://%s/%s/%s", cfg.ExternalEndpoint, bucket, objectName)
}

// ObjectNameFromURL 从公网地址还原对象名，不是本服务地址时返回空串
func ObjectNameFromURL(bucket, rawURL string) string {
	if rawURL == "" || config.Cfg == nil {
		return ""
	}
	prefix := fmt.Sprintf("https://%s/%s/", config.Cfg.MinIO.ExternalEndpoint, bucket)
	if !strings.HasPrefix(rawURL, prefix) {
		return ""
	}
	return strings.TrimPrefix(rawURL, prefix)
}
