package util

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"fluxo/internal/pkg/consts"

	"github.com/disintegration/imaging"
)

const avatarMaxEdge = 512

// GetSafeContentType 嗅探文件真实类型，不信任客户端声明的 Content-Type
func GetSafeContentType(file multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}

// IsImageContentType 判断是否为图片类型
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(contentType, consts.MimePrefixImage+"/")
}

// NormalizeAvatar 解码头像并压缩到标准尺寸，统一转为 JPEG
func NormalizeAvatar(file io.Reader) (*bytes.Reader, error) {
	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("头像解码失败: %w", err)
	}

	img = imaging.Fit(img, avatarMaxEdge, avatarMaxEdge, imaging.Lanczos)

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("头像编码失败: %w", err)
	}
	return bytes.NewReader(buf.Bytes()), nil
}
