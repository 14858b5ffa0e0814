package minio

import (
	"testing"

	"fluxo/internal/api/config"
)

func TestObjectNameFromURL(t *testing.T) {
	config.Cfg = &config.Config{
		MinIO: config.MinIOConfig{ExternalEndpoint: "media.fluxo.local"},
	}
	defer func() { config.Cfg = nil }()

	got := ObjectNameFromURL("post-images", "https://media.fluxo.local/post-images/abc123.png")
	if got != "abc123.png" {
		t.Errorf("Expected object name abc123.png, got %q", got)
	}

	// 外部地址不归本服务管，不能误删
	if got := ObjectNameFromURL("post-images", "https://evil.example.com/post-images/abc123.png"); got != "" {
		t.Errorf("Foreign URL must yield empty object name, got %q", got)
	}
	if got := ObjectNameFromURL("post-images", ""); got != "" {
		t.Errorf("Empty URL must yield empty object name, got %q", got)
	}
}

func TestObjectNameFromURLWithoutConfig(t *testing.T) {
	config.Cfg = nil
	if got := ObjectNameFromURL("avatars", "https://media.fluxo.local/avatars/a.jpg"); got != "" {
		t.Errorf("Expected empty object name without config, got %q", got)
	}
}
