package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"liftlog/workout-app/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000", endpointURL("localhost:9000", false))
	assert.Equal(t, "https://minio.example", endpointURL("minio.example", true))
	assert.Equal(t, "http://localhost:9000", endpointURL("http://localhost:9000", true))
}

func TestS3Storage_PresignedDownloadURL(t *testing.T) {
	fs, err := NewS3Storage(context.Background(), config.S3Config{
		Endpoint:        "localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		BucketName:      "liftlog",
		UseSSL:          false,
	})
	require.NoError(t, err)

	raw, err := fs.GeneratePresignedDownloadURL(context.Background(), "exports/u/x.json", 10*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/liftlog/exports/u/x.json", u.Path)
	assert.Equal(t, "600", u.Query().Get("X-Amz-Expires"))
}
