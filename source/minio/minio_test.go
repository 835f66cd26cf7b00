package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/hupe1980/enriched/source"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NotFound"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("boom")))
}

func TestStore_Key(t *testing.T) {
	s := NewStore(nil, "b", "go/")
	assert.Equal(t, "go/go.sym.tsv", s.key("go.sym.tsv"))
}

// TestStore_Integration requires a running MinIO instance at
// ENRICHED_MINIO_ENDPOINT.
func TestStore_Integration(t *testing.T) {
	endpoint := os.Getenv("ENRICHED_MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("ENRICHED_MINIO_ENDPOINT not set")
	}
	bucket := "test-enriched"

	store, err := Dial(endpoint, "minioadmin", "minioadmin", false, bucket, "test-prefix/")
	require.NoError(t, err)

	ctx := context.Background()
	exists, err := store.client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, store.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := []byte("anno1\tstudying\tgood!\n")
	_, err = store.client.PutObject(ctx, bucket, store.key("go.anno.tsv"), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	require.NoError(t, err)

	rc, err := store.Open(ctx, "go.anno.tsv")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, data, got)

	_, err = store.Open(ctx, "missing.tsv")
	assert.ErrorIs(t, err, source.ErrNotFound)

	require.NoError(t, store.client.RemoveObject(ctx, bucket, store.key("go.anno.tsv"), minio.RemoveObjectOptions{}))
}
