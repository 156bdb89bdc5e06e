package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPutObject struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (m *mockPutObject) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.input = params
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	m.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestStorage_Put(t *testing.T) {
	client := &mockPutObject{}
	storage := NewWithClient(client, "headlines-bucket", "public")

	err := storage.Put(context.Background(), "/news.json", []byte(`{"status":"ok"}`), "application/json")
	require.NoError(t, err)

	assert.Equal(t, "headlines-bucket", aws.ToString(client.input.Bucket))
	assert.Equal(t, "public/news.json", aws.ToString(client.input.Key))
	assert.Equal(t, "application/json", aws.ToString(client.input.ContentType))
	assert.Equal(t, snapshotCacheControl, aws.ToString(client.input.CacheControl))
	assert.Equal(t, `{"status":"ok"}`, string(client.body))
}

func TestStorage_PutWithoutPrefix(t *testing.T) {
	client := &mockPutObject{}
	storage := NewWithClient(client, "b", "")

	require.NoError(t, storage.Put(context.Background(), "news.json", nil, ""))
	assert.Equal(t, "news.json", aws.ToString(client.input.Key))
	assert.Nil(t, client.input.ContentType)
}

func TestStorage_PutErrors(t *testing.T) {
	storage := NewWithClient(&mockPutObject{err: errors.New("access denied")}, "b", "")

	err := storage.Put(context.Background(), "news.json", []byte("x"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")

	assert.Error(t, storage.Put(context.Background(), "", []byte("x"), ""))
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}
