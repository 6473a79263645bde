package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
	failPut error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failPut != nil {
		return nil, f.failPut
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = data
	f.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestDocumentKey(t *testing.T) {
	assert.Equal(t, "documents/user-1/doc-9", DocumentKey("user-1", "doc-9"))
}

func TestS3_RoundTrip(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	store := &S3{client: fake, bucket: "records", prefix: "biogram"}

	require.NoError(t, store.Put(ctx, "documents/u/d", "application/pdf", strings.NewReader("%PDF"), 4))
	assert.Contains(t, fake.objects, "records/biogram/documents/u/d")
	assert.Equal(t, "application/pdf", fake.types["records/biogram/documents/u/d"])

	body, err := store.Get(ctx, "documents/u/d")
	require.NoError(t, err)
	data, _ := io.ReadAll(body)
	assert.Equal(t, "%PDF", string(data))

	require.NoError(t, store.Delete(ctx, "documents/u/d"))
	_, err = store.Get(ctx, "documents/u/d")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestS3_PutError(t *testing.T) {
	fake := newFakeS3()
	fake.failPut = errors.New("access denied")
	store := &S3{client: fake, bucket: "records"}

	err := store.Put(context.Background(), "k", "text/plain", strings.NewReader("x"), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://records/k")
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Put(ctx, "k", "text/plain", strings.NewReader("hello"), 5))
	body, err := m.Get(ctx, "k")
	require.NoError(t, err)
	data, _ := io.ReadAll(body)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, m.Delete(ctx, "k"))
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}
