package fingerprint

import (
	"context"
	"io"

	"dbcompare/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectBackend keeps artifacts as objects in an S3/MinIO bucket.
// Uploads are streamed, so captures never buffer a whole table.
type ObjectBackend struct {
	Client storage.Client
	Bucket string
	Prefix string
}

// NewObjectBackend verifies (or creates) the bucket and returns the backend.
func NewObjectBackend(ctx context.Context, client storage.Client, bucket, region, prefix string) (*ObjectBackend, error) {
	if err := storage.EnsureBucket(ctx, client, bucket, region); err != nil {
		return nil, err
	}
	return &ObjectBackend{Client: client, Bucket: bucket, Prefix: prefix}, nil
}

func (b *ObjectBackend) key(name string) string {
	return b.Prefix + name
}

// Create implements Backend. The upload runs while the caller writes and
// completes when the writer is closed.
func (b *ObjectBackend) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	pr, pw := io.Pipe()
	w := &objectWriter{pw: pw, done: make(chan error, 1)}

	go func() {
		_, err := b.Client.PutObject(ctx, b.Bucket, b.key(name), pr, -1, minio.PutObjectOptions{
			ContentType: "text/plain; charset=utf-8",
		})
		// Unblock the writer if the upload stopped reading early.
		_ = pr.CloseWithError(err)
		w.done <- err
	}()

	return w, nil
}

// Open implements Backend.
func (b *ObjectBackend) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return b.Client.GetObject(ctx, b.Bucket, b.key(name), minio.GetObjectOptions{})
}

// Remove implements Backend.
func (b *ObjectBackend) Remove(ctx context.Context, name string) error {
	return b.Client.RemoveObject(ctx, b.Bucket, b.key(name), minio.RemoveObjectOptions{})
}

// Location implements Backend.
func (b *ObjectBackend) Location(name string) string {
	return "s3://" + b.Bucket + "/" + b.key(name)
}

type objectWriter struct {
	pw   *io.PipeWriter
	done chan error
}

func (w *objectWriter) Write(p []byte) (int, error) {
	return w.pw.Write(p)
}

func (w *objectWriter) Close() error {
	if err := w.pw.Close(); err != nil {
		return err
	}
	return <-w.done
}
