package storage

import (
	"context"
	"net/url"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

const blobKeyPrefix = "device/"

type blobStorage struct {
	bucket *blob.Bucket
}

// NewBlobStorage opens a gocloud.dev bucket such as "file:///var/lib/storefront"
// or "mem://" and stores each key as one object.
func NewBlobStorage(ctx context.Context, bucketURL string) (repository.DeviceStorage, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	return newBlobStorage(bucket), nil
}

func newBlobStorage(bucket *blob.Bucket) *blobStorage {
	return &blobStorage{bucket: bucket}
}

func (s *blobStorage) GetItem(ctx context.Context, key string) (string, error) {
	data, err := s.bucket.ReadAll(ctx, objectKey(key))
	if gcerrors.Code(err) == gcerrors.NotFound {
		return "", repository.ErrStorageKeyNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to read key %s", key)
	}

	return string(data), nil
}

func (s *blobStorage) SetItem(ctx context.Context, key, value string) error {
	err := s.bucket.WriteAll(ctx, objectKey(key), []byte(value), &blob.WriterOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return errors.Wrapf(err, "failed to write key %s", key)
	}

	return nil
}

func (s *blobStorage) RemoveItems(ctx context.Context, keys ...string) error {
	var errs []error
	for _, key := range keys {
		err := s.bucket.Delete(ctx, objectKey(key))
		if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
			errs = append(errs, errors.Wrapf(err, "failed to remove key %s", key))
		}
	}

	return errors.Join(errs...)
}

func (s *blobStorage) Close() error {
	return errors.WithStack(s.bucket.Close())
}

// objectKey escapes key so that any storage key is a single flat object name.
func objectKey(key string) string {
	return blobKeyPrefix + url.PathEscape(key)
}
