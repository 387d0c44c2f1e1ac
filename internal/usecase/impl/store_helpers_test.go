package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/domain/repository"
	"storefront/internal/infra/storage"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// deviceStore is an in-memory device storage with its write queue.
type deviceStore struct {
	storage repository.DeviceStorage
	writer  *storage.QueueWriter
}

func newDeviceStore(t *testing.T) deviceStore {
	t.Helper()

	s, err := storage.NewBlobStorage(context.Background(), "mem://")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return deviceStore{storage: s, writer: newWriter(t, s)}
}

func newWriter(t *testing.T, s repository.DeviceStorage) *storage.QueueWriter {
	t.Helper()

	writer := storage.NewQueueWriter(s, discardLogger(), time.Second, 16)
	t.Cleanup(func() { _ = writer.Close(context.Background()) })

	return writer
}

func (d deviceStore) get(t *testing.T, key string) (string, bool) {
	t.Helper()

	require.NoError(t, d.writer.Flush(context.Background()))
	value, err := d.storage.GetItem(context.Background(), key)
	if err != nil {
		require.ErrorIs(t, err, repository.ErrStorageKeyNotFound)

		return "", false
	}

	return value, true
}
