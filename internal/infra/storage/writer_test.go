package storage

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingStorage is an in-memory DeviceStorage that records the order of
// operations and can be told to fail writes.
type recordingStorage struct {
	mu      sync.Mutex
	items   map[string]string
	calls   []string
	failSet bool
	delay   time.Duration

	// When gate is set, every SetItem reports on entered and waits for gate to close.
	gate    chan struct{}
	entered chan string
}

func newRecordingStorage() *recordingStorage {
	return &recordingStorage{items: map[string]string{}}
}

func (s *recordingStorage) GetItem(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.items[key]
	if !ok {
		return "", repository.ErrStorageKeyNotFound
	}

	return value, nil
}

func (s *recordingStorage) SetItem(_ context.Context, key, value string) error {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.gate != nil {
		select {
		case s.entered <- key:
		default:
		}
		<-s.gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, "set:"+key+"="+value)
	if s.failSet {
		return errors.New("disk full")
	}
	s.items[key] = value

	return nil
}

func (s *recordingStorage) RemoveItems(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		s.calls = append(s.calls, "remove:"+key)
		delete(s.items, key)
	}

	return nil
}

func (s *recordingStorage) Close() error { return nil }

func (s *recordingStorage) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.calls...)
}

func newTestWriter(t *testing.T, storage repository.DeviceStorage) *QueueWriter {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	writer := NewQueueWriter(storage, logger, time.Second, 4)
	t.Cleanup(func() { _ = writer.Close(context.Background()) })

	return writer
}

func TestQueueWriter_AppliesInOrder(t *testing.T) {
	storage := newRecordingStorage()
	storage.delay = time.Millisecond
	writer := newTestWriter(t, storage)

	for _, v := range []string{"1", "2", "3", "4", "5", "6"} {
		writer.Set(repository.KeySelectedCartID, v)
	}
	writer.Remove(repository.KeyCheckoutAddress)
	writer.Set(repository.KeyUserCarts, "[]")

	require.NoError(t, writer.Flush(context.Background()))

	calls := storage.snapshot()
	require.GreaterOrEqual(t, len(calls), 3)
	assert.Equal(t, []string{
		"set:SELECTED_CART_ID=6",
		"remove:checkout_address",
		"set:USER_CARTS=[]",
	}, calls[len(calls)-3:])

	previous := ""
	for _, call := range calls[:len(calls)-3] {
		assert.Regexp(t, `^set:SELECTED_CART_ID=[1-5]$`, call)
		assert.Greater(t, call, previous)
		previous = call
	}

	value, err := storage.GetItem(context.Background(), repository.KeySelectedCartID)
	require.NoError(t, err)
	assert.Equal(t, "6", value)
}

func TestQueueWriter_NeverBlocksOnSlowStorage(t *testing.T) {
	storage := newRecordingStorage()
	storage.gate = make(chan struct{})
	storage.entered = make(chan string, 1)
	writer := newTestWriter(t, storage)

	writer.Set("first", "0")
	select {
	case <-storage.entered:
	case <-time.After(time.Second):
		t.Fatal("writer never reached storage")
	}

	enqueued := make(chan struct{})
	go func() {
		defer close(enqueued)
		for i := 1; i <= 100; i++ {
			writer.Set(repository.KeyUserCarts, strconv.Itoa(i))
		}
		writer.Remove(repository.KeyCheckoutAddress)
	}()

	select {
	case <-enqueued:
	case <-time.After(time.Second):
		t.Fatal("enqueueing waited for storage")
	}

	close(storage.gate)
	require.NoError(t, writer.Flush(context.Background()))

	assert.Equal(t, []string{
		"set:first=0",
		"set:USER_CARTS=100",
		"remove:checkout_address",
	}, storage.snapshot())
}

func TestQueueWriter_FlushKeepsEarlierSets(t *testing.T) {
	storage := newRecordingStorage()
	storage.gate = make(chan struct{})
	storage.entered = make(chan string, 1)
	writer := newTestWriter(t, storage)

	writer.Set("first", "0")
	<-storage.entered

	writer.Set(repository.KeyUserCarts, "before")
	flushed := make(chan error, 1)
	go func() { flushed <- writer.Flush(context.Background()) }()
	require.Eventually(t, func() bool {
		writer.mu.Lock()
		defer writer.mu.Unlock()

		return len(writer.pending) == 2
	}, time.Second, time.Millisecond)
	writer.Set(repository.KeyUserCarts, "after")

	close(storage.gate)
	require.NoError(t, <-flushed)

	value, err := storage.GetItem(context.Background(), repository.KeyUserCarts)
	require.NoError(t, err)
	assert.Contains(t, []string{"before", "after"}, value)

	require.NoError(t, writer.Flush(context.Background()))
	assert.Equal(t, []string{
		"set:first=0",
		"set:USER_CARTS=before",
		"set:USER_CARTS=after",
	}, storage.snapshot())
}

func TestQueueWriter_FailuresAreSwallowed(t *testing.T) {
	storage := newRecordingStorage()
	storage.failSet = true
	writer := newTestWriter(t, storage)

	writer.Set(repository.KeyUserCarts, "[]")

	require.NoError(t, writer.Flush(context.Background()))
	assert.Len(t, storage.snapshot(), 1)
}

func TestQueueWriter_FlushHonoursContext(t *testing.T) {
	storage := newRecordingStorage()
	storage.delay = 200 * time.Millisecond
	writer := newTestWriter(t, storage)

	writer.Set(repository.KeyUserCarts, "[]")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, writer.Flush(ctx), context.DeadlineExceeded)
}

func TestQueueWriter_CloseDrainsThenDrops(t *testing.T) {
	storage := newRecordingStorage()
	writer := newTestWriter(t, storage)

	writer.Set("a", "1")
	require.NoError(t, writer.Close(context.Background()))

	writer.Set("b", "2")
	assert.NoError(t, writer.Flush(context.Background()))
	assert.NoError(t, writer.Close(context.Background()))

	assert.Equal(t, []string{"set:a=1"}, storage.snapshot())
}

func TestQueueWriter_RemoveNothingIsNoop(t *testing.T) {
	storage := newRecordingStorage()
	writer := newTestWriter(t, storage)

	writer.Remove()
	require.NoError(t, writer.Flush(context.Background()))

	assert.Empty(t, storage.snapshot())
}
