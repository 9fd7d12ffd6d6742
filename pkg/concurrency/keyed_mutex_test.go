package concurrency

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_LockUnlock(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex[string]()

	km.Lock("hp/1234567")
	assert.Equal(t, 1, km.Len())

	km.Lock("twd/60272160")
	assert.Equal(t, 2, km.Len())

	km.Unlock("hp/1234567")
	km.Unlock("twd/60272160")
	assert.Zero(t, km.Len())
}

func TestKeyedMutex_TryLock(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex[string]()

	require.True(t, km.TryLock("a"))
	assert.False(t, km.TryLock("a"))
	assert.True(t, km.TryLock("b"))

	km.Unlock("a")
	km.Unlock("b")
	assert.Zero(t, km.Len())

	require.True(t, km.TryLock("a"))
	km.Unlock("a")
}

func TestKeyedMutex_UnlockWithoutLockPanics(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex[int]()
	assert.Panics(t, func() { km.Unlock(1) })
}

func TestKeyedMutex_WithLock(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex[string]()
	want := errors.New("boom")

	err := km.WithLock("k", func() error {
		assert.Equal(t, 1, km.Len())
		return want
	})
	assert.ErrorIs(t, err, want)
	assert.Zero(t, km.Len())

	assert.Panics(t, func() {
		_ = km.WithLock("k", func() error { panic("fail") })
	})
	assert.Zero(t, km.Len(), "패닉 후에도 잠금이 해제되어야 합니다")
}

func TestKeyedMutex_SameKeySerialized(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex[string]()

	var active, maxActive atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = km.WithLock("same", func() error {
				n := active.Add(1)
				for {
					cur := maxActive.Load()
					if n <= cur || maxActive.CompareAndSwap(cur, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				active.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive.Load())
	assert.Zero(t, km.Len())
}

func TestKeyedMutex_DifferentKeysParallel(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex[string]()
	km.Lock("a")
	defer km.Unlock("a")

	done := make(chan struct{})
	go func() {
		km.Lock("b")
		km.Unlock("b")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("다른 키의 잠금이 차단되었습니다")
	}
}
