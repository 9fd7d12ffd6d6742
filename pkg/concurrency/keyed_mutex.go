// Package concurrency 저장소와 수집기가 공유하는 동시성 도우미를 제공합니다.
package concurrency

import "sync"

// KeyedMutex 키마다 독립적인 잠금을 제공합니다. 서로 다른 키는 동시에 잠글 수 있습니다.
//
// 잠금을 기다리거나 보유 중인 고루틴이 없는 키는 맵에서 제거됩니다.
type KeyedMutex[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*keyedEntry
}

type keyedEntry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex[K comparable]() *KeyedMutex[K] {
	return &KeyedMutex[K]{locks: make(map[K]*keyedEntry)}
}

// Len 잠겨 있거나 대기 중인 키의 개수를 반환합니다.
func (km *KeyedMutex[K]) Len() int {
	km.mu.Lock()
	defer km.mu.Unlock()

	return len(km.locks)
}

func (km *KeyedMutex[K]) acquire(key K) *keyedEntry {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		e = &keyedEntry{}
		km.locks[key] = e
	}
	e.refs++
	return e
}

func (km *KeyedMutex[K]) Lock(key K) {
	km.acquire(key).mu.Lock()
}

// TryLock 대기하지 않고 잠금을 시도합니다. false를 반환했다면 Unlock을 호출하면 안 됩니다.
func (km *KeyedMutex[K]) TryLock(key K) bool {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		e = &keyedEntry{}
		km.locks[key] = e
	}
	if !e.mu.TryLock() {
		return false
	}
	e.refs++
	return true
}

// Unlock 잠기지 않은 키를 해제하면 패닉이 발생합니다.
func (km *KeyedMutex[K]) Unlock(key K) {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		panic("잠기지 않은 KeyedMutex의 잠금 해제 시도")
	}

	e.mu.Unlock()

	e.refs--
	if e.refs <= 0 {
		delete(km.locks, key)
	}
}

// WithLock key를 잠근 상태로 fn을 실행하고, fn이 패닉을 일으켜도 잠금을 해제합니다.
func (km *KeyedMutex[K]) WithLock(key K, fn func() error) error {
	km.Lock(key)
	defer km.Unlock(key)

	return fn()
}
