package request

import (
	"sync"
)

// ActionKey identifies one user action on one entity, e.g. {postID, "like"}.
type ActionKey struct {
	EntityID string
	Action   string
}

// Keys tracks actions that are currently in flight. A second invocation for
// the same key is rejected until the first releases it.
type Keys struct {
	mu     sync.Mutex
	active map[ActionKey]struct{}
}

func NewKeys() *Keys {
	return &Keys{active: make(map[ActionKey]struct{})}
}

// TryAcquire claims the key, reporting false when it is already held.
func (k *Keys) TryAcquire(key ActionKey) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, held := k.active[key]; held {
		return false
	}
	k.active[key] = struct{}{}
	return true
}

func (k *Keys) Release(key ActionKey) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.active, key)
}

func (k *Keys) Held(key ActionKey) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	_, held := k.active[key]
	return held
}
