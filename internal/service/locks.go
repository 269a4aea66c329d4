package service

import "sync"

type lockKey struct {
	guildID int64
	userID  int64
}

// keyedLocks serializes read-modify-write cycles on a single points record.
// Entries are kept for the life of the process; the map is bounded by the
// number of (guild, user) pairs the bot has seen.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[lockKey]*sync.Mutex
}

// acquire locks the mutex for key and returns its unlock function.
func (k *keyedLocks) acquire(key lockKey) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[lockKey]*sync.Mutex)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()
	l.Lock()
	return l.Unlock
}
