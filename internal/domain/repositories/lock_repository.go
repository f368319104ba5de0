package repositories

// LockRepository guards a delivery run against concurrent runs on the same host.
type LockRepository interface {
	// TryLock takes the lock without blocking; ok is false when another process holds it.
	TryLock() (ok bool, err error)
	Unlock() error
}
