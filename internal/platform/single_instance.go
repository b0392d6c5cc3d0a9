package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another deck already owns the key store.
var ErrAlreadyRunning = errors.New("deck already running")

const (
	minLockPort = 20000
	maxLockPort = 39999
)

// Lock keeps a single deck process per key store. Two decks writing the
// same keys.yaml would overwrite each other's stopwatch state.
type Lock struct {
	listener net.Listener
}

// AcquireLock binds a loopback port derived from the key store path.
func AcquireLock(storePath string) (*Lock, error) {
	listener, err := net.Listen("tcp", lockAddress(storePath))
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", ErrAlreadyRunning, storePath)
	}
	return &Lock{listener: listener}, nil
}

// Release frees the lock. It is safe to call on a nil Lock.
func (lock *Lock) Release() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	err := lock.listener.Close()
	lock.listener = nil
	return err
}

func lockAddress(storePath string) string {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(storePath))
	rangeSize := uint32(maxLockPort - minLockPort + 1)
	return fmt.Sprintf("127.0.0.1:%d", minLockPort+int(hash.Sum32()%rangeSize))
}
