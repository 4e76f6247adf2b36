package storage

import (
	"context"
	"sync"
)

// boxLocks es un mutex por etiqueta de caja. Las entradas se eliminan cuando nadie
// las tiene tomadas ni espera por ellas.
type boxLocks struct {
	mu    sync.Mutex
	locks map[string]*boxLock
}

type boxLock struct {
	ch   chan struct{}
	refs int
}

func newBoxLocks() *boxLocks {
	return &boxLocks{locks: make(map[string]*boxLock)}
}

// Lock espera el turno de la caja o hasta que ctx termine. Devuelve la función de liberación.
func (l *boxLocks) Lock(ctx context.Context, box string) (func(), error) {
	l.mu.Lock()
	bl, ok := l.locks[box]
	if !ok {
		bl = &boxLock{ch: make(chan struct{}, 1)}
		l.locks[box] = bl
	}
	bl.refs++
	l.mu.Unlock()

	select {
	case bl.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-bl.ch
				l.release(box, bl)
			})
		}, nil
	case <-ctx.Done():
		l.release(box, bl)
		return nil, ctx.Err()
	}
}

func (l *boxLocks) release(box string, bl *boxLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	bl.refs--
	if bl.refs == 0 {
		delete(l.locks, box)
	}
}

func (l *boxLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
