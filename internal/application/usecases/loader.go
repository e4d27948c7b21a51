package usecases

import (
	"context"
	"sync"
)

// Loader garante que, por chave, apenas a consulta mais recente entregue resultado.
// Uma nova consulta cancela a anterior, e a anterior recebe ErrStaleResult mesmo
// que termine depois.
type Loader struct {
	mu      sync.Mutex
	seq     map[string]uint64
	cancels map[string]context.CancelFunc
}

func NewLoader() *Loader {
	return &Loader{
		seq:     make(map[string]uint64),
		cancels: make(map[string]context.CancelFunc),
	}
}

// Run executa fn como a consulta atual da chave
func (l *Loader) Run(ctx context.Context, key string, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	ctx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	if prev, ok := l.cancels[key]; ok {
		prev()
	}
	l.seq[key]++
	mine := l.seq[key]
	l.cancels[key] = cancel
	l.mu.Unlock()

	v, err := fn(ctx)

	l.mu.Lock()
	current := l.seq[key] == mine
	if current {
		delete(l.cancels, key)
	}
	l.mu.Unlock()
	cancel()

	if !current {
		return nil, ErrStaleResult
	}
	return v, err
}
