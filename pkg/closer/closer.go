package closer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Func cierra un recurso respetando el contexto.
type Func func(ctx context.Context) error

type entry struct {
	name string
	fn   Func
}

// Closer cierra los recursos registrados en orden inverso (LIFO), una sola vez.
type Closer struct {
	mu            sync.Mutex
	once          sync.Once
	entries       []entry
	forcedTimeout time.Duration
}

// New crea un Closer. forcedTimeout es el plazo para los recursos que quedan pendientes
// cuando el contexto de Close expira (2s si es cero).
func New(forcedTimeout time.Duration) *Closer {
	if forcedTimeout <= 0 {
		forcedTimeout = 2 * time.Second
	}
	return &Closer{forcedTimeout: forcedTimeout}
}

// Add registra un recurso con un nombre para los mensajes de error.
func (c *Closer) Add(name string, fn Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry{name: name, fn: fn})
}

// Close cierra todo en orden LIFO. Si ctx expira, lo pendiente se cierra en paralelo
// con un contexto propio de forcedTimeout.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		entries := c.entries
		c.mu.Unlock()

		var errs []error
		for i := len(entries) - 1; i >= 0; i-- {
			done := make(chan error, 1)
			e := entries[i]
			go func() { done <- e.fn(ctx) }()

			select {
			case cerr := <-done:
				if cerr != nil {
					errs = append(errs, fmt.Errorf("%s: %w", e.name, cerr))
				}
			case <-ctx.Done():
				errs = append(errs, fmt.Errorf("%s: %w", e.name, ctx.Err()))
				errs = append(errs, c.forced(entries[:i])...)
				err = errors.Join(errs...)
				return
			}
		}
		err = errors.Join(errs...)
	})
	return err
}

func (c *Closer) forced(pending []entry) []error {
	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, e := range pending {
		e := e
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := e.fn(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("[forzado] %s: %w", e.name, err))
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return errs
}
