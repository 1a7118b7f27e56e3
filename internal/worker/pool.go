package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"studyai-backend/internal/logger"
	"studyai-backend/internal/models"
)

const writeTimeout = 5 * time.Second

var (
	ErrQueueFull   = errors.New("exchange queue full")
	ErrPoolStopped = errors.New("exchange pool stopped")
)

type exchangeStore interface {
	Create(ctx context.Context, ex *models.Exchange) error
}

// Pool persists exchange records on background goroutines so that storage
// latency never reaches the chat response.
type Pool struct {
	store       exchangeStore
	jobs        chan models.Exchange
	workerCount int

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewPool(store exchangeStore, workerCount, queueSize int) *Pool {
	if workerCount <= 0 {
		workerCount = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Pool{
		store:       store,
		jobs:        make(chan models.Exchange, queueSize),
		workerCount: workerCount,
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	slog.Info("exchange workers started", "count", p.workerCount)
}

// Submit enqueues ex without blocking.
func (p *Pool) Submit(ex models.Exchange) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolStopped
	}

	select {
	case p.jobs <- ex:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop rejects new records and waits for queued ones to be written.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for ex := range p.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := p.store.Create(ctx, &ex); err != nil {
			slog.Error("failed to persist exchange",
				"worker", id,
				"request_id", ex.RequestID,
				logger.Err(err),
			)
		}
		cancel()
	}
	slog.Debug("exchange worker shutting down", "worker", id)
}
