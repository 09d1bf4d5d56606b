package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/shahafle/costs-manager/logger"
)

// Pool runs a fixed set of workers over a bounded job queue. When the
// queue is full, Submit drops the job instead of blocking: the log
// pipeline is best-effort and must never hold up a producer.
type Pool struct {
	workers int
	jobs    chan []byte
	quit    chan struct{}
	handle  func(context.Context, []byte)
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc

	mu        sync.Mutex
	processed uint64
	dropped   uint64
}

func NewPool(workers, buffer int, handle func(context.Context, []byte)) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers: workers,
		jobs:    make(chan []byte, buffer),
		quit:    make(chan struct{}),
		handle:  handle,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (p *Pool) Start() {
	logger.Get().Info("starting worker pool", zap.Int("workers", p.workers))
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop lets the workers finish whatever is already queued, then shuts
// them down. Jobs submitted after Stop are dropped.
func (p *Pool) Stop() {
	close(p.quit)
	p.wg.Wait()
	p.cancel()
}

// Submit enqueues a job, dropping it when the queue is full or the
// pool is stopped.
func (p *Pool) Submit(job []byte) {
	select {
	case <-p.quit:
		p.drop()
		return
	default:
	}

	select {
	case p.jobs <- job:
	default:
		p.drop()
	}
}

// Emit satisfies logger.Emitter, letting a service feed its own log
// entries straight into the pool without a broker round-trip.
func (p *Pool) Emit(payload []byte) {
	p.Submit(payload)
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobs:
			p.process(job)
		case <-p.quit:
			// Drain what was queued before shutdown.
			for {
				select {
				case job := <-p.jobs:
					p.process(job)
				default:
					logger.Get().Info("worker stopping", zap.Int("worker_id", id))
					return
				}
			}
		}
	}
}

func (p *Pool) process(job []byte) {
	p.handle(p.ctx, job)
	p.mu.Lock()
	p.processed++
	p.mu.Unlock()
}

func (p *Pool) drop() {
	p.mu.Lock()
	p.dropped++
	p.mu.Unlock()
}

// Processed reports how many jobs completed.
func (p *Pool) Processed() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.processed
}

// Dropped reports how many jobs were discarded.
func (p *Pool) Dropped() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped
}
