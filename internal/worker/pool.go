package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vytor/reviewflash/internal/logger"
)

var (
	ErrQueueFull   = errors.New("worker queue is full")
	ErrPoolStopped = errors.New("worker pool is stopped")
)

type Job interface {
	Run(context.Context) error
	Name() string
}

// Failure describes a job that returned an error.
type Failure struct {
	Job      string
	Err      error
	Duration time.Duration
}

type Pool struct {
	mu       sync.RWMutex
	stopped  bool
	jobs     chan Job
	failures chan Failure
	wg       sync.WaitGroup
	workers  int
	cancel   context.CancelFunc
	log      *logger.Logger
}

func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 32
	}
	log := logger.Default().WithPrefix("worker-pool")
	log.Debug("creating worker pool with %d workers and queue size %d", workers, queueSize)
	return &Pool{
		jobs:     make(chan Job, queueSize),
		failures: make(chan Failure, queueSize),
		workers:  workers,
		log:      log,
	}
}

func (p *Pool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.log.Info("starting worker pool with %d workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			workerLog := p.log.WithField("worker_id", id)
			workerLog.Debug("worker started")

			for {
				select {
				case <-ctx.Done():
					workerLog.Debug("worker shutting down (context cancelled)")
					return
				case job, ok := <-p.jobs:
					if !ok {
						workerLog.Debug("worker shutting down (queue closed)")
						return
					}
					p.run(ctx, workerLog, job)
				}
			}
		}(i + 1)
	}
}

func (p *Pool) run(ctx context.Context, workerLog *logger.Logger, job Job) {
	jobLog := workerLog.WithField("job", job.Name())
	jobLog.Debug("starting job")
	start := time.Now()

	err := job.Run(logger.NewContext(ctx, jobLog))
	elapsed := time.Since(start)
	if err == nil {
		jobLog.Info("job completed in %v", elapsed)
		return
	}

	jobLog.Error("job failed after %v: %v", elapsed, err)
	select {
	case p.failures <- Failure{Job: job.Name(), Err: err, Duration: elapsed}:
	default:
		jobLog.Warn("failure channel full, dropping failure report")
	}
}

// Failures delivers errors returned by jobs. The channel is closed by Stop.
func (p *Pool) Failures() <-chan Failure {
	return p.failures
}

// Stop cancels running workers, waits for them and closes the failure channel.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.log.Info("stopping worker pool")
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	close(p.failures)
	p.log.Info("worker pool stopped")
}

// Drain stops accepting jobs and waits until queued jobs have run.
func (p *Pool) Drain() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	close(p.failures)
	p.log.Info("worker pool drained")
}

// Submit enqueues job without blocking.
func (p *Pool) Submit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrPoolStopped
	}
	select {
	case p.jobs <- job:
		p.log.Debug("submitted job: %s", job.Name())
		return nil
	default:
		p.log.Warn("queue full, rejecting job: %s", job.Name())
		return ErrQueueFull
	}
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}
