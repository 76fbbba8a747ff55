package worker

import (
	"sync"

	"github.com/KNehe/swimmy/internal/metrics"
)

type task func()

// Pool runs queued tasks on a fixed set of goroutines. Mail dispatch goes
// through here so HTTP responses never wait on SMTP.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(n int) *Pool {
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
				metrics.MailQueueDepth.Dec()
			}
		}()
	}
	return p
}

func (p *Pool) Submit(f task) {
	metrics.MailQueueDepth.Inc()
	p.jobs <- f
}

// TrySubmit enqueues without blocking. Returns false when the queue is
// full.
func (p *Pool) TrySubmit(f task) bool {
	select {
	case p.jobs <- f:
		metrics.MailQueueDepth.Inc()
		return true
	default:
		return false
	}
}

func (p *Pool) Stop() { close(p.jobs); p.wg.Wait() }
