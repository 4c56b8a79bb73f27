// Package worker provides the background pool that persists session
// activity without blocking the interactive flow.
package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Mukul7Raj/MoodTune/internal/core/domain"
	"github.com/Mukul7Raj/MoodTune/internal/core/ports"
	"github.com/Mukul7Raj/MoodTune/internal/core/services"
)

const jobTimeout = 5 * time.Second

// JobType identifies the kind of activity a job records.
type JobType int

const (
	JobEmotion JobType = iota
	JobHistory
)

// Job is one unit of activity to persist.
type Job struct {
	Type       JobType
	Emotion    string
	Generation uint64
	Track      domain.Track
}

// Pool runs a fixed set of workers draining the job queue into the
// activity store. Submission never blocks; a full queue drops the job.
type Pool struct {
	store ports.ActivityStore
	jobs  chan Job
	wg    sync.WaitGroup
}

// compile-time interface assertion
var _ services.ActivitySink = (*Pool)(nil)

// NewPool constructs a pool with the given queue capacity.
func NewPool(store ports.ActivityStore, queueSize int) *Pool {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Pool{
		store: store,
		jobs:  make(chan Job, queueSize),
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers <= 0 {
		workers = 2
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit enqueues a job without blocking. Jobs arriving while the
// queue is full are dropped; activity records are advisory.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		log.Printf("WARN worker: queue full, dropping job type=%d", job.Type)
	}
}

// RecordEmotion queues an emotion log entry.
func (p *Pool) RecordEmotion(emotion string, generation uint64) {
	p.Submit(Job{Type: JobEmotion, Emotion: emotion, Generation: generation})
}

// RecordPlay queues a song history entry.
func (p *Pool) RecordPlay(t domain.Track) {
	p.Submit(Job{Type: JobHistory, Track: t})
}

func (p *Pool) run() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.process(job)
	}
}

func (p *Pool) process(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	var err error
	switch job.Type {
	case JobEmotion:
		err = p.store.LogEmotion(ctx, job.Emotion, job.Generation)
	case JobHistory:
		err = p.store.AddHistory(ctx, job.Track)
	default:
		log.Printf("WARN worker: unknown job type %d", job.Type)
		return
	}
	if err != nil {
		log.Printf("WARN worker: persist activity: %v", err)
	}
}
