package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/appdotbuilder/tele-vid-downloader/internal/repository"
	"github.com/appdotbuilder/tele-vid-downloader/internal/service"

	"github.com/robfig/cron/v3"
)

// Scheduler periodically sweeps pending links and dispatches them into the
// pipeline. The conditional pending→processing claim inside the pipeline makes
// an overlapping sweep lose cleanly, so no cross-link locking is needed here.
type Scheduler struct {
	cron      *cron.Cron
	pipeline  *service.PipelineService
	linkRepo  *repository.VideoLinkRepository
	batchSize int
	interval  int
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewScheduler creates a scheduler sweeping every interval seconds, picking up
// at most batchSize pending links per sweep.
func NewScheduler(pipeline *service.PipelineService, interval, batchSize int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:      cron.New(),
		pipeline:  pipeline,
		linkRepo:  repository.NewVideoLinkRepository(),
		batchSize: batchSize,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start begins the sweep loop
func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("@every %ds", s.interval)
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return fmt.Errorf("failed to schedule pending sweep: %w", err)
	}
	s.cron.Start()
	log.Printf("Scheduler: sweeping pending links every %ds (batch %d)", s.interval, s.batchSize)
	return nil
}

// Stop halts the sweep loop; pipelines already in flight finish on their own
func (s *Scheduler) Stop() {
	s.cancel()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	log.Println("Scheduler stopped")
}

// sweep claims a batch of pending links and runs their pipelines concurrently.
// Each link is an independent unit of work; a lost claim is not an error.
func (s *Scheduler) sweep() {
	links, err := s.linkRepo.GetPending(s.batchSize)
	if err != nil {
		log.Printf("Scheduler: failed to list pending links: %v", err)
		return
	}
	if len(links) == 0 {
		return
	}

	log.Printf("Scheduler: dispatching %d pending links", len(links))
	for _, link := range links {
		id := link.ID
		go func() {
			ctx, cancel := context.WithTimeout(s.ctx, 10*time.Minute)
			defer cancel()
			if _, err := s.pipeline.Process(ctx, id); err != nil {
				log.Printf("Scheduler: pipeline for link %d did not run: %v", id, err)
			}
		}()
	}
}
