package services

import (
	"context"
	"errors"
	"time"

	"github.com/socialboard/socialboard/internal/common"
	"github.com/socialboard/socialboard/internal/events"
	"github.com/socialboard/socialboard/internal/logging"
)

// Scheduler periodically dispatches due scheduled posts: each one is marked
// posted and a post.published event is emitted per target platform.
type Scheduler struct {
	posts     *PostService
	publisher events.Publisher
	logger    logging.Logger
	interval  time.Duration
}

// NewScheduler constructs a Scheduler. publisher may be nil.
func NewScheduler(posts *PostService, publisher events.Publisher, logger logging.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		posts:     posts,
		publisher: publisher,
		logger:    logger.With("service", "scheduler"),
		interval:  interval,
	}
}

// Run ticks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.DispatchDue(ctx); err != nil {
				s.logger.Error(ctx, "dispatch due posts failed", "error", err)
			}
		}
	}
}

// DispatchDue runs one scheduler pass. A post already taken by a concurrent
// pass is skipped, other failures abort the pass.
func (s *Scheduler) DispatchDue(ctx context.Context) error {
	due, err := s.posts.SelectDue(ctx, time.Now())
	if err != nil {
		return err
	}

	for _, post := range due {
		if err := s.posts.MarkPosted(ctx, post.ID); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				continue
			}
			return err
		}
		s.logger.Info(ctx, "post dispatched", "post_id", post.ID, "platforms", post.Platforms)

		if s.publisher == nil {
			continue
		}
		for _, platform := range post.Platforms {
			env := events.NewEnvelope("socialboard.server", events.PostPublished{
				PostID: post.ID, Platform: platform, CreatedBy: post.CreatedBy,
			})
			if err := s.publisher.Publish(ctx, events.KeyPostPublished, env); err != nil {
				s.logger.Warn(ctx, "publish post.published failed", "post_id", post.ID, "error", err)
			}
		}
	}
	return nil
}
