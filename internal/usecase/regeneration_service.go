package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/league-scheduler/internal/domain/season"
	"github.com/riskibarqy/league-scheduler/internal/platform/logging"
)

// JobQueue is the deferred-execution port. Enqueue schedules an HTTP
// callback to the given internal path after the delay; the
// deduplication id collapses duplicate submissions.
type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

type RegenerateAllInput struct {
	MaxWorkers int
	// Deferred enqueues one regeneration job per season instead of
	// running the pipeline inline.
	Deferred bool
}

type RegenerateAllResult struct {
	Mode         string                `json:"mode"`
	SeasonCount  int                   `json:"season_count"`
	WorkerCount  int                   `json:"worker_count"`
	SuccessCount int                   `json:"success_count"`
	SkippedCount int                   `json:"skipped_count"`
	FailedCount  int                   `json:"failed_count"`
	QueuedCount  int                   `json:"queued_count"`
	Seasons      []RegenerateSeasonRow `json:"seasons"`
}

type RegenerateSeasonRow struct {
	SeasonID   string `json:"season_id"`
	Status     string `json:"status"`
	GameCount  int    `json:"game_count,omitempty"`
	DurationMs int64  `json:"duration_ms,omitempty"`
	Message    string `json:"message,omitempty"`
}

const (
	regenStatusSuccess = "success"
	regenStatusSkipped = "skipped"
	regenStatusFailed  = "failed"
	regenStatusQueued  = "queued"

	regenerateJobPath = "/v1/internal/jobs/regenerate"

	defaultRegenWorkers = 4
	maxRegenWorkers     = 16
)

// RegenerationService fans schedule regeneration out over every season
// holding a generated schedule. Inline mode runs the pipeline on a worker
// pool; deferred mode hands one job per season to the queue and lets the
// callback endpoint do the work.
type RegenerationService struct {
	seasonRepo     season.Repository
	generator      ScheduleRegenerator
	queue          JobQueue
	defaultWorkers int
	logger         *logging.Logger
}

func NewRegenerationService(
	seasonRepo season.Repository,
	generator ScheduleRegenerator,
	queue JobQueue,
	defaultWorkers int,
	logger *logging.Logger,
) *RegenerationService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if defaultWorkers < 1 {
		defaultWorkers = defaultRegenWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &RegenerationService{
		seasonRepo:     seasonRepo,
		generator:      generator,
		queue:          queue,
		defaultWorkers: defaultWorkers,
		logger:         logger,
	}
}

func (s *RegenerationService) RegenerateAll(ctx context.Context, input RegenerateAllInput) (RegenerateAllResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RegenerationService.RegenerateAll")
	defer span.End()

	targets, err := s.eligibleSeasons(ctx)
	if err != nil {
		return RegenerateAllResult{}, err
	}

	if input.Deferred {
		return s.enqueueAll(ctx, targets)
	}
	maxWorkers := input.MaxWorkers
	if maxWorkers < 1 {
		maxWorkers = s.defaultWorkers
	}
	return s.runInline(ctx, targets, maxWorkers)
}

func (s *RegenerationService) eligibleSeasons(ctx context.Context) ([]season.Season, error) {
	seasons, err := s.seasonRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	out := make([]season.Season, 0, len(seasons))
	for _, item := range seasons {
		if item.Archived {
			continue
		}
		state := season.NormalizeState(item.State)
		if state != season.StateGenerated && state != season.StateActive {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *RegenerationService) enqueueAll(ctx context.Context, targets []season.Season) (RegenerateAllResult, error) {
	result := RegenerateAllResult{
		Mode:        "deferred",
		SeasonCount: len(targets),
		Seasons:     make([]RegenerateSeasonRow, 0, len(targets)),
	}

	for _, target := range targets {
		payload := map[string]string{"season_id": target.ID}
		err := s.queue.Enqueue(ctx, regenerateJobPath, payload, 0, "regenerate-"+target.ID)
		row := RegenerateSeasonRow{SeasonID: target.ID, Status: regenStatusQueued}
		if err != nil {
			row.Status = regenStatusFailed
			row.Message = err.Error()
			result.FailedCount++
		} else {
			result.QueuedCount++
		}
		result.Seasons = append(result.Seasons, row)
	}

	return result, nil
}

func (s *RegenerationService) runInline(ctx context.Context, targets []season.Season, maxWorkers int) (RegenerateAllResult, error) {
	workerCount := normalizeRegenWorkerCount(maxWorkers, len(targets))
	result := RegenerateAllResult{
		Mode:        "inline",
		SeasonCount: len(targets),
		WorkerCount: workerCount,
		Seasons:     make([]RegenerateSeasonRow, 0, len(targets)),
	}
	if len(targets) == 0 {
		return result, nil
	}
	if s.generator == nil {
		return RegenerateAllResult{}, fmt.Errorf("%w: schedule regeneration is not configured", ErrDependencyUnavailable)
	}

	rows := make(chan RegenerateSeasonRow, len(targets))

	var successCount atomic.Int32
	var skippedCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RegenerateAllResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, target := range targets {
		target := target
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := RegenerateSeasonRow{SeasonID: target.ID}

			genResult, err := s.generator.GenerateSchedule(ctx, target.ID)
			row.DurationMs = time.Since(start).Milliseconds()
			switch {
			case err == nil:
				row.Status = regenStatusSuccess
				row.GameCount = genResult.GameCount
				successCount.Add(1)
			case errors.Is(err, ErrGenerationInProgress):
				row.Status = regenStatusSkipped
				row.Message = err.Error()
				skippedCount.Add(1)
			default:
				row.Status = regenStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "bulk regeneration failed for season",
					"season_id", target.ID, "error", err)
			}

			rows <- row
		}); err != nil {
			workers.Done()
			return RegenerateAllResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Seasons = append(result.Seasons, row)
	}
	sort.SliceStable(result.Seasons, func(i, j int) bool {
		return result.Seasons[i].SeasonID < result.Seasons[j].SeasonID
	})

	result.SuccessCount = int(successCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}

func normalizeRegenWorkerCount(requested, taskCount int) int {
	count := requested
	if count < 1 {
		count = defaultRegenWorkers
	}
	if count > maxRegenWorkers {
		count = maxRegenWorkers
	}
	if taskCount > 0 && count > taskCount {
		count = taskCount
	}
	if count < 1 {
		count = 1
	}
	return count
}
