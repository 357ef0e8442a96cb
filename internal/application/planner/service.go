// Package planner provides the application layer for the meal-plan
// assignment engine: the constraint filter pipeline, the history
// tracker, the slot assignment loop, the generation job lifecycle and
// single-slot replacement.
package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mealsmith/v2/internal/domain/member"
	"github.com/mealsmith/v2/internal/domain/plan"
	"github.com/mealsmith/v2/internal/domain/recipe"
	"github.com/mealsmith/v2/internal/ports/inbound"
	"github.com/mealsmith/v2/internal/ports/outbound"
	"github.com/mealsmith/v2/pkg/errors"
)

// Config tunes the engine. The two lookback windows are deliberately
// separate named values; their call sites differ and unifying them
// would change behavior.
type Config struct {
	// PoolLimit bounds the candidate batch for multi-day runs
	PoolLimit int
	// ReplacePoolLimit bounds the batch for single-slot replacement
	ReplacePoolLimit int
	// HistoryDays is the dedup lookback for plan runs
	HistoryDays int
	// ChatHistoryDays is the longer anti-repeat window used by the
	// out-of-scope chat path; exposed here so both are configured in
	// one place
	ChatHistoryDays int
	// MinPoolForHistory gates the cost of building recency exclusion
	// sets: below it a multi-day run accepts thinner variety instead
	MinPoolForHistory int
	// BerryTargetRatio is the share of slots favoring berry recipes
	// for members who like them
	BerryTargetRatio float64
}

// DefaultConfig returns the production defaults
func DefaultConfig() Config {
	return Config{
		PoolLimit:         120,
		ReplacePoolLimit:  50,
		HistoryDays:       7,
		ChatHistoryDays:   14,
		MinPoolForHistory: 8,
		BerryTargetRatio:  0.25,
	}
}

// Service implements the planner use cases
type Service struct {
	recipes outbound.RecipeRepository
	plans   outbound.PlanRepository
	jobs    outbound.JobRepository
	members outbound.MemberRepository
	usage   outbound.UsageService
	cache   outbound.CacheRepository
	cfg     Config
	now     func() time.Time
	logger  *zap.Logger
}

// NewService creates a new planner service
func NewService(
	recipes outbound.RecipeRepository,
	plans outbound.PlanRepository,
	jobs outbound.JobRepository,
	members outbound.MemberRepository,
	usage outbound.UsageService,
	cache outbound.CacheRepository,
	cfg Config,
	logger *zap.Logger,
) inbound.PlannerService {
	return &Service{
		recipes: recipes,
		plans:   plans,
		jobs:    jobs,
		members: members,
		usage:   usage,
		cache:   cache,
		cfg:     cfg,
		now:     time.Now,
		logger:  logger.Named("planner-service"),
	}
}

// Start creates a running job for the target and window, or returns
// the existing running job for the same (owner, member, scope)
// unchanged. Idempotent.
func (s *Service) Start(ctx context.Context, cmd inbound.StartCommand) (*inbound.StartResult, error) {
	if err := validateDayKeys(cmd.DayKeys); err != nil {
		return nil, err
	}

	existing, err := s.jobs.FindRunning(ctx, cmd.UserID, cmd.MemberID, cmd.Scope)
	if err != nil {
		return nil, errors.NewDatabaseError("find running job", err)
	}
	if existing != nil {
		s.logger.Info("Reusing running generation job",
			zap.String("job_id", existing.ID.String()),
			zap.String("scope", string(cmd.Scope)),
		)
		return &inbound.StartResult{JobID: existing.ID, Status: existing.Status, Existing: true}, nil
	}

	job := plan.NewJob(cmd.UserID, cmd.MemberID, cmd.Scope, len(cmd.DayKeys))
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, errors.NewDatabaseError("create job", err)
	}

	s.logger.Info("Started generation job",
		zap.String("job_id", job.ID.String()),
		zap.String("scope", string(cmd.Scope)),
		zap.Int("days", len(cmd.DayKeys)),
	)
	return &inbound.StartResult{JobID: job.ID, Status: job.Status}, nil
}

// Run processes every requested day key in one pass for a running job
// owned by the caller, then completes it. Under-fill is not a failure:
// the result's Partial flag reports it.
func (s *Service) Run(ctx context.Context, cmd inbound.RunCommand) (*inbound.RunResult, error) {
	if err := validateDayKeys(cmd.DayKeys); err != nil {
		return nil, err
	}

	job, err := s.jobs.FindByID(ctx, cmd.JobID)
	if err != nil {
		return nil, errors.NewDatabaseError("load job", err)
	}
	if job == nil {
		return nil, errors.NewJobNotFoundError(cmd.JobID.String())
	}
	if !job.OwnedBy(cmd.UserID) {
		return nil, errors.NewForbiddenError("job belongs to another user")
	}
	if job.IsCancelled() {
		return nil, errors.NewJobCancelledError(job.ID.String())
	}
	if job.Status != plan.JobRunning {
		return nil, errors.NewConflictError(fmt.Sprintf("job is %s, not running", job.Status))
	}

	rc, precheckEmpty, err := s.prepareRun(ctx, cmd.UserID, cmd.MemberID, cmd.MemberData, cmd.DayKeys, false)
	if err != nil {
		return nil, err
	}

	total := len(cmd.DayKeys) * plan.SlotsPerDay
	if precheckEmpty {
		// nothing can be assigned for any slot; finish without the
		// per-day loop and report a fully-empty partial result
		if err := job.Complete("pool empty for every meal type"); err == nil {
			if uerr := s.jobs.Update(ctx, job); uerr != nil {
				s.logger.Warn("Failed to persist job completion", zap.Error(uerr))
			}
		}
		return &inbound.RunResult{
			JobID:           job.ID,
			Status:          job.Status,
			TotalSlots:      total,
			EmptySlotsCount: total,
			Partial:         true,
		}, nil
	}

	filled, empty, filledDays := 0, 0, 0
	for i, dayKey := range cmd.DayKeys {
		if err := job.Advance(dayKey, i); err != nil {
			return nil, errors.Wrap(err, "advance job")
		}
		if err := s.jobs.Update(ctx, job); err != nil {
			s.logger.Warn("Failed to persist job progress",
				zap.String("job_id", job.ID.String()),
				zap.Error(err),
			)
		}

		dayFilled, dayEmpty := s.assignDay(ctx, rc, dayKey)
		filled += dayFilled
		empty += dayEmpty
		if dayEmpty == 0 && dayFilled > 0 {
			filledDays++
		}
	}

	note := ""
	if empty > 0 {
		note = fmt.Sprintf("%d of %d slots left empty", empty, total)
	}
	if err := job.Complete(note); err != nil {
		return nil, errors.Wrap(err, "complete job")
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		s.logger.Warn("Failed to persist job completion", zap.Error(err))
	}

	s.recordFills(ctx, cmd.UserID, filled)

	return &inbound.RunResult{
		JobID:            job.ID,
		Status:           job.Status,
		TotalSlots:       total,
		FilledSlotsCount: filled,
		EmptySlotsCount:  empty,
		FilledDaysCount:  filledDays,
		Partial:          empty > 0,
	}, nil
}

// Upgrade runs the identical day/slot pipeline without a job record:
// filled slots stay untouched, empty slots are filled synchronously.
func (s *Service) Upgrade(ctx context.Context, cmd inbound.UpgradeCommand) (*inbound.UpgradeResult, error) {
	if err := validateDayKeys(cmd.DayKeys); err != nil {
		return nil, err
	}

	rc, precheckEmpty, err := s.prepareRun(ctx, cmd.UserID, cmd.MemberID, cmd.MemberData, cmd.DayKeys, true)
	if err != nil {
		return nil, err
	}
	if precheckEmpty {
		return &inbound.UpgradeResult{Partial: true}, nil
	}

	replaced, unchangedTotal, empty := 0, 0, 0
	for _, dayKey := range cmd.DayKeys {
		dayFilled, dayEmpty := s.assignDay(ctx, rc, dayKey)
		replaced += dayFilled
		empty += dayEmpty
		unchangedTotal += rc.takeUnchanged()
	}

	s.recordFills(ctx, cmd.UserID, replaced)

	return &inbound.UpgradeResult{
		ReplacedCount:  replaced,
		UnchangedCount: unchangedTotal,
		Partial:        empty > 0,
	}, nil
}

// Cancel transitions a running job owned by the caller to the error
// state with the cancellation marker. Idempotent: cancelling a
// terminal job changes nothing and does not fail.
func (s *Service) Cancel(ctx context.Context, cmd inbound.CancelCommand) (*inbound.CancelResult, error) {
	job, err := s.jobs.FindByID(ctx, cmd.JobID)
	if err != nil {
		return nil, errors.NewDatabaseError("load job", err)
	}
	if job == nil {
		return nil, errors.NewJobNotFoundError(cmd.JobID.String())
	}
	if !job.OwnedBy(cmd.UserID) {
		return nil, errors.NewForbiddenError("job belongs to another user")
	}

	wasRunning := job.Status == plan.JobRunning
	if err := job.Cancel(); err != nil {
		return nil, errors.Wrap(err, "cancel job")
	}
	if wasRunning {
		if err := s.jobs.Update(ctx, job); err != nil {
			return nil, errors.NewDatabaseError("persist cancellation", err)
		}
		s.logger.Info("Cancelled generation job", zap.String("job_id", job.ID.String()))
	}

	return &inbound.CancelResult{JobID: job.ID, Status: job.Status}, nil
}

// runContext carries the per-request state of one assignment run
type runContext struct {
	userID       uuid.UUID
	memberID     *uuid.UUID
	familyMode   bool
	pipeline     *Pipeline
	pool         []*recipe.Candidate
	hist         *History
	infant       *member.Member
	favorBerries bool
	onlyEmpty    bool
	unchanged    int
}

// takeUnchanged returns and resets the unchanged-slot counter
func (rc *runContext) takeUnchanged() int {
	n := rc.unchanged
	rc.unchanged = 0
	return n
}

// prepareRun resolves constraints, checks the quota precondition,
// fetches the pool and runs the pre-check. A true second return means
// every meal type already has zero survivors and the run can fast-fail
// without any history lookups.
func (s *Service) prepareRun(
	ctx context.Context,
	userID uuid.UUID,
	memberID *uuid.UUID,
	memberData *member.Constraints,
	dayKeys []string,
	onlyEmpty bool,
) (*runContext, bool, error) {
	if err := s.checkQuota(ctx, userID); err != nil {
		return nil, false, err
	}

	constraints, infant, err := s.resolveConstraints(ctx, userID, memberID, memberData)
	if err != nil {
		return nil, false, err
	}
	familyMode := memberID == nil

	pool, err := s.recipes.FetchPool(ctx, outbound.PoolQuery{UserID: userID, MemberID: memberID, Limit: s.cfg.PoolLimit})
	if err != nil {
		return nil, false, errors.NewDatabaseError("fetch recipe pool", err)
	}

	pipeline := NewPipeline(constraints, familyMode)
	if AllEmpty(pipeline.CountsWithoutHistory(pool)) {
		s.logger.Info("Pre-check found empty pool for every meal type",
			zap.String("user_id", userID.String()),
			zap.Int("pool_size", len(pool)),
		)
		return nil, true, nil
	}

	rc := &runContext{
		userID:       userID,
		memberID:     memberID,
		familyMode:   familyMode,
		pipeline:     pipeline,
		pool:         pool,
		hist:         NewHistory(),
		infant:       infant,
		favorBerries: berriesLiked(constraints),
		onlyEmpty:    onlyEmpty,
	}

	// recency exclusion sets are only worth their fetch cost when the
	// pool is deep enough to offer variety anyway
	if len(pool) >= s.cfg.MinPoolForHistory {
		start, err := plan.ParseDayKey(dayKeys[0])
		if err != nil {
			return nil, false, errors.NewValidationError(err.Error())
		}
		lookback := plan.LookbackWindow(start, s.cfg.HistoryDays)
		days, err := s.plans.GetDays(ctx, userID, memberID, lookback)
		if err != nil {
			s.logger.Warn("History lookback failed, continuing without it", zap.Error(err))
		} else {
			rc.hist.SeedFromDays(days)
		}
	}

	return rc, false, nil
}

// assignDay fills the four slots of one day and persists each pick
// with a merge write. Returns filled and empty slot counts; write
// failures are logged and count as empty.
func (s *Service) assignDay(ctx context.Context, rc *runContext, dayKey string) (int, int) {
	existing, err := s.plans.GetDay(ctx, rc.userID, rc.memberID, dayKey)
	if err != nil {
		s.logger.Warn("Failed to load existing day, treating as empty",
			zap.String("day_key", dayKey),
			zap.Error(err),
		)
		existing = nil
	}

	filled, empty := 0, 0
	for _, mt := range plan.MealTypes() {
		if rc.onlyEmpty && existing != nil {
			if slot, ok := existing.Slot(mt); ok && !slot.IsEmpty() {
				// keep the current dish and make sure the rest of the
				// run does not duplicate it
				rc.hist.observeSlot(mt, slot.RecipeID, slot.Title)
				rc.unchanged++
				continue
			}
		}

		pick := s.pickForSlot(ctx, rc, dayKey, mt)
		if pick == nil {
			empty++
			continue
		}

		slot := plan.SlotValue{RecipeID: pick.ID, Title: pick.Title, PlanSource: plan.SourcePool}
		if rc.familyMode {
			slot.Infant = infantSlot(pick, mt, rc.infant, rc.pool)
		}
		slot, err := slot.Normalize()
		if err != nil {
			s.logger.Warn("Pick failed slot normalization", zap.Error(err))
			empty++
			continue
		}

		if err := s.plans.SaveSlot(ctx, rc.userID, rc.memberID, dayKey, mt, slot); err != nil {
			s.logger.Warn("Slot write failed, continuing",
				zap.String("day_key", dayKey),
				zap.String("meal_type", string(mt)),
				zap.Error(err),
			)
			empty++
			continue
		}

		rc.hist.ObservePick(mt, pick)
		filled++
	}
	return filled, empty
}

// pickForSlot consults the injected pick cache, then filters and picks
// deterministically. The default cache never hits; it exists so a
// reintroduced cache is an explicit dependency with an explicit key.
func (s *Service) pickForSlot(ctx context.Context, rc *runContext, dayKey string, mt plan.MealType) *recipe.Candidate {
	if cached := s.cachedPick(ctx, rc, dayKey, mt); cached != nil {
		return cached
	}

	survivors := rc.pipeline.Filter(rc.pool, mt, rc.hist)
	favor := rc.favorBerries && shouldFavorBerries(rc.hist.PickCount(), rc.hist.BerryCount(), s.cfg.BerryTargetRatio)
	pick := pickCandidate(survivors, mt, rc.hist, favor)
	if pick != nil {
		s.storePick(ctx, rc, dayKey, mt, pick)
	}
	return pick
}

func pickCacheKey(userID uuid.UUID, memberID *uuid.UUID, dayKey string, mt plan.MealType) string {
	target := "family"
	if memberID != nil {
		target = memberID.String()
	}
	return fmt.Sprintf("pick:%s:%s:%s:%s", userID, target, dayKey, mt)
}

func (s *Service) cachedPick(ctx context.Context, rc *runContext, dayKey string, mt plan.MealType) *recipe.Candidate {
	val, hit, err := s.cache.Get(ctx, pickCacheKey(rc.userID, rc.memberID, dayKey, mt))
	if err != nil || !hit {
		return nil
	}
	id, err := uuid.Parse(strings.SplitN(val, "|", 2)[0])
	if err != nil {
		return nil
	}
	for _, c := range rc.pool {
		if c.ID == id && !rc.hist.UsedID(id) {
			return c
		}
	}
	return nil
}

func (s *Service) storePick(ctx context.Context, rc *runContext, dayKey string, mt plan.MealType, pick *recipe.Candidate) {
	key := pickCacheKey(rc.userID, rc.memberID, dayKey, mt)
	if err := s.cache.Set(ctx, key, pick.ID.String()+"|"+pick.Title); err != nil {
		s.logger.Debug("Pick cache write failed", zap.Error(err))
	}
}

// resolveConstraints decides which constraint set drives the run:
// caller-supplied member data wins; otherwise a member id resolves one
// member, and a nil member id aggregates the whole household.
func (s *Service) resolveConstraints(
	ctx context.Context,
	userID uuid.UUID,
	memberID *uuid.UUID,
	memberData *member.Constraints,
) (member.Constraints, *member.Member, error) {
	if memberID == nil {
		households, err := s.members.ListByUser(ctx, userID)
		if err != nil {
			return member.Constraints{}, nil, errors.NewDatabaseError("list members", err)
		}
		infant := member.YoungestInfant(households)
		if memberData != nil {
			md := *memberData
			md.Type = member.TypeFamily
			return md, infant, nil
		}
		return member.FamilyConstraints(households), infant, nil
	}

	if memberData != nil {
		return *memberData, nil, nil
	}

	m, err := s.members.FindByID(ctx, *memberID)
	if err != nil {
		return member.Constraints{}, nil, errors.NewDatabaseError("load member", err)
	}
	if m == nil {
		return member.Constraints{}, nil, errors.NewMemberNotFoundError(memberID.String())
	}
	return m.ToConstraints(), nil, nil
}

// checkQuota enforces the free-tier daily fill quota before any
// filtering begins
func (s *Service) checkQuota(ctx context.Context, userID uuid.UUID) error {
	today := plan.FormatDayKey(s.now())
	usage, err := s.usage.DailyUsage(ctx, userID, today)
	if err != nil {
		return errors.NewExternalServiceError("usage service", err)
	}
	if !usage.Unlimited && usage.Used >= usage.Limit {
		return errors.NewQuotaExceededError("daily plan fills", usage.Limit, usage.Used)
	}
	return nil
}

// recordFills reports consumed quota; failures are logged, not fatal
func (s *Service) recordFills(ctx context.Context, userID uuid.UUID, count int) {
	if count == 0 {
		return
	}
	today := plan.FormatDayKey(s.now())
	if err := s.usage.RecordFills(ctx, userID, today, count); err != nil {
		s.logger.Warn("Failed to record quota usage", zap.Error(err))
	}
}

func validateDayKeys(keys []string) error {
	if len(keys) == 0 {
		return errors.NewValidationError("at least one day key is required")
	}
	for _, k := range keys {
		if _, err := plan.ParseDayKey(k); err != nil {
			return errors.NewValidationError(fmt.Sprintf("invalid day key %q", k))
		}
	}
	return nil
}
