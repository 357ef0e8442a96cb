package planner

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/mealsmith/v2/internal/domain/member"
	"github.com/mealsmith/v2/internal/domain/plan"
	"github.com/mealsmith/v2/internal/domain/recipe"
	"github.com/mealsmith/v2/internal/ports/inbound"
	"github.com/mealsmith/v2/internal/ports/outbound"
	"github.com/mealsmith/v2/pkg/errors"
	"github.com/mealsmith/v2/test/testutils"
)

// In-memory fakes for the outbound ports. They behave like the real
// adapters (merge writes, running-job lookup) so the lifecycle tests
// exercise full flows instead of canned call scripts.

type fakeRecipeRepo struct {
	pool       []*recipe.Candidate
	fetchCalls int
}

func (f *fakeRecipeRepo) FetchPool(_ context.Context, q outbound.PoolQuery) ([]*recipe.Candidate, error) {
	f.fetchCalls++
	if q.Limit > 0 && len(f.pool) > q.Limit {
		return f.pool[:q.Limit], nil
	}
	return f.pool, nil
}

func (f *fakeRecipeRepo) FindByID(_ context.Context, id uuid.UUID) (*recipe.Candidate, error) {
	for _, c := range f.pool {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

type fakePlanRepo struct {
	days         map[string]*plan.Day
	getDaysCalls int
	saveCalls    int
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{days: make(map[string]*plan.Day)}
}

func planKey(userID uuid.UUID, memberID *uuid.UUID, dayKey string) string {
	target := "family"
	if memberID != nil {
		target = memberID.String()
	}
	return fmt.Sprintf("%s/%s/%s", userID, target, dayKey)
}

func (f *fakePlanRepo) GetDay(_ context.Context, userID uuid.UUID, memberID *uuid.UUID, dayKey string) (*plan.Day, error) {
	return f.days[planKey(userID, memberID, dayKey)], nil
}

func (f *fakePlanRepo) GetDays(_ context.Context, userID uuid.UUID, memberID *uuid.UUID, dayKeys []string) ([]*plan.Day, error) {
	f.getDaysCalls++
	var out []*plan.Day
	for _, k := range dayKeys {
		if d := f.days[planKey(userID, memberID, k)]; d != nil {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) SaveSlot(_ context.Context, userID uuid.UUID, memberID *uuid.UUID, dayKey string, mt plan.MealType, slot plan.SlotValue) error {
	f.saveCalls++
	key := planKey(userID, memberID, dayKey)
	day := f.days[key]
	if day == nil {
		day = &plan.Day{UserID: userID, MemberID: memberID, DayKey: dayKey}
	}
	day.Meals = plan.MergeSlot(day.Meals, mt, slot)
	f.days[key] = day
	return nil
}

type fakeJobRepo struct {
	jobs    map[uuid.UUID]*plan.Job
	created int
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[uuid.UUID]*plan.Job)}
}

func (f *fakeJobRepo) Create(_ context.Context, job *plan.Job) error {
	f.created++
	cp := *job
	f.jobs[job.ID] = &cp
	return nil
}

func (f *fakeJobRepo) Update(_ context.Context, job *plan.Job) error {
	cp := *job
	f.jobs[job.ID] = &cp
	return nil
}

func (f *fakeJobRepo) FindByID(_ context.Context, id uuid.UUID) (*plan.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (f *fakeJobRepo) FindRunning(_ context.Context, userID uuid.UUID, memberID *uuid.UUID, scope plan.JobScope) (*plan.Job, error) {
	for _, j := range f.jobs {
		if j.Status != plan.JobRunning || j.UserID != userID || j.Scope != scope {
			continue
		}
		if (j.MemberID == nil) != (memberID == nil) {
			continue
		}
		if memberID != nil && *j.MemberID != *memberID {
			continue
		}
		cp := *j
		return &cp, nil
	}
	return nil, nil
}

type fakeMemberRepo struct {
	members []member.Member
}

func (f *fakeMemberRepo) FindByID(_ context.Context, id uuid.UUID) (*member.Member, error) {
	for i := range f.members {
		if f.members[i].ID == id {
			return &f.members[i], nil
		}
	}
	return nil, nil
}

func (f *fakeMemberRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]member.Member, error) {
	var out []member.Member
	for _, m := range f.members {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeUsageService struct {
	usage    outbound.DailyUsage
	recorded int
}

func (f *fakeUsageService) DailyUsage(_ context.Context, _ uuid.UUID, _ string) (outbound.DailyUsage, error) {
	return f.usage, nil
}

func (f *fakeUsageService) RecordFills(_ context.Context, _ uuid.UUID, _ string, count int) error {
	f.recorded += count
	return nil
}

type fakeCache struct {
	values map[string]string
	sets   int
}

func (f *fakeCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeCache) Set(_ context.Context, _, _ string) error {
	f.sets++
	return nil
}

type ServiceTestSuite struct {
	suite.Suite
	recipes *fakeRecipeRepo
	plans   *fakePlanRepo
	jobs    *fakeJobRepo
	members *fakeMemberRepo
	usage   *fakeUsageService
	cache   *fakeCache
	service inbound.PlannerService
	userID  uuid.UUID
	ctx     context.Context
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.recipes = &fakeRecipeRepo{}
	suite.plans = newFakePlanRepo()
	suite.jobs = newFakeJobRepo()
	suite.members = &fakeMemberRepo{}
	suite.usage = &fakeUsageService{usage: outbound.DailyUsage{Unlimited: true}}
	suite.cache = &fakeCache{}
	suite.service = NewService(
		suite.recipes,
		suite.plans,
		suite.jobs,
		suite.members,
		suite.usage,
		suite.cache,
		DefaultConfig(),
		zaptest.NewLogger(suite.T()),
	)
	suite.userID = uuid.New()
	suite.ctx = context.Background()
}

// weekPool builds n distinct candidates per meal type
func weekPool(perMeal int) []*recipe.Candidate {
	return testutils.WeekPool(perMeal)
}

func adultData() *member.Constraints {
	return &member.Constraints{Type: member.TypeAdult}
}

func (suite *ServiceTestSuite) TestStart() {
	suite.Run("NewTarget_ShouldCreateRunningJob", func() {
		// Act
		res, err := suite.service.Start(suite.ctx, inbound.StartCommand{
			UserID:  suite.userID,
			Scope:   plan.ScopeWeek,
			DayKeys: []string{"2026-08-31", "2026-09-01"},
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), plan.JobRunning, res.Status)
		assert.False(suite.T(), res.Existing)
		assert.Equal(suite.T(), 1, suite.jobs.created)
	})

	suite.Run("SecondStart_ShouldReturnExistingJob", func() {
		cmd := inbound.StartCommand{UserID: suite.userID, Scope: plan.ScopeWeek, DayKeys: []string{"2026-08-31"}}
		first, err := suite.service.Start(suite.ctx, cmd)
		require.NoError(suite.T(), err)

		second, err := suite.service.Start(suite.ctx, cmd)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), first.JobID, second.JobID)
		assert.True(suite.T(), second.Existing)
		assert.Equal(suite.T(), 1, suite.jobs.created, "no duplicate job rows")
	})

	suite.Run("DifferentScope_ShouldGetOwnJob", func() {
		week, err := suite.service.Start(suite.ctx, inbound.StartCommand{UserID: suite.userID, Scope: plan.ScopeWeek, DayKeys: []string{"2026-08-31"}})
		require.NoError(suite.T(), err)

		day, err := suite.service.Start(suite.ctx, inbound.StartCommand{UserID: suite.userID, Scope: plan.ScopeDay, DayKeys: []string{"2026-08-31"}})

		require.NoError(suite.T(), err)
		assert.NotEqual(suite.T(), week.JobID, day.JobID)
	})

	suite.Run("MalformedDayKey_ShouldBeRejected", func() {
		_, err := suite.service.Start(suite.ctx, inbound.StartCommand{UserID: suite.userID, Scope: plan.ScopeDay, DayKeys: []string{"31.08.2026"}})

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeValidationFailed, errors.GetCode(err))
	})
}

func (suite *ServiceTestSuite) startJob(scope plan.JobScope, dayKeys []string) uuid.UUID {
	res, err := suite.service.Start(suite.ctx, inbound.StartCommand{UserID: suite.userID, Scope: scope, DayKeys: dayKeys})
	require.NoError(suite.T(), err)
	return res.JobID
}

func (suite *ServiceTestSuite) TestRun() {
	week := []string{"2026-08-31", "2026-09-01"}

	suite.Run("FullPool_ShouldFillEverySlotWithoutRepeats", func() {
		// Arrange
		suite.recipes.pool = weekPool(3)
		jobID := suite.startJob(plan.ScopeWeek, week)

		// Act
		res, err := suite.service.Run(suite.ctx, inbound.RunCommand{
			UserID: suite.userID, JobID: jobID, MemberData: adultData(), DayKeys: week,
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), plan.JobDone, res.Status)
		assert.Equal(suite.T(), 8, res.TotalSlots)
		assert.Equal(suite.T(), 8, res.FilledSlotsCount)
		assert.Zero(suite.T(), res.EmptySlotsCount)
		assert.Equal(suite.T(), 2, res.FilledDaysCount)
		assert.False(suite.T(), res.Partial)

		seen := make(map[uuid.UUID]bool)
		for _, dayKey := range week {
			day, _ := suite.plans.GetDay(suite.ctx, suite.userID, nil, dayKey)
			require.NotNil(suite.T(), day)
			for _, mt := range plan.MealTypes() {
				slot, ok := day.Slot(mt)
				require.True(suite.T(), ok, "slot %s of %s filled", mt, dayKey)
				assert.False(suite.T(), seen[slot.RecipeID], "recipe repeated across the window")
				seen[slot.RecipeID] = true
			}
		}

		stored, err := suite.jobs.FindByID(suite.ctx, jobID)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), plan.JobDone, stored.Status)
		assert.Equal(suite.T(), stored.ProgressTotal, stored.ProgressDone)
		assert.Equal(suite.T(), 8, suite.usage.recorded)
	})

	suite.Run("ThinPool_ShouldCompleteAsPartial", func() {
		// no snack candidates at all
		suite.recipes.pool = []*recipe.Candidate{
			poolRecipe("Oatmeal", plan.MealBreakfast),
			poolRecipe("Minestrone", plan.MealLunch),
			poolRecipe("Beef stew", plan.MealDinner),
		}
		jobID := suite.startJob(plan.ScopeDay, week[:1])

		res, err := suite.service.Run(suite.ctx, inbound.RunCommand{
			UserID: suite.userID, JobID: jobID, MemberData: adultData(), DayKeys: week[:1],
		})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), plan.JobDone, res.Status, "under-fill is not a failure")
		assert.Equal(suite.T(), 3, res.FilledSlotsCount)
		assert.Equal(suite.T(), 1, res.EmptySlotsCount)
		assert.Zero(suite.T(), res.FilledDaysCount)
		assert.True(suite.T(), res.Partial)
	})

	suite.Run("PrecheckEmptyPool_ShouldFastFailWithoutWrites", func() {
		suite.recipes.pool = nil
		savesBefore := suite.plans.saveCalls
		lookupsBefore := suite.plans.getDaysCalls
		jobID := suite.startJob(plan.ScopeWeek, week)

		res, err := suite.service.Run(suite.ctx, inbound.RunCommand{
			UserID: suite.userID, JobID: jobID, MemberData: adultData(), DayKeys: week,
		})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), plan.JobDone, res.Status)
		assert.Equal(suite.T(), res.TotalSlots, res.EmptySlotsCount)
		assert.True(suite.T(), res.Partial)
		assert.Equal(suite.T(), savesBefore, suite.plans.saveCalls)
		assert.Equal(suite.T(), lookupsBefore, suite.plans.getDaysCalls, "no history lookups on the fast path")
	})

	suite.Run("CancelledJob_ShouldBeRefused", func() {
		suite.recipes.pool = weekPool(2)
		jobID := suite.startJob(plan.ScopeDay, week[:1])
		_, err := suite.service.Cancel(suite.ctx, inbound.CancelCommand{UserID: suite.userID, JobID: jobID})
		require.NoError(suite.T(), err)
		savesBefore := suite.plans.saveCalls

		_, err = suite.service.Run(suite.ctx, inbound.RunCommand{
			UserID: suite.userID, JobID: jobID, MemberData: adultData(), DayKeys: week[:1],
		})

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeJobCancelled, errors.GetCode(err))
		assert.Equal(suite.T(), savesBefore, suite.plans.saveCalls)
	})

	suite.Run("ForeignJob_ShouldBeForbidden", func() {
		suite.recipes.pool = weekPool(2)
		jobID := suite.startJob(plan.ScopeDay, week[:1])

		_, err := suite.service.Run(suite.ctx, inbound.RunCommand{
			UserID: uuid.New(), JobID: jobID, MemberData: adultData(), DayKeys: week[:1],
		})

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeForbidden, errors.GetCode(err))
	})

	suite.Run("UnknownJob_ShouldBeNotFound", func() {
		_, err := suite.service.Run(suite.ctx, inbound.RunCommand{
			UserID: suite.userID, JobID: uuid.New(), MemberData: adultData(), DayKeys: week[:1],
		})

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeJobNotFound, errors.GetCode(err))
	})

	suite.Run("QuotaExhausted_ShouldRejectBeforeFetchingPool", func() {
		suite.usage.usage = outbound.DailyUsage{Limit: 10, Used: 10}
		suite.recipes.pool = weekPool(2)
		fetchesBefore := suite.recipes.fetchCalls
		jobID := suite.startJob(plan.ScopeDay, week[:1])

		_, err := suite.service.Run(suite.ctx, inbound.RunCommand{
			UserID: suite.userID, JobID: jobID, MemberData: adultData(), DayKeys: week[:1],
		})

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeQuotaExceeded, errors.GetCode(err))
		assert.Equal(suite.T(), fetchesBefore, suite.recipes.fetchCalls)
	})

	suite.Run("FamilyTarget_ShouldAttachInfantAdaptation", func() {
		suite.usage.usage = outbound.DailyUsage{Unlimited: true}
		infantAge := 8
		suite.members.members = []member.Member{
			{ID: uuid.New(), UserID: suite.userID, Name: "Dana", Type: member.TypeAdult},
			{ID: uuid.New(), UserID: suite.userID, Name: "Ira", Type: member.TypeChild, AgeMonths: &infantAge},
		}
		suite.recipes.pool = weekPool(2)
		jobID := suite.startJob(plan.ScopeDay, week[:1])

		res, err := suite.service.Run(suite.ctx, inbound.RunCommand{
			UserID: suite.userID, JobID: jobID, DayKeys: week[:1],
		})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 4, res.FilledSlotsCount)
		day, _ := suite.plans.GetDay(suite.ctx, suite.userID, nil, week[0])
		require.NotNil(suite.T(), day)
		dinner, ok := day.Slot(plan.MealDinner)
		require.True(suite.T(), ok)
		require.NotNil(suite.T(), dinner.Infant)
		assert.Equal(suite.T(), suite.members.members[1].ID, dinner.Infant.MemberID)
	})
}

func (suite *ServiceTestSuite) TestUpgrade() {
	day := "2026-08-31"

	suite.Run("FilledSlotsStay_EmptySlotsGetFilled", func() {
		// Arrange: breakfast already set by hand
		held := poolRecipe("Oatmeal with pear", plan.MealBreakfast)
		require.NoError(suite.T(), suite.plans.SaveSlot(suite.ctx, suite.userID, nil, day, plan.MealBreakfast,
			plan.SlotValue{RecipeID: held.ID, Title: held.Title, PlanSource: plan.SourceAI}))
		suite.recipes.pool = weekPool(2)

		// Act
		res, err := suite.service.Upgrade(suite.ctx, inbound.UpgradeCommand{
			UserID: suite.userID, MemberData: adultData(), DayKeys: []string{day},
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 3, res.ReplacedCount)
		assert.Equal(suite.T(), 1, res.UnchangedCount)
		assert.False(suite.T(), res.Partial)

		stored, _ := suite.plans.GetDay(suite.ctx, suite.userID, nil, day)
		breakfast, ok := stored.Slot(plan.MealBreakfast)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), held.ID, breakfast.RecipeID, "filled slot untouched")
		assert.Equal(suite.T(), plan.SourceAI, breakfast.PlanSource)
	})

	suite.Run("HeldSlot_ShouldStillBlockDuplicates", func() {
		held := poolRecipe("Lunch dish 0", plan.MealLunch)
		require.NoError(suite.T(), suite.plans.SaveSlot(suite.ctx, suite.userID, nil, day, plan.MealLunch,
			plan.SlotValue{RecipeID: held.ID, Title: held.Title}))
		// the pool contains a same-titled lunch recipe under a new id
		suite.recipes.pool = weekPool(2)

		_, err := suite.service.Upgrade(suite.ctx, inbound.UpgradeCommand{
			UserID: suite.userID, MemberData: adultData(), DayKeys: []string{day, "2026-09-01"},
		})

		require.NoError(suite.T(), err)
		next, _ := suite.plans.GetDay(suite.ctx, suite.userID, nil, "2026-09-01")
		require.NotNil(suite.T(), next)
		lunch, ok := next.Slot(plan.MealLunch)
		require.True(suite.T(), ok)
		assert.NotEqual(suite.T(), recipe.NormalizeTitleKey(held.Title), recipe.NormalizeTitleKey(lunch.Title))
	})
}

func (suite *ServiceTestSuite) TestCancel() {
	suite.Run("RunningJob_ShouldLandInErrorWithMarker", func() {
		jobID := suite.startJob(plan.ScopeWeek, []string{"2026-08-31"})

		res, err := suite.service.Cancel(suite.ctx, inbound.CancelCommand{UserID: suite.userID, JobID: jobID})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), plan.JobError, res.Status)
		stored, _ := suite.jobs.FindByID(suite.ctx, jobID)
		assert.Equal(suite.T(), plan.CancelMarker, stored.ErrorText)
	})

	suite.Run("SecondCancel_ShouldBeIdempotent", func() {
		jobID := suite.startJob(plan.ScopeWeek, []string{"2026-08-31"})
		_, err := suite.service.Cancel(suite.ctx, inbound.CancelCommand{UserID: suite.userID, JobID: jobID})
		require.NoError(suite.T(), err)

		res, err := suite.service.Cancel(suite.ctx, inbound.CancelCommand{UserID: suite.userID, JobID: jobID})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), plan.JobError, res.Status)
	})

	suite.Run("DoneJob_ShouldStayDone", func() {
		suite.recipes.pool = weekPool(2)
		dayKeys := []string{"2026-08-31"}
		jobID := suite.startJob(plan.ScopeDay, dayKeys)
		_, err := suite.service.Run(suite.ctx, inbound.RunCommand{
			UserID: suite.userID, JobID: jobID, MemberData: adultData(), DayKeys: dayKeys,
		})
		require.NoError(suite.T(), err)

		res, err := suite.service.Cancel(suite.ctx, inbound.CancelCommand{UserID: suite.userID, JobID: jobID})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), plan.JobDone, res.Status)
	})

	suite.Run("ForeignJob_ShouldBeForbidden", func() {
		jobID := suite.startJob(plan.ScopeWeek, []string{"2026-08-31"})

		_, err := suite.service.Cancel(suite.ctx, inbound.CancelCommand{UserID: uuid.New(), JobID: jobID})

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeForbidden, errors.GetCode(err))
	})
}

func (suite *ServiceTestSuite) TestReplaceSlot() {
	day := "2026-08-31"

	suite.Run("ShouldPickDifferentDishAndSave", func() {
		// Arrange
		current := poolRecipe("Minestrone", plan.MealLunch)
		other := poolRecipe("Lentil soup", plan.MealLunch)
		suite.recipes.pool = []*recipe.Candidate{current, other}
		require.NoError(suite.T(), suite.plans.SaveSlot(suite.ctx, suite.userID, nil, day, plan.MealLunch,
			plan.SlotValue{RecipeID: current.ID, Title: current.Title}))

		// Act
		res, err := suite.service.ReplaceSlot(suite.ctx, inbound.ReplaceSlotCommand{
			UserID: suite.userID, MemberData: adultData(), DayKey: day, MealType: plan.MealLunch,
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), inbound.ReasonPool, res.Reason)
		require.NotNil(suite.T(), res.NewRecipeID)
		assert.Equal(suite.T(), other.ID, *res.NewRecipeID, "current occupant never comes back")

		stored, _ := suite.plans.GetDay(suite.ctx, suite.userID, nil, day)
		lunch, ok := stored.Slot(plan.MealLunch)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), other.ID, lunch.RecipeID)
		assert.Equal(suite.T(), 1, suite.usage.recorded)
	})

	suite.Run("CallerExclusions_ShouldBeHonored", func() {
		a := poolRecipe("Minestrone", plan.MealLunch)
		b := poolRecipe("Lentil soup", plan.MealLunch)
		c := poolRecipe("Chicken noodle soup", plan.MealLunch)
		suite.recipes.pool = []*recipe.Candidate{a, b, c}

		res, err := suite.service.ReplaceSlot(suite.ctx, inbound.ReplaceSlotCommand{
			UserID: suite.userID, MemberData: adultData(), DayKey: day, MealType: plan.MealLunch,
			ExcludeRecipeIDs: []uuid.UUID{a.ID},
			ExcludeTitleKeys: []string{"Lentil Soup"},
		})

		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), res.NewRecipeID)
		assert.Equal(suite.T(), c.ID, *res.NewRecipeID)
	})

	suite.Run("ExhaustedPool_ShouldBeTaggedOutcomeNotError", func() {
		only := poolRecipe("Minestrone", plan.MealLunch)
		suite.recipes.pool = []*recipe.Candidate{only}
		require.NoError(suite.T(), suite.plans.SaveSlot(suite.ctx, suite.userID, nil, day, plan.MealLunch,
			plan.SlotValue{RecipeID: only.ID, Title: only.Title}))
		savesBefore := suite.plans.saveCalls

		res, err := suite.service.ReplaceSlot(suite.ctx, inbound.ReplaceSlotCommand{
			UserID: suite.userID, MemberData: adultData(), DayKey: day, MealType: plan.MealLunch,
		})

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), inbound.ReasonPoolExhausted, res.Reason)
		assert.Nil(suite.T(), res.NewRecipeID)
		assert.Equal(suite.T(), savesBefore, suite.plans.saveCalls, "nothing written on exhaustion")
	})

	suite.Run("RecentHistory_ShouldBlockRepeats", func() {
		eaten := poolRecipe("Lentil soup", plan.MealLunch)
		fresh := poolRecipe("Chicken noodle soup", plan.MealLunch)
		suite.recipes.pool = []*recipe.Candidate{eaten, fresh}
		// eaten three days ago, inside the lookback window
		require.NoError(suite.T(), suite.plans.SaveSlot(suite.ctx, suite.userID, nil, "2026-08-28", plan.MealLunch,
			plan.SlotValue{RecipeID: eaten.ID, Title: eaten.Title}))

		res, err := suite.service.ReplaceSlot(suite.ctx, inbound.ReplaceSlotCommand{
			UserID: suite.userID, MemberData: adultData(), DayKey: day, MealType: plan.MealLunch,
		})

		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), res.NewRecipeID)
		assert.Equal(suite.T(), fresh.ID, *res.NewRecipeID)
	})

	suite.Run("UnknownMealType_ShouldBeRejected", func() {
		_, err := suite.service.ReplaceSlot(suite.ctx, inbound.ReplaceSlotCommand{
			UserID: suite.userID, MemberData: adultData(), DayKey: day, MealType: plan.MealType("brunch"),
		})

		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeValidationFailed, errors.GetCode(err))
	})
}

func (suite *ServiceTestSuite) TestPickCache() {
	suite.Run("InjectedHit_ShouldShortCircuitFiltering", func() {
		want := poolRecipe("Minestrone", plan.MealLunch)
		other := poolRecipe("Lentil soup", plan.MealLunch)
		suite.recipes.pool = []*recipe.Candidate{other, want,
			poolRecipe("Oatmeal", plan.MealBreakfast),
			poolRecipe("Apple slices", plan.MealSnack),
			poolRecipe("Beef stew", plan.MealDinner),
		}
		suite.cache.values = map[string]string{
			pickCacheKey(suite.userID, nil, "2026-08-31", plan.MealLunch): want.ID.String() + "|" + want.Title,
		}
		jobID := suite.startJob(plan.ScopeDay, []string{"2026-08-31"})

		_, err := suite.service.Run(suite.ctx, inbound.RunCommand{
			UserID: suite.userID, JobID: jobID, MemberData: adultData(), DayKeys: []string{"2026-08-31"},
		})

		require.NoError(suite.T(), err)
		day, _ := suite.plans.GetDay(suite.ctx, suite.userID, nil, "2026-08-31")
		lunch, ok := day.Slot(plan.MealLunch)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), want.ID, lunch.RecipeID)
	})
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}
