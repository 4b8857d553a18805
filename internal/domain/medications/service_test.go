package medications

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"medication-adherence/internal/domain/schedule"
	"medication-adherence/internal/platform/apperrors"
	"medication-adherence/internal/platform/dates"
	"medication-adherence/internal/ports/txn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Medication
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Medication{}}
}

func (r *testRepo) Create(_ context.Context, m Medication) error {
	if _, ok := r.byID[m.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Update(_ context.Context, m Medication) error {
	if _, ok := r.byID[m.ID]; !ok {
		return apperrors.NotFound("medication not found")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Medication, error) {
	m, ok := r.byID[id]
	if !ok {
		return Medication{}, apperrors.NotFound("medication not found")
	}
	return m, nil
}

func (r *testRepo) GetForUpdate(ctx context.Context, id string) (Medication, error) {
	return r.GetByID(ctx, id)
}

func (r *testRepo) ListByUser(_ context.Context, userID string, f ListFilter) ([]Medication, error) {
	out := make([]Medication, 0)
	for _, m := range r.byID {
		if m.UserID != userID {
			continue
		}
		if f.Active != nil && m.IsActive != *f.Active {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return apperrors.NotFound("medication not found")
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) DecrementStock(_ context.Context, id string) (Medication, error) {
	m := r.byID[id]
	if m.StockQuantity > 0 {
		m.StockQuantity--
		r.byID[id] = m
	}
	return m, nil
}

// snapshotTx restaura el repo si fn falla, como haría un tx real.
func snapshotTx(r *testRepo) txn.Runner {
	return txn.RunnerFunc(func(ctx context.Context, fn func(ctx context.Context) error) error {
		saved := make(map[string]Medication, len(r.byID))
		for k, v := range r.byID {
			saved[k] = v
		}
		if err := fn(ctx); err != nil {
			r.byID = saved
			return err
		}
		return nil
	})
}

type regenCall struct {
	med     Medication
	changed ChangedFields
}

type testScheduler struct {
	scheduled []Medication
	regens    []regenCall
	err       error
}

func (s *testScheduler) Schedule(_ context.Context, m Medication) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.scheduled = append(s.scheduled, m)
	return 42, nil
}

func (s *testScheduler) RegenerateFutureSchedule(_ context.Context, m Medication, changed ChangedFields) error {
	if s.err != nil {
		return s.err
	}
	s.regens = append(s.regens, regenCall{med: m, changed: changed})
	return nil
}

func newTestService() (*Service, *testRepo, *testScheduler) {
	repo := newTestRepo()
	sch := &testScheduler{}
	svc := NewService(repo, snapshotTx(repo), sch, nil)
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC) }
	return svc, repo, sch
}

func validInput() CreateInput {
	return CreateInput{
		DrugName:    "  Amoxicillin ",
		DosageValue: 250,
		DosageUnit:  "mg",
		Frequency:   "three_times_daily",
		StartDate:   dates.MustParse("2024-01-01"),
	}
}

func strp(s string) *string { return &s }

func intp(i int) *int { return &i }

// -------------------------
// Tests
// -------------------------

func TestCreate_DefaultsAndSchedules(t *testing.T) {
	svc, repo, sch := newTestService()

	created, err := svc.Create(context.Background(), "u1", validInput())
	require.NoError(t, err)

	m := created.Medication
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "u1", m.UserID)
	assert.Equal(t, "Amoxicillin", m.DrugName)
	assert.Equal(t, 0, m.StockQuantity)
	assert.Equal(t, 7, m.RefillThreshold)
	assert.True(t, m.IsActive)
	assert.Equal(t, "#4A90E2", m.Color)
	assert.Nil(t, m.EndDate)
	assert.Equal(t, 42, created.ScheduledDoses)

	require.Len(t, sch.scheduled, 1)
	assert.Equal(t, m.ID, sch.scheduled[0].ID)
	assert.Contains(t, repo.byID, m.ID)
}

func TestCreate_ValidationNeverPersists(t *testing.T) {
	svc, repo, sch := newTestService()

	in := validInput()
	in.DosageValue = -1
	end := dates.MustParse("2023-12-01")
	in.EndDate = &end

	_, err := svc.Create(context.Background(), "u1", in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.ElementsMatch(t, []string{"dosage_value", "end_date"}, fieldNames(err))

	assert.Empty(t, repo.byID)
	assert.Empty(t, sch.scheduled)
}

func TestCreate_SchedulerFailureRollsBack(t *testing.T) {
	svc, repo, sch := newTestService()
	sch.err = errors.New("bulk insert failed")

	_, err := svc.Create(context.Background(), "u1", validInput())
	require.Error(t, err)
	assert.Empty(t, repo.byID)
}

func TestCreate_RequiresUser(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), " ", validInput())
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
}

func TestUpdate_RegeneratesOnlyOnScheduleChange(t *testing.T) {
	svc, _, sch := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", validInput())
	require.NoError(t, err)
	id := created.Medication.ID

	_, err = svc.Update(ctx, id, "u1", UpdateInput{DrugName: strp("Amoxil"), StockQuantity: intp(30)})
	require.NoError(t, err)
	assert.Empty(t, sch.regens)

	// mismo valor no es cambio
	_, err = svc.Update(ctx, id, "u1", UpdateInput{Frequency: strp("three_times_daily")})
	require.NoError(t, err)
	assert.Empty(t, sch.regens)

	updated, err := svc.Update(ctx, id, "u1", UpdateInput{Frequency: strp("twice_daily")})
	require.NoError(t, err)
	assert.Equal(t, schedule.TwiceDaily, updated.Frequency)
	assert.Equal(t, 30, updated.StockQuantity)

	require.Len(t, sch.regens, 1)
	assert.Equal(t, ChangedFields{Frequency: true}, sch.regens[0].changed)
	assert.Equal(t, schedule.TwiceDaily, sch.regens[0].med.Frequency)
}

func TestUpdate_EndDateSetAndClear(t *testing.T) {
	svc, repo, sch := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", validInput())
	require.NoError(t, err)
	id := created.Medication.ID

	end := dates.MustParse("2024-02-01")
	_, err = svc.Update(ctx, id, "u1", UpdateInput{EndDate: PatchDate{Present: true, Value: &end}})
	require.NoError(t, err)
	require.NotNil(t, repo.byID[id].EndDate)

	_, err = svc.Update(ctx, id, "u1", UpdateInput{EndDate: PatchDate{Present: true}})
	require.NoError(t, err)
	assert.Nil(t, repo.byID[id].EndDate)

	require.Len(t, sch.regens, 2)
	assert.True(t, sch.regens[1].changed.EndDate)
}

func TestUpdate_InvalidMergeDoesNotApply(t *testing.T) {
	svc, repo, sch := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", validInput())
	require.NoError(t, err)
	id := created.Medication.ID

	before := dates.MustParse("2023-06-01")
	_, err = svc.Update(ctx, id, "u1", UpdateInput{
		DrugName: strp("Renamed"),
		EndDate:  PatchDate{Present: true, Value: &before},
	})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	assert.Equal(t, "Amoxicillin", repo.byID[id].DrugName)
	assert.Empty(t, sch.regens)
}

func TestUpdate_RegenerationFailureRollsBack(t *testing.T) {
	svc, repo, sch := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", validInput())
	require.NoError(t, err)
	id := created.Medication.ID

	sch.err = errors.New("delete failed")
	_, err = svc.Update(ctx, id, "u1", UpdateInput{Frequency: strp("weekly")})
	require.Error(t, err)

	assert.Equal(t, schedule.ThreeTimesDaily, repo.byID[id].Frequency)
}

func TestOtherUser_LooksLikeNotFound(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "owner", validInput())
	require.NoError(t, err)
	id := created.Medication.ID

	_, errForeign := svc.Get(ctx, id, "intruder")
	_, errMissing := svc.Get(ctx, "nope", "intruder")

	assert.True(t, errors.Is(errForeign, apperrors.ErrNotFound))
	assert.True(t, errors.Is(errForeign, apperrors.ErrForbidden))
	assert.Equal(t, errMissing.Error(), errForeign.Error())

	_, err = svc.Update(ctx, id, "intruder", UpdateInput{DrugName: strp("Hacked")})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, "Amoxicillin", repo.byID[id].DrugName)

	assert.True(t, errors.Is(svc.Delete(ctx, id, "intruder"), apperrors.ErrNotFound))
	assert.Contains(t, repo.byID, id)
}

func TestDelete(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.Medication.ID, "u1"))
	assert.Empty(t, repo.byID)
}

func TestListAndLowStock(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	mk := func(name string, stock int, active bool) string {
		in := validInput()
		in.DrugName = name
		in.StockQuantity = intp(stock)
		in.IsActive = &active
		c, err := svc.Create(ctx, "u1", in)
		require.NoError(t, err)
		return c.Medication.ID
	}
	low := mk("Low", 7, true)
	mk("Plenty", 30, true)
	mk("Inactive low", 0, false)
	newest := mk("Newest", 2, true)

	all, err := svc.List(ctx, "u1", ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, newest, all[0].ID)

	inactive := false
	only, err := svc.List(ctx, "u1", ListFilter{Active: &inactive})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "Inactive low", only[0].DrugName)

	refill, err := svc.LowStock(ctx, "u1")
	require.NoError(t, err)
	var ids []string
	for _, m := range refill {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []string{low, newest}, ids)
}
