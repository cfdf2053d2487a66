package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsoares/grit/internal/contract"
	"github.com/rsoares/grit/internal/db"
	"github.com/rsoares/grit/internal/domain"
	"github.com/rsoares/grit/internal/repository"
	"github.com/rsoares/grit/internal/testutil"
)

func newSessionService(database *sql.DB, uow db.UnitOfWork) SessionService {
	sessions := repository.NewSQLiteSessionRepo(database)
	sets := repository.NewSQLiteSetRepo(database)
	programs := repository.NewSQLiteProgramRepo(database)
	return NewSessionService(
		sessions,
		sets,
		programs,
		repository.NewSQLiteExerciseRepo(database),
		repository.NewSQLiteRecordRepo(database),
		NewHistoryService(sessions, sets, programs),
		uow,
		0,
	)
}

func countRows(t *testing.T, database *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("counting %s: %v", table, err)
	}
	return n
}

func TestSessionService_Start(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	squat := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)
	bench := testutil.SeedExercise(t, database, "Bench Press", domain.MuscleChest)
	testutil.SeedProgram(t, database, "Peaking", "Day 1", 0,
		testutil.Prescribe(squat.ID, 3, "5"),
		testutil.Prescribe(bench.ID, 4, "8"),
	)

	res, err := svc.Start(ctx, "peaking", "day 1", 0)
	require.NoError(t, err)
	assert.Equal(t, "Peaking", res.Program)
	assert.Equal(t, "Day 1", res.Block)
	assert.Equal(t, 2, res.ExerciseCount)

	view, err := svc.Show(ctx)
	require.NoError(t, err)
	require.Len(t, view.Exercises, 2)
	assert.Equal(t, "Squat", view.Exercises[0].Name, "prescription order carries over")
	assert.Equal(t, "Bench Press", view.Exercises[1].Name)
	assert.Len(t, view.Exercises[0].Slots, 3, "one slot per prescribed set")
	assert.Len(t, view.Exercises[1].Slots, 4)
	assert.Nil(t, view.EndedAt)
}

func TestSessionService_StartByDisplayIndex(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))

	ex := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)
	testutil.SeedProgram(t, database, "Peaking", "Day 1", 0, testutil.Prescribe(ex.ID, 3, "5"))

	res, err := svc.Start(context.Background(), "1", "1", 0)
	require.NoError(t, err)
	assert.Equal(t, "Peaking", res.Program)
	assert.Equal(t, "Day 1", res.Block)
}

func TestSessionService_StartConflictsWhileActive(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	ex := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)
	testutil.SeedProgram(t, database, "Peaking", "Day 1", 0, testutil.Prescribe(ex.ID, 3, "5"))

	_, err := svc.Start(ctx, "Peaking", "Day 1", 0)
	require.NoError(t, err)

	_, err = svc.Start(ctx, "Peaking", "Day 1", 0)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 1, countRows(t, database, "training_sessions"))
}

func TestSessionService_StartResolvesBlockByWeek(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	ex := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)

	// The same block name recurs across weeks; the week filter picks one.
	p := &domain.Program{ID: uuid.New().String(), Seq: 1, Name: "Waves", CreatedAt: time.Now().UTC()}
	for week := 1; week <= 2; week++ {
		b := domain.Block{
			ID: uuid.New().String(), ProgramID: p.ID, Name: "Day 1", Week: week, Position: week,
		}
		b.Exercises = []domain.Prescription{{
			ID: uuid.New().String(), BlockID: b.ID, ExerciseID: ex.ID,
			Sets: 2 + week, Reps: []string{"5"}, OrderIndex: 1,
		}}
		p.Blocks = append(p.Blocks, b)
	}
	require.NoError(t, repository.NewSQLiteProgramRepo(database).Create(ctx, p))

	res, err := svc.Start(ctx, "Waves", "Day 1", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Week)

	view, err := svc.Show(ctx)
	require.NoError(t, err)
	assert.Len(t, view.Exercises[0].Slots, 4, "week 2 prescription applies")

	require.NoError(t, svc.Cancel(ctx))
	_, err = svc.Start(ctx, "Waves", "Day 1", 3)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionService_StartRollsBackAsOne(t *testing.T) {
	database := testutil.NewTestDB(t)
	boom := errors.New("boom")
	// Execs in Start: session insert, pointer insert, sequence seed, then
	// the first session exercise.
	failing := &testutil.FailOnNthExecUoW{DB: database, FailOn: 4, Err: boom}
	svc := newSessionService(database, failing)
	ctx := context.Background()

	ex := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)
	testutil.SeedProgram(t, database, "Peaking", "Day 1", 0, testutil.Prescribe(ex.ID, 3, "5"))

	_, err := svc.Start(ctx, "Peaking", "Day 1", 0)
	require.ErrorIs(t, err, boom)

	assert.Equal(t, 0, countRows(t, database, "training_sessions"))
	assert.Equal(t, 0, countRows(t, database, "current_session"))

	// A clean unit of work starts fine afterwards.
	svc = newSessionService(database, testutil.NewTestUoW(database))
	_, err = svc.Start(ctx, "Peaking", "Day 1", 0)
	assert.NoError(t, err)
}

func TestSessionService_EditAppendsAndUpdates(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	ex := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)
	testutil.SeedProgram(t, database, "Peaking", "Day 1", 0, testutil.Prescribe(ex.ID, 3, "5"))
	_, err := svc.Start(ctx, "Peaking", "Day 1", 0)
	require.NoError(t, err)

	res, err := svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 100, Reps: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Slot, "omitted set index appends")
	assert.True(t, res.Inserted)
	assert.InDelta(t, 116.67, res.Estimated1RM, 0.01)

	res, err = svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 105, Reps: 5, SetIndex: 1})
	require.NoError(t, err)
	assert.False(t, res.Inserted, "explicit index rewrites the slot")
	assert.Equal(t, 1, countRows(t, database, "exercise_sets"))

	res, err = svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 100, Reps: 5, SetIndex: 2})
	require.NoError(t, err)
	assert.True(t, res.Inserted, "next free slot is insertable")

	_, err = svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 100, Reps: 5, SetIndex: 4})
	assert.ErrorIs(t, err, ErrInvalidInput, "slots are dense, no gaps")
}

func TestSessionService_EditValidation(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	_, err := svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 100, Reps: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 0, Reps: 5})
	assert.ErrorIs(t, err, ErrInvalidInput, "weighted set needs a positive weight")

	_, err = svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 100, Reps: 5})
	assert.ErrorIs(t, err, repository.ErrNotFound, "no active session")
}

func TestSessionService_EditBodyweightSet(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	ex := testutil.SeedExercise(t, database, "Pull Up", domain.MuscleBack)
	testutil.SeedProgram(t, database, "Peaking", "Day 1", 0, testutil.Prescribe(ex.ID, 3, "10"))
	_, err := svc.Start(ctx, "Peaking", "Day 1", 0)
	require.NoError(t, err)

	res, err := svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Bodyweight: true, Reps: 12})
	require.NoError(t, err)
	assert.True(t, res.Bodyweight)
	assert.Zero(t, res.Estimated1RM, "bodyweight sets have no estimated 1RM")
	assert.True(t, res.NewRecord, "first bodyweight set leads its track")
}

func TestSessionService_EditReportsButDoesNotPersistRecords(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	ex := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)
	testutil.SeedProgram(t, database, "Peaking", "Day 1", 0, testutil.Prescribe(ex.ID, 3, "5"))
	_, err := svc.Start(ctx, "Peaking", "Day 1", 0)
	require.NoError(t, err)

	res, err := svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 100, Reps: 5})
	require.NoError(t, err)
	assert.True(t, res.NewRecord)
	assert.Equal(t, 0, countRows(t, database, "personal_records"), "records are written at end, not per set")
}

func TestSessionService_EditIgnoredTechniqueSuppressesRecord(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	ex := testutil.SeedExercise(t, database, "Leg Press", domain.MuscleQuads)
	presc := testutil.Prescribe(ex.ID, 3, "20")
	presc.Technique = domain.TechniqueMyoreps
	testutil.SeedProgram(t, database, "Volume", "Day 1", 0, presc)
	_, err := svc.Start(ctx, "Volume", "Day 1", 0)
	require.NoError(t, err)

	res, err := svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 200, Reps: 20})
	require.NoError(t, err)
	assert.False(t, res.NewRecord, "myorep sets never chase records")
}

func TestSessionService_SwapKeepsSetsAndPosition(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	squat := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)
	legPress := testutil.SeedExercise(t, database, "Leg Press", domain.MuscleQuads)
	testutil.SeedProgram(t, database, "Peaking", "Day 1", 0, testutil.Prescribe(squat.ID, 5, "5"))
	_, err := svc.Start(ctx, "Peaking", "Day 1", 0)
	require.NoError(t, err)

	_, err = svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 100, Reps: 5})
	require.NoError(t, err)
	_, err = svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 105, Reps: 5})
	require.NoError(t, err)

	res, err := svc.Swap(ctx, 1, "Leg Press")
	require.NoError(t, err)
	assert.Equal(t, "Squat", res.From)
	assert.Equal(t, "Leg Press", res.To)
	assert.Equal(t, 1, res.Position)
	assert.Equal(t, 2, res.SetsKept)

	view, err := svc.Show(ctx)
	require.NoError(t, err)
	assert.Equal(t, legPress.ID, view.Exercises[0].ExerciseID)
	assert.Equal(t, "Leg Press", view.Exercises[0].Name)
	assert.Len(t, view.Exercises[0].Slots, 5, "replacement inherits the prescribed set count")

	_, err = svc.Swap(ctx, 1, "Leg Press")
	assert.ErrorIs(t, err, ErrConflict, "swapping an exercise for itself")
}

func TestSessionService_SwapDoesNotTouchTheProgram(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	squat := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)
	testutil.SeedExercise(t, database, "Leg Press", domain.MuscleQuads)
	testutil.SeedProgram(t, database, "Peaking", "Day 1", 0, testutil.Prescribe(squat.ID, 5, "5"))
	_, err := svc.Start(ctx, "Peaking", "Day 1", 0)
	require.NoError(t, err)

	_, err = svc.Swap(ctx, 1, "Leg Press")
	require.NoError(t, err)

	assert.Equal(t, 1, countRows(t, database, "program_exercises"), "the swap is session-local")
	var exerciseID string
	require.NoError(t, database.QueryRow(`SELECT exercise_id FROM program_exercises`).Scan(&exerciseID))
	assert.Equal(t, squat.ID, exerciseID)
}

func TestSessionService_AddExercise(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	squat := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)
	curl := testutil.SeedExercise(t, database, "Leg Curl", domain.MuscleHamstrings)
	testutil.SeedProgram(t, database, "Peaking", "Day 1", 0, testutil.Prescribe(squat.ID, 3, "5"))
	_, err := svc.Start(ctx, "Peaking", "Day 1", 0)
	require.NoError(t, err)

	res, err := svc.AddExercise(ctx, curl.Name, 0)
	require.NoError(t, err)
	assert.Equal(t, "Leg Curl", res.Exercise)
	assert.Equal(t, 2, res.Position, "appended after the prescribed exercises")
	assert.Equal(t, DefaultSwapSetCount, res.PlannedSets)

	view, err := svc.Show(ctx)
	require.NoError(t, err)
	require.Len(t, view.Exercises, 2)
	assert.Len(t, view.Exercises[1].Slots, DefaultSwapSetCount, "advisory set count drives the display")
}

func TestSessionService_Note(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	ex := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)
	testutil.SeedProgram(t, database, "Peaking", "Day 1", 0, testutil.Prescribe(ex.ID, 3, "5"))
	_, err := svc.Start(ctx, "Peaking", "Day 1", 0)
	require.NoError(t, err)

	require.NoError(t, svc.Note(ctx, 1, "low bar today"))

	view, err := svc.Show(ctx)
	require.NoError(t, err)
	assert.Equal(t, "low bar today", view.Exercises[0].Note)

	assert.ErrorIs(t, svc.Note(ctx, 2, "x"), repository.ErrNotFound)
}

func TestSessionService_CancelDiscardsEverything(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	ex := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)
	testutil.SeedProgram(t, database, "Peaking", "Day 1", 0, testutil.Prescribe(ex.ID, 3, "5"))
	_, err := svc.Start(ctx, "Peaking", "Day 1", 0)
	require.NoError(t, err)

	res, err := svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 100, Reps: 5})
	require.NoError(t, err)
	assert.True(t, res.NewRecord)

	require.NoError(t, svc.Cancel(ctx))

	assert.Equal(t, 0, countRows(t, database, "training_sessions"))
	assert.Equal(t, 0, countRows(t, database, "training_session_exercises"))
	assert.Equal(t, 0, countRows(t, database, "exercise_sets"))
	assert.Equal(t, 0, countRows(t, database, "personal_records"), "cancel never evaluates records")

	_, err = svc.Show(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Start(ctx, "Peaking", "Day 1", 0)
	assert.NoError(t, err, "cancel frees the active slot")
}

func TestSessionService_EndPersistsRecordsOncePerTrack(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	squat := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)
	pullUp := testutil.SeedExercise(t, database, "Pull Up", domain.MuscleBack)
	testutil.SeedProgram(t, database, "Peaking", "Day 1", 0,
		testutil.Prescribe(squat.ID, 3, "5"),
		testutil.Prescribe(pullUp.ID, 3, "10"),
	)
	_, err := svc.Start(ctx, "Peaking", "Day 1", 0)
	require.NoError(t, err)

	// Only the best weighted set of the session becomes the candidate.
	_, err = svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 100, Reps: 5})
	require.NoError(t, err)
	_, err = svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 110, Reps: 3})
	require.NoError(t, err)
	_, err = svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 2, Bodyweight: true, Reps: 12})
	require.NoError(t, err)

	summary, err := svc.End(ctx)
	require.NoError(t, err)
	require.Len(t, summary.Exercises, 2)
	require.NotNil(t, summary.Exercises[0].NewRecord)
	assert.InDelta(t, 121.0, summary.Exercises[0].NewRecord.Estimated1RM, 0.01)
	require.NotNil(t, summary.Exercises[1].NewRecord)
	assert.True(t, summary.Exercises[1].NewRecord.Bodyweight)
	assert.Equal(t, 12, summary.Exercises[1].NewRecord.Reps)

	assert.Equal(t, 2, countRows(t, database, "personal_records"))

	cached, err := repository.NewSQLiteExerciseRepo(database).GetByID(ctx, squat.ID)
	require.NoError(t, err)
	require.NotNil(t, cached.BestEstimated1RM)
	assert.InDelta(t, 121.0, *cached.BestEstimated1RM, 0.01)

	_, err = svc.Show(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound, "ending clears the active slot")

	// A weaker follow-up session sets no new record.
	_, err = svc.Start(ctx, "Peaking", "Day 1", 0)
	require.NoError(t, err)
	_, err = svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 100, Reps: 5})
	require.NoError(t, err)
	summary, err = svc.End(ctx)
	require.NoError(t, err)
	assert.Nil(t, summary.Exercises[0].NewRecord)
	assert.Equal(t, 2, countRows(t, database, "personal_records"))
}

func TestSessionService_EndSkipsIgnoredSets(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	ex := testutil.SeedExercise(t, database, "Leg Press", domain.MuscleQuads)
	presc := testutil.Prescribe(ex.ID, 3, "20")
	presc.Technique = domain.TechniqueMyoreps
	testutil.SeedProgram(t, database, "Volume", "Day 1", 0, presc)
	_, err := svc.Start(ctx, "Volume", "Day 1", 0)
	require.NoError(t, err)

	_, err = svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 200, Reps: 20})
	require.NoError(t, err)

	summary, err := svc.End(ctx)
	require.NoError(t, err)
	assert.Nil(t, summary.Exercises[0].NewRecord)
	assert.Equal(t, 0, countRows(t, database, "personal_records"))
}

func TestSessionService_LogShowsCompletedSession(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	ex := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)
	testutil.SeedProgram(t, database, "Peaking", "Day 1", 0, testutil.Prescribe(ex.ID, 3, "5"))
	_, err := svc.Start(ctx, "Peaking", "Day 1", 0)
	require.NoError(t, err)
	_, err = svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 100, Reps: 5})
	require.NoError(t, err)
	_, err = svc.End(ctx)
	require.NoError(t, err)

	view, err := svc.Log(ctx, time.Now())
	require.NoError(t, err)
	assert.NotNil(t, view.EndedAt)
	require.NotNil(t, view.Exercises[0].Slots[0].Current)
	assert.Equal(t, 100.0, view.Exercises[0].Slots[0].Current.Weight)

	_, err = svc.Log(ctx, time.Now().AddDate(0, 0, -1))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionService_LogPreviousComesFromAnEarlierSession(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	ex := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)
	testutil.SeedProgram(t, database, "Peaking", "Day 1", 0, testutil.Prescribe(ex.ID, 3, "5"))

	first, err := svc.Start(ctx, "Peaking", "Day 1", 0)
	require.NoError(t, err)
	_, err = svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 100, Reps: 5})
	require.NoError(t, err)
	_, err = svc.End(ctx)
	require.NoError(t, err)

	view, err := svc.Log(ctx, time.Now())
	require.NoError(t, err)
	assert.Nil(t, view.Exercises[0].Slots[0].Previous, "a session's own sets are not its reference")

	// Backdate the first session so the two do not tie on start_time.
	earlier := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	_, err = database.Exec(`UPDATE training_sessions SET start_time = ?, end_time = ? WHERE id = ?`,
		earlier, earlier, first.SessionID)
	require.NoError(t, err)

	_, err = svc.Start(ctx, "Peaking", "Day 1", 0)
	require.NoError(t, err)
	_, err = svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 110, Reps: 5})
	require.NoError(t, err)
	_, err = svc.End(ctx)
	require.NoError(t, err)

	view, err = svc.Log(ctx, time.Now())
	require.NoError(t, err)
	slot := view.Exercises[0].Slots[0]
	require.NotNil(t, slot.Current)
	assert.Equal(t, 110.0, slot.Current.Weight)
	require.NotNil(t, slot.Previous)
	assert.Equal(t, 100.0, slot.Previous.Weight, "the session before the viewed one is the reference")
}

func TestSessionService_ShowSurfacesPreviousSets(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := newSessionService(database, testutil.NewTestUoW(database))
	ctx := context.Background()

	ex := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)
	testutil.SeedProgram(t, database, "Peaking", "Day 1", 0, testutil.Prescribe(ex.ID, 3, "5"))

	_, err := svc.Start(ctx, "Peaking", "Day 1", 0)
	require.NoError(t, err)
	_, err = svc.Edit(ctx, contract.EditSetRequest{ExerciseIndex: 1, Weight: 100, Reps: 5})
	require.NoError(t, err)
	_, err = svc.End(ctx)
	require.NoError(t, err)

	_, err = svc.Start(ctx, "Peaking", "Day 1", 0)
	require.NoError(t, err)

	view, err := svc.Show(ctx)
	require.NoError(t, err)
	slot := view.Exercises[0].Slots[0]
	require.NotNil(t, slot.Previous, "last completed session shows up as the reference")
	assert.Equal(t, 100.0, slot.Previous.Weight)
	assert.Nil(t, slot.Current)
	assert.Nil(t, view.Exercises[0].Slots[1].Previous)
}
