package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rsoares/grit/internal/contract"
	"github.com/rsoares/grit/internal/db"
	"github.com/rsoares/grit/internal/domain"
	"github.com/rsoares/grit/internal/records"
	"github.com/rsoares/grit/internal/repository"
)

// DefaultSwapSetCount is the fallback advisory set count for exercises that
// enter a session without a prescription of their own.
const DefaultSwapSetCount = 3

type sessionService struct {
	sessions  repository.SessionRepo
	sets      repository.SetRepo
	programs  repository.ProgramRepo
	exercises repository.ExerciseRepo
	prs       repository.RecordRepo
	history   HistoryService
	uow       db.UnitOfWork
	swapSets  int
	observer  UseCaseObserver
}

// NewSessionService creates the live-session state machine. history answers
// the previous-performance lookups shown in session views. swapSets is the
// advisory set count for swapped-in and ad-hoc exercises; values below 1
// fall back to DefaultSwapSetCount.
func NewSessionService(
	sessions repository.SessionRepo,
	sets repository.SetRepo,
	programs repository.ProgramRepo,
	exercises repository.ExerciseRepo,
	prs repository.RecordRepo,
	history HistoryService,
	uow db.UnitOfWork,
	swapSets int,
	observers ...UseCaseObserver,
) SessionService {
	if swapSets < 1 {
		swapSets = DefaultSwapSetCount
	}
	return &sessionService{
		sessions:  sessions,
		sets:      sets,
		programs:  programs,
		exercises: exercises,
		prs:       prs,
		history:   history,
		uow:       uow,
		swapSets:  swapSets,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *sessionService) Start(ctx context.Context, programRef, blockRef string, week int) (res *contract.StartResult, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "session_start", startedAt, err, map[string]any{
			"program": programRef, "block": blockRef, "week": week,
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sessions := repository.NewSQLiteSessionRepo(tx)
		programs := repository.NewSQLiteProgramRepo(tx)
		seqs := repository.NewSQLiteSequenceRepo(tx)

		if _, cerr := sessions.Current(ctx); cerr == nil {
			return fmt.Errorf("a session is already in progress, end or cancel it first: %w", ErrConflict)
		} else if !errors.Is(cerr, repository.ErrNotFound) {
			return cerr
		}

		program, rerr := resolveProgram(ctx, programs, programRef)
		if rerr != nil {
			return rerr
		}
		block, rerr := resolveBlock(program, blockRef, week)
		if rerr != nil {
			return rerr
		}

		effectiveWeek := block.Week
		if effectiveWeek == 0 && week > 0 {
			effectiveWeek = week
		}

		now := time.Now().UTC()
		sess := &domain.Session{
			ID:        uuid.New().String(),
			BlockID:   block.ID,
			Week:      effectiveWeek,
			StartedAt: now,
		}
		if cerr := sessions.Create(ctx, sess); cerr != nil {
			return cerr
		}
		// The single-row pointer table is what actually enforces exclusivity;
		// the Current check above only makes the error message friendlier.
		if cerr := sessions.SetCurrent(ctx, sess.ID); cerr != nil {
			if errors.Is(cerr, repository.ErrConflict) {
				return fmt.Errorf("a session is already in progress, end or cancel it first: %w", ErrConflict)
			}
			return cerr
		}

		for _, presc := range block.Exercises {
			pos, perr := seqs.Next(ctx, repository.ScopeSessionExercise+sess.ID)
			if perr != nil {
				return perr
			}
			se := &domain.SessionExercise{
				ID:         uuid.New().String(),
				SessionID:  sess.ID,
				ExerciseID: presc.ExerciseID,
				Position:   pos,
			}
			if aerr := sessions.AddExercise(ctx, se); aerr != nil {
				return aerr
			}
		}

		res = &contract.StartResult{
			SessionID:     sess.ID,
			Program:       program.Name,
			Block:         block.Name,
			Week:          effectiveWeek,
			ExerciseCount: len(block.Exercises),
			StartedAt:     now,
		}
		return nil
	})
	return res, err
}

func (s *sessionService) Show(ctx context.Context) (view *contract.SessionView, err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "session_show", startedAt, err, nil) }()

	sess, err := s.sessions.Current(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("no active session: %w", err)
		}
		return nil, err
	}
	return s.buildView(ctx, sess)
}

func (s *sessionService) Log(ctx context.Context, day time.Time) (view *contract.SessionView, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "session_log", startedAt, err, map[string]any{"day": day.Format("2006-01-02")})
	}()

	sess, err := s.sessions.LatestCompletedOn(ctx, day)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("no completed session on %s: %w", day.Format("2006-01-02"), err)
		}
		return nil, err
	}
	return s.buildView(ctx, sess)
}

func (s *sessionService) Edit(ctx context.Context, req contract.EditSetRequest) (res *contract.EditResult, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "session_edit", startedAt, err, map[string]any{
			"exercise_index": req.ExerciseIndex, "set_index": req.SetIndex,
		})
	}()

	if req.Reps < 1 {
		return nil, fmt.Errorf("reps must be at least 1: %w", ErrInvalidInput)
	}
	if !req.Bodyweight && req.Weight <= 0 {
		return nil, fmt.Errorf("weight must be positive for a weighted set: %w", ErrInvalidInput)
	}
	if req.SetIndex < 0 {
		return nil, fmt.Errorf("set index must be positive: %w", ErrInvalidInput)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sessions := repository.NewSQLiteSessionRepo(tx)
		sets := repository.NewSQLiteSetRepo(tx)
		programs := repository.NewSQLiteProgramRepo(tx)
		exercises := repository.NewSQLiteExerciseRepo(tx)
		prs := repository.NewSQLiteRecordRepo(tx)

		sess, serr := sessions.Current(ctx)
		if serr != nil {
			if errors.Is(serr, repository.ErrNotFound) {
				return fmt.Errorf("no active session: %w", serr)
			}
			return serr
		}

		se, serr := s.exerciseAt(ctx, sessions, sess.ID, req.ExerciseIndex)
		if serr != nil {
			return serr
		}
		ex, serr := exercises.GetByID(ctx, se.ExerciseID)
		if serr != nil {
			return serr
		}

		count, serr := sets.CountBySessionExercise(ctx, se.ID)
		if serr != nil {
			return serr
		}
		slot := req.SetIndex
		if slot == 0 {
			slot = count + 1
		}
		// Slots are dense: the only insertable slot is the next free one, so
		// repeating an explicit-index edit converges on the same row.
		if slot > count+1 {
			return fmt.Errorf("set %d: %d sets logged, next free slot is %d: %w", slot, count, count+1, ErrInvalidInput)
		}

		ignore := false
		if presc, perr := programs.GetPrescription(ctx, sess.BlockID, se.ExerciseID); perr == nil {
			ignore = presc.Technique.IgnoredForRecords()
		} else if !errors.Is(perr, repository.ErrNotFound) {
			return perr
		}

		now := time.Now().UTC()
		inserted := false
		if slot <= count {
			existing, gerr := sets.GetBySlot(ctx, se.ID, slot)
			if gerr != nil {
				return gerr
			}
			existing.Weight = req.Weight
			existing.Reps = req.Reps
			existing.Bodyweight = req.Bodyweight
			existing.RPE = req.RPE
			existing.Notes = req.Notes
			existing.IgnoreForOneRM = ignore
			existing.LoggedAt = now
			if uerr := sets.Update(ctx, existing); uerr != nil {
				return uerr
			}
		} else {
			inserted = true
			set := &domain.Set{
				ID:                uuid.New().String(),
				SessionExerciseID: se.ID,
				Slot:              slot,
				Weight:            req.Weight,
				Reps:              req.Reps,
				RPE:               req.RPE,
				Notes:             req.Notes,
				LoggedAt:          now,
				Bodyweight:        req.Bodyweight,
				IgnoreForOneRM:    ignore,
			}
			if ierr := sets.Insert(ctx, set); ierr != nil {
				return ierr
			}
		}

		// Records are only persisted at End so that Cancel discards them;
		// here we just tell the user whether this set would beat the best.
		cand := records.Candidate{Weight: req.Weight, Reps: req.Reps, Bodyweight: req.Bodyweight}
		newRecord := false
		if !ignore {
			best, berr := bestOrNil(ctx, prs, ex.ID, cand.Bodyweight)
			if berr != nil {
				return berr
			}
			newRecord = records.IsNewRecord(best, cand)
		}

		res = &contract.EditResult{
			Exercise:     ex.Name,
			Slot:         slot,
			Weight:       req.Weight,
			Reps:         req.Reps,
			Bodyweight:   req.Bodyweight,
			Estimated1RM: cand.EstimatedOneRM(),
			Inserted:     inserted,
			NewRecord:    newRecord,
		}
		return nil
	})
	return res, err
}

func (s *sessionService) Swap(ctx context.Context, exerciseIndex int, newExerciseRef string) (res *contract.SwapResult, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "session_swap", startedAt, err, map[string]any{
			"exercise_index": exerciseIndex, "replacement": newExerciseRef,
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sessions := repository.NewSQLiteSessionRepo(tx)
		sets := repository.NewSQLiteSetRepo(tx)
		programs := repository.NewSQLiteProgramRepo(tx)
		exercises := repository.NewSQLiteExerciseRepo(tx)

		sess, serr := sessions.Current(ctx)
		if serr != nil {
			if errors.Is(serr, repository.ErrNotFound) {
				return fmt.Errorf("no active session: %w", serr)
			}
			return serr
		}

		se, serr := s.exerciseAt(ctx, sessions, sess.ID, exerciseIndex)
		if serr != nil {
			return serr
		}
		oldEx, serr := exercises.GetByID(ctx, se.ExerciseID)
		if serr != nil {
			return serr
		}
		newEx, serr := resolveExercise(ctx, exercises, newExerciseRef)
		if serr != nil {
			return serr
		}
		if newEx.ID == se.ExerciseID {
			return fmt.Errorf("%q is already at position %d: %w", newEx.Name, exerciseIndex, ErrConflict)
		}

		// The replacement inherits the original's set count: its
		// prescription if it had one, its advisory count if it was itself
		// ad hoc, the configured fallback otherwise.
		plannedSets := s.swapSets
		if presc, perr := programs.GetPrescription(ctx, sess.BlockID, se.ExerciseID); perr == nil {
			plannedSets = presc.Sets
		} else if !errors.Is(perr, repository.ErrNotFound) {
			return perr
		} else if se.PlannedSets > 0 {
			plannedSets = se.PlannedSets
		}

		if serr := sessions.SwapExercise(ctx, se.ID, newEx.ID, plannedSets); serr != nil {
			return serr
		}

		kept, serr := sets.CountBySessionExercise(ctx, se.ID)
		if serr != nil {
			return serr
		}
		res = &contract.SwapResult{
			From:     oldEx.Name,
			To:       newEx.Name,
			Position: exerciseIndex,
			SetsKept: kept,
		}
		return nil
	})
	return res, err
}

func (s *sessionService) AddExercise(ctx context.Context, exerciseRef string, plannedSets int) (res *contract.AddExerciseResult, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "session_add_exercise", startedAt, err, map[string]any{"exercise": exerciseRef})
	}()

	if plannedSets < 1 {
		plannedSets = s.swapSets
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sessions := repository.NewSQLiteSessionRepo(tx)
		exercises := repository.NewSQLiteExerciseRepo(tx)
		seqs := repository.NewSQLiteSequenceRepo(tx)

		sess, serr := sessions.Current(ctx)
		if serr != nil {
			if errors.Is(serr, repository.ErrNotFound) {
				return fmt.Errorf("no active session: %w", serr)
			}
			return serr
		}

		ex, serr := resolveExercise(ctx, exercises, exerciseRef)
		if serr != nil {
			return serr
		}

		pos, serr := seqs.Next(ctx, repository.ScopeSessionExercise+sess.ID)
		if serr != nil {
			return serr
		}
		se := &domain.SessionExercise{
			ID:          uuid.New().String(),
			SessionID:   sess.ID,
			ExerciseID:  ex.ID,
			Position:    pos,
			PlannedSets: plannedSets,
		}
		if serr := sessions.AddExercise(ctx, se); serr != nil {
			return serr
		}

		res = &contract.AddExerciseResult{
			Exercise:    ex.Name,
			Position:    pos,
			PlannedSets: plannedSets,
		}
		return nil
	})
	return res, err
}

func (s *sessionService) Note(ctx context.Context, exerciseIndex int, note string) (err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "session_note", startedAt, err, map[string]any{"exercise_index": exerciseIndex})
	}()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sessions := repository.NewSQLiteSessionRepo(tx)

		sess, serr := sessions.Current(ctx)
		if serr != nil {
			if errors.Is(serr, repository.ErrNotFound) {
				return fmt.Errorf("no active session: %w", serr)
			}
			return serr
		}
		se, serr := s.exerciseAt(ctx, sessions, sess.ID, exerciseIndex)
		if serr != nil {
			return serr
		}
		return sessions.SetExerciseNote(ctx, se.ID, note)
	})
}

// Cancel deletes the active session outright. Child rows and the
// current_session pointer go with it via cascade; no records are evaluated.
func (s *sessionService) Cancel(ctx context.Context) (err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "session_cancel", startedAt, err, nil) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sessions := repository.NewSQLiteSessionRepo(tx)

		sess, serr := sessions.Current(ctx)
		if serr != nil {
			if errors.Is(serr, repository.ErrNotFound) {
				return fmt.Errorf("no active session: %w", serr)
			}
			return serr
		}
		return sessions.Delete(ctx, sess.ID)
	})
}

func (s *sessionService) End(ctx context.Context) (summary *contract.EndSummary, err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "session_end", startedAt, err, nil) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sessions := repository.NewSQLiteSessionRepo(tx)
		sets := repository.NewSQLiteSetRepo(tx)
		programs := repository.NewSQLiteProgramRepo(tx)
		exercises := repository.NewSQLiteExerciseRepo(tx)
		prs := repository.NewSQLiteRecordRepo(tx)

		sess, serr := sessions.Current(ctx)
		if serr != nil {
			if errors.Is(serr, repository.ErrNotFound) {
				return fmt.Errorf("no active session: %w", serr)
			}
			return serr
		}

		block, serr := programs.GetBlock(ctx, sess.BlockID)
		if serr != nil {
			return serr
		}
		program, serr := programs.GetByID(ctx, block.ProgramID)
		if serr != nil {
			return serr
		}

		now := time.Now().UTC()
		day := dayOf(now)

		list, serr := sessions.ListExercises(ctx, sess.ID)
		if serr != nil {
			return serr
		}

		summary = &contract.EndSummary{
			SessionID: sess.ID,
			Program:   program.Name,
			Block:     block.Name,
			StartedAt: sess.StartedAt,
			EndedAt:   now,
			Duration:  now.Sub(sess.StartedAt),
		}

		for _, se := range list {
			ex, eerr := exercises.GetByID(ctx, se.ExerciseID)
			if eerr != nil {
				return eerr
			}
			logged, eerr := sets.ListBySessionExercise(ctx, se.ID)
			if eerr != nil {
				return eerr
			}

			// Per track, only the session's best set is a record candidate.
			var newPR *domain.PersonalRecord
			if cand, ok := records.BestWeighted(logged); ok {
				pr, aerr := applyCandidate(ctx, prs, exercises, ex.ID, cand, day)
				if aerr != nil {
					return aerr
				}
				newPR = pr
			}
			if cand, ok := records.BestBodyweight(logged); ok {
				pr, aerr := applyCandidate(ctx, prs, exercises, ex.ID, cand, day)
				if aerr != nil {
					return aerr
				}
				if newPR == nil {
					newPR = pr
				}
			}

			summary.Exercises = append(summary.Exercises, contract.EndedExercise{
				Name:      ex.Name,
				Sets:      setViews(logged),
				NewRecord: recordView(newPR),
			})
		}

		if serr := sessions.MarkEnded(ctx, sess.ID, now); serr != nil {
			return serr
		}
		return sessions.ClearCurrent(ctx)
	})
	return summary, err
}

// exerciseAt returns the session exercise at a 1-based display index.
func (s *sessionService) exerciseAt(ctx context.Context, sessions repository.SessionRepo, sessionID string, index int) (*domain.SessionExercise, error) {
	list, err := sessions.ListExercises(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if index < 1 || index > len(list) {
		return nil, fmt.Errorf("session has %d exercises, no exercise %d: %w", len(list), index, repository.ErrNotFound)
	}
	return list[index-1], nil
}

// buildView assembles the full rendering model for a session: per exercise,
// one row per slot up to max(planned, logged), each with its target, the
// most recent historical set at the same slot, and this session's set.
func (s *sessionService) buildView(ctx context.Context, sess *domain.Session) (*contract.SessionView, error) {
	block, err := s.programs.GetBlock(ctx, sess.BlockID)
	if err != nil {
		return nil, err
	}
	program, err := s.programs.GetByID(ctx, block.ProgramID)
	if err != nil {
		return nil, err
	}
	prescriptions, err := s.programs.Prescriptions(ctx, block.ID)
	if err != nil {
		return nil, err
	}
	byExercise := make(map[string]*domain.Prescription, len(prescriptions))
	for i := range prescriptions {
		byExercise[prescriptions[i].ExerciseID] = &prescriptions[i]
	}

	list, err := s.sessions.ListExercises(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	view := &contract.SessionView{
		SessionID: sess.ID,
		Program:   program.Name,
		Block:     block.Name,
		Week:      sess.Week,
		StartedAt: sess.StartedAt,
		EndedAt:   sess.EndedAt,
		Notes:     sess.Notes,
	}

	for i, se := range list {
		ex, err := s.exercises.GetByID(ctx, se.ExerciseID)
		if err != nil {
			return nil, err
		}
		logged, err := s.sets.ListBySessionExercise(ctx, se.ID)
		if err != nil {
			return nil, err
		}

		presc := byExercise[se.ExerciseID]
		planned := se.PlannedSets
		if presc != nil {
			planned = presc.Sets
		}

		bySlot := make(map[int]*domain.Set, len(logged))
		maxSlot := 0
		for j := range logged {
			bySlot[logged[j].Slot] = &logged[j]
			if logged[j].Slot > maxSlot {
				maxSlot = logged[j].Slot
			}
		}
		slots := planned
		if maxSlot > slots {
			slots = maxSlot
		}

		ev := contract.ExerciseView{
			Index:      i + 1,
			ExerciseID: ex.ID,
			Name:       ex.Name,
			Muscle:     string(ex.Muscle),
			Note:       se.Note,
		}
		if presc != nil {
			ev.Technique = string(presc.Technique)
			ev.ProgramNotes = presc.Notes
		}

		for slot := 1; slot <= slots; slot++ {
			row := contract.SlotView{Slot: slot}
			if presc != nil {
				row.TargetReps = presc.RepTargetFor(slot)
				row.TargetRPE = presc.RPETargetFor(slot)
				row.TargetPercent = presc.PercentTargetFor(slot)
				if w, ok := presc.TargetWeightFor(slot); ok {
					row.TargetWeight = w
				}
			}

			prev, perr := s.history.PreviousSet(ctx, se.ExerciseID, slot, sess.ID)
			if perr != nil {
				return nil, perr
			}
			row.Previous = setView(prev)
			row.Current = setView(bySlot[slot])
			ev.Slots = append(ev.Slots, row)
		}

		best, err := bestOrNil(ctx, s.prs, ex.ID, false)
		if err != nil {
			return nil, err
		}
		bwBest, err := bestOrNil(ctx, s.prs, ex.ID, true)
		if err != nil {
			return nil, err
		}
		ev.Record = recordView(best)
		ev.BodyweightRecord = recordView(bwBest)

		view.Exercises = append(view.Exercises, ev)
	}
	return view, nil
}

// dayOf truncates a timestamp to its local calendar day, which is the
// granularity personal records are keyed on.
func dayOf(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

func setView(set *domain.Set) *contract.SetView {
	if set == nil {
		return nil
	}
	return &contract.SetView{
		Slot:         set.Slot,
		Weight:       set.Weight,
		Reps:         set.Reps,
		Bodyweight:   set.Bodyweight,
		RPE:          set.RPE,
		Estimated1RM: records.EstimatedOneRM(set.Weight, set.Reps),
		Notes:        set.Notes,
		LoggedAt:     set.LoggedAt,
	}
}

func setViews(sets []domain.Set) []contract.SetView {
	views := make([]contract.SetView, 0, len(sets))
	for i := range sets {
		views = append(views, *setView(&sets[i]))
	}
	return views
}
