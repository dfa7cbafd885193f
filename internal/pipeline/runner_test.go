package pipeline

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"

	"talentsift/internal/domain/job"
	"talentsift/internal/domain/matching"
	"talentsift/internal/domain/resume"
	"talentsift/internal/domain/screening"
)

type fakeJobs struct {
	byID map[uuid.UUID]job.Job
}

func (f *fakeJobs) Create(ctx context.Context, j job.Job) error {
	f.byID[j.ID] = j
	return nil
}

func (f *fakeJobs) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := f.byID[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (f *fakeJobs) List(ctx context.Context, limit, offset int) ([]job.Job, error) {
	return nil, nil
}

func (f *fakeJobs) Count(ctx context.Context) (int, error) {
	return len(f.byID), nil
}

type fakeResumes struct {
	byUser map[uuid.UUID][]resume.Resume
}

func (f *fakeResumes) Create(ctx context.Context, r resume.Resume) error {
	f.byUser[r.UserID] = append(f.byUser[r.UserID], r)
	return nil
}

func (f *fakeResumes) GetByID(ctx context.Context, id uuid.UUID) (resume.Resume, error) {
	for _, list := range f.byUser {
		for _, r := range list {
			if r.ID == id {
				return r, nil
			}
		}
	}
	return resume.Resume{}, resume.ErrNotFound
}

func (f *fakeResumes) ListByUser(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error) {
	return f.byUser[userID], nil
}

func (f *fakeResumes) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return len(f.byUser[userID]), nil
}

type fakeRuns struct {
	mu         sync.Mutex
	runs       map[uuid.UUID]screening.Run
	results    map[uuid.UUID][]screening.Result
	failResume uuid.UUID
}

func newFakeRuns() *fakeRuns {
	return &fakeRuns{
		runs:    map[uuid.UUID]screening.Run{},
		results: map[uuid.UUID][]screening.Result{},
	}
}

func (f *fakeRuns) CreateRun(ctx context.Context, r screening.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs[r.ID] = r
	return nil
}

func (f *fakeRuns) GetRun(ctx context.Context, id uuid.UUID) (screening.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.runs[id]
	if !ok {
		return screening.Run{}, screening.ErrNotFound
	}
	return r, nil
}

func (f *fakeRuns) ListRunsByJob(ctx context.Context, jobID uuid.UUID) ([]screening.Run, error) {
	return nil, nil
}

func (f *fakeRuns) UpdateRun(ctx context.Context, r screening.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs[r.ID] = r
	return nil
}

func (f *fakeRuns) AddResult(ctx context.Context, res screening.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failResume != uuid.Nil && res.ResumeID == f.failResume {
		return errors.New("storage down")
	}
	f.results[res.RunID] = append(f.results[res.RunID], res)
	return nil
}

func (f *fakeRuns) ResultsByRun(ctx context.Context, runID uuid.UUID) ([]screening.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]screening.Result(nil), f.results[runID]...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchPercentage > out[j].MatchPercentage
	})
	return out, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []screening.Run
}

func (f *fakeNotifier) ScreeningCompleted(run screening.Run) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, run)
}

type runnerFixture struct {
	runner   *Runner
	jobs     *fakeJobs
	resumes  *fakeResumes
	runs     *fakeRuns
	notifier *fakeNotifier

	userID uuid.UUID
	jobID  uuid.UUID

	fullMatch    uuid.UUID
	partialMatch uuid.UUID
	noMatch      uuid.UUID
}

// newRunnerFixture seeds a job wanting python+aws skills and the keywords
// python, aws, docker, plus three resumes: a full match, a python-only
// candidate, and an empty profile.
func newRunnerFixture(t *testing.T) *runnerFixture {
	t.Helper()

	engine, err := matching.NewEngine(matching.Config{})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	fx := &runnerFixture{
		jobs:     &fakeJobs{byID: map[uuid.UUID]job.Job{}},
		resumes:  &fakeResumes{byUser: map[uuid.UUID][]resume.Resume{}},
		runs:     newFakeRuns(),
		notifier: &fakeNotifier{},
		userID:   uuid.New(),
		jobID:    uuid.New(),
	}
	fx.runner = NewRunner(engine, fx.jobs, fx.resumes, fx.runs, fx.notifier, nil)

	fx.jobs.byID[fx.jobID] = job.Job{
		ID:       fx.jobID,
		UserID:   fx.userID,
		Title:    "Backend Engineer",
		Skills:   []string{"python", "aws"},
		Keywords: []string{"python", "aws", "docker"},
	}

	fx.fullMatch = uuid.New()
	fx.partialMatch = uuid.New()
	fx.noMatch = uuid.New()
	fx.resumes.byUser[fx.userID] = []resume.Resume{
		{
			ID:     fx.fullMatch,
			UserID: fx.userID,
			Parsed: matching.ParsedResume{
				Skills:   []string{"python", "aws"},
				Keywords: []string{"python", "aws", "docker"},
			},
		},
		{
			ID:     fx.partialMatch,
			UserID: fx.userID,
			Parsed: matching.ParsedResume{
				Skills:   []string{"python"},
				Keywords: []string{"python"},
			},
		},
		{
			ID:     fx.noMatch,
			UserID: fx.userID,
			Parsed: matching.ParsedResume{},
		},
	}

	return fx
}

func (fx *runnerFixture) newRun(t *testing.T) uuid.UUID {
	t.Helper()
	runID := uuid.New()
	err := fx.runs.CreateRun(context.Background(), screening.Run{
		ID:     runID,
		JobID:  fx.jobID,
		UserID: fx.userID,
		Status: screening.RunPending,
	})
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	return runID
}

func TestExecuteCompletesRun(t *testing.T) {
	fx := newRunnerFixture(t)
	runID := fx.newRun(t)

	if err := fx.runner.Execute(context.Background(), runID, Params{Workers: 4}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	run, err := fx.runs.GetRun(context.Background(), runID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Status != screening.RunCompleted {
		t.Errorf("Status = %s, want completed", run.Status)
	}
	if run.TotalResumes != 3 || run.Processed != 3 || run.Failed != 0 {
		t.Errorf("counters = total %d processed %d failed %d, want 3/3/0",
			run.TotalResumes, run.Processed, run.Failed)
	}
	if run.StartedAt == nil || run.FinishedAt == nil {
		t.Error("StartedAt/FinishedAt not set")
	}

	results, err := fx.runs.ResultsByRun(context.Background(), runID)
	if err != nil {
		t.Fatalf("ResultsByRun: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	// python+aws resume covers both skills and all three keywords,
	// python-only covers one of two skills and one of three keywords
	// (0.6*0.5 + 0.4/3 = 0.433..), the empty profile scores zero.
	wantPct := map[uuid.UUID]int{
		fx.fullMatch:    100,
		fx.partialMatch: 43,
		fx.noMatch:      0,
	}
	wantStatus := map[uuid.UUID]matching.Status{
		fx.fullMatch:    matching.StatusShortlisted,
		fx.partialMatch: matching.StatusRejected,
		fx.noMatch:      matching.StatusRejected,
	}
	for _, res := range results {
		if res.MatchPercentage != wantPct[res.ResumeID] {
			t.Errorf("resume %s: percentage = %d, want %d", res.ResumeID, res.MatchPercentage, wantPct[res.ResumeID])
		}
		if res.Status != wantStatus[res.ResumeID] {
			t.Errorf("resume %s: status = %s, want %s", res.ResumeID, res.Status, wantStatus[res.ResumeID])
		}
	}
	if results[0].ResumeID != fx.fullMatch {
		t.Errorf("best match first: got %s", results[0].ResumeID)
	}

	if len(fx.notifier.events) != 1 || fx.notifier.events[0].Status != screening.RunCompleted {
		t.Errorf("notifier events = %+v, want one completed event", fx.notifier.events)
	}
}

func TestExecuteDeterministicAcrossWorkerCounts(t *testing.T) {
	fx := newRunnerFixture(t)

	pctByResume := func(runID uuid.UUID) map[uuid.UUID]int {
		results, err := fx.runs.ResultsByRun(context.Background(), runID)
		if err != nil {
			t.Fatalf("ResultsByRun: %v", err)
		}
		out := map[uuid.UUID]int{}
		for _, r := range results {
			out[r.ResumeID] = r.MatchPercentage
		}
		return out
	}

	seqRun := fx.newRun(t)
	if err := fx.runner.Execute(context.Background(), seqRun, Params{Workers: 1}); err != nil {
		t.Fatalf("Execute sequential: %v", err)
	}
	concRun := fx.newRun(t)
	if err := fx.runner.Execute(context.Background(), concRun, Params{Workers: 8}); err != nil {
		t.Fatalf("Execute concurrent: %v", err)
	}

	seq, conc := pctByResume(seqRun), pctByResume(concRun)
	if len(seq) != len(conc) {
		t.Fatalf("result counts differ: %d vs %d", len(seq), len(conc))
	}
	for id, pct := range seq {
		if conc[id] != pct {
			t.Errorf("resume %s: sequential %d, concurrent %d", id, pct, conc[id])
		}
	}
}

func TestExecuteJobMissing(t *testing.T) {
	fx := newRunnerFixture(t)

	runID := uuid.New()
	_ = fx.runs.CreateRun(context.Background(), screening.Run{
		ID:     runID,
		JobID:  uuid.New(),
		UserID: fx.userID,
		Status: screening.RunPending,
	})

	err := fx.runner.Execute(context.Background(), runID, Params{})
	if !errors.Is(err, job.ErrNotFound) {
		t.Fatalf("Execute = %v, want job.ErrNotFound", err)
	}

	run, _ := fx.runs.GetRun(context.Background(), runID)
	if run.Status != screening.RunFailed {
		t.Errorf("Status = %s, want failed", run.Status)
	}
}

func TestExecuteEmptyPool(t *testing.T) {
	fx := newRunnerFixture(t)
	fx.resumes.byUser[fx.userID] = nil
	runID := fx.newRun(t)

	if err := fx.runner.Execute(context.Background(), runID, Params{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	run, _ := fx.runs.GetRun(context.Background(), runID)
	if run.Status != screening.RunCompleted {
		t.Errorf("Status = %s, want completed", run.Status)
	}
	if run.TotalResumes != 0 || run.Processed != 0 {
		t.Errorf("counters = total %d processed %d, want 0/0", run.TotalResumes, run.Processed)
	}
	if len(fx.notifier.events) != 1 {
		t.Errorf("notifier events = %d, want 1", len(fx.notifier.events))
	}
}

func TestExecuteCountsResumeFailures(t *testing.T) {
	fx := newRunnerFixture(t)
	fx.runs.failResume = fx.partialMatch
	runID := fx.newRun(t)

	if err := fx.runner.Execute(context.Background(), runID, Params{Workers: 2}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	run, _ := fx.runs.GetRun(context.Background(), runID)
	if run.Status != screening.RunCompleted {
		t.Errorf("Status = %s, want completed despite one failure", run.Status)
	}
	if run.Processed != 3 || run.Failed != 1 {
		t.Errorf("counters = processed %d failed %d, want 3/1", run.Processed, run.Failed)
	}

	results, _ := fx.runs.ResultsByRun(context.Background(), runID)
	if len(results) != 2 {
		t.Errorf("stored results = %d, want 2", len(results))
	}
}
