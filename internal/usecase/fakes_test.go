package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"talentsift/internal/domain/job"
	"talentsift/internal/domain/matching"
	"talentsift/internal/domain/resume"
	"talentsift/internal/domain/screening"
	"talentsift/internal/domain/skill"
	"talentsift/internal/domain/user"
	"talentsift/internal/importer"
	"talentsift/internal/pipeline"
)

func newTestEngine(t *testing.T) *matching.Engine {
	t.Helper()
	e, err := matching.NewEngine(matching.Config{})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[uuid.UUID]user.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]user.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

type fakeResumeRepo struct {
	mu        sync.Mutex
	resumes   map[uuid.UUID]resume.Resume
	createErr error
}

func newFakeResumeRepo() *fakeResumeRepo {
	return &fakeResumeRepo{resumes: make(map[uuid.UUID]resume.Resume)}
}

func (f *fakeResumeRepo) Create(_ context.Context, r resume.Resume) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.resumes[r.ID] = r
	return nil
}

func (f *fakeResumeRepo) GetByID(_ context.Context, id uuid.UUID) (resume.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resumes[id]
	if !ok {
		return resume.Resume{}, resume.ErrNotFound
	}
	return r, nil
}

func (f *fakeResumeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]resume.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]resume.Resume, 0)
	for _, r := range f.resumes {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeResumeRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	rs, err := f.ListByUser(ctx, userID)
	return len(rs), err
}

type fakeJobRepo struct {
	mu        sync.Mutex
	jobs      map[uuid.UUID]job.Job
	order     []uuid.UUID
	createErr error
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[uuid.UUID]job.Job)}
}

func (f *fakeJobRepo) Create(_ context.Context, j job.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.jobs[j.ID] = j
	f.order = append(f.order, j.ID)
	return nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (f *fakeJobRepo) List(_ context.Context, limit, offset int) ([]job.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]job.Job, 0)
	// Newest first, matching the Postgres ordering.
	for i := len(f.order) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.jobs[f.order[i]])
	}
	return out, nil
}

func (f *fakeJobRepo) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.order), nil
}

type fakeRunRepo struct {
	mu      sync.Mutex
	runs    map[uuid.UUID]screening.Run
	results map[uuid.UUID][]screening.Result
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{
		runs:    make(map[uuid.UUID]screening.Run),
		results: make(map[uuid.UUID][]screening.Result),
	}
}

func (f *fakeRunRepo) CreateRun(_ context.Context, r screening.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs[r.ID] = r
	return nil
}

func (f *fakeRunRepo) GetRun(_ context.Context, id uuid.UUID) (screening.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.runs[id]
	if !ok {
		return screening.Run{}, screening.ErrNotFound
	}
	return r, nil
}

func (f *fakeRunRepo) ListRunsByJob(_ context.Context, jobID uuid.UUID) ([]screening.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]screening.Run, 0)
	for _, r := range f.runs {
		if r.JobID == jobID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRunRepo) UpdateRun(_ context.Context, r screening.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.runs[r.ID]; !ok {
		return screening.ErrNotFound
	}
	f.runs[r.ID] = r
	return nil
}

func (f *fakeRunRepo) AddResult(_ context.Context, res screening.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[res.RunID] = append(f.results[res.RunID], res)
	return nil
}

func (f *fakeRunRepo) ResultsByRun(_ context.Context, runID uuid.UUID) ([]screening.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]screening.Result(nil), f.results[runID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].MatchPercentage > out[j].MatchPercentage })
	return out, nil
}

type fakeSkillRepo struct {
	items []skill.Skill
	err   error
}

func (f fakeSkillRepo) List(context.Context) ([]skill.Skill, error) {
	return f.items, f.err
}

// fakeCache is an in-memory stand-in for the Redis layer. Values round-trip
// through JSON so the tests exercise the same serialization the real cache
// does.
type fakeCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	locks       map[string]string
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries: make(map[string][]byte),
		locks:   make(map[string]string),
	}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = b
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	return nil
}

func (f *fakeCache) SetIfNotExists(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.locks[key]; ok {
		return false, nil
	}
	f.locks[key] = value
	return true, nil
}

func (f *fakeCache) InvalidateJobLists(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k := range f.entries {
		if strings.HasPrefix(k, "jobs:list:") {
			delete(f.entries, k)
		}
	}
	delete(f.entries, StatusCacheKey)
	f.invalidated++
	return nil
}

func (f *fakeCache) seed(t *testing.T, key string, value any) {
	t.Helper()
	if err := f.SetJSON(context.Background(), key, value, 0); err != nil {
		t.Fatalf("seed %s: %v", key, err)
	}
}

func (f *fakeCache) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[key]
	return ok
}

type fetchCall struct {
	url string
}

type fakeFetcher struct {
	posting importer.Posting
	err     error
	calls   []fetchCall
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string) (importer.Posting, error) {
	f.calls = append(f.calls, fetchCall{url: rawURL})
	if f.err != nil {
		return importer.Posting{}, f.err
	}
	return f.posting, nil
}

type executorCall struct {
	runID  uuid.UUID
	params pipeline.Params
}

type fakeExecutor struct {
	calls chan executorCall
	err   error
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{calls: make(chan executorCall, 4)}
}

func (f *fakeExecutor) Execute(_ context.Context, runID uuid.UUID, p pipeline.Params) error {
	f.calls <- executorCall{runID: runID, params: p}
	return f.err
}

func (f *fakeExecutor) waitForCall(t *testing.T) executorCall {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline executor was never invoked")
		return executorCall{}
	}
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }
