package usecases

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/repositories"
)

const testUser = "6f1c2f4e-2b1a-4c55-9a57-1f0f1d6b7c11"

type fakeSurveys struct {
	mu      sync.Mutex
	rows    map[string]entities.SurveyResponse
	saveErr error
	findErr error
	saves   int

	// when set, Save signals saving and waits for release
	saving  chan struct{}
	release chan struct{}

	statusCalls int32
	yearLoads   func(ctx context.Context, year int) error
}

func newFakeSurveys() *fakeSurveys {
	return &fakeSurveys{rows: make(map[string]entities.SurveyResponse)}
}

func key(userID string, year int) string { return fmt.Sprintf("%s:%d", userID, year) }

func (f *fakeSurveys) put(resp entities.SurveyResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[key(resp.UserID, resp.Year)] = resp
}

func (f *fakeSurveys) get(userID string, year int) (entities.SurveyResponse, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[key(userID, year)]
	return r, ok
}

func (f *fakeSurveys) FindByUser(_ context.Context, userID string, year int) (*entities.SurveyResponse, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	r, ok := f.get(userID, year)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &r, nil
}

func (f *fakeSurveys) FindByYear(ctx context.Context, year int, completedOnly bool) ([]entities.SurveyResponse, error) {
	if f.yearLoads != nil {
		if err := f.yearLoads(ctx, year); err != nil {
			return nil, err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.SurveyResponse
	for _, r := range f.rows {
		if r.Year == year && (!completedOnly || r.Completed()) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSurveys) Save(_ context.Context, resp *entities.SurveyResponse) error {
	if f.saving != nil {
		f.saving <- struct{}{}
		<-f.release
	}
	if f.saveErr != nil {
		return f.saveErr
	}
	if resp.ID == "" {
		resp.ID = "generated-id"
	}
	f.mu.Lock()
	f.saves++
	f.mu.Unlock()
	f.put(*resp)
	return nil
}

func (f *fakeSurveys) Statuses(_ context.Context, userID string) ([]entities.SurveyStatus, error) {
	atomic.AddInt32(&f.statusCalls, 1)
	r, ok := f.get(userID, 2024)
	status := entities.SurveyStatus{Year: 2024, Started: ok}
	if ok {
		status.Completed = r.Completed()
		status.CompletedAt = r.CompletedAt
	}
	return []entities.SurveyStatus{status}, nil
}

type fakeProjections struct {
	mu    sync.Mutex
	err   error
	saved []entities.MemberSurvey
}

func (f *fakeProjections) Upsert(_ context.Context, p *entities.MemberSurvey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, *p)
	return nil
}

type fakeVisibility struct {
	rules entities.VisibilityMap
	err   error
}

func (f *fakeVisibility) FindByYear(context.Context, int) (entities.VisibilityMap, error) {
	return f.rules, f.err
}

type fakeViewers struct {
	account entities.NewViewer
	data    map[string]interface{}
	calls   int
}

func (f *fakeViewers) Create(_ context.Context, v entities.NewViewer, data map[string]interface{}) (*entities.ViewerAccount, error) {
	f.calls++
	f.account = v
	f.data = data
	return &entities.ViewerAccount{UserID: "viewer-id", SurveyID: "survey-id", Email: v.Email}, nil
}
