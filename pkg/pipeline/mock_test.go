package pipeline

import (
	"context"
	"time"

	"bouldern/pkg/calendar"
	"bouldern/pkg/plot"
	"bouldern/pkg/routes"
	"bouldern/pkg/sheets"
)

type mockSource struct {
	Tables     []*sheets.Table
	FetchCalls int
}

// Fetch returns the configured tables in order, repeating the last one.
func (m *mockSource) Fetch(ctx context.Context, ref sheets.Ref) (*sheets.Table, error) {
	t := m.Tables[min(m.FetchCalls, len(m.Tables)-1)]
	m.FetchCalls++
	return t, nil
}

type recordingRenderer struct {
	Next        Renderer
	RenderFunc  func(gymName string, rows []routes.Row) (*plot.Plot, error)
	RenderCalls [][]routes.Row
}

func (m *recordingRenderer) Render(gymName string, rows []routes.Row) (*plot.Plot, error) {
	m.RenderCalls = append(m.RenderCalls, rows)
	if m.RenderFunc != nil {
		return m.RenderFunc(gymName, rows)
	}
	return m.Next.Render(gymName, rows)
}

type mockStore struct {
	SaveErr   error
	SaveCalls []string
	Saved     []*plot.Plot
}

func (m *mockStore) Save(ctx context.Context, key string, p *plot.Plot) error {
	m.SaveCalls = append(m.SaveCalls, key)
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved = append(m.Saved, p)
	return nil
}

type mockNotifier struct {
	Loc       *time.Location
	CreateErr error
	Events    []calendar.Event
}

func (m *mockNotifier) Location(ctx context.Context) (*time.Location, error) {
	if m.Loc == nil {
		return time.UTC, nil
	}
	return m.Loc, nil
}

func (m *mockNotifier) CreateEvent(ctx context.Context, e calendar.Event) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Events = append(m.Events, e)
	return nil
}
