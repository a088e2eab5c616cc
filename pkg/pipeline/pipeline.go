package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bouldern/pkg/calendar"
	"bouldern/pkg/colors"
	"bouldern/pkg/gyms"
	"bouldern/pkg/plot"
	"bouldern/pkg/routes"

	log "github.com/sirupsen/logrus"
)

const (
	EventSummary  = "Bouldern Progress Update"
	EventDuration = 30 * time.Minute
)

var (
	ErrRender       = errors.New("render failed")
	ErrPersistence  = errors.New("saving gym diagram failed")
	ErrNotification = errors.New("notification failed")
	ErrNoRoutes     = errors.New("gym sheet has no routes")
)

type Loader interface {
	Load(ctx context.Context, gymName string) ([]routes.Row, error)
}

type Renderer interface {
	Render(gymName string, rows []routes.Row) (*plot.Plot, error)
}

type Store interface {
	Save(ctx context.Context, key string, p *plot.Plot) error
}

type Notifier interface {
	Location(ctx context.Context) (*time.Location, error)
	CreateEvent(ctx context.Context, e calendar.Event) error
}

// Pipeline refreshes the published diagram of a gym and announces it.
type Pipeline struct {
	Gyms     gyms.Provider
	Loader   Loader
	Renderer Renderer
	Store    Store
	Notifier Notifier
	Colors   *colors.Table
	Now      func() time.Time
}

// run holds what one Run call has loaded. A new one is made for every run.
type run struct {
	gym  gyms.Gym
	rows []routes.Row
}

// FileKey turns a gym name into the key its diagram is stored under.
func FileKey(gymName string) string {
	return strings.ReplaceAll(strings.ToLower(gymName), " ", "_")
}

// Run loads the gym sheet, renders and saves the diagram, then creates the
// calendar event. Steps run in order; nothing is undone when a later step
// fails.
func (p *Pipeline) Run(ctx context.Context, gymName string) error {
	logger := log.WithField("gym", gymName)

	gym, err := p.Gyms.Gym(gymName)
	if err != nil {
		return err
	}
	rows, err := p.Loader.Load(ctx, gymName)
	if err != nil {
		return err
	}
	r := &run{gym: gym, rows: rows}
	logger.WithField("routes", len(r.rows)).Info("loaded routes")

	rendered, err := p.Renderer.Render(gymName, r.rows)
	if err != nil {
		var unknown *colors.UnknownColorError
		if errors.As(err, &unknown) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	key := FileKey(gymName)
	if err := p.Store.Save(ctx, key, rendered); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	logger.WithField("key", key).Info("saved diagram")

	event, err := p.event(ctx, r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotification, err)
	}
	if err := p.Notifier.CreateEvent(ctx, event); err != nil {
		return fmt.Errorf("%w: %w", ErrNotification, err)
	}
	logger.WithField("color", event.ColorID).Info("sent update notification")
	return nil
}

// event builds the notification from the last row of the sheet, which is
// the most recent update.
func (p *Pipeline) event(ctx context.Context, r *run) (calendar.Event, error) {
	if len(r.rows) == 0 {
		return calendar.Event{}, ErrNoRoutes
	}
	last := r.rows[len(r.rows)-1]
	entry, err := p.Colors.Resolve(last.Color)
	if err != nil {
		return calendar.Event{}, err
	}
	loc, err := p.Notifier.Location(ctx)
	if err != nil {
		return calendar.Event{}, err
	}
	start := p.now().In(loc)
	return calendar.Event{
		Start:       start,
		End:         start.Add(EventDuration),
		Summary:     EventSummary,
		ColorID:     entry.CalendarID,
		Description: r.gym.FormID,
	}, nil
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
