package sheets

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var ErrTabNotFound = errors.New("sheet tab not found")

const (
	maxRetries = 15
	maxBackoff = 60 * time.Second
)

// SheetClient reads spreadsheet tabs through the Google Sheets API.
type SheetClient struct {
	service *sheets.Service
	sleep   func(time.Duration)
}

func NewSheetClient(ctx context.Context, opts ...option.ClientOption) (*SheetClient, error) {
	opts = append([]option.ClientOption{option.WithScopes(sheets.SpreadsheetsReadonlyScope)}, opts...)
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets client: %w", err)
	}
	return &SheetClient{service: srv, sleep: time.Sleep}, nil
}

// NewSheetClientFromFile uses a service account json key.
func NewSheetClientFromFile(ctx context.Context, jsonPath string) (*SheetClient, error) {
	return NewSheetClient(ctx, option.WithCredentialsFile(jsonPath))
}

func (s *SheetClient) Fetch(ctx context.Context, ref Ref) (*Table, error) {
	title := ref.TabName
	if title == "" {
		var err error
		title, err = s.tabTitle(ctx, ref)
		if err != nil {
			return nil, err
		}
	}

	var resp *sheets.ValueRange
	err := s.withBackoff(ctx, func() error {
		var err error
		resp, err = s.service.Spreadsheets.Values.Get(ref.SpreadsheetID, quoteTab(title)).
			ValueRenderOption("FORMATTED_VALUE").
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ref, err)
	}
	log.WithFields(log.Fields{"sheet": ref.String(), "rows": len(resp.Values)}).Debug("fetched sheet values")
	return NewTable(stringify(resp.Values)), nil
}

func (s *SheetClient) tabTitle(ctx context.Context, ref Ref) (string, error) {
	var ss *sheets.Spreadsheet
	err := s.withBackoff(ctx, func() error {
		var err error
		ss, err = s.service.Spreadsheets.Get(ref.SpreadsheetID).
			Fields("sheets.properties(sheetId,title)").
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to read metadata of %s: %w", ref.SpreadsheetID, err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.SheetId == ref.TabID {
			return sh.Properties.Title, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrTabNotFound, ref)
}

// withBackoff retries fn while the API reports rate limiting.
func (s *SheetClient) withBackoff(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !isRateLimited(err) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
		log.Warnf("Rate limited by Google Sheets API, retrying in %v...", backoff)
		s.sleep(backoff)
	}
	return fmt.Errorf("giving up after %d retries: %w", maxRetries, err)
}

func isRateLimited(err error) bool {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code == http.StatusTooManyRequests || gErr.Code == http.StatusForbidden
	}
	return false
}

// quoteTab turns a tab title into an A1 range covering the whole tab.
func quoteTab(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
