package routes

import (
	"context"

	"bouldern/pkg/sheets"
)

type mockSource struct {
	FetchFunc  func(ctx context.Context, ref sheets.Ref) (*sheets.Table, error)
	FetchCalls []sheets.Ref
}

func (m *mockSource) Fetch(ctx context.Context, ref sheets.Ref) (*sheets.Table, error) {
	m.FetchCalls = append(m.FetchCalls, ref)
	return m.FetchFunc(ctx, ref)
}

func tableSource(raw [][]string) *mockSource {
	return &mockSource{
		FetchFunc: func(ctx context.Context, ref sheets.Ref) (*sheets.Table, error) {
			return sheets.NewTable(raw), nil
		},
	}
}
