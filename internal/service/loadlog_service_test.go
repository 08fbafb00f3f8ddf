package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/poa/internal/domain"
	"github.com/alexanderramin/poa/internal/repository"
)

func TestLoadLogService_List(t *testing.T) {
	database := seededDB(t)
	ctx := context.Background()
	repo := repository.NewSQLiteLoadLogRepo(database)

	for i, day := range []string{"2025-02-01", "2025-02-10", "2025-03-05"} {
		ts, err := time.Parse("2006-01-02", day)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, &domain.LoadLog{
			ID:       day,
			PlanID:   "plan-research",
			Actor:    "tester",
			LoadedAt: ts.Add(time.Duration(i+10) * time.Hour),
			Message:  "load " + day,
		}))
	}
	svc := NewLoadLogService(repo)

	tests := []struct {
		name     string
		from, to string
		want     []string
	}{
		{name: "unbounded", want: []string{"2025-03-05", "2025-02-10", "2025-02-01"}},
		{name: "to is inclusive", from: "2025-02-01", to: "2025-02-10", want: []string{"2025-02-10", "2025-02-01"}},
		{name: "from only", from: "2025-02-02", want: []string{"2025-03-05", "2025-02-10"}},
		{name: "malformed from", from: "02/01/2025", want: []string{}},
		{name: "malformed to", to: "yesterday", want: []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entries, err := svc.List(ctx, tc.from, tc.to)
			require.NoError(t, err)
			require.NotNil(t, entries)
			got := make([]string, len(entries))
			for i, e := range entries {
				got[i] = e.ID
				assert.Equal(t, "POA-PIS-001-2025", e.PlanCode)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.events = append(r.events, event)
}

func TestLoadLogService_ReportsToObserver(t *testing.T) {
	database := seededDB(t)
	obs := &recordingObserver{}
	svc := NewLoadLogService(repository.NewSQLiteLoadLogRepo(database), obs)

	_, err := svc.List(context.Background(), "2025-01-01", "")
	require.NoError(t, err)
	_, err = svc.List(context.Background(), "not-a-date", "")
	require.NoError(t, err)

	require.Len(t, obs.events, 2)
	assert.Equal(t, "list-load-logs", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 0, obs.events[0].Fields["count"])
	assert.Equal(t, "from", obs.events[1].Fields["malformed"])
}
