package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/poa/internal/domain"
	"github.com/alexanderramin/poa/internal/repository"
)

const dateLayout = "2006-01-02"

type loadLogService struct {
	logs     repository.LoadLogRepo
	observer UseCaseObserver
}

func NewLoadLogService(logs repository.LoadLogRepo, observers ...UseCaseObserver) LoadLogService {
	return &loadLogService{logs: logs, observer: useCaseObserverOrNoop(observers)}
}

func (s *loadLogService) List(ctx context.Context, from, to string) (entries []*domain.LoadLogEntry, err error) {
	fields := map[string]any{"from": from, "to": to}
	defer observe(ctx, s.observer, "list-load-logs", time.Now().UTC(), fields, &err)

	var filter repository.LoadLogFilter
	var ok bool
	if filter.From, ok = parseDay(from); !ok {
		fields["malformed"] = "from"
		return []*domain.LoadLogEntry{}, nil
	}
	if filter.To, ok = parseDay(to); !ok {
		fields["malformed"] = "to"
		return []*domain.LoadLogEntry{}, nil
	}

	entries, err = s.logs.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing load logs: %w", err)
	}
	if entries == nil {
		entries = []*domain.LoadLogEntry{}
	}
	fields["count"] = len(entries)
	return entries, nil
}

// parseDay returns nil for an empty bound and false for a malformed one.
func parseDay(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, false
	}
	return &t, true
}
