package usecases_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/usecases"
)

func TestStationService_Search(t *testing.T) {
	svc := usecases.NewStationService(&mockStationRepo{}, nil)

	stations, err := svc.Search(context.Background(), "LAGOS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stations) != 3 {
		t.Fatalf("expected 3 stations, got %d", len(stations))
	}
	if stations[0].Name != "Crestfield Ikeja Central" {
		t.Errorf("expected Ikeja Central first, got %s", stations[0].Name)
	}
}

func TestStationService_Search_EmptyQueryReturnsAll(t *testing.T) {
	svc := usecases.NewStationService(&mockStationRepo{}, nil)
	stations, err := svc.Search(context.Background(), "  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stations) != 6 {
		t.Errorf("expected 6 stations, got %d", len(stations))
	}
}

func TestStationService_Search_QueryTooLong(t *testing.T) {
	svc := usecases.NewStationService(&mockStationRepo{}, nil)
	_, err := svc.Search(context.Background(), strings.Repeat("x", usecases.MaxQueryLength+1))
	if !errors.Is(err, domain.ErrQueryTooLong) {
		t.Errorf("expected ErrQueryTooLong, got %v", err)
	}
}

func TestStationService_Search_UsesCache(t *testing.T) {
	repo := &mockStationRepo{}
	cache := newMockCache()
	svc := usecases.NewStationService(repo, cache)

	first, err := svc.Search(context.Background(), "Kano")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Search(context.Background(), " kano ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.listCalls != 1 {
		t.Errorf("expected 1 repo call, got %d", repo.listCalls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].ID != 5 {
		t.Errorf("unexpected results %v / %v", first, second)
	}
	if ttl := cache.ttls["stations:search:kano"]; ttl != 300 {
		t.Errorf("expected ttl 300, got %d", ttl)
	}
}

func TestStationService_Search_RepoError(t *testing.T) {
	repo := &mockStationRepo{
		listFn: func(ctx context.Context) ([]domain.Station, error) {
			return nil, errors.New("db down")
		},
	}
	svc := usecases.NewStationService(repo, nil)
	if _, err := svc.Search(context.Background(), "lagos"); err == nil {
		t.Error("expected error")
	}
}

func TestStationService_FindNearby_ClampLimit(t *testing.T) {
	called := false
	repo := &mockStationRepo{
		findNearbyFn: func(ctx context.Context, lat, lon, radius float64, limit int) ([]domain.Station, error) {
			called = true
			if limit != 50 {
				t.Errorf("expected limit clamped to 50, got %d", limit)
			}
			if radius != 50_000 {
				t.Errorf("expected default radius, got %v", radius)
			}
			return nil, nil
		},
	}

	svc := usecases.NewStationService(repo, nil)
	_, _ = svc.FindNearby(context.Background(), 6.5, 3.3, 0, 999)
	if !called {
		t.Error("repo was not called")
	}
}

func TestStationService_FindNearby_InvalidCoordinates(t *testing.T) {
	svc := usecases.NewStationService(&mockStationRepo{}, nil)
	_, err := svc.FindNearby(context.Background(), 95, 3.3, 1000, 5)
	if !errors.Is(err, domain.ErrInvalidCoordinates) {
		t.Errorf("expected ErrInvalidCoordinates, got %v", err)
	}
}

func TestStationService_Regions(t *testing.T) {
	svc := usecases.NewStationService(&mockStationRepo{}, nil)
	regions, err := svc.Regions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(regions) != 5 {
		t.Errorf("expected 5 regions, got %v", regions)
	}
}
