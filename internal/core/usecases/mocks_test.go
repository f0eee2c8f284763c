package usecases_test

import (
	"context"
	"errors"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/ports"
)

// --- Mock StationRepository ---

type mockStationRepo struct {
	listFn       func(ctx context.Context) ([]domain.Station, error)
	getByIDFn    func(ctx context.Context, id int) (*domain.Station, error)
	findNearbyFn func(ctx context.Context, lat, lon, radius float64, limit int) ([]domain.Station, error)
	listCalls    int
}

func (m *mockStationRepo) List(ctx context.Context) ([]domain.Station, error) {
	m.listCalls++
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return domain.DefaultDirectory(), nil
}

func (m *mockStationRepo) GetByID(ctx context.Context, id int) (*domain.Station, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrStationNotFound
}

func (m *mockStationRepo) FindNearby(ctx context.Context, lat, lon, radius float64, limit int) ([]domain.Station, error) {
	if m.findNearbyFn != nil {
		return m.findNearbyFn(ctx, lat, lon, radius, limit)
	}
	return nil, nil
}

// --- Mock CacheService ---

type mockCache struct {
	data map[string][]byte
	ttls map[string]int
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]byte{}, ttls: map[string]int{}}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.data[key] = value
	m.ttls[key] = ttlSeconds
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// --- Mock InquirySink ---

type mockSink struct {
	submitFn  func(ctx context.Context, inq *domain.Inquiry) error
	submitted []*domain.Inquiry
}

func (m *mockSink) Submit(ctx context.Context, inq *domain.Inquiry) error {
	m.submitted = append(m.submitted, inq)
	if m.submitFn != nil {
		return m.submitFn(ctx, inq)
	}
	return nil
}

// --- Mock RouteComputer ---

type mockComputer struct {
	computeFn func(ctx context.Context, req ports.RouteRequest) (*ports.RouteResult, error)
	requests  []ports.RouteRequest
}

func (m *mockComputer) ComputeRoute(ctx context.Context, req ports.RouteRequest) (*ports.RouteResult, error) {
	m.requests = append(m.requests, req)
	if m.computeFn != nil {
		return m.computeFn(ctx, req)
	}
	return &ports.RouteResult{
		Path:           []domain.GeoPoint{req.Origin, req.Destination},
		DistanceMeters: 1200,
		DurationSecs:   180,
	}, nil
}

// --- Mock PositionSource ---

type positionFunc func(ctx context.Context) (*domain.Position, error)

func (f positionFunc) CurrentPosition(ctx context.Context) (*domain.Position, error) {
	return f(ctx)
}

// --- Mock InquiryRepository ---

type mockInquiryRepo struct {
	createFn func(ctx context.Context, inq *domain.Inquiry) error
	stored   map[string]*domain.Inquiry
	statuses []domain.InquiryStatus
}

func newMockInquiryRepo() *mockInquiryRepo {
	return &mockInquiryRepo{stored: map[string]*domain.Inquiry{}}
}

func (m *mockInquiryRepo) Create(ctx context.Context, inq *domain.Inquiry) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, inq); err != nil {
			return err
		}
	}
	m.stored[inq.ID] = inq
	return nil
}

func (m *mockInquiryRepo) GetByID(ctx context.Context, id string) (*domain.Inquiry, error) {
	inq, ok := m.stored[id]
	if !ok {
		return nil, domain.ErrInquiryNotFound
	}
	return inq, nil
}

func (m *mockInquiryRepo) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) error {
	inq, ok := m.stored[id]
	if !ok {
		return domain.ErrInquiryNotFound
	}
	inq.Status = status
	m.statuses = append(m.statuses, status)
	return nil
}

// --- Mock NotificationService ---

type mockNotifier struct {
	notifyFn func(ctx context.Context, inq *domain.Inquiry) error
	sent     []string
}

func (m *mockNotifier) NotifyInquiry(ctx context.Context, inq *domain.Inquiry) error {
	if m.notifyFn != nil {
		if err := m.notifyFn(ctx, inq); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, inq.ID)
	return nil
}
