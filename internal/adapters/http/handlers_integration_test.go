//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	handler "github.com/samirrijal/crestfield/internal/adapters/http"
	"github.com/samirrijal/crestfield/internal/adapters/directory"
	"github.com/samirrijal/crestfield/internal/adapters/postgres"
	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/usecases"
	"github.com/samirrijal/crestfield/internal/pkg/config"
)

// setupTestDB connects to the test database, migrates it and seeds the sample directory.
func setupTestDB(t *testing.T) *postgres.DB {
	t.Helper()
	cfg, err := config.Load("crestfield-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	if _, err := db.Migrate(ctx, "up"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := postgres.NewStationSource(db).UpsertBatch(ctx, domain.DefaultDirectory()); err != nil {
		t.Fatalf("seed stations: %v", err)
	}
	return db
}

func TestStations_Integration_PostgresSource(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	repo, err := directory.Load(context.Background(), postgres.NewStationSource(db))
	if err != nil {
		t.Fatalf("load directory: %v", err)
	}

	env := makeDeps(t, func(d *handler.Dependencies) {
		d.Stations = usecases.NewStationService(repo, nil)
		d.DB = db
	})
	app := setupApp(t, env.deps)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/stations?q=lagos", nil), -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var page stationPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if page.Pagination.Total < 3 {
		t.Errorf("expected at least 3 Lagos stations, got %d", page.Pagination.Total)
	}
}

func TestReady_Integration_WithDatabase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	env := makeDeps(t, func(d *handler.Dependencies) { d.DB = db })
	app := setupApp(t, env.deps)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/ready", nil), -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestInquiryRepo_Integration_StatusUpdate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	repo := postgres.NewInquiryRepo(db)
	ctx := context.Background()

	inq := &domain.Inquiry{
		ID:          "it-" + time.Now().Format("20060102150405.000000"),
		Kind:        domain.KindContact,
		Contact:     &domain.ContactForm{Name: "Ada", Email: "ada@example.com", Message: "Hi"},
		Status:      domain.StatusReceived,
		SubmittedAt: time.Now().UTC(),
	}
	if err := repo.Create(ctx, inq); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.UpdateStatus(ctx, inq.ID, domain.StatusNotified); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.GetByID(ctx, inq.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.StatusNotified || got.Contact == nil || got.Contact.Email != "ada@example.com" {
		t.Errorf("unexpected inquiry %+v", got)
	}
}
