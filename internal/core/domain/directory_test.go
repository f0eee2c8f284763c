package domain_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

func TestDefaultDirectory_Valid(t *testing.T) {
	dir := domain.DefaultDirectory()
	if len(dir) != 6 {
		t.Fatalf("expected 6 stations, got %d", len(dir))
	}
	if err := domain.ValidateDirectory(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range dir {
		if len(s.Services) == 0 {
			t.Errorf("station %d has no services", s.ID)
		}
		if !s.Coordinates.Valid() {
			t.Errorf("station %d has invalid coordinates %v", s.ID, s.Coordinates)
		}
	}
}

func TestDefaultDirectory_ReturnsCopies(t *testing.T) {
	a := domain.DefaultDirectory()
	a[0].Name = "changed"
	a[0].Services[0] = "changed"
	b := domain.DefaultDirectory()
	if b[0].Name == "changed" || b[0].Services[0] == "changed" {
		t.Error("directory was mutated through a previous copy")
	}
}

func TestValidateDirectory_ReportsAllProblems(t *testing.T) {
	err := domain.ValidateDirectory([]domain.Station{
		{ID: 1, Coordinates: domain.GeoPoint{Lat: 91, Lon: 0}},
		{ID: 1, Coordinates: domain.GeoPoint{Lat: 0, Lon: -181}},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"duplicate id", "latitude", "longitude"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestValidateDirectory_EmptyServicesAllowed(t *testing.T) {
	if err := domain.ValidateDirectory([]domain.Station{{ID: 7}}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRegions_FirstSeenOrder(t *testing.T) {
	got := domain.Regions(domain.DefaultDirectory())
	want := []string{"Lagos", "FCT", "Rivers", "Kano", "Oyo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDefaultZoom(t *testing.T) {
	if z := domain.DefaultZoom(6); z != 6 {
		t.Errorf("expected 6, got %d", z)
	}
	if z := domain.DefaultZoom(0); z != 10 {
		t.Errorf("expected 10, got %d", z)
	}
}

func TestFeatureCollection(t *testing.T) {
	fc := domain.FeatureCollection(domain.DefaultDirectory()[:1])
	if fc.Type != "FeatureCollection" || len(fc.Features) != 1 {
		t.Fatalf("unexpected collection: %+v", fc)
	}
	c := fc.Features[0].Geometry.Coordinates
	if c[0] != 3.3441 || c[1] != 6.5952 {
		t.Errorf("expected [lon, lat], got %v", c)
	}
}

func TestBoundsOf(t *testing.T) {
	if _, ok := domain.BoundsOf(nil); ok {
		t.Error("expected ok=false for empty input")
	}
	b, ok := domain.BoundsOf([]domain.GeoPoint{{Lat: 6.5, Lon: 3.3}, {Lat: 9.1, Lon: 7.5}, {Lat: 4.8, Lon: 7.0}})
	if !ok {
		t.Fatal("expected ok")
	}
	if b.MinLat != 4.8 || b.MaxLat != 9.1 || b.MinLon != 3.3 || b.MaxLon != 7.5 {
		t.Errorf("unexpected bounds %+v", b)
	}
}
