package geospatial

import (
	"math"
	"testing"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

func TestHaversine_LagosToAbuja(t *testing.T) {
	// Ikeja Central to Abuja Express, roughly 530 km.
	d := Haversine(6.5952, 3.3441, 9.0579, 7.4951)
	if d < 500_000 || d > 560_000 {
		t.Errorf("unexpected distance %.0f m", d)
	}
}

func TestHaversine_SamePoint(t *testing.T) {
	if d := Haversine(6.4281, 3.4219, 6.4281, 3.4219); math.Abs(d) > 1e-6 {
		t.Errorf("expected 0, got %v", d)
	}
}

func TestNearest(t *testing.T) {
	dir := domain.DefaultDirectory()
	got := Nearest(dir, 6.5, 3.4, 50_000, 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 Lagos stations, got %d", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 1 {
		t.Errorf("expected Victoria Island first, got %d, %d", got[0].ID, got[1].ID)
	}
	if got[0].Distance == nil || *got[0].Distance > *got[1].Distance {
		t.Error("expected ascending distances")
	}
	if dir[0].Distance != nil {
		t.Error("source directory was mutated")
	}
}

func TestNearest_Limit(t *testing.T) {
	got := Nearest(domain.DefaultDirectory(), 9.082, 8.6753, 2_000_000, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3, got %d", len(got))
	}
}
