package domain_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

func ids(stations []domain.Station) []int {
	out := make([]int, 0, len(stations))
	for _, s := range stations {
		out = append(out, s.ID)
	}
	return out
}

func TestFilterStations_EmptyQueryReturnsAllInOrder(t *testing.T) {
	dir := domain.DefaultDirectory()
	for _, q := range []string{"", "   ", "\t\n"} {
		got := domain.FilterStations(dir, q)
		if !reflect.DeepEqual(ids(got), []int{1, 2, 3, 4, 5, 6}) {
			t.Errorf("query %q: expected full directory, got %v", q, ids(got))
		}
	}
}

func TestFilterStations_Lagos(t *testing.T) {
	got := domain.FilterStations(domain.DefaultDirectory(), "lagos")
	// Ibadan Ring Road matches through "Lagos-Ibadan Expressway" in its address.
	want := []int{1, 2, 6}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}
	for _, s := range got {
		hay := strings.ToLower(s.Name + "|" + s.Address + "|" + s.Region)
		if !strings.Contains(hay, "lagos") {
			t.Errorf("station %d does not contain lagos", s.ID)
		}
	}
}

func TestFilterStations_MatchesRegion(t *testing.T) {
	got := domain.FilterStations(domain.DefaultDirectory(), "FCT")
	if !reflect.DeepEqual(ids(got), []int{3}) {
		t.Errorf("expected [3], got %v", ids(got))
	}
}

func TestFilterStations_NoMatch(t *testing.T) {
	got := domain.FilterStations(domain.DefaultDirectory(), "Enugu")
	if len(got) != 0 {
		t.Errorf("expected no stations, got %v", ids(got))
	}
}

func TestFilterStations_CaseInsensitive(t *testing.T) {
	dir := domain.DefaultDirectory()
	for _, q := range []string{"lagos", "kano", "road", "crestfield", "victoria island", "24/7", "km"} {
		upper := domain.FilterStations(dir, strings.ToUpper(q))
		lower := domain.FilterStations(dir, strings.ToLower(q))
		if !reflect.DeepEqual(ids(upper), ids(lower)) {
			t.Errorf("query %q: upper %v != lower %v", q, ids(upper), ids(lower))
		}
	}
}

func TestFilterStations_Idempotent(t *testing.T) {
	dir := domain.DefaultDirectory()
	for _, q := range []string{"", "lagos", "Port", "ikeja", "zzz"} {
		once := domain.FilterStations(dir, q)
		twice := domain.FilterStations(once, q)
		if !reflect.DeepEqual(ids(once), ids(twice)) {
			t.Errorf("query %q: %v != %v", q, ids(once), ids(twice))
		}
	}
}

func TestFilterStations_TrimsQuery(t *testing.T) {
	got := domain.FilterStations(domain.DefaultDirectory(), "  Kano  ")
	if !reflect.DeepEqual(ids(got), []int{5}) {
		t.Errorf("expected [5], got %v", ids(got))
	}
}
