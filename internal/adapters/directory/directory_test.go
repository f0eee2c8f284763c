package directory_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/crestfield/internal/adapters/directory"
	"github.com/samirrijal/crestfield/internal/core/domain"
)

func TestRepository_ReturnsCopies(t *testing.T) {
	repo, err := directory.Load(context.Background(), directory.Builtin{})
	require.NoError(t, err)
	assert.Equal(t, 6, repo.Len())

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	list[0].Services[0] = "LPG"

	st, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "PMS", st.Services[0])
}

func TestRepository_GetByIDMissing(t *testing.T) {
	repo, err := directory.NewRepository(domain.DefaultDirectory())
	require.NoError(t, err)

	_, err = repo.GetByID(context.Background(), 99)
	assert.True(t, errors.Is(err, domain.ErrStationNotFound))
}

func TestRepository_RejectsInvalidDirectory(t *testing.T) {
	dir := domain.DefaultDirectory()
	dir[1].ID = dir[0].ID
	_, err := directory.NewRepository(dir)
	assert.ErrorContains(t, err, "duplicate id")
}

func TestRepository_FindNearby(t *testing.T) {
	repo, err := directory.NewRepository(domain.DefaultDirectory())
	require.NoError(t, err)

	got, err := repo.FindNearby(context.Background(), 12.0, 8.59, 10_000, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Crestfield Kano Industrial", got[0].Name)
	require.NotNil(t, got[0].Distance)
}

func TestYAMLSource_RoundTrip(t *testing.T) {
	data, err := directory.MarshalYAML(domain.DefaultDirectory())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "stations.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	repo, err := directory.Load(context.Background(), directory.YAMLSource{Path: path})
	require.NoError(t, err)

	st, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "FCT", st.Region)
	assert.Equal(t, 9.0579, st.Coordinates.Lat)
}

func TestParseYAML(t *testing.T) {
	doc := []byte(`
stations:
  - id: 10
    name: Crestfield Enugu
    address: 3 Ogui Road, Enugu
    region: Enugu
    hours: 24/7
    phone: "+2349051600569"
    services: [PMS, AGO]
    coordinates: {lat: 6.4584, lon: 7.5464}
`)
	stations, err := directory.ParseYAML(doc)
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, []string{"PMS", "AGO"}, stations[0].Services)
}

func TestParseYAML_Errors(t *testing.T) {
	_, err := directory.ParseYAML([]byte("stations: []\n"))
	assert.Error(t, err)

	_, err = directory.ParseYAML([]byte("stations:\n  - id: 1\n    colour: red\n"))
	assert.Error(t, err, "unknown fields must be rejected")
}
