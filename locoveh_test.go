package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locoveh/config"
	"locoveh/object/objecttest"
	"locoveh/snapshot"
	"locoveh/vehicle"
)

func testWorld(t *testing.T) (config.Config, *vehicle.World) {
	t.Helper()
	cfg := config.Config{
		PoolCapacity:    64,
		OrdersCapacity:  64,
		RoutingCapacity: 16,
		MaxAIVehicles:   500,
		MaxRoadLength:   176,
		BaseCostFactor:  1024,
		Seed0:           0x1234567F,
		Seed1:           0x789ABCDE,
	}
	catalogue := objecttest.Catalogue()
	companies, err := newCompanies(catalogue)
	require.NoError(t, err)
	w := vehicle.NewWorld(cfg, catalogue, companies, zerolog.Nop())
	w.Year = 1953
	return cfg, w
}

func TestParseObjects(t *testing.T) {
	ids, err := parseObjects([]string{"1", "0x2", "10"})
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2, 10}, ids)

	_, err = parseObjects([]string{"70000"})
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	_, w := testWorld(t)
	head, cost, err := build(w, []uint16{objecttest.Locomotive, objecttest.Carriage, objecttest.Carriage})
	require.NoError(t, err)
	assert.Positive(t, cost)
	tr, err := w.Train(head)
	require.NoError(t, err)
	assert.Equal(t, 3, tr.CarCount())

	_, _, err = build(w, []uint16{objecttest.Locomotive, 999})
	assert.Error(t, err)
}

func TestSaveSnapshotWithoutDatabase(t *testing.T) {
	cfg, w := testWorld(t)
	_, _, err := build(w, []uint16{objecttest.Locomotive})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "one.sv")
	archived, err := saveSnapshot(zerolog.Nop(), cfg, w, path)
	require.NoError(t, err)
	assert.False(t, archived)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSaveSnapshotArchives(t *testing.T) {
	cfg, w := testWorld(t)
	_, _, err := build(w, []uint16{objecttest.Locomotive})
	require.NoError(t, err)
	dir := t.TempDir()
	cfg.SnapshotDatabase = filepath.Join(dir, "snapshots.db")

	archived, err := saveSnapshot(zerolog.Nop(), cfg, w, filepath.Join(dir, "two.sv"))
	require.NoError(t, err)
	assert.True(t, archived)

	a, err := snapshot.OpenArchive(cfg.SnapshotDatabase, zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()
	s, err := a.Get("two.sv")
	require.NoError(t, err)
	assert.Equal(t, 1, s.VehicleCount())
}
