package object_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locoveh/object"
	"locoveh/object/objecttest"
)

func TestLength(t *testing.T) {
	assert.Equal(t, 24, objecttest.LocomotiveObject().Length())
	// both segments count, the reversed flag only selects the mirrored sheet
	assert.Equal(t, 40, objecttest.CarriageObject().Length())
	assert.Equal(t, 48, objecttest.TramObject().Length())

	v := objecttest.CarriageObject()
	v.Segments[1].BodySprite = object.SpriteNull
	assert.Equal(t, 20, v.Length())
}

func TestSegmentBodySprite(t *testing.T) {
	s := object.Segment{BodySprite: 1 | object.SpriteReversed}
	idx, ok := s.BodySpriteIndex()
	assert.True(t, ok)
	assert.Equal(t, uint8(1), idx)
	assert.True(t, s.Reversed())

	s.BodySprite = object.SpriteNull
	_, ok = s.BodySpriteIndex()
	assert.False(t, ok)
	assert.False(t, s.Reversed())
}

func TestValidate(t *testing.T) {
	for _, v := range objecttest.Catalogue().Vehicles {
		assert.NoError(t, v.Validate(), v.Name)
	}

	tests := []struct {
		name   string
		mutate func(v *object.Vehicle)
	}{
		{"no segments", func(v *object.Vehicle) { v.NumSegments = 0 }},
		{"too many segments", func(v *object.Vehicle) { v.NumSegments = 5 }},
		{"bad mode", func(v *object.Vehicle) { v.Mode = 9 }},
		{"bad type", func(v *object.Vehicle) { v.Type = 6 }},
		{"bogie sprite", func(v *object.Vehicle) { v.Segments[0].FrontBogieSprite = 2 }},
		{"body sprite", func(v *object.Vehicle) { v.Segments[0].BodySprite = 4 }},
		{"cargo types", func(v *object.Vehicle) { v.NumSimultaneousCargoTypes = 3 }},
		{"accuracy", func(v *object.Vehicle) { v.BodySprites[2].FlatYawAccuracy = 8 }},
		{"compatible", func(v *object.Vehicle) { v.CompatibleVehicles = make([]uint16, 9) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := objecttest.LocomotiveObject()
			tt.mutate(v)
			assert.Error(t, v.Validate())
		})
	}
}

func TestLoadCatalogue(t *testing.T) {
	c, err := object.LoadCatalogue(filepath.Join("testdata", "catalogue.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2}, c.VehicleIDs())

	loco, ok := c.Vehicle(1)
	require.True(t, ok)
	assert.Equal(t, "Class 08 Shunter", loco.Name)
	assert.Equal(t, uint16(1953), loco.Designed)
	assert.Equal(t, uint8(12), loco.BodySprites[0].BogeyPosition)
	assert.True(t, loco.BodySprites[0].Has(object.BodyHasGentleSprites))
	assert.Equal(t, uint32(2900), loco.BogieSprites[0].FlatImageIDs)

	coach, ok := c.Vehicle(2)
	require.True(t, ok)
	assert.Equal(t, uint8(129), coach.Segments[1].BodySprite)
	assert.Equal(t, [2]uint8{40, 10}, coach.MaxCargo)

	track, ok := c.Track(0)
	require.True(t, ok)
	assert.Equal(t, int8(2), track.DisplayOffset)
	road, ok := c.Road(1)
	require.True(t, ok)
	assert.Equal(t, int8(1), road.DisplayOffset)
	cargo, ok := c.Cargo(1)
	require.True(t, ok)
	assert.Equal(t, uint16(32), cargo.UnitWeight)

	_, ok = c.Vehicle(3)
	assert.False(t, ok)
}

func TestLoadCatalogueRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	data := `{"vehicles": {"7": {"name": "Broken", "num_segments": 0}}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	_, err := object.LoadCatalogue(path)
	assert.ErrorContains(t, err, "vehicle object 7")
}
