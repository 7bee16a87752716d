package object

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/viper"
)

var ErrNotFound = errors.New("object not found")

type Track struct {
	Name          string `mapstructure:"name"`
	DisplayOffset int8   `mapstructure:"display_offset"`
}

type Road struct {
	Name          string `mapstructure:"name"`
	DisplayOffset int8   `mapstructure:"display_offset"`
}

type Cargo struct {
	Name       string `mapstructure:"name"`
	UnitWeight uint16 `mapstructure:"unit_weight"`
}

// Store is the read-only view of loaded objects used by construction and
// drawing.
type Store interface {
	Vehicle(id uint16) (*Vehicle, bool)
	Track(id uint8) (*Track, bool)
	Road(id uint8) (*Road, bool)
	Cargo(id uint8) (*Cargo, bool)
}

// Catalogue is an in-memory Store keyed by object index.
type Catalogue struct {
	Vehicles map[uint16]*Vehicle `mapstructure:"vehicles"`
	Tracks   map[uint8]*Track    `mapstructure:"tracks"`
	Roads    map[uint8]*Road     `mapstructure:"roads"`
	Cargoes  map[uint8]*Cargo    `mapstructure:"cargo"`
}

func NewCatalogue() *Catalogue {
	return &Catalogue{
		Vehicles: map[uint16]*Vehicle{},
		Tracks:   map[uint8]*Track{},
		Roads:    map[uint8]*Road{},
		Cargoes:  map[uint8]*Cargo{},
	}
}

func (c *Catalogue) Vehicle(id uint16) (*Vehicle, bool) {
	v, ok := c.Vehicles[id]
	return v, ok
}

func (c *Catalogue) Track(id uint8) (*Track, bool) {
	t, ok := c.Tracks[id]
	return t, ok
}

func (c *Catalogue) Road(id uint8) (*Road, bool) {
	r, ok := c.Roads[id]
	return r, ok
}

func (c *Catalogue) Cargo(id uint8) (*Cargo, bool) {
	r, ok := c.Cargoes[id]
	return r, ok
}

// VehicleIDs returns the loaded vehicle object ids in ascending order.
func (c *Catalogue) VehicleIDs() []uint16 {
	ids := make([]uint16, 0, len(c.Vehicles))
	for id := range c.Vehicles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (c *Catalogue) Validate() error {
	for _, id := range c.VehicleIDs() {
		if err := c.Vehicles[id].Validate(); err != nil {
			return fmt.Errorf("vehicle object %d: %w", id, err)
		}
	}
	return nil
}

// LoadCatalogue reads object definitions from a JSON, YAML or TOML file.
// A separate viper instance is used so the catalogue does not mix with the
// process configuration.
func LoadCatalogue(path string) (*Catalogue, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading object catalogue: %w", err)
	}
	c := NewCatalogue()
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("error decoding object catalogue: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
