package company

import (
	"fmt"

	"locoveh/object"
)

type ID uint8

const (
	Null         ID = 0xFF
	MaxCompanies    = 15
	// number of vehicle colour categories that can be overridden
	NumColourTypes = 10
)

type ColourScheme struct {
	Primary, Secondary uint8
}

type Company struct {
	ID   ID
	Name string
	// Human marks player controlled companies; the rest count towards the
	// AI vehicle cap.
	Human                   bool
	MainColours             ColourScheme
	VehicleColours          [NumColourTypes]ColourScheme // indexed by colour type - 1
	CustomVehicleColoursSet uint32                       // bit n set when colour type n is overridden
	TransportTypeCount      [object.NumVehicleTypes]uint16
	UnlockedVehicles        map[uint16]bool
}

// VehicleColourScheme returns the colours used for new vehicles of the given
// object colour type.
func (c *Company) VehicleColourScheme(colourType uint8) ColourScheme {
	if colourType != 0 && colourType <= NumColourTypes && c.CustomVehicleColoursSet&(1<<colourType) != 0 {
		return c.VehicleColours[colourType-1]
	}
	return c.MainColours
}

func (c *Company) SetVehicleColours(colourType uint8, cs ColourScheme) error {
	if colourType == 0 || colourType > NumColourTypes {
		return fmt.Errorf("colour type %d out of range 1..%d", colourType, NumColourTypes)
	}
	c.VehicleColours[colourType-1] = cs
	c.CustomVehicleColoursSet |= 1 << colourType
	return nil
}

func (c *Company) IsVehicleUnlocked(objectID uint16) bool {
	return c.UnlockedVehicles[objectID]
}

func (c *Company) TotalVehicles() int {
	total := 0
	for _, n := range c.TransportTypeCount {
		total += int(n)
	}
	return total
}

// Registry holds every company in the game.
type Registry struct {
	companies [MaxCompanies]*Company
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Add(c *Company) error {
	if int(c.ID) >= MaxCompanies {
		return fmt.Errorf("company id %d out of range", c.ID)
	}
	if r.companies[c.ID] != nil {
		return fmt.Errorf("company %d already exists", c.ID)
	}
	if c.UnlockedVehicles == nil {
		c.UnlockedVehicles = map[uint16]bool{}
	}
	r.companies[c.ID] = c
	return nil
}

func (r *Registry) Get(id ID) (*Company, bool) {
	if int(id) >= MaxCompanies || r.companies[id] == nil {
		return nil, false
	}
	return r.companies[id], true
}

func (r *Registry) IsHuman(id ID) bool {
	c, ok := r.Get(id)
	return ok && c.Human
}

// TotalAIVehicles counts the vehicles of every non-human company.
func (r *Registry) TotalAIVehicles() int {
	total := 0
	for _, c := range r.companies {
		if c != nil && !c.Human {
			total += c.TotalVehicles()
		}
	}
	return total
}
