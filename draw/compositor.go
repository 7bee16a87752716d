package draw

import (
	"errors"
	"fmt"
	"image"

	"locoveh/company"
	"locoveh/config"
	"locoveh/object"
	"locoveh/vehicle"
)

var ErrUnknownCompany = errors.New("unknown company")

// Compositor draws vehicles onto a Surface. It only reads the object store
// and the records it is given; callers drawing a live vehicle from another
// goroutine hold the world's read lock.
type Compositor struct {
	Objects   object.Store
	Companies *company.Registry

	// Bodies are drawn back to front while the yaw is in
	// [ReverseArcStart, ReverseArcEnd).
	ReverseArcStart uint8
	ReverseArcEnd   uint8
	// InlineYaw is the fixed view of list rows; InlineBaseline moves the
	// row origin down to the rail.
	InlineYaw      uint8
	InlineBaseline int
}

func NewCompositor(cfg config.Config, objects object.Store, companies *company.Registry) *Compositor {
	return &Compositor{
		Objects:         objects,
		Companies:       companies,
		ReverseArcStart: cfg.ReverseArcStart,
		ReverseArcEnd:   cfg.ReverseArcEnd,
		InlineYaw:       cfg.InlineYaw,
		InlineBaseline:  cfg.InlineBaseline,
	}
}

// DisplayOffset is how far the vehicle sits below its track's surface
// line.
func (c *Compositor) DisplayOffset(obj *object.Vehicle) int {
	if obj.Mode == object.ModeRoad {
		if obj.TrackType == object.TrackTypeNone {
			return 0
		}
		if r, ok := c.Objects.Road(obj.TrackType); ok {
			return int(r.DisplayOffset)
		}
		return 0
	}
	if obj.TrackType == object.TrackTypeNone {
		return 3
	}
	if t, ok := c.Objects.Track(obj.TrackType); ok {
		return int(t.DisplayOffset)
	}
	return 0
}

func (c *Compositor) bodiesReversed(yaw uint8) bool {
	return yaw >= c.ReverseArcStart && yaw < c.ReverseArcEnd
}

func (c *Compositor) vehicleObject(id uint16) (*object.Vehicle, error) {
	obj, ok := c.Objects.Vehicle(id)
	if !ok {
		return nil, fmt.Errorf("vehicle object %d: %w", id, object.ErrNotFound)
	}
	return obj, nil
}

func (c *Compositor) companyColours(owner company.ID, obj *object.Vehicle) (company.ColourScheme, error) {
	co, ok := c.Companies.Get(owner)
	if !ok {
		return company.ColourScheme{}, fmt.Errorf("company %d: %w", owner, ErrUnknownCompany)
	}
	return co.VehicleColourScheme(obj.ColourType), nil
}

// DrawVehicleOverview draws an object centred on offset. Bogies go first,
// then bodies in the order that keeps nearer bodies on top.
func (c *Compositor) DrawVehicleOverview(s Surface, offset image.Point, obj *object.Vehicle, yaw, roll uint8, colours company.ColourScheme) {
	offset.Y += c.DisplayOffset(obj)
	d := ObjectItems(obj, yaw, roll, colours)
	mid := d.TotalDistance / 2

	drawItem := func(it Item) {
		p := GameToScreen(ComputeXYVector(mid-it.Dist, yaw).Div(4), 0, 0)
		s.DrawImage(offset.Add(p), it.Image)
	}
	for _, it := range d.Items {
		if !it.IsBody {
			drawItem(it)
		}
	}
	if c.bodiesReversed(yaw) {
		for i := len(d.Items) - 1; i >= 0; i-- {
			if d.Items[i].IsBody {
				drawItem(d.Items[i])
			}
		}
		return
	}
	for _, it := range d.Items {
		if it.IsBody {
			drawItem(it)
		}
	}
}

// DrawCompanyVehicleOverview draws an object in the colours the owner uses
// for its colour type.
func (c *Compositor) DrawCompanyVehicleOverview(s Surface, offset image.Point, objectID uint16, yaw, roll uint8, owner company.ID) error {
	obj, err := c.vehicleObject(objectID)
	if err != nil {
		return err
	}
	colours, err := c.companyColours(owner, obj)
	if err != nil {
		return err
	}
	c.DrawVehicleOverview(s, offset, obj, yaw, roll, colours)
	return nil
}

// DrawVehicleInline draws an object as a list row starting at loc and
// returns its width in pixels.
func (c *Compositor) DrawVehicleInline(s Surface, objectID uint16, owner company.ID, loc image.Point) (int, error) {
	obj, err := c.vehicleObject(objectID)
	if err != nil {
		return 0, err
	}
	colours, err := c.companyColours(owner, obj)
	if err != nil {
		return 0, err
	}
	loc.Y += c.InlineBaseline + c.DisplayOffset(obj)
	items, width := ObjectItems(obj, c.InlineYaw, 0, colours).screen(c.InlineYaw)
	for _, it := range items {
		s.DrawImage(loc.Add(image.Pt(int(it.Dist), 0)), it.Image)
	}
	return width, nil
}

func (c *Compositor) carItems(car vehicle.Car, mode InlineMode) (*object.Vehicle, []Item, int, error) {
	obj, err := c.vehicleObject(car.Front.ObjectID)
	if err != nil {
		return nil, nil, 0, err
	}
	items, width := CarItems(obj, car, c.InlineYaw, mode).screen(c.InlineYaw)
	return obj, items, width, nil
}

// DrawCarInline draws a built car as a list row starting at loc and
// returns its width in pixels.
func (c *Compositor) DrawCarInline(s Surface, car vehicle.Car, loc image.Point, mode InlineMode) (int, error) {
	obj, items, width, err := c.carItems(car, mode)
	if err != nil {
		return 0, err
	}
	loc.Y += c.InlineBaseline + c.DisplayOffset(obj)
	for _, it := range items {
		s.DrawImage(loc.Add(image.Pt(int(it.Dist), 0)), it.Image)
	}
	return width, nil
}

// DrawCarInlineDisabled draws a car greyed out: a dark silhouette offset
// by one pixel under a lighter one.
func (c *Compositor) DrawCarInlineDisabled(s Surface, car vehicle.Car, loc image.Point, mode InlineMode, colour uint8) (int, error) {
	obj, items, width, err := c.carItems(car, mode)
	if err != nil {
		return 0, err
	}
	loc.Y += c.InlineBaseline + c.DisplayOffset(obj)
	for _, it := range items {
		p := loc.Add(image.Pt(int(it.Dist), 0))
		s.DrawImageSolid(p.Add(image.Pt(1, 1)), it.Image, Shade{Colour: colour, Level: 5})
		s.DrawImageSolid(p, it.Image, Shade{Colour: colour, Level: 3})
	}
	return width, nil
}

// WidthVehicleInline is the width DrawCarInline would use.
func (c *Compositor) WidthVehicleInline(car vehicle.Car) (int, error) {
	_, _, width, err := c.carItems(car, InlineBasic)
	return width, err
}

// DrawTrainInline draws every car of a train side by side, animated, and
// returns the x just past the last car.
func (c *Compositor) DrawTrainInline(s Surface, t *vehicle.Train, loc image.Point) (int, error) {
	for car := range t.Cars() {
		w, err := c.DrawCarInline(s, car, loc, InlineAnimated)
		if err != nil {
			return loc.X, err
		}
		loc.X += w
	}
	return loc.X, t.Err()
}
