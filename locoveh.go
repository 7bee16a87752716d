package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"locoveh/company"
	"locoveh/config"
	"locoveh/draw"
	"locoveh/entity"
	"locoveh/gfx"
	"locoveh/logging"
	"locoveh/object"
	"locoveh/snapshot"
	"locoveh/vehicle"
)

var (
	configFile    = flag.String("config", "", "Configuration file (JSON, YAML or TOML)")
	catalogueFile = flag.String("catalogue", "catalogue.yaml", "Vehicle object catalogue")
	outFile       = flag.String("out", "vehicle.png", "PNG file to render the vehicle to")
	snapshotFile  = flag.String("snapshot", "", "Save a snapshot of the world to this file")
	yaw           = flag.Uint("yaw", 40, "Overview rotation, 0..63")
	zoom          = flag.Int("zoom", 2, "Pixel zoom of the rendered image")
)

const (
	owner       company.ID = 0
	imageWidth             = 320
	imageHeight            = 160
)

func parseObjects(args []string) ([]uint16, error) {
	var ids []uint16
	for _, a := range args {
		id, err := strconv.ParseUint(a, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", a, err)
		}
		ids = append(ids, uint16(id))
	}
	return ids, nil
}

func newCompanies(catalogue *object.Catalogue) (*company.Registry, error) {
	unlocked := map[uint16]bool{}
	for _, id := range catalogue.VehicleIDs() {
		unlocked[id] = true
	}
	r := company.NewRegistry()
	err := r.Add(&company.Company{
		ID:               owner,
		Name:             "Player",
		Human:            true,
		MainColours:      company.ColourScheme{Primary: 8, Secondary: 20},
		UnlockedVehicles: unlocked,
	})
	return r, err
}

// build creates the vehicle from the first object and appends the rest as
// cars. The total cost is returned with the head.
func build(w *vehicle.World, objects []uint16) (entity.ID, int32, error) {
	head := entity.Null
	var total int32
	for _, obj := range objects {
		cost, id, err := w.CreateVehicle(vehicle.FlagApply, obj, head)
		if err != nil {
			return head, total, fmt.Errorf("object %d: %w", obj, err)
		}
		head = id
		total += cost
	}
	return head, total, nil
}

func logChain(log zerolog.Logger, t *vehicle.Train) {
	for r := range t.All() {
		log.Debug().
			Uint16("id", uint16(r.Entity().ID)).
			Stringer("kind", vehicle.KindOf(r)).
			Uint16("object", r.Vehicle().ObjectID).
			Msg("Chain record")
	}
	if err := t.Err(); err != nil {
		log.Error().Err(err).Msg("Chain is malformed")
	}
}

func render(log zerolog.Logger, c *draw.Compositor, t *vehicle.Train, objectID uint16) (image.Image, error) {
	scale := max(*zoom, 1)
	dst := image.NewRGBA(image.Rect(0, 0, imageWidth*scale, imageHeight*scale))
	palette := gfx.DefaultPalette()
	s := gfx.NewImageSurface(dst, gfx.GeneratedAtlas{Width: 24, Height: 16}, palette, log)
	s.Zoom = scale
	s.Fill(palette.Shade(0, 10))

	err := c.DrawCompanyVehicleOverview(s, image.Pt(imageWidth/2, imageHeight/2), objectID, uint8(*yaw)%64, 0, owner)
	if err != nil {
		return nil, err
	}
	end, err := c.DrawTrainInline(s, t, image.Pt(8, imageHeight-24))
	if err != nil {
		return nil, err
	}
	log.Info().Int("width", end-8).Int("missing", s.Missing).Msg("Rendered vehicle")
	return dst, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// saveSnapshot writes the world to path and, when a snapshot database is
// configured, records it there too. It reports whether it was archived.
func saveSnapshot(log zerolog.Logger, cfg config.Config, w *vehicle.World, path string) (bool, error) {
	s, err := snapshot.Capture(w, filepath.Base(path))
	if err != nil {
		return false, err
	}
	f, err := os.Create(path)
	if err != nil {
		return false, err
	}
	if err := s.Save(f); err != nil {
		f.Close()
		return false, err
	}
	if err := f.Close(); err != nil {
		return false, err
	}

	if cfg.SnapshotDatabase == "" {
		log.Info().Str("path", path).Msg("No snapshot database configured, snapshot not archived")
		return false, nil
	}
	a, err := snapshot.OpenArchive(cfg.SnapshotDatabase, log)
	if err != nil {
		return false, err
	}
	defer a.Close()
	if err := a.Put(filepath.Base(path), s); err != nil {
		return false, err
	}
	return true, nil
}

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: locoveh [--config=FILE] [--catalogue=FILE] [--out=PNG] [--snapshot=FILE] OBJECT...")
		os.Exit(2)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogPretty)

	objects, err := parseObjects(flag.Args())
	if err != nil {
		log.Fatal().Err(err).Msg("Bad object id")
	}
	catalogue, err := object.LoadCatalogue(*catalogueFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", *catalogueFile).Msg("Failed to load catalogue")
	}
	companies, err := newCompanies(catalogue)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up companies")
	}

	w := vehicle.NewWorld(cfg, catalogue, companies, log)
	w.UpdatingCompany = owner
	head, cost, err := build(w, objects)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build vehicle")
	}
	t, err := w.Train(head)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read vehicle")
	}
	log.Info().
		Uint16("head", uint16(head)).
		Int("cars", t.CarCount()).
		Int32("cost", cost).
		Uint16("power", t.Veh2.TotalPower).
		Uint16("weight", t.Veh2.TotalWeight).
		Int16("max_speed", t.Veh2.MaxSpeed).
		Msg("Built vehicle")
	logChain(log, t)

	c := draw.NewCompositor(cfg, catalogue, companies)
	var img image.Image
	err = w.Read(func() error {
		var err error
		img, err = render(log, c, t, objects[0])
		return err
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render vehicle")
	}
	if err := writePNG(*outFile, img); err != nil {
		log.Fatal().Err(err).Str("path", *outFile).Msg("Failed to write image")
	}

	if *snapshotFile != "" {
		archived, err := saveSnapshot(log, cfg, w, *snapshotFile)
		if err != nil {
			log.Fatal().Err(err).Str("path", *snapshotFile).Msg("Failed to save snapshot")
		}
		log.Info().Str("path", *snapshotFile).Bool("archived", archived).Msg("Saved snapshot")
	}
}
