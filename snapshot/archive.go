package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"locoveh/entity"
	"locoveh/vehicle"
)

var ErrNotFound = errors.New("snapshot not found")

// Record is one archived snapshot. Data holds the saved file.
type Record struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"uniqueIndex"`
	Title     string
	Year      uint16
	Day       uint32
	Vehicles  int
	Checksum  uint32
	Data      []byte
	CreatedAt time.Time
}

// Archive keeps named snapshots in an SQLite database.
type Archive struct {
	DB     *gorm.DB
	Logger zerolog.Logger
}

// OpenArchive opens the database at path, or a private in-memory one when
// path is empty.
func OpenArchive(path string, log zerolog.Logger) (*Archive, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening snapshot archive: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if path == "" {
		// every connection to :memory: is a new database
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error migrating snapshot archive: %w", err)
	}
	if path != "" {
		log.Info().Str("path", path).Msg("Using SQLite snapshot archive")
	} else {
		log.Info().Msg("Using in-memory SQLite snapshot archive")
	}
	return &Archive{DB: db, Logger: log}, nil
}

func (a *Archive) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// VehicleCount counts the head records among the slots.
func (s *Snapshot) VehicleCount() int {
	n := 0
	for _, slot := range s.Slots {
		if entity.BaseKind(slot[0]) == entity.KindVehicle && vehicle.Kind(slot[1]) == vehicle.KindHead {
			n++
		}
	}
	return n
}

// Put saves s under name, replacing an earlier snapshot of that name.
func (a *Archive) Put(name string, s *Snapshot) error {
	var buf bytes.Buffer
	if err := s.Save(&buf); err != nil {
		return err
	}
	rec := Record{
		Name:     name,
		Title:    s.Title,
		Year:     s.Year,
		Day:      s.Day,
		Vehicles: s.VehicleCount(),
		Checksum: s.Checksum,
		Data:     buf.Bytes(),
	}
	err := a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("name = ?", name).Delete(&Record{}).Error; err != nil {
			return err
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return fmt.Errorf("error archiving snapshot %q: %w", name, err)
	}
	a.Logger.Debug().Str("name", name).Int("vehicles", rec.Vehicles).Int("bytes", len(rec.Data)).Msg("Archived snapshot")
	return nil
}

// Get loads the snapshot saved under name.
func (a *Archive) Get(name string) (*Snapshot, error) {
	var rec Record
	err := a.DB.Where("name = ?", name).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("snapshot %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return Load(&bytesFile{data: rec.Data})
}

// List returns the archived snapshots by name, without their data.
func (a *Archive) List() ([]Record, error) {
	var recs []Record
	err := a.DB.Model(&Record{}).
		Select("id", "name", "title", "year", "day", "vehicles", "checksum", "created_at").
		Order("name").
		Find(&recs).Error
	return recs, err
}
