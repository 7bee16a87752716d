package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	PoolCapacity     int
	OrdersCapacity   int
	RoutingCapacity  int
	MaxAIVehicles    int
	MaxRoadLength    int
	BuildLocked      bool
	StrictChain      bool
	ReverseArcStart  uint8 // yaw range in which bodies are composited back to front
	ReverseArcEnd    uint8
	InlineYaw        uint8
	InlineBaseline   int
	BaseCostFactor   uint32
	Seed0, Seed1     uint32
	LogLevel         string
	LogPretty        bool
	SnapshotDatabase string // empty for in-memory
}

func setDefaults() {
	viper.SetDefault("pool.capacity", 20000)
	viper.SetDefault("orders.capacity", 256000)
	viper.SetDefault("routing.capacity", 1000)

	viper.SetDefault("vehicles.max_ai", 500)
	viper.SetDefault("vehicles.max_road_length", 176)
	viper.SetDefault("vehicles.build_locked", false)
	viper.SetDefault("vehicles.strict_chain", false)

	viper.SetDefault("draw.reverse_arc_start", 8)
	viper.SetDefault("draw.reverse_arc_end", 40)
	viper.SetDefault("draw.inline_yaw", 40)
	viper.SetDefault("draw.inline_baseline", 19)

	viper.SetDefault("economy.base_cost_factor", 1024)
	viper.SetDefault("economy.seed0", 0x1234567F)
	viper.SetDefault("economy.seed1", 0x789ABCDE)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", true)

	viper.SetDefault("snapshot.database", "")
}

// Load sets the defaults and, when path is not empty, merges the file at
// path on top of them. The file type is taken from its extension.
func Load(path string) (Config, error) {
	setDefaults()
	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}
	c, err := current()
	if err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// yawStep reads a key holding a step of the 64 step rotation circle; 64
// itself is allowed as the end of a range.
func yawStep(key string) (uint8, error) {
	v := viper.GetInt(key)
	if v < 0 || v > 64 {
		return 0, fmt.Errorf("%s must be in 0..64, got %d", key, v)
	}
	return uint8(v), nil
}

func current() (Config, error) {
	var yaws [3]uint8
	for i, key := range []string{"draw.reverse_arc_start", "draw.reverse_arc_end", "draw.inline_yaw"} {
		v, err := yawStep(key)
		if err != nil {
			return Config{}, err
		}
		yaws[i] = v
	}
	return Config{
		PoolCapacity:     viper.GetInt("pool.capacity"),
		OrdersCapacity:   viper.GetInt("orders.capacity"),
		RoutingCapacity:  viper.GetInt("routing.capacity"),
		MaxAIVehicles:    viper.GetInt("vehicles.max_ai"),
		MaxRoadLength:    viper.GetInt("vehicles.max_road_length"),
		BuildLocked:      viper.GetBool("vehicles.build_locked"),
		StrictChain:      viper.GetBool("vehicles.strict_chain"),
		ReverseArcStart:  yaws[0],
		ReverseArcEnd:    yaws[1],
		InlineYaw:        yaws[2],
		InlineBaseline:   viper.GetInt("draw.inline_baseline"),
		BaseCostFactor:   viper.GetUint32("economy.base_cost_factor"),
		Seed0:            viper.GetUint32("economy.seed0"),
		Seed1:            viper.GetUint32("economy.seed1"),
		LogLevel:         viper.GetString("log.level"),
		LogPretty:        viper.GetBool("log.pretty"),
		SnapshotDatabase: viper.GetString("snapshot.database"),
	}, nil
}

func (c Config) Validate() error {
	if c.PoolCapacity <= 0 || c.PoolCapacity > 0xFFFF {
		return fmt.Errorf("pool.capacity must be in 1..65535, got %d", c.PoolCapacity)
	}
	if c.OrdersCapacity <= 0 {
		return fmt.Errorf("orders.capacity must be positive, got %d", c.OrdersCapacity)
	}
	if c.RoutingCapacity <= 0 || c.RoutingCapacity > 1024 {
		return fmt.Errorf("routing.capacity must be in 1..1024, got %d", c.RoutingCapacity)
	}
	if c.ReverseArcStart >= 64 || c.ReverseArcEnd > 64 || c.ReverseArcStart > c.ReverseArcEnd {
		return fmt.Errorf("draw reverse arc [%d,%d) is not within a 64 step circle", c.ReverseArcStart, c.ReverseArcEnd)
	}
	if c.InlineYaw >= 64 {
		return fmt.Errorf("draw.inline_yaw must be below 64, got %d", c.InlineYaw)
	}
	return nil
}
