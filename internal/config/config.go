package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the application configuration
type Config struct {
	Port           string      `mapstructure:"port"`
	DBPath         string      `mapstructure:"db_path"`
	MigrationsPath string      `mapstructure:"migrations_path"`
	JWTSecret      string      `mapstructure:"jwt_secret"`
	LogFile        string      `mapstructure:"log_file"`
	Paces          PacesConfig `mapstructure:"paces"`
}

// PacesConfig holds all pace-analysis thresholds
type PacesConfig struct {
	WalkingThresholdSPerMi float64          `mapstructure:"walking_threshold_s_per_mi"`
	StrideMaxDurationS     float64          `mapstructure:"stride_max_duration_s"`
	SmoothingWindowS       int              `mapstructure:"smoothing_window_s"`
	MinSegmentDurationS    float64          `mapstructure:"min_segment_duration_s"`
	CourseTolerancePct     float64          `mapstructure:"course_tolerance_pct"`
	TrackDetection         TrackConfig      `mapstructure:"track_detection"`
	MeasuredCourses        []MeasuredCourse `mapstructure:"measured_courses"`
}

// TrackConfig holds track-detection geometry thresholds
type TrackConfig struct {
	WindowSize        int     `mapstructure:"window_size"`
	WindowStep        int     `mapstructure:"window_step"`
	MaxBboxM          float64 `mapstructure:"max_bbox_m"`
	KnownTrackRadiusM float64 `mapstructure:"known_track_radius_m"`
	MatchScoreMax     float64 `mapstructure:"match_score_max"`
	MinShortAxisM     float64 `mapstructure:"min_short_axis_m"`
	MaxShortAxisM     float64 `mapstructure:"max_short_axis_m"`
	MinLongAxisM      float64 `mapstructure:"min_long_axis_m"`
	MaxLongAxisM      float64 `mapstructure:"max_long_axis_m"`
	MinAspectRatio    float64 `mapstructure:"min_aspect_ratio"`
	MaxAspectRatio    float64 `mapstructure:"max_aspect_ratio"`
	MinFillRatio      float64 `mapstructure:"min_fill_ratio"`
	StraightLengthM   float64 `mapstructure:"straight_length_m"`
	TurnRadiusM       float64 `mapstructure:"turn_radius_m"`
	DistanceSnapM     float64 `mapstructure:"distance_snap_m"`
}

// MeasuredCourse is one whitelisted course an interval can snap to
type MeasuredCourse struct {
	Name          string  `mapstructure:"name" json:"name"`
	Lat           float64 `mapstructure:"lat" json:"lat"`
	Lon           float64 `mapstructure:"lon" json:"lon"`
	RadiusM       float64 `mapstructure:"radius_m" json:"radiusM"`
	SnapDistanceM float64 `mapstructure:"snap_distance_m" json:"snapDistanceM"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", ":8080")
	v.SetDefault("db_path", "./data/runpace.db")
	v.SetDefault("migrations_path", "./migrations")
	v.SetDefault("jwt_secret", "change-me-in-production")
	v.SetDefault("log_file", "")

	v.SetDefault("paces.walking_threshold_s_per_mi", 660.0)
	v.SetDefault("paces.stride_max_duration_s", 30.0)
	v.SetDefault("paces.smoothing_window_s", 30)
	v.SetDefault("paces.min_segment_duration_s", 10.0)
	v.SetDefault("paces.course_tolerance_pct", 20.0)

	v.SetDefault("paces.track_detection.window_size", 300)
	v.SetDefault("paces.track_detection.window_step", 50)
	v.SetDefault("paces.track_detection.max_bbox_m", 300.0)
	v.SetDefault("paces.track_detection.known_track_radius_m", 200.0)
	v.SetDefault("paces.track_detection.match_score_max", 0.15)
	v.SetDefault("paces.track_detection.min_short_axis_m", 50.0)
	v.SetDefault("paces.track_detection.max_short_axis_m", 120.0)
	v.SetDefault("paces.track_detection.min_long_axis_m", 120.0)
	v.SetDefault("paces.track_detection.max_long_axis_m", 220.0)
	v.SetDefault("paces.track_detection.min_aspect_ratio", 1.5)
	v.SetDefault("paces.track_detection.max_aspect_ratio", 3.0)
	v.SetDefault("paces.track_detection.min_fill_ratio", 0.75)
	v.SetDefault("paces.track_detection.straight_length_m", 84.39)
	v.SetDefault("paces.track_detection.turn_radius_m", 36.5)
	v.SetDefault("paces.track_detection.distance_snap_m", 100.0)
}

// Load reads configuration from the given YAML file, with RUNPACE_*
// environment variables overriding file values. An empty path loads
// defaults plus environment overrides only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("RUNPACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration, used by tests.
func Default() *Config {
	cfg, _ := Load("")
	return cfg
}
