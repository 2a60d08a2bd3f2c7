package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/karankamboj/scheduling-shows/models"
)

// Config covers everything the engine needs to know about the site:
// pod inventory, operating hours, show durations, and demand defaults.
// Default() reproduces the production site configuration; a YAML file
// can override any field.
type Config struct {
	// BufferPct is applied multiplicatively to student counts before
	// rounding up to get the seat requirement.
	BufferPct       float64 `yaml:"buffer_pct"`
	DefaultStudents int     `yaml:"default_students"`

	Pods []models.Pod `yaml:"pods"`

	// ShowLengthByPrefix maps the first word of a course name to a show
	// duration in minutes. Courses with no matching prefix use
	// DefaultShowLength.
	ShowLengthByPrefix map[string]int `yaml:"show_length_by_prefix"`
	DefaultShowLength  int            `yaml:"default_show_length"`

	BreakLength int `yaml:"break_length"` // minutes between different activities in one pod

	OpenOffset         int `yaml:"open_offset"`          // minutes from midnight
	CloseOffsetRegular int `yaml:"close_offset_regular"` // Mon-Thu
	CloseOffsetFriday  int `yaml:"close_offset_friday"`
	StepMinutes        int `yaml:"step_minutes"` // start-time grid

	// Students maps course name to enrolled student count. Courses not
	// present use DefaultStudents.
	Students map[string]int `yaml:"students"`

	// Holidays are dates excluded from scheduling, as YYYY-MM-DD.
	Holidays []Date `yaml:"holidays"`
}

// Date is a whole calendar date in YAML (YYYY-MM-DD).
type Date time.Time

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(value.Value))
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	*d = Date(t)
	return nil
}

func (d Date) MarshalYAML() (interface{}, error) {
	return time.Time(d).Format("2006-01-02"), nil
}

// Time returns the date as a time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return time.Time(d)
}

// Default returns the built-in site configuration.
func Default() *Config {
	return &Config{
		BufferPct:       0.10,
		DefaultStudents: 200,
		Pods: []models.Pod{
			{ID: "CRTVC 1", Capacity: 6, OpsGroup: "B"},
			{ID: "CRTVC 2", Capacity: 6, OpsGroup: "B"},
			{ID: "CRTVC 3", Capacity: 24, OpsGroup: "A"},
			{ID: "CRTVC 4", Capacity: 24, OpsGroup: "A"},
			{ID: "CRTVC 5", Capacity: 28, OpsGroup: "B"}, // 27 + 1
			{ID: "CRTVC 6", Capacity: 28, OpsGroup: "B"}, // 27 + 1
		},
		ShowLengthByPrefix: map[string]int{
			"Bio":       30,
			"CHM":       30,
			"Astronomy": 30,
			"Art":       30,
			"Scm":       20,
		},
		DefaultShowLength:  20,
		BreakLength:        10,
		OpenOffset:         9 * 60,  // 09:00
		CloseOffsetRegular: 17 * 60, // 17:00 Mon-Thu
		CloseOffsetFriday:  13 * 60, // 13:00 Friday
		StepMinutes:        5,
		Students:           map[string]int{},
	}
}

// Load reads a YAML configuration file over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects configurations the allocator cannot run against.
func (c *Config) Validate() error {
	if len(c.Pods) == 0 {
		return fmt.Errorf("config: no pods defined")
	}
	seen := make(map[string]bool, len(c.Pods))
	for _, p := range c.Pods {
		if p.ID == "" {
			return fmt.Errorf("config: pod with empty id")
		}
		if seen[p.ID] {
			return fmt.Errorf("config: duplicate pod id %q", p.ID)
		}
		seen[p.ID] = true
		if p.Capacity <= 0 {
			return fmt.Errorf("config: pod %q has non-positive capacity %d", p.ID, p.Capacity)
		}
		if p.OpsGroup == "" {
			return fmt.Errorf("config: pod %q has no ops group", p.ID)
		}
	}
	if c.BufferPct < 0 {
		return fmt.Errorf("config: negative buffer_pct %v", c.BufferPct)
	}
	if c.DefaultShowLength <= 0 {
		return fmt.Errorf("config: non-positive default_show_length %d", c.DefaultShowLength)
	}
	if c.StepMinutes <= 0 {
		return fmt.Errorf("config: non-positive step_minutes %d", c.StepMinutes)
	}
	if c.BreakLength < 0 {
		return fmt.Errorf("config: negative break_length %d", c.BreakLength)
	}
	if c.OpenOffset < 0 || c.OpenOffset >= 24*60 {
		return fmt.Errorf("config: open_offset %d out of range", c.OpenOffset)
	}
	if c.CloseOffsetRegular <= c.OpenOffset {
		return fmt.Errorf("config: close_offset_regular %d not after open_offset %d", c.CloseOffsetRegular, c.OpenOffset)
	}
	if c.CloseOffsetFriday <= c.OpenOffset {
		return fmt.Errorf("config: close_offset_friday %d not after open_offset %d", c.CloseOffsetFriday, c.OpenOffset)
	}
	for prefix, length := range c.ShowLengthByPrefix {
		if length <= 0 {
			return fmt.Errorf("config: non-positive show length %d for prefix %q", length, prefix)
		}
	}
	return nil
}

// ShowLength resolves the show duration for a course from its name
// prefix, falling back to the default for unmapped courses.
func (c *Config) ShowLength(course string) int {
	fields := strings.Fields(course)
	if len(fields) == 0 {
		return c.DefaultShowLength
	}
	if length, ok := c.ShowLengthByPrefix[fields[0]]; ok {
		return length
	}
	return c.DefaultShowLength
}

// StudentsFor returns the enrolled count for a course, or the configured
// default when the course has no explicit entry.
func (c *Config) StudentsFor(course string) int {
	if n, ok := c.Students[course]; ok {
		return n
	}
	return c.DefaultStudents
}

// HolidayDates returns the holiday set as time.Time values.
func (c *Config) HolidayDates() []time.Time {
	out := make([]time.Time, len(c.Holidays))
	for i, d := range c.Holidays {
		out[i] = d.Time()
	}
	return out
}

// MaxPodCapacity returns the largest configured pod capacity.
func (c *Config) MaxPodCapacity() int {
	max := 0
	for _, p := range c.Pods {
		if p.Capacity > max {
			max = p.Capacity
		}
	}
	return max
}
