package config

import (
	"fmt"
	"strconv"
	"time"
)

// Duration is a time.Duration written as a string like "11.5s" in both
// YAML and TOML files. A bare integer is read as nanoseconds.
type Duration struct {
	time.Duration
}

// Seconds is a shorthand for building a Duration in defaults and tests.
func Seconds(s float64) Duration {
	return Duration{time.Duration(s * float64(time.Second))}
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	if v, err := time.ParseDuration(s); err == nil {
		d.Duration = v
		return nil
	}
	ns, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	d.Duration = time.Duration(ns)
	return nil
}
