package config

import "time"

// ConfigSource records which layer set a value.
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceConfigFile  ConfigSource = "config.toml"
	SourceEnvironment ConfigSource = "environment"
	SourceFlag        ConfigSource = "flag"
)

func (s ConfigSource) String() string {
	return string(s)
}

// Value is a setting together with the layer it came from.
type Value[T any] struct {
	Value  T
	Source ConfigSource
}

// IsDefault reports whether no layer overrode the built-in value.
func (v Value[T]) IsDefault() bool {
	return v.Source == SourceDefault
}

type (
	StringValue   = Value[string]
	BoolValue     = Value[bool]
	DurationValue = Value[time.Duration]
)

func defaultValue[T any](v T) Value[T] {
	return Value[T]{Value: v, Source: SourceDefault}
}

// NewStringValue returns a string setting at its default.
func NewStringValue(v string) StringValue { return defaultValue(v) }

// NewBoolValue returns a bool setting at its default.
func NewBoolValue(v bool) BoolValue { return defaultValue(v) }

// NewDurationValue returns a duration setting at its default.
func NewDurationValue(v time.Duration) DurationValue { return defaultValue(v) }
