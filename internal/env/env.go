package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LookupFunc reports the value of an environment variable and whether it is set.
type LookupFunc func(key string) (string, bool)

// OS reads from the process environment.
var OS LookupFunc = os.LookupEnv

// Map returns a LookupFunc backed by a fixed set of values.
func Map(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

// ParseError reports an environment variable whose value cannot be converted.
type ParseError struct {
	Key   string
	Value string
	Type  string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("environment variable %s=%q is not a valid %s: %v", e.Key, e.Value, e.Type, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type Env[T any] struct {
	Key      string
	Fallback T
	parse    func(string) (T, error)
	typeName string
}

// Get resolves the variable through lookup. An unset variable yields the
// fallback; a set one must parse.
func (e Env[T]) Get(lookup LookupFunc) (T, error) {
	if lookup == nil {
		lookup = OS
	}

	value, exists := lookup(e.Key)
	if !exists {
		return e.Fallback, nil
	}

	v, err := e.parse(value)
	if err != nil {
		var zero T
		return zero, &ParseError{Key: e.Key, Value: value, Type: e.typeName, Err: err}
	}
	return v, nil
}

// String is a helper function to create a string environment variable configuration
func String(key string, fallback string) Env[string] {
	return Env[string]{
		Key:      key,
		Fallback: fallback,
		typeName: "string",
		parse:    func(s string) (string, error) { return s, nil },
	}
}

// Int parses base-10 integers, ignoring surrounding whitespace.
func Int(key string, fallback int) Env[int] {
	return Env[int]{
		Key:      key,
		Fallback: fallback,
		typeName: "integer",
		parse: func(s string) (int, error) {
			return strconv.Atoi(strings.TrimSpace(s))
		},
	}
}

// Bool uses strconv.ParseBool semantics.
func Bool(key string, fallback bool) Env[bool] {
	return Env[bool]{
		Key:      key,
		Fallback: fallback,
		typeName: "boolean",
		parse:    strconv.ParseBool,
	}
}

// Flag is true only when the value equals "true" ignoring case. Any other
// value, including the empty string, is false. It never fails.
func Flag(key string, fallback bool) Env[bool] {
	return Env[bool]{
		Key:      key,
		Fallback: fallback,
		typeName: "flag",
		parse: func(s string) (bool, error) {
			return strings.EqualFold(s, "true"), nil
		},
	}
}

// Duration is a helper function to create a time.Duration environment variable configuration
func Duration(key string, fallback time.Duration) Env[time.Duration] {
	return Env[time.Duration]{
		Key:      key,
		Fallback: fallback,
		typeName: "duration",
		parse: func(s string) (time.Duration, error) {
			return time.ParseDuration(strings.TrimSpace(s))
		},
	}
}

// Strings splits a comma separated list and drops empty items.
func Strings(key string, fallback []string) Env[[]string] {
	return Env[[]string]{
		Key:      key,
		Fallback: fallback,
		typeName: "list",
		parse: func(s string) ([]string, error) {
			var out []string
			for _, part := range strings.Split(s, ",") {
				if p := strings.TrimSpace(part); p != "" {
					out = append(out, p)
				}
			}
			return out, nil
		},
	}
}
