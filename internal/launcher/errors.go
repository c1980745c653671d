package launcher

import (
	"errors"
	"fmt"

	"github.com/Bethel-nz/foodprint/internal/env"
	"github.com/Bethel-nz/foodprint/internal/validator"
)

// ConfigError reports an environment value that could not be turned into
// configuration. Key and Value are empty when the failure spans several
// variables.
type ConfigError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Key == "":
		return fmt.Sprintf("invalid configuration: %v", e.Err)
	case e.Value == "":
		return fmt.Sprintf("invalid configuration %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("invalid configuration %s=%q: %v", e.Key, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// BindError reports that the operating system refused the listening socket.
type BindError struct {
	Addr string
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Addr, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// FactoryError reports that the application factory failed to build an
// application.
type FactoryError struct {
	Err error
}

func (e *FactoryError) Error() string {
	return fmt.Sprintf("create application: %v", e.Err)
}

func (e *FactoryError) Unwrap() error { return e.Err }

// newConfigError names the offending variable when the failure has exactly
// one. Validation failures carry no value, so it is read back through lookup.
func newConfigError(err error, lookup env.LookupFunc) *ConfigError {
	var perr *env.ParseError
	if errors.As(err, &perr) {
		return &ConfigError{Key: perr.Key, Value: perr.Value, Err: err}
	}

	var verr *validator.Error
	if errors.As(err, &verr) && len(verr.FieldErrors) == 1 {
		if lookup == nil {
			lookup = env.OS
		}
		for key := range verr.FieldErrors {
			value, _ := lookup(key)
			return &ConfigError{Key: key, Value: value, Err: err}
		}
	}

	return &ConfigError{Err: err}
}
