// Package config holds the settings of one litequery run and validates them.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// MaxPathLength is the maximum accepted database path length.
	MaxPathLength = 4096
	// MaxCachePages bounds the page cache (1M pages).
	MaxCachePages = 1 << 20
	// DefaultCachePages is the page cache size when none is given.
	DefaultCachePages = 256
)

// ErrInvalid is returned, wrapped, for any configuration that fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Config is the configuration of one command invocation.
type Config struct {
	DatabasePath string `validate:"required,dbpath"`
	Command      string `validate:"required"`
	LogLevel     string `validate:"oneof=debug info warn error"`
	LogFormat    string `validate:"oneof=text json"`
	CachePages   int    `validate:"cachepages"`
}

// Default returns a configuration with every optional field set.
func Default() Config {
	return Config{
		LogLevel:   "warn",
		LogFormat:  "text",
		CachePages: DefaultCachePages,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// dbpath rejects paths no file system would accept.
	if err := v.RegisterValidation("dbpath", func(fl validator.FieldLevel) bool {
		p := fl.Field().String()
		return len(p) <= MaxPathLength && !strings.ContainsRune(p, 0)
	}); err != nil {
		panic(err)
	}
	v.RegisterAlias("cachepages", fmt.Sprintf("gte=0,lte=%d", MaxCachePages))
	return v
}

// Validate checks c against its field rules. All violations are reported
// in one error.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		msgs[i] = describe(fe)
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// describe renders fe by its underlying tag, so aliases such as cachepages
// report the rule that failed.
func describe(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "dbpath":
		return fmt.Sprintf("%s is not a usable file path", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
