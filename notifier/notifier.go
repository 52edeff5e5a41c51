package notifier

import (
	"errors"
	"fmt"
)

const (
	SlackNotifierName = "SlackNotifier"
	LarkNotifierName  = "LarkNotifier"
)

// DefaultChannel is the channel used when none is given.
const DefaultChannel = "#general"

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrInvalidMessage       = errors.New("invalid message")
)

type Notifier interface {
	Name() string
	Notify(data any)
}

// ConfigError reports the configuration field that failed validation.
type ConfigError struct {
	Field string
	Value any
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: invalid %s: %v", ErrInvalidConfiguration, e.Field, e.Value)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}
