package game

import "fmt"

// ConfigError reports a malformed board configuration. Fatal: surfaced
// immediately, never retried.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid board config: %s %s", e.Field, e.Reason)
}

// TargetUnreachableError means the solver exhausted its retry budget without
// landing in the requested slot. Fatal for the request; callers surface it
// rather than display a mismatched outcome.
type TargetUnreachableError struct {
	Target        int
	Attempts      int
	LastViolation *Violation
}

func (e *TargetUnreachableError) Error() string {
	if e.LastViolation != nil {
		return fmt.Sprintf("target slot %d unreachable after %d attempts (last: %s)",
			e.Target, e.Attempts, e.LastViolation.Error())
	}
	return fmt.Sprintf("target slot %d unreachable after %d attempts", e.Target, e.Attempts)
}

func (e *TargetUnreachableError) Unwrap() error {
	if e.LastViolation != nil {
		return e.LastViolation
	}
	return nil
}
