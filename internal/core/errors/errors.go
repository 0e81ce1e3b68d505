// Package errors defines the typed failures surfaced by the configuration
// and classification core.
package errors

import "fmt"

// ConfigErrorKind distinguishes why loading a configuration file failed.
type ConfigErrorKind string

const (
	// ConfigIO means the file could not be opened or read.
	ConfigIO ConfigErrorKind = "CONFIG_IO"

	// ConfigDecode means the file content does not match the schema:
	// missing required field, wrong type, or invalid address literal.
	ConfigDecode ConfigErrorKind = "CONFIG_DECODE"
)

// ConfigError reports a fatal configuration-load failure. Both kinds are
// fatal to startup; the core never retries.
type ConfigError struct {
	Kind  ConfigErrorKind
	Path  string
	Field string // offending field, decode failures only
	Err   error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Kind == ConfigIO:
		return fmt.Sprintf("%s: cannot read config file %s: %v", e.Kind, e.Path, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s: config file %s: field %s: %v", e.Kind, e.Path, e.Field, e.Err)
	default:
		return fmt.Sprintf("%s: config file %s: %v", e.Kind, e.Path, e.Err)
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigIOError wraps a file open/read failure.
func NewConfigIOError(path string, err error) *ConfigError {
	return &ConfigError{Kind: ConfigIO, Path: path, Err: err}
}

// NewConfigDecodeError wraps a schema mismatch. field may be empty when the
// document as a whole is undecodable.
func NewConfigDecodeError(path, field string, err error) *ConfigError {
	return &ConfigError{Kind: ConfigDecode, Path: path, Field: field, Err: err}
}

// InventoryParseError reports that the interface-inventory text could not be
// decoded as a record list at all. Per-entry address failures inside a record
// are not in this category; those are skipped with a diagnostic.
type InventoryParseError struct {
	Err error
}

func (e *InventoryParseError) Error() string {
	return fmt.Sprintf("inventory is not a nic record list: %v", e.Err)
}

func (e *InventoryParseError) Unwrap() error {
	return e.Err
}

// NewInventoryParseError wraps a document-level inventory decode failure.
func NewInventoryParseError(err error) *InventoryParseError {
	return &InventoryParseError{Err: err}
}
