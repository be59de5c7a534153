package config

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrKeyNotFound reports a dotted path that does not resolve to a value.
var ErrKeyNotFound = errors.New("config key not found")

// Get resolves a dotted path like "system.os" or
// "mcpServers.github.command" against the file and returns the value
// rendered as JSON. Lookups never create intermediate objects.
func (s *Store) Get(path string) (string, error) {
	data, err := s.raw()
	if err != nil {
		return "", err
	}
	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, path)
	}
	return result.Raw, nil
}

// Set writes a value at a dotted path, creating intermediate objects as
// needed, and persists the whole file. The value string is stored as a
// JSON literal when it parses as one (true, 42, ["a"], {...}) and as a
// plain string otherwise.
func (s *Store) Set(path, value string) error {
	data, err := s.raw()
	if err != nil {
		return err
	}

	var updated []byte
	if isJSONLiteral(value) {
		updated, err = sjson.SetRawBytes(data, path, []byte(value))
	} else {
		updated, err = sjson.SetBytes(data, path, value)
	}
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return s.writeRaw(indent(updated))
}

// Delete removes a dotted path from the file. Missing paths are not an
// error.
func (s *Store) Delete(path string) error {
	data, err := s.raw()
	if err != nil {
		return err
	}
	updated, err := sjson.DeleteBytes(data, path)
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return s.writeRaw(indent(updated))
}

func isJSONLiteral(value string) bool {
	if value == "" {
		return false
	}
	switch value[0] {
	case '{', '[', '"', 't', 'f', 'n', '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return gjson.Valid(value)
	}
	return false
}

func indent(data []byte) []byte {
	return []byte(gjson.GetBytes(data, "@pretty").Raw)
}
