/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package registry

import (
	"reflect"
	"sync"

	"github.com/modularhub/tenantdir/errors"
)

// schemaRegistry maps Go record types to their table schemas.

var (
	schemaRegistry = make(map[reflect.Type]*Schema)
	mu             sync.RWMutex
)

// RegisterSchema associates a record type T with its table schema.
// Schemas are registered during initialization; an invalid schema or a
// duplicate registration panics so misconfiguration surfaces at startup
// rather than as a runtime user error.
func RegisterSchema[T any](s *Schema) {
	var zero T
	t := reflect.TypeOf(zero)

	if err := s.Validate(); err != nil {
		panic("schema registry: " + err.Error())
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := schemaRegistry[t]; exists {
		panic("schema registry: schema for " + t.String() + " already registered")
	}
	schemaRegistry[t] = s
}

// GetSchema retrieves the schema for type T, if any.
func GetSchema[T any]() (*Schema, bool) {
	var zero T
	t := reflect.TypeOf(zero)

	mu.RLock()
	defer mu.RUnlock()
	s, ok := schemaRegistry[t]
	return s, ok
}

// SchemaFor retrieves the schema for type T, reporting a SchemaError
// when none is registered.
func SchemaFor[T any]() (*Schema, error) {
	s, ok := GetSchema[T]()
	if !ok {
		var zero T
		return nil, &errors.SchemaError{
			Type:    reflect.TypeOf(zero).String(),
			Message: "no schema registered",
		}
	}
	return s, nil
}

// Schemas returns all registered schemas keyed by type name.
func Schemas() map[string]*Schema {
	mu.RLock()
	defer mu.RUnlock()

	out := make(map[string]*Schema, len(schemaRegistry))
	for t, s := range schemaRegistry {
		out[t.String()] = s
	}
	return out
}
