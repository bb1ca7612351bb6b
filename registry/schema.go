/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package registry

import (
	"fmt"
)

// IndexDescriptor declares an alternate lookup path over a record type:
// a hash attribute and an optional range attribute drawn from the
// entity's attribute set. Indexes are read-only derived views and are
// never mutated independently of the records they project.
type IndexDescriptor struct {
	// Name identifies the index. Empty for the primary key.
	Name string
	// HashAttribute is the attribute used as the index hash key.
	HashAttribute string
	// RangeAttribute is the optional attribute used as the index range key.
	RangeAttribute string
}

// HasRange reports whether the descriptor declares a range attribute.
func (d IndexDescriptor) HasRange() bool {
	return d.RangeAttribute != ""
}

// Schema describes how a record type maps onto its table: the primary
// key, the secondary index descriptors, and the full attribute set the
// descriptors are validated against.
type Schema struct {
	TableName  string
	Primary    IndexDescriptor
	Indexes    []IndexDescriptor
	Attributes []string
}

// Index returns the descriptor with the given name. An empty name
// returns the primary key descriptor.
func (s *Schema) Index(name string) (IndexDescriptor, bool) {
	if name == "" {
		return s.Primary, true
	}
	for _, idx := range s.Indexes {
		if idx.Name == name {
			return idx, true
		}
	}
	return IndexDescriptor{}, false
}

// HasAttribute reports whether the schema declares the attribute.
func (s *Schema) HasAttribute(attr string) bool {
	for _, a := range s.Attributes {
		if a == attr {
			return true
		}
	}
	return false
}

// Validate checks the schema invariants: the table and primary hash key
// must be named, index names must be unique, and every descriptor
// attribute must exist in the attribute set.
func (s *Schema) Validate() error {
	if s.TableName == "" {
		return fmt.Errorf("schema has no table name")
	}
	if s.Primary.HashAttribute == "" {
		return fmt.Errorf("table %s: primary hash attribute is empty", s.TableName)
	}

	seen := make(map[string]struct{}, len(s.Indexes))
	descriptors := append([]IndexDescriptor{s.Primary}, s.Indexes...)
	for _, d := range descriptors {
		if d.Name != "" {
			if _, dup := seen[d.Name]; dup {
				return fmt.Errorf("table %s: duplicate index name %q", s.TableName, d.Name)
			}
			seen[d.Name] = struct{}{}
		}
		if !s.HasAttribute(d.HashAttribute) {
			return fmt.Errorf("table %s, index %q: hash attribute %q not in attribute set",
				s.TableName, d.Name, d.HashAttribute)
		}
		if d.RangeAttribute != "" && !s.HasAttribute(d.RangeAttribute) {
			return fmt.Errorf("table %s, index %q: range attribute %q not in attribute set",
				s.TableName, d.Name, d.RangeAttribute)
		}
	}
	return nil
}
