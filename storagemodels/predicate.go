/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package storagemodels

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Condition is a single leaf comparison of a filter predicate. Value is
// either a string or a bool.
type Condition struct {
	Attribute string
	Value     any
}

// Predicate is a conjunction of leaf conditions, applied after index
// selection has narrowed the candidate set. A nil *Predicate means
// "no filter". Conjunct order carries no meaning.
type Predicate struct {
	conditions []Condition
}

// Eq builds an attribute equality condition. An empty value yields a
// nil predicate: absent string filters contribute nothing rather than
// matching the empty string.
func Eq(attribute, value string) *Predicate {
	if value == "" {
		return nil
	}
	return &Predicate{conditions: []Condition{{Attribute: attribute, Value: value}}}
}

// BoolEq builds a boolean attribute equality condition.
func BoolEq(attribute string, value bool) *Predicate {
	return &Predicate{conditions: []Condition{{Attribute: attribute, Value: value}}}
}

// And conjoins two predicates. Either side may be nil; a nil side
// contributes nothing.
func (p *Predicate) And(q *Predicate) *Predicate {
	if p == nil {
		return q
	}
	if q == nil {
		return p
	}
	merged := make([]Condition, 0, len(p.conditions)+len(q.conditions))
	merged = append(merged, p.conditions...)
	merged = append(merged, q.conditions...)
	return &Predicate{conditions: merged}
}

// Conditions returns the leaf conditions of the predicate.
func (p *Predicate) Conditions() []Condition {
	if p == nil {
		return nil
	}
	return p.conditions
}

// Matches evaluates the predicate against a raw item. Used by in-memory
// stores; the DynamoDB adapter compiles the predicate into a filter
// expression instead.
func (p *Predicate) Matches(item map[string]types.AttributeValue) bool {
	if p == nil {
		return true
	}
	for _, c := range p.conditions {
		attr, ok := resolvePath(item, c.Attribute)
		if !ok {
			return false
		}
		switch want := c.Value.(type) {
		case string:
			s, ok := attr.(*types.AttributeValueMemberS)
			if !ok || s.Value != want {
				return false
			}
		case bool:
			b, ok := attr.(*types.AttributeValueMemberBOOL)
			if !ok || b.Value != want {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// resolvePath walks a dotted document path through nested map
// attributes, mirroring how the store treats dots in attribute names.
func resolvePath(item map[string]types.AttributeValue, path string) (types.AttributeValue, bool) {
	parts := strings.Split(path, ".")
	var current types.AttributeValue
	scope := item
	for i, part := range parts {
		attr, ok := scope[part]
		if !ok {
			return nil, false
		}
		current = attr
		if i < len(parts)-1 {
			m, ok := attr.(*types.AttributeValueMemberM)
			if !ok {
				return nil, false
			}
			scope = m.Value
		}
	}
	return current, true
}
