/*
Package services implements the directory operations on top of the
datastore layer: customer lookup, application lifecycle, tenant query
shapes, the parent-map linkage protocol and the external DTO
projections.

Each query shape maps to exactly one index descriptor from the schema
registry; there is no cost-based index choice and no silent fallback to
a scan. Filters compose as predicate conjuncts, where absent string
arguments contribute nothing.
*/
package services
