/*
Package ddb implements the datastore interface on top of Amazon
DynamoDB.

The store is constructed per record type; the registered schema
supplies the table name, the primary key attributes and the secondary
index descriptors. Query compiles the declarative query parameters into
a single Query or Scan call via the SDK expression builder, and hands
back an opaque cursor so callers can replay pagination statelessly.

SetMapKey and RemoveMapKey address a single key of a map attribute, so
concurrent writers mutating different keys of the same map never
overwrite each other.
*/
package ddb
