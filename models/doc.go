/*
Package models defines the directory's entity records: customers,
tenants, applications and parents.

Records use short attribute names on the wire (the dynamodbav tags) and
register an explicit table schema with the registry package at init
time, declaring the primary key and the secondary index descriptors
used for alternate lookups.

Deletion is logical only: soft-deleted records keep their item, flip a
flag and stamp a deletion timestamp.
*/
package models
