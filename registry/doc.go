/*
Package registry maps record types to explicit table schemas.

A Schema names the table, its primary key, and the secondary index
descriptors usable for alternate lookups. Descriptors are plain,
inspectable values constructed at initialization rather than derived by
reflection over field annotations:

	registry.RegisterSchema[Tenant](&registry.Schema{
	    TableName: "Tenants",
	    Primary:   registry.IndexDescriptor{HashAttribute: "n"},
	    Indexes: []registry.IndexDescriptor{
	        {Name: "cid-n-index", HashAttribute: "cid", RangeAttribute: "n"},
	    },
	    Attributes: []string{"n", "cid", ...},
	})

Registration validates every descriptor against the attribute set and
panics on misconfiguration, so a broken schema fails at startup instead
of at query time. The registry is thread-safe and is normally populated
from init() functions in the models package.
*/
package registry
