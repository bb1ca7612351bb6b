/*
Package storagemodels holds the shared value types of the directory's
storage contract: keys, query parameters, filter predicates, result
pages and pagination cursors.

Predicates are explicit trees of leaf comparisons conjoined with And;
absent leaves are omitted rather than treated as wildcards:

	filter := storagemodels.BoolEq("act", true).
	    And(storagemodels.Eq("n", tenantName)) // nil when tenantName == ""

Cursors are opaque, self-contained resume tokens over the last
evaluated key. An empty cursor on a returned Page marks exhaustion,
which is distinct from an empty page: restrictive filters can produce
empty pages mid-stream while more pages remain.
*/
package storagemodels
