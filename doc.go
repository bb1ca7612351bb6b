/*
Package tenantdir is a typed entity directory on top of DynamoDB:
customers, tenants, applications and parents, with soft-delete
lifecycle, explicit secondary index descriptors, cursor-based
pagination and a conditional parent-map linkage protocol.

Entity types register their table schema at init time; datastores are
constructed per type and validated against the registry. Queries name
an index descriptor explicitly, compose equality/boolean filters as
predicate conjuncts and page through results with an opaque cursor.
Linkage mutations address a single key of the tenant's parent map, so
concurrent attaches of different linkage types never clobber each
other.

Basic usage:

	client, _ := ddb.NewDynamoDBClient(accessKey, secretKey, region)
	dir, _ := tenantdir.NewDynamoDB(client, "prod-", logger)

	tenant, _ := dir.Tenants.Get(ctx, "acme-prod")
	parent, _ := dir.Parents.Get(ctx, "p-42")
	_, err := dir.Tenants.AddToParentMap(ctx, tenant, parent, models.LinkageManagement)
*/
package tenantdir
