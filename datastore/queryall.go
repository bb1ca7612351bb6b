/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/modularhub/tenantdir/storagemodels"
)

// QueryAll drains every page of a query into one slice. Because the
// page limit applies before filtering, individual pages may come back
// empty while more data remains; only an empty cursor ends the loop.
func QueryAll[T any](ctx context.Context, ds DataStore[T], params *storagemodels.QueryParams) ([]T, error) {
	p := storagemodels.QueryParams{}
	if params != nil {
		p = *params
	}
	p.Cursor = ""

	var all []T
	for {
		page, err := ds.Query(ctx, &p)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if page.Exhausted() {
			return all, nil
		}
		p.Cursor = page.Cursor
	}
}
