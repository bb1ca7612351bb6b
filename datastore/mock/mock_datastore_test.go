/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package mock

import (
	"context"
	"fmt"
	"testing"

	"github.com/modularhub/tenantdir/errors"
	"github.com/modularhub/tenantdir/registry"
	"github.com/modularhub/tenantdir/storagemodels"
)

type ticket struct {
	ID       string            `dynamodbav:"id"`
	Queue    string            `dynamodbav:"q"`
	Priority string            `dynamodbav:"pr"`
	Done     bool              `dynamodbav:"done"`
	Labels   map[string]string `dynamodbav:"lbl"`
}

func init() {
	registry.RegisterSchema[ticket](&registry.Schema{
		TableName: "Tickets",
		Primary:   registry.IndexDescriptor{HashAttribute: "id"},
		Indexes: []registry.IndexDescriptor{
			{Name: "q-pr-index", HashAttribute: "q", RangeAttribute: "pr"},
		},
		Attributes: []string{"id", "q", "pr", "done", "lbl"},
	})
}

func int32Ptr(v int32) *int32 { return &v }

func seed(t *testing.T, ds *DataStore[ticket], tickets ...ticket) {
	t.Helper()
	for _, tk := range tickets {
		if tk.Labels == nil {
			tk.Labels = map[string]string{}
		}
		if err := ds.Put(context.Background(), tk); err != nil {
			t.Fatalf("Put(%s): %v", tk.ID, err)
		}
	}
}

func TestGetPutDelete(t *testing.T) {
	ds := MustNew[ticket]()
	ctx := context.Background()

	seed(t, ds, ticket{ID: "t1", Queue: "ops", Priority: "1"})

	t.Run("get existing", func(t *testing.T) {
		got, err := ds.GetOne(ctx, storagemodels.Key{Hash: "t1"})
		if err != nil {
			t.Fatalf("GetOne: %v", err)
		}
		if got == nil || got.Queue != "ops" {
			t.Errorf("GetOne = %+v", got)
		}
	})

	t.Run("get missing returns nil, nil", func(t *testing.T) {
		got, err := ds.GetOne(ctx, storagemodels.Key{Hash: "nope"})
		if err != nil || got != nil {
			t.Errorf("GetOne = %+v, %v", got, err)
		}
	})

	t.Run("put replaces", func(t *testing.T) {
		seed(t, ds, ticket{ID: "t1", Queue: "dev", Priority: "2"})
		got, _ := ds.GetOne(ctx, storagemodels.Key{Hash: "t1"})
		if got.Queue != "dev" {
			t.Errorf("Queue = %q, want dev", got.Queue)
		}
		if ds.Count() != 1 {
			t.Errorf("Count = %d, want 1", ds.Count())
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := ds.Delete(ctx, storagemodels.Key{Hash: "t1"}); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		got, _ := ds.GetOne(ctx, storagemodels.Key{Hash: "t1"})
		if got != nil {
			t.Errorf("record survived delete: %+v", got)
		}
	})
}

func TestQueryByIndex(t *testing.T) {
	ds := MustNew[ticket]()
	seed(t, ds,
		ticket{ID: "t1", Queue: "ops", Priority: "1"},
		ticket{ID: "t2", Queue: "ops", Priority: "2"},
		ticket{ID: "t3", Queue: "dev", Priority: "1"},
	)

	t.Run("hash narrows", func(t *testing.T) {
		page, err := ds.Query(context.Background(), &storagemodels.QueryParams{
			IndexName: "q-pr-index",
			HashValue: "ops",
		})
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if len(page.Items) != 2 {
			t.Errorf("items = %d, want 2", len(page.Items))
		}
		if !page.Exhausted() {
			t.Error("expected exhausted page")
		}
	})

	t.Run("range condition", func(t *testing.T) {
		page, err := ds.Query(context.Background(), &storagemodels.QueryParams{
			IndexName: "q-pr-index",
			HashValue: "ops",
			Range: &storagemodels.RangeCondition{
				Comparator: storagemodels.ComparatorGreaterEqual,
				Value:      "2",
			},
		})
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if len(page.Items) != 1 || page.Items[0].ID != "t2" {
			t.Errorf("items = %+v", page.Items)
		}
	})

	t.Run("descending order", func(t *testing.T) {
		backward := false
		page, err := ds.Query(context.Background(), &storagemodels.QueryParams{
			IndexName:        "q-pr-index",
			HashValue:        "ops",
			ScanIndexForward: &backward,
		})
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if page.Items[0].Priority != "2" {
			t.Errorf("first item priority = %q, want 2", page.Items[0].Priority)
		}
	})

	t.Run("unknown index", func(t *testing.T) {
		_, err := ds.Query(context.Background(), &storagemodels.QueryParams{
			IndexName: "bogus",
			HashValue: "ops",
		})
		var se *errors.SchemaError
		if !errors.As(err, &se) {
			t.Errorf("error = %v, want SchemaError", err)
		}
	})

	t.Run("range without hash", func(t *testing.T) {
		_, err := ds.Query(context.Background(), &storagemodels.QueryParams{
			IndexName: "q-pr-index",
			Range: &storagemodels.RangeCondition{
				Comparator: storagemodels.ComparatorEqual,
				Value:      "1",
			},
		})
		if !errors.IsUnsupportedQueryShape(err) {
			t.Errorf("error = %v, want unsupported query shape", err)
		}
	})
}

func TestScanPagination(t *testing.T) {
	ds := MustNew[ticket]()
	var all []ticket
	for i := 0; i < 7; i++ {
		all = append(all, ticket{ID: fmt.Sprintf("t%d", i), Queue: "ops", Priority: "1"})
	}
	seed(t, ds, all...)

	t.Run("cursor walks every record exactly once", func(t *testing.T) {
		seen := map[string]bool{}
		cursor := ""
		pages := 0
		for {
			page, err := ds.Query(context.Background(), &storagemodels.QueryParams{
				Limit:  int32Ptr(3),
				Cursor: cursor,
			})
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			pages++
			for _, item := range page.Items {
				if seen[item.ID] {
					t.Errorf("duplicate item %s", item.ID)
				}
				seen[item.ID] = true
			}
			if page.Exhausted() {
				break
			}
			cursor = page.Cursor
		}
		if len(seen) != 7 {
			t.Errorf("saw %d records, want 7", len(seen))
		}
		if pages != 3 {
			t.Errorf("pages = %d, want 3", pages)
		}
	})

	t.Run("replaying a cursor is deterministic", func(t *testing.T) {
		first, err := ds.Query(context.Background(), &storagemodels.QueryParams{Limit: int32Ptr(2)})
		if err != nil {
			t.Fatalf("Query: %v", err)
		}

		a, err := ds.Query(context.Background(), &storagemodels.QueryParams{Limit: int32Ptr(2), Cursor: first.Cursor})
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		b, err := ds.Query(context.Background(), &storagemodels.QueryParams{Limit: int32Ptr(2), Cursor: first.Cursor})
		if err != nil {
			t.Fatalf("Query: %v", err)
		}

		if len(a.Items) != len(b.Items) {
			t.Fatalf("replay sizes differ: %d vs %d", len(a.Items), len(b.Items))
		}
		for i := range a.Items {
			if a.Items[i].ID != b.Items[i].ID {
				t.Errorf("replay diverged at %d: %s vs %s", i, a.Items[i].ID, b.Items[i].ID)
			}
		}
	})
}

func TestLimitAppliesBeforeFilter(t *testing.T) {
	ds := MustNew[ticket]()
	// First window holds only non-matching records; the match sits in
	// the second window.
	seed(t, ds,
		ticket{ID: "a1", Queue: "ops", Done: false},
		ticket{ID: "a2", Queue: "ops", Done: false},
		ticket{ID: "a3", Queue: "ops", Done: true},
	)

	page, err := ds.Query(context.Background(), &storagemodels.QueryParams{
		Filter: storagemodels.BoolEq("done", true),
		Limit:  int32Ptr(2),
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("items = %d, want 0 on first window", len(page.Items))
	}
	if page.Exhausted() {
		t.Fatal("empty page with more data must carry a cursor")
	}

	page, err = ds.Query(context.Background(), &storagemodels.QueryParams{
		Filter: storagemodels.BoolEq("done", true),
		Limit:  int32Ptr(2),
		Cursor: page.Cursor,
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "a3" {
		t.Errorf("items = %+v, want a3", page.Items)
	}
	if !page.Exhausted() {
		t.Error("expected exhaustion")
	}
}

func TestProjection(t *testing.T) {
	ds := MustNew[ticket]()
	seed(t, ds, ticket{ID: "t1", Queue: "ops", Priority: "9"})

	page, err := ds.Query(context.Background(), &storagemodels.QueryParams{
		AttributesToGet: []string{"id"},
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if page.Items[0].ID != "t1" {
		t.Errorf("ID = %q", page.Items[0].ID)
	}
	if page.Items[0].Queue != "" || page.Items[0].Priority != "" {
		t.Errorf("projection leaked attributes: %+v", page.Items[0])
	}
}

func TestStreamDrainsAll(t *testing.T) {
	ds := MustNew[ticket]()
	for i := 0; i < 5; i++ {
		seed(t, ds, ticket{ID: fmt.Sprintf("t%d", i), Queue: "ops"})
	}

	var count int
	for res := range ds.Stream(context.Background(), nil, storagemodels.WithPageSize(2)) {
		if res.Error != nil {
			t.Fatalf("stream error: %v", res.Error)
		}
		count++
	}
	if count != 5 {
		t.Errorf("streamed %d records, want 5", count)
	}
}

func TestSetMapKey(t *testing.T) {
	ctx := context.Background()

	t.Run("claims a free slot", func(t *testing.T) {
		ds := MustNew[ticket]()
		seed(t, ds, ticket{ID: "t1", Queue: "ops"})

		if err := ds.SetMapKey(ctx, storagemodels.Key{Hash: "t1"}, "lbl", "env", "prod"); err != nil {
			t.Fatalf("SetMapKey: %v", err)
		}
		got, _ := ds.GetOne(ctx, storagemodels.Key{Hash: "t1"})
		if got.Labels["env"] != "prod" {
			t.Errorf("Labels = %v", got.Labels)
		}
	})

	t.Run("occupied slot conflicts", func(t *testing.T) {
		ds := MustNew[ticket]()
		seed(t, ds, ticket{ID: "t1", Queue: "ops", Labels: map[string]string{"env": "prod"}})

		err := ds.SetMapKey(ctx, storagemodels.Key{Hash: "t1"}, "lbl", "env", "dev")
		if !errors.IsConflict(err) {
			t.Errorf("error = %v, want conflict", err)
		}
		got, _ := ds.GetOne(ctx, storagemodels.Key{Hash: "t1"})
		if got.Labels["env"] != "prod" {
			t.Errorf("losing write mutated the slot: %v", got.Labels)
		}
	})

	t.Run("missing record", func(t *testing.T) {
		ds := MustNew[ticket]()
		err := ds.SetMapKey(ctx, storagemodels.Key{Hash: "ghost"}, "lbl", "env", "prod")
		if !errors.IsNotFound(err) {
			t.Errorf("error = %v, want not found", err)
		}
	})
}

func TestRemoveMapKey(t *testing.T) {
	ctx := context.Background()
	ds := MustNew[ticket]()
	seed(t, ds, ticket{ID: "t1", Queue: "ops", Labels: map[string]string{"env": "prod"}})

	t.Run("removes", func(t *testing.T) {
		if err := ds.RemoveMapKey(ctx, storagemodels.Key{Hash: "t1"}, "lbl", "env"); err != nil {
			t.Fatalf("RemoveMapKey: %v", err)
		}
		got, _ := ds.GetOne(ctx, storagemodels.Key{Hash: "t1"})
		if _, ok := got.Labels["env"]; ok {
			t.Errorf("Labels = %v", got.Labels)
		}
	})

	t.Run("absent key is a no-op", func(t *testing.T) {
		if err := ds.RemoveMapKey(ctx, storagemodels.Key{Hash: "t1"}, "lbl", "env"); err != nil {
			t.Errorf("RemoveMapKey: %v", err)
		}
	})

	t.Run("absent record is a no-op", func(t *testing.T) {
		if err := ds.RemoveMapKey(ctx, storagemodels.Key{Hash: "ghost"}, "lbl", "env"); err != nil {
			t.Errorf("RemoveMapKey: %v", err)
		}
	})
}
