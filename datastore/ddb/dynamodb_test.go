/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package ddb

import (
	"context"
	"testing"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/modularhub/tenantdir/errors"
	"github.com/modularhub/tenantdir/registry"
	"github.com/modularhub/tenantdir/storagemodels"
)

type fakeClient struct {
	getIn    *sdk.GetItemInput
	getOut   *sdk.GetItemOutput
	putIn    *sdk.PutItemInput
	deleteIn *sdk.DeleteItemInput
	updateIn *sdk.UpdateItemInput
	queryIn  *sdk.QueryInput
	queryOut *sdk.QueryOutput
	scanIn   *sdk.ScanInput
	scanOut  *sdk.ScanOutput

	err error
}

func (f *fakeClient) GetItem(_ context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.getIn = in
	if f.err != nil {
		return nil, f.err
	}
	if f.getOut != nil {
		return f.getOut, nil
	}
	return &sdk.GetItemOutput{}, nil
}

func (f *fakeClient) PutItem(_ context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.putIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeClient) DeleteItem(_ context.Context, in *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.deleteIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &sdk.DeleteItemOutput{}, nil
}

func (f *fakeClient) UpdateItem(_ context.Context, in *sdk.UpdateItemInput, _ ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error) {
	f.updateIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &sdk.UpdateItemOutput{}, nil
}

func (f *fakeClient) Query(_ context.Context, in *sdk.QueryInput, _ ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	f.queryIn = in
	if f.err != nil {
		return nil, f.err
	}
	if f.queryOut != nil {
		return f.queryOut, nil
	}
	return &sdk.QueryOutput{}, nil
}

func (f *fakeClient) Scan(_ context.Context, in *sdk.ScanInput, _ ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	f.scanIn = in
	if f.err != nil {
		return nil, f.err
	}
	if f.scanOut != nil {
		return f.scanOut, nil
	}
	return &sdk.ScanOutput{}, nil
}

type gadget struct {
	ID    string `dynamodbav:"id"`
	Owner string `dynamodbav:"own"`
	Kind  string `dynamodbav:"k"`
}

func init() {
	registry.RegisterSchema[gadget](&registry.Schema{
		TableName: "Gadgets",
		Primary:   registry.IndexDescriptor{HashAttribute: "id"},
		Indexes: []registry.IndexDescriptor{
			{Name: "own-k-index", HashAttribute: "own", RangeAttribute: "k"},
			{Name: "own-index", HashAttribute: "own"},
		},
		Attributes: []string{"id", "own", "k"},
	})
}

func newTestStore(t *testing.T, client Client) *DynamodbDataStore[gadget] {
	t.Helper()
	ds, err := New[gadget](client, "test-")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ds
}

func TestNew(t *testing.T) {
	t.Run("prefixes table name", func(t *testing.T) {
		ds := newTestStore(t, &fakeClient{})
		if got := ds.TableName(); got != "test-Gadgets" {
			t.Errorf("TableName() = %q, want %q", got, "test-Gadgets")
		}
	})

	t.Run("unregistered type", func(t *testing.T) {
		type stranger struct{}
		_, err := New[stranger](&fakeClient{}, "")
		if err == nil {
			t.Fatal("expected error for unregistered type")
		}
		var se *errors.SchemaError
		if !errors.As(err, &se) {
			t.Errorf("error = %v, want SchemaError", err)
		}
	})
}

func TestGetOne(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		client := &fakeClient{getOut: &sdk.GetItemOutput{
			Item: map[string]types.AttributeValue{
				"id":  &types.AttributeValueMemberS{Value: "g1"},
				"own": &types.AttributeValueMemberS{Value: "alice"},
			},
		}}
		ds := newTestStore(t, client)

		got, err := ds.GetOne(context.Background(), storagemodels.Key{Hash: "g1"})
		if err != nil {
			t.Fatalf("GetOne: %v", err)
		}
		if got == nil || got.ID != "g1" || got.Owner != "alice" {
			t.Errorf("GetOne = %+v", got)
		}

		keyAttr := client.getIn.Key["id"].(*types.AttributeValueMemberS)
		if keyAttr.Value != "g1" {
			t.Errorf("key attribute = %q, want g1", keyAttr.Value)
		}
	})

	t.Run("not found returns nil, nil", func(t *testing.T) {
		ds := newTestStore(t, &fakeClient{})
		got, err := ds.GetOne(context.Background(), storagemodels.Key{Hash: "missing"})
		if err != nil {
			t.Fatalf("GetOne: %v", err)
		}
		if got != nil {
			t.Errorf("GetOne = %+v, want nil", got)
		}
	})

	t.Run("empty hash rejected", func(t *testing.T) {
		ds := newTestStore(t, &fakeClient{})
		_, err := ds.GetOne(context.Background(), storagemodels.Key{})
		var ve *errors.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("error = %v, want ValidationError", err)
		}
	})

	t.Run("stray range key rejected", func(t *testing.T) {
		ds := newTestStore(t, &fakeClient{})
		rng := "extra"
		_, err := ds.GetOne(context.Background(), storagemodels.Key{Hash: "g1", Range: &rng})
		var ve *errors.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("error = %v, want ValidationError", err)
		}
	})
}

func TestPut(t *testing.T) {
	client := &fakeClient{}
	ds := newTestStore(t, client)

	if err := ds.Put(context.Background(), gadget{ID: "g1", Owner: "alice", Kind: "widget"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if *client.putIn.TableName != "test-Gadgets" {
		t.Errorf("table = %q", *client.putIn.TableName)
	}
	id := client.putIn.Item["id"].(*types.AttributeValueMemberS)
	if id.Value != "g1" {
		t.Errorf("marshaled id = %q", id.Value)
	}
}

func TestDelete(t *testing.T) {
	client := &fakeClient{}
	ds := newTestStore(t, client)

	if err := ds.Delete(context.Background(), storagemodels.Key{Hash: "g1"}); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	keyAttr := client.deleteIn.Key["id"].(*types.AttributeValueMemberS)
	if keyAttr.Value != "g1" {
		t.Errorf("key attribute = %q, want g1", keyAttr.Value)
	}
}
