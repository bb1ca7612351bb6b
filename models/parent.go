/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package models

import (
	"github.com/go-openapi/strfmt"

	"github.com/modularhub/tenantdir/registry"
)

// Parent attribute names
const (
	ParentID           = "pid"
	ParentCustomerID   = "cid"
	ParentApplication  = "aid"
	ParentType         = "t"
	ParentDescription  = "descr"
	ParentIsDeleted    = "d"
	ParentDeletionDate = "dd"
	ParentMeta         = "meta"
)

// ParentsTableName is the base table name for parents.
const ParentsTableName = "Parents"

// ParentApplicationIndexName is the secondary index keyed by application id.
const ParentApplicationIndexName = "aid-index"

// Parent is the referenced side of a tenant linkage: a customer-scoped
// configuration anchor a tenant slot can point at.
type Parent struct {
	ParentID      string           `dynamodbav:"pid"`
	CustomerID    string           `dynamodbav:"cid"`
	ApplicationID string           `dynamodbav:"aid,omitempty"`
	Type          string           `dynamodbav:"t"`
	Description   string           `dynamodbav:"descr,omitempty"`
	IsDeleted     bool             `dynamodbav:"d"`
	DeletionDate  *strfmt.DateTime `dynamodbav:"dd,omitempty"`
	Meta          map[string]any   `dynamodbav:"meta,omitempty"`
}

func init() {
	registry.RegisterSchema[Parent](&registry.Schema{
		TableName: ParentsTableName,
		Primary:   registry.IndexDescriptor{HashAttribute: ParentID},
		Indexes: []registry.IndexDescriptor{
			{Name: ParentApplicationIndexName, HashAttribute: ParentApplication},
		},
		Attributes: []string{
			ParentID,
			ParentCustomerID,
			ParentApplication,
			ParentType,
			ParentDescription,
			ParentIsDeleted,
			ParentDeletionDate,
			ParentMeta,
		},
	})
}
