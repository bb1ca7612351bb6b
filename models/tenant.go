/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package models

import (
	"github.com/go-openapi/strfmt"

	"github.com/modularhub/tenantdir/registry"
)

// Tenant attribute names
const (
	TenantName               = "n"
	TenantDisplayName        = "dn"
	TenantDisplayNameToLower = "dntl"
	TenantCustomerID         = "cid"
	TenantCloud              = "c"
	TenantAccountID          = "acc"
	TenantIsActive           = "act"
	TenantDeactivationDate   = "dd"
	TenantRegions            = "r"
	TenantParentMap          = "pm"
)

// TenantsTableName is the base table name for tenants.
const TenantsTableName = "Tenants"

// Tenant secondary index names
const (
	TenantCustomerNameIndexName = "cid-n-index"
	TenantAccountIndexName      = "acc-index"
	TenantDntlCloudIndexName    = "dntl-c-index"
)

// Allow-listed tenant parent-map linkage types
const (
	LinkageTenantManager  = "TENANT_MANAGER"
	LinkageManagement     = "MANAGEMENT"
	LinkageBilling        = "BILLING"
	LinkageSIEMMonitoring = "SIEM_MONITORING"
)

// AllowedTenantParentMapKeys is the fixed allow-list of linkage types a
// tenant's parent map may carry. Unknown keys are never written.
var AllowedTenantParentMapKeys = []string{
	LinkageTenantManager,
	LinkageManagement,
	LinkageBilling,
	LinkageSIEMMonitoring,
}

// IsAllowedLinkageType reports whether t is an allow-listed linkage type.
func IsAllowedLinkageType(t string) bool {
	for _, k := range AllowedTenantParentMapKeys {
		if k == t {
			return true
		}
	}
	return false
}

// Region is one entry of a tenant's region list. IsActive is tri-state:
// absent (nil) counts as active, only an explicit false deactivates the
// region.
type Region struct {
	NativeName  string `dynamodbav:"nn,omitempty"`
	DisplayName string `dynamodbav:"dname,omitempty"`
	IsActive    *bool  `dynamodbav:"act,omitempty"`
}

// Tenant is a cloud account registration under a customer. The parent
// map links the tenant to parents by linkage type; keys are restricted
// to AllowedTenantParentMapKeys.
type Tenant struct {
	Name               string            `dynamodbav:"n"`
	DisplayName        string            `dynamodbav:"dn,omitempty"`
	DisplayNameToLower string            `dynamodbav:"dntl,omitempty"`
	CustomerID         string            `dynamodbav:"cid"`
	Cloud              string            `dynamodbav:"c"`
	AccountID          string            `dynamodbav:"acc,omitempty"`
	IsActive           bool              `dynamodbav:"act"`
	DeactivationDate   *strfmt.DateTime  `dynamodbav:"dd,omitempty"`
	Regions            []Region          `dynamodbav:"r,omitempty"`
	ParentMap          map[string]string `dynamodbav:"pm"`
}

func init() {
	registry.RegisterSchema[Tenant](&registry.Schema{
		TableName: TenantsTableName,
		Primary:   registry.IndexDescriptor{HashAttribute: TenantName},
		Indexes: []registry.IndexDescriptor{
			{Name: TenantCustomerNameIndexName, HashAttribute: TenantCustomerID, RangeAttribute: TenantName},
			{Name: TenantAccountIndexName, HashAttribute: TenantAccountID},
			{Name: TenantDntlCloudIndexName, HashAttribute: TenantDisplayNameToLower, RangeAttribute: TenantCloud},
		},
		Attributes: []string{
			TenantName,
			TenantDisplayName,
			TenantDisplayNameToLower,
			TenantCustomerID,
			TenantCloud,
			TenantAccountID,
			TenantIsActive,
			TenantDeactivationDate,
			TenantRegions,
			TenantParentMap,
		},
	})
}
