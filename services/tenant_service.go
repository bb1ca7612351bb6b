/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package services

import (
	"context"
	"log"
	"strings"

	"github.com/go-openapi/strfmt"

	"github.com/modularhub/tenantdir/datastore"
	"github.com/modularhub/tenantdir/errors"
	"github.com/modularhub/tenantdir/models"
	"github.com/modularhub/tenantdir/storagemodels"
)

// TenantService manages tenant records: the query shapes, the
// parent-map linkage protocol and the external projection.
type TenantService struct {
	store     datastore.DataStore[models.Tenant]
	customers *CustomerService
	log       *log.Logger
}

// NewTenantService constructs a TenantService.
func NewTenantService(store datastore.DataStore[models.Tenant], customers *CustomerService, logger *log.Logger) *TenantService {
	return &TenantService{store: store, customers: customers, log: logger}
}

// Get retrieves a tenant by name. Returns nil, nil when absent.
func (s *TenantService) Get(ctx context.Context, name string) (*models.Tenant, error) {
	return s.store.GetOne(ctx, storagemodels.Key{Hash: name})
}

// Save persists a tenant record, initializing the parent map so linkage
// updates can address single keys of it later.
func (s *TenantService) Save(ctx context.Context, tenant models.Tenant) error {
	if tenant.ParentMap == nil {
		tenant.ParentMap = map[string]string{}
	}
	return s.store.Put(ctx, tenant)
}

// ScanTenants pages through all tenants, optionally restricted to
// active ones.
func (s *TenantService) ScanTenants(ctx context.Context, onlyActive bool, limit *int32, cursor string) (*storagemodels.Page[models.Tenant], error) {
	var filter *storagemodels.Predicate
	if onlyActive {
		filter = storagemodels.BoolEq(models.TenantIsActive, true)
	}
	return s.store.Query(ctx, &storagemodels.QueryParams{
		Filter: filter,
		Limit:  limit,
		Cursor: cursor,
	})
}

// TenantQuery carries the optional narrowing arguments shared by the
// tenant query shapes. Empty strings contribute no filter.
type TenantQuery struct {
	Active          *bool
	Limit           *int32
	Cursor          string
	AttributesToGet []string
}

func (q TenantQuery) activeFilter() *storagemodels.Predicate {
	if q.Active == nil {
		return nil
	}
	return storagemodels.BoolEq(models.TenantIsActive, *q.Active)
}

// QueryByCustomer pages through a customer's tenants via the customer
// index, optionally narrowed to one tenant name.
func (s *TenantService) QueryByCustomer(ctx context.Context, customerID, tenantName string, q TenantQuery) (*storagemodels.Page[models.Tenant], error) {
	filter := q.activeFilter().And(storagemodels.Eq(models.TenantName, tenantName))

	return s.store.Query(ctx, &storagemodels.QueryParams{
		IndexName:       models.TenantCustomerNameIndexName,
		HashValue:       customerID,
		Filter:          filter,
		Limit:           q.Limit,
		Cursor:          q.Cursor,
		AttributesToGet: q.AttributesToGet,
	})
}

// QueryByAccount pages through tenants registered for a cloud account
// id via the account index.
func (s *TenantService) QueryByAccount(ctx context.Context, accountID string, q TenantQuery) (*storagemodels.Page[models.Tenant], error) {
	return s.store.Query(ctx, &storagemodels.QueryParams{
		IndexName:       models.TenantAccountIndexName,
		HashValue:       accountID,
		Filter:          q.activeFilter(),
		Limit:           q.Limit,
		Cursor:          q.Cursor,
		AttributesToGet: q.AttributesToGet,
	})
}

// QueryByDisplayName pages through tenants by lowercased display name.
// A non-empty cloud narrows the range side of the index; cloud values
// compare case-insensitively by uppercasing before comparison.
func (s *TenantService) QueryByDisplayName(ctx context.Context, displayNameToLower, cloud string, q TenantQuery) (*storagemodels.Page[models.Tenant], error) {
	var rc *storagemodels.RangeCondition
	if cloud != "" {
		rc = &storagemodels.RangeCondition{
			Attribute:  models.TenantCloud,
			Comparator: storagemodels.ComparatorEqual,
			Value:      strings.ToUpper(cloud),
		}
	}

	return s.store.Query(ctx, &storagemodels.QueryParams{
		IndexName:       models.TenantDntlCloudIndexName,
		HashValue:       displayNameToLower,
		Range:           rc,
		Filter:          q.activeFilter(),
		Limit:           q.Limit,
		Cursor:          q.Cursor,
		AttributesToGet: q.AttributesToGet,
	})
}

// QueryByParent pages through tenants whose parent map links the given
// parent under the given linkage type. Any allow-listed linkage type
// works; MANAGEMENT is merely the common default callers pass.
func (s *TenantService) QueryByParent(ctx context.Context, parentID, linkageType string, q TenantQuery) (*storagemodels.Page[models.Tenant], error) {
	if !models.IsAllowedLinkageType(linkageType) {
		return nil, &errors.InvalidLinkageTypeError{
			Type:    linkageType,
			Allowed: models.AllowedTenantParentMapKeys,
		}
	}

	filter := q.activeFilter().
		And(storagemodels.Eq(models.TenantParentMap+"."+linkageType, parentID))

	return s.store.Query(ctx, &storagemodels.QueryParams{
		Filter: filter,
		Limit:  q.Limit,
		Cursor: q.Cursor,
	})
}

// GetTenantsByParent drains every page QueryByParent would produce.
func (s *TenantService) GetTenantsByParent(ctx context.Context, parentID, linkageType string, active *bool) ([]models.Tenant, error) {
	if !models.IsAllowedLinkageType(linkageType) {
		return nil, &errors.InvalidLinkageTypeError{
			Type:    linkageType,
			Allowed: models.AllowedTenantParentMapKeys,
		}
	}

	var filter *storagemodels.Predicate
	if active != nil {
		filter = storagemodels.BoolEq(models.TenantIsActive, *active)
	}
	filter = filter.And(storagemodels.Eq(models.TenantParentMap+"."+linkageType, parentID))

	return datastore.QueryAll(ctx, s.store, &storagemodels.QueryParams{Filter: filter})
}

// GetTenantsByCustomer drains every page QueryByCustomer would produce.
func (s *TenantService) GetTenantsByCustomer(ctx context.Context, customerID string, active *bool) ([]models.Tenant, error) {
	var filter *storagemodels.Predicate
	if active != nil {
		filter = storagemodels.BoolEq(models.TenantIsActive, *active)
	}
	return datastore.QueryAll(ctx, s.store, &storagemodels.QueryParams{
		IndexName: models.TenantCustomerNameIndexName,
		HashValue: customerID,
		Filter:    filter,
	})
}

// AddToParentMap attaches a parent under the given linkage type. The
// slot must be free, the tenant active and the parent not deleted. The
// write addresses only the one map key: concurrent attaches of other
// linkage types on the same tenant do not collide, and a concurrent
// attach of the same type loses with a ConflictError.
func (s *TenantService) AddToParentMap(ctx context.Context, tenant *models.Tenant, parent *models.Parent, linkageType string) (*models.Tenant, error) {
	if !models.IsAllowedLinkageType(linkageType) {
		s.log.Printf("unsupported linkage type %q, available options: %s",
			linkageType, strings.Join(models.AllowedTenantParentMapKeys, ", "))
		return nil, &errors.InvalidLinkageTypeError{
			Type:    linkageType,
			Allowed: models.AllowedTenantParentMapKeys,
		}
	}
	if !tenant.IsActive {
		s.log.Printf("tenant %q is not active", tenant.Name)
		return nil, &errors.EntityInactiveError{Type: "tenant", Name: tenant.Name}
	}
	if parent.IsDeleted {
		s.log.Printf("parent %q is deleted", parent.ParentID)
		return nil, &errors.TargetDeletedError{Type: "parent", Key: parent.ParentID}
	}
	if _, occupied := tenant.ParentMap[linkageType]; occupied {
		s.log.Printf("tenant %q already has %q linkage type", tenant.Name, linkageType)
		return nil, &errors.LinkageAlreadySetError{Entity: tenant.Name, LinkageType: linkageType}
	}

	err := s.store.SetMapKey(ctx,
		storagemodels.Key{Hash: tenant.Name},
		models.TenantParentMap, linkageType, parent.ParentID)
	if err != nil {
		return nil, err
	}

	if tenant.ParentMap == nil {
		tenant.ParentMap = map[string]string{}
	}
	tenant.ParentMap[linkageType] = parent.ParentID
	return tenant, nil
}

// RemoveFromParentMap detaches a linkage type from the tenant's parent
// map. An inactive tenant is left untouched without error; removing an
// absent key is equally a no-op.
func (s *TenantService) RemoveFromParentMap(ctx context.Context, tenant *models.Tenant, linkageType string) (*models.Tenant, error) {
	if !tenant.IsActive {
		s.log.Printf("tenant %q is not active", tenant.Name)
		return tenant, nil
	}

	err := s.store.RemoveMapKey(ctx,
		storagemodels.Key{Hash: tenant.Name},
		models.TenantParentMap, linkageType)
	if err != nil {
		return nil, err
	}

	delete(tenant.ParentMap, linkageType)
	return tenant, nil
}

// TenantDTO is the external representation of a tenant. The internal
// account attribute surfaces as account_id; regions collapse to the
// display names of entries not explicitly deactivated.
type TenantDTO struct {
	Name               string            `json:"name"`
	DisplayName        string            `json:"display_name,omitempty"`
	DisplayNameToLower string            `json:"display_name_to_lower,omitempty"`
	CustomerID         string            `json:"customer_id"`
	Cloud              string            `json:"cloud"`
	AccountID          string            `json:"account_id"`
	IsActive           bool              `json:"is_active"`
	DeactivationDate   *strfmt.DateTime  `json:"deactivation_date,omitempty"`
	Regions            []string          `json:"regions"`
	ParentMap          map[string]string `json:"parent_map,omitempty"`
}

// GetDTO projects a tenant to its external representation. A region
// with no activity flag counts as active; only an explicit false
// excludes it.
func (s *TenantService) GetDTO(tenant models.Tenant) TenantDTO {
	regions := make([]string, 0, len(tenant.Regions))
	for _, r := range tenant.Regions {
		if r.DisplayName == "" {
			continue
		}
		if r.IsActive != nil && !*r.IsActive {
			continue
		}
		regions = append(regions, r.DisplayName)
	}

	return TenantDTO{
		Name:               tenant.Name,
		DisplayName:        tenant.DisplayName,
		DisplayNameToLower: tenant.DisplayNameToLower,
		CustomerID:         tenant.CustomerID,
		Cloud:              tenant.Cloud,
		AccountID:          tenant.AccountID,
		IsActive:           tenant.IsActive,
		DeactivationDate:   tenant.DeactivationDate,
		Regions:            regions,
		ParentMap:          tenant.ParentMap,
	}
}
