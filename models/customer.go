/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package models

import (
	"github.com/modularhub/tenantdir/registry"
)

// Customer attribute names
const (
	CustomerName        = "n"
	CustomerDisplayName = "dn"
	CustomerAdmins      = "adm"
	CustomerIsActive    = "act"
)

// CustomersTableName is the base table name for customers.
const CustomersTableName = "Customers"

// Customer is the top-level directory entity. Tenants and applications
// reference customers by name.
type Customer struct {
	Name        string   `dynamodbav:"n"`
	DisplayName string   `dynamodbav:"dn"`
	Admins      []string `dynamodbav:"adm,omitempty"`
	IsActive    bool     `dynamodbav:"act"`
}

func init() {
	registry.RegisterSchema[Customer](&registry.Schema{
		TableName: CustomersTableName,
		Primary:   registry.IndexDescriptor{HashAttribute: CustomerName},
		Attributes: []string{
			CustomerName,
			CustomerDisplayName,
			CustomerAdmins,
			CustomerIsActive,
		},
	})
}
