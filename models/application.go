/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package models

import (
	"github.com/go-openapi/strfmt"

	"github.com/modularhub/tenantdir/registry"
)

// Application attribute names
const (
	ApplicationID           = "aid"
	ApplicationCustomerID   = "cid"
	ApplicationType         = "t"
	ApplicationDescription  = "descr"
	ApplicationIsDeleted    = "d"
	ApplicationDeletionDate = "dd"
	ApplicationMeta         = "meta"
	ApplicationSecret       = "sec"
)

// ApplicationsTableName is the base table name for applications.
const ApplicationsTableName = "Applications"

// ApplicationCustomerIndexName is the secondary index keyed by customer id.
const ApplicationCustomerIndexName = "cid-index"

// Available application types
const (
	ApplicationTypeAWSRole           = "AWS_ROLE"
	ApplicationTypeAWSCredentials    = "AWS_CREDENTIALS"
	ApplicationTypeAzureCredentials  = "AZURE_CREDENTIALS"
	ApplicationTypeAzureCertificate  = "AZURE_CERTIFICATE"
	ApplicationTypeGCPServiceAccount = "GCP_SERVICE_ACCOUNT"
	ApplicationTypeRabbitMQ          = "RABBITMQ"
)

// AvailableApplicationTypes is the allow-list of application types.
var AvailableApplicationTypes = []string{
	ApplicationTypeAWSRole,
	ApplicationTypeAWSCredentials,
	ApplicationTypeAzureCredentials,
	ApplicationTypeAzureCertificate,
	ApplicationTypeGCPServiceAccount,
	ApplicationTypeRabbitMQ,
}

// IsAvailableApplicationType reports whether t is an allow-listed
// application type.
func IsAvailableApplicationType(t string) bool {
	for _, a := range AvailableApplicationTypes {
		if a == t {
			return true
		}
	}
	return false
}

// Application is a customer-scoped integration record. Applications are
// soft-deleted: IsDeleted flips to true and DeletionDate is stamped;
// the record stays in the table.
type Application struct {
	ApplicationID string           `dynamodbav:"aid"`
	CustomerID    string           `dynamodbav:"cid"`
	Type          string           `dynamodbav:"t"`
	Description   string           `dynamodbav:"descr"`
	IsDeleted     bool             `dynamodbav:"d"`
	DeletionDate  *strfmt.DateTime `dynamodbav:"dd,omitempty"`
	Meta          map[string]any   `dynamodbav:"meta,omitempty"`
	Secret        string           `dynamodbav:"sec,omitempty"`
}

func init() {
	registry.RegisterSchema[Application](&registry.Schema{
		TableName: ApplicationsTableName,
		Primary:   registry.IndexDescriptor{HashAttribute: ApplicationID},
		Indexes: []registry.IndexDescriptor{
			{Name: ApplicationCustomerIndexName, HashAttribute: ApplicationCustomerID},
		},
		Attributes: []string{
			ApplicationID,
			ApplicationCustomerID,
			ApplicationType,
			ApplicationDescription,
			ApplicationIsDeleted,
			ApplicationDeletionDate,
			ApplicationMeta,
			ApplicationSecret,
		},
	})
}
