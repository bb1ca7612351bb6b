/*
Package errors defines the failure taxonomy of the tenant directory.

Every failure the directory reports to callers is one of the typed
errors in this package, each carrying a human-readable message and
wired into errors.Is via a package-level sentinel:

	err := tenants.AddToParentMap(ctx, tenant, parent, linkageType)
	if errors.Is(err, tderr.ErrLinkageAlreadySet) {
	    // slot occupied, detach first
	}

Linkage mutations report ErrInvalidLinkageType, ErrEntityInactive,
ErrTargetDeleted, ErrLinkageAlreadySet and ErrConflict. Queries report
ErrUnsupportedQueryShape when the selected index cannot serve the
requested condition; an empty result page is never an error.
*/
package errors
