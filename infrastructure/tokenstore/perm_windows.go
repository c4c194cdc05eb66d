//go:build windows

package tokenstore

import "drive-delivery/domain/delivery"

// os.Chmod only toggles the read-only attribute on Windows; restricting
// access to the owner would need ACLs.
func restrictToOwner(path string) error {
	return delivery.ErrPermissionsUnsupported
}
