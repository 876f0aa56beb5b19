// ABOUTME: Ownership guard applied by every resource-service operation
// ABOUTME: A not-owned resource is reported exactly like a missing one

package service

// assertOwned verifies that the resource's owner is the requesting principal.
// On mismatch it returns ErrNotFound, not a forbidden-style error: confirming
// that a resource exists to a non-owner is itself a leak.
func assertOwned(resourceOwnerID, principalID int64) error {
	if resourceOwnerID != principalID {
		return ErrNotFound
	}
	return nil
}
