package lifecycle

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ErrDuplicateAuthorization reports a create conflict: the recipient already
// holds a live authorization for this user and smart account. Callers should
// treat it as "already authorized", not as a transient failure.
var ErrDuplicateAuthorization = errors.New("an authorization already exists for this business")

// ErrAuthorizationNotFound reports that no stored authorization matches the
// requested tuple.
var ErrAuthorizationNotFound = errors.New("authorization not found")

// CorruptRecordError reports a stored delegation that no longer decodes.
// Retrying cannot succeed; the record needs operator attention.
type CorruptRecordError struct {
	Err error
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("stored delegation is corrupt: %v", e.Err)
}

func (e *CorruptRecordError) Unwrap() error { return e.Err }

// RevokeStoreError reports the inconsistency window where the on-chain
// disable was submitted but the store delete failed: the delegation is dead
// on chain yet still listed. Retrying the delete alone is safe; the disable
// needs no resubmission.
type RevokeStoreError struct {
	UserOpHash common.Hash
	Err        error
}

func (e *RevokeStoreError) Error() string {
	return fmt.Sprintf("delegation disabled on chain (user op %s) but the store delete failed: %v", e.UserOpHash, e.Err)
}

func (e *RevokeStoreError) Unwrap() error { return e.Err }
