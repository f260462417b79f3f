package workspaces_errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrWorkspaceNotFound  = errors.New("workspace not found")
	ErrMembershipNotFound = errors.New("workspace member not found")
)

type RejectionKind int

const (
	// RejectionKindRule is a violated membership invariant.
	RejectionKindRule RejectionKind = iota
	// RejectionKindForbidden is an actor below the role an operation needs.
	RejectionKindForbidden
)

// RuleRejection reports why a membership mutation was refused. A rejected
// operation never leaves a partial write behind.
type RuleRejection struct {
	Reason  string
	Members []uuid.UUID
	Kind    RejectionKind
}

func (e *RuleRejection) Error() string {
	return e.Reason
}

func NewRuleRejection(reason string) *RuleRejection {
	return &RuleRejection{Reason: reason, Kind: RejectionKindRule}
}

func NewForbidden(reason string) *RuleRejection {
	return &RuleRejection{Reason: reason, Kind: RejectionKindForbidden}
}

// TransientStoreError marks a store failure the caller may retry: timeouts,
// lost connections and transaction conflicts.
type TransientStoreError struct {
	Op  string
	Err error
}

func (e *TransientStoreError) Error() string {
	return fmt.Sprintf("%s: transient store failure: %v", e.Op, e.Err)
}

func (e *TransientStoreError) Unwrap() error {
	return e.Err
}

var transientPgCodes = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"55P03": {}, // lock_not_available
	"57P01": {}, // admin_shutdown
}

// WrapStoreError classifies a store error. Domain errors pass through
// untouched, so wrapping twice is harmless.
func WrapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}

	var rejection *RuleRejection
	var transient *TransientStoreError
	if errors.As(err, &rejection) || errors.As(err, &transient) ||
		errors.Is(err, ErrWorkspaceNotFound) || errors.Is(err, ErrMembershipNotFound) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrMembershipNotFound
	}

	if IsTransient(err) {
		return &TransientStoreError{Op: op, Err: err}
	}

	return fmt.Errorf("%s: %w", op, err)
}

func IsTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	if pgconn.Timeout(err) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if _, ok := transientPgCodes[pgErr.Code]; ok {
			return true
		}

		return strings.HasPrefix(pgErr.Code, "08")
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
