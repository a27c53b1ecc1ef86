package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrMemberNotFound indicates that no member profile exists for the given ID.
	ErrMemberNotFound = errors.New("member not found")

	// ErrContributionNotFound indicates that a contribution with the given ID does not exist.
	ErrContributionNotFound = errors.New("contribution not found")

	// ErrHoldingNotFound indicates that a holding transaction with the given ID does not exist.
	ErrHoldingNotFound = errors.New("holding transaction not found")

	// ErrPriceNotFound indicates that no cached quote exists for a symbol.
	ErrPriceNotFound = errors.New("price not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	ErrInvalidSymbol = errors.New("symbol is required")
	ErrInvalidRole   = errors.New("invalid role")
)

// Access errors are returned by the identity and authorization layer.
var (
	// ErrUnauthenticated indicates a missing, expired or forged session token.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrNotApproved indicates the member exists but has not been approved by an admin yet.
	ErrNotApproved = errors.New("membership pending approval")

	// ErrForbidden indicates the caller lacks the admin role.
	ErrForbidden = errors.New("admin role required")

	// ErrSelfModification indicates an admin tried to change their own approval or role.
	ErrSelfModification = errors.New("cannot change own approval or role")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	// ErrFailedToLoadLedger indicates the contribution or holding ledger could not be read.
	// Valuations are never computed from a partial ledger.
	ErrFailedToLoadLedger = errors.New("failed to load ledger")

	ErrFailedToRetrieveContributions = errors.New("failed to retrieve contributions")
	ErrFailedToRetrieveHoldings      = errors.New("failed to retrieve holdings")
	ErrFailedToRetrieveMembers       = errors.New("failed to retrieve members")
	ErrFailedToRetrievePrices        = errors.New("failed to retrieve prices")
	ErrFailedToBuildReport           = errors.New("failed to build report")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
