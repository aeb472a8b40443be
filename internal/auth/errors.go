package auth

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies where in the login flow a failure happened. Every kind
// is terminal for the current flow; the user restarts from /login.
type Kind string

const (
	KindInvalidState   Kind = "invalid_state"
	KindAccessDenied   Kind = "access_denied"
	KindMissingCode    Kind = "missing_code"
	KindTokenExchange  Kind = "token_exchange_failed"
	KindNoAccessToken  Kind = "no_access_token"
	KindProfileFetch   Kind = "profile_fetch_failed"
	KindNotEligible    Kind = "not_eligible"
	KindNoEmail        Kind = "no_email_in_profile"
	KindReconciliation Kind = "account_reconciliation_failed"
	KindCredentialMint Kind = "credential_mint_failed"
	KindNetwork        Kind = "network_error"
	KindUnexpected     Kind = "unexpected_error"
)

// FlowError is a typed, terminal login-flow failure. Message is safe to
// return to the client; Err carries the internal cause for logging.
type FlowError struct {
	Kind           Kind
	Status         int    // HTTP status returned to the client
	Message        string // public error message
	UpstreamStatus int    // provider HTTP status, when relevant
	Err            error
}

func (e *FlowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *FlowError) Unwrap() error { return e.Err }

// AsFlowError extracts a FlowError from err, wrapping unknown errors as
// KindUnexpected so the handler always has a status and safe message.
func AsFlowError(err error) *FlowError {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe
	}
	return &FlowError{
		Kind:    KindUnexpected,
		Status:  http.StatusInternalServerError,
		Message: "Unexpected error",
		Err:     err,
	}
}

func ErrInvalidState() *FlowError {
	return &FlowError{
		Kind:    KindInvalidState,
		Status:  http.StatusBadRequest,
		Message: "Invalid state parameter",
	}
}

func ErrAccessDenied() *FlowError {
	return &FlowError{
		Kind:    KindAccessDenied,
		Status:  http.StatusForbidden,
		Message: "Access denied by user",
	}
}

func ErrMissingCode() *FlowError {
	return &FlowError{
		Kind:    KindMissingCode,
		Status:  http.StatusBadRequest,
		Message: "Authorization code not provided",
	}
}

func ErrTokenExchange(upstreamStatus int) *FlowError {
	return &FlowError{
		Kind:           KindTokenExchange,
		Status:         http.StatusBadRequest,
		Message:        fmt.Sprintf("Failed to exchange code for token: %d", upstreamStatus),
		UpstreamStatus: upstreamStatus,
	}
}

func ErrNoAccessToken() *FlowError {
	return &FlowError{
		Kind:    KindNoAccessToken,
		Status:  http.StatusBadRequest,
		Message: "No access token received",
	}
}

func ErrProfileFetch(upstreamStatus int) *FlowError {
	return &FlowError{
		Kind:           KindProfileFetch,
		Status:         http.StatusBadRequest,
		Message:        fmt.Sprintf("Failed to get user data from UCL: %d", upstreamStatus),
		UpstreamStatus: upstreamStatus,
	}
}

func ErrNotEligible() *FlowError {
	return &FlowError{
		Kind:    KindNotEligible,
		Status:  http.StatusForbidden,
		Message: "Account is not eligible for this service",
	}
}

func ErrNoEmail() *FlowError {
	return &FlowError{
		Kind:    KindNoEmail,
		Status:  http.StatusBadRequest,
		Message: "No email received from UCL API",
	}
}

func ErrReconciliation(err error) *FlowError {
	return &FlowError{
		Kind:    KindReconciliation,
		Status:  http.StatusInternalServerError,
		Message: "Failed to resolve user account",
		Err:     err,
	}
}

func ErrCredentialMint(err error) *FlowError {
	return &FlowError{
		Kind:    KindCredentialMint,
		Status:  http.StatusInternalServerError,
		Message: "Failed to mint session credential",
		Err:     err,
	}
}

func ErrNetwork(err error) *FlowError {
	return &FlowError{
		Kind:    KindNetwork,
		Status:  http.StatusInternalServerError,
		Message: "Network error",
		Err:     err,
	}
}
