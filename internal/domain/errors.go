package domain

// Domain errors
var (
	ErrUnknownTransactionType = &DomainError{Message: "unknown transaction type"}
	ErrUnknownUserRole        = &DomainError{Message: "unknown user role"}
)

// DomainError represents a domain-level error
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
