package errors

var (
	ErrAccountNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "account not found",
	}
	ErrAccountExists = &DomainError{
		Code:    CodeAlreadyExists,
		Message: "account already exists",
	}
	ErrInsufficientFunds = &DomainError{
		Code:    CodeInsufficientFunds,
		Message: "insufficient balance",
	}
	ErrInvalidEmail = &DomainError{
		Code:    CodeInvalidRequest,
		Message: "email is required",
	}
	ErrInvalidAmount = &DomainError{
		Code:    CodeInvalidAmount,
		Message: "amount must be greater than zero",
	}
)
