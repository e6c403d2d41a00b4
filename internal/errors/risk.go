package errors

var (
	ErrFraudBlocked = &DomainError{
		Code:    CodeFraudBlocked,
		Message: "flagged as potentially fraudulent",
	}
	ErrInsufficientHistory = &DomainError{
		Code:    CodeInsufficientHistory,
		Message: "not enough history to evaluate pattern",
	}
)
