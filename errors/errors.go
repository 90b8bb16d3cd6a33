package errors

import "fmt"

var (
	ErrInvalidPersonaID = fmt.Errorf("invalid persona id")
	ErrInvalidRequest   = fmt.Errorf("invalid request")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrEmptyDictionary  = fmt.Errorf("no censored words have been found")
)
