package apperr

// ValidationError marks unparseable caller input. The HTTP layer renders it as
// a 400 with a structured body instead of letting it bubble up.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
