package iv

import "fmt"

// ParseError reports a malformed numeric argument to a transform command.
// The operation is aborted before any state is touched.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Could not convert %q to a number", e.Input)
}

// NotTransformableError reports that the current selection cannot be
// transformed. Reason is the user-facing text; callers append the attempted
// action name ("No image to" + " rotate").
type NotTransformableError struct {
	Reason string
}

func (e *NotTransformableError) Error() string {
	return e.Reason
}

// RestoreError reports a failed restore from trash.
type RestoreError struct {
	Basename string
	Reason   string
	Err      error // underlying cause, may be nil
}

func (e *RestoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *RestoreError) Unwrap() error {
	return e.Err
}
