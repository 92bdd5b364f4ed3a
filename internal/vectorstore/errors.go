package vectorstore

import "fmt"

// Error marks a failure raised by the vector store backend. The generate
// endpoint relies on this type to tell ingestion/storage problems apart from
// other chain failures.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("vector store: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrap returns err annotated as a vector store failure.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
