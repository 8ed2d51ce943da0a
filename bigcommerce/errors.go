package bigcommerce

import "fmt"

// FetchError aborts a paginated fetch. It carries the page the failure
// happened on and the underlying cause; there is no partial-success mode.
type FetchError struct {
	Page   int
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetching page %d failed (status %d): %v", e.Page, e.Status, e.Err)
	}
	return fmt.Sprintf("fetching page %d failed: %v", e.Page, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
