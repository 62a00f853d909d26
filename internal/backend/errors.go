package backend

import "fmt"

type panicError struct {
	value any
}

func (e panicError) Error() string {
	return fmt.Sprintf("compiler panicked during initialization: %v", e.value)
}
