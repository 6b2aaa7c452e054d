package emit

import "fmt"

// UnresolvedEntityError reports an attempt to emit a fact about an entity
// whose URI was never resolved.
type UnresolvedEntityError struct {
	Entity string
}

func (e *UnresolvedEntityError) Error() string {
	return fmt.Sprintf("entity %q has not been resolved", e.Entity)
}
