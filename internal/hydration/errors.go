package hydration

import "fmt"

// ClassHydrationFailure wraps a phase failure with the class that was being
// hydrated when it occurred, and the member name too when the failing
// provider targeted a method or field.
type ClassHydrationFailure struct {
	ClassName  string
	MemberName string
	Err        error
}

func (e *ClassHydrationFailure) Error() string {
	if e.MemberName == "" {
		return fmt.Sprintf("hydration: %s: %v", e.ClassName, e.Err)
	}
	return fmt.Sprintf("hydration: %s#%s: %v", e.ClassName, e.MemberName, e.Err)
}

func (e *ClassHydrationFailure) Unwrap() error { return e.Err }
