package hydrators

import "fmt"

// ClassNotFoundError is returned by a hydrator that needed to resolve a
// class name and ctx.Config().RequireFullClasspath is true (spec §7:
// ClassNotFound "surfaced as an error when require_full_classpath=true,
// otherwise folded to absent"). Under a lenient classpath the same
// resolution failure is silently treated as a no-op instead.
type ClassNotFoundError struct {
	Name string
}

func (e *ClassNotFoundError) Error() string {
	return fmt.Sprintf("hydrators: class not found: %s", e.Name)
}
