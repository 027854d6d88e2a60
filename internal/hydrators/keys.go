// Package hydrators implements the four concrete HydrationProvider
// derivations named in spec §4.F: synthetic-bridge linkage, super-
// constructor chaining, and lambda/local-class closure capture. Each
// attaches its findings to the record graph as attribute values under the
// keys declared below, rather than widening model.ClassRecord/
// model.MethodRecord with domain-specific fields.
package hydrators

import "github.com/hypoanalysis/hypo/internal/model"

// SyntheticTargetKey holds, on a synthetic bridge method, the real method
// it forwards to.
var SyntheticTargetKey = model.NewAttributeKey[*model.MethodRecord]("hydrators.SYNTHETIC_TARGET")

// SyntheticSourceKey holds, on a non-synthetic method, every bridge that
// forwards to it.
var SyntheticSourceKey = model.NewAttributeKey[[]*model.MethodRecord]("hydrators.SYNTHETIC_SOURCE")

// SuperCallTargetKey holds, on a constructor, the single SuperCall
// describing its chained super(...)/this(...) invocation.
var SuperCallTargetKey = model.NewAttributeKey[*SuperCall]("hydrators.SUPER_CALL_TARGET")

// SuperCallerSourcesKey holds, on a constructor, every SuperCall chaining
// into it from a subclass or sibling constructor.
var SuperCallerSourcesKey = model.NewAttributeKey[[]*SuperCall]("hydrators.SUPER_CALLER_SOURCES")

// LambdaClosureKey holds, on a lambda body method, the single
// LambdaClosure describing its containing method and captures.
var LambdaClosureKey = model.NewAttributeKey[*LambdaClosure]("hydrators.LAMBDA_CLOSURE")

// ContainingLambdaClosuresKey holds, on a containing method, every
// LambdaClosure whose lambda body it declares.
var ContainingLambdaClosuresKey = model.NewAttributeKey[[]*LambdaClosure]("hydrators.CONTAINING_LAMBDA_CLOSURES")

// LocalClassClosureKey holds, on a local/anonymous class, the single
// LocalClassClosure describing its containing method and captures.
var LocalClassClosureKey = model.NewAttributeKey[*LocalClassClosure]("hydrators.LOCAL_CLASS_CLOSURE")

// ContainingLocalClassClosuresKey holds, on a containing method, every
// LocalClassClosure whose local class it declares.
var ContainingLocalClassClosuresKey = model.NewAttributeKey[[]*LocalClassClosure]("hydrators.CONTAINING_LOCAL_CLASS_CLOSURES")
