package hydrators

import "github.com/hypoanalysis/hypo/internal/model"

// SuperCallParameter records that constructor C's parameter at ThisIndex
// is forwarded, untransformed, as the called constructor's parameter at
// SuperIndex.
type SuperCallParameter struct {
	ThisIndex  int
	SuperIndex int
}

// SuperCall is the chained super(...)/this(...) invocation that begins a
// constructor body (spec §4.F, §3 invariant: at most one per constructor).
type SuperCall struct {
	Constructor *model.MethodRecord
	Target      *model.MethodRecord
	Params      []SuperCallParameter
}

// Chain composes two adjacent SuperCalls — outer is C's call into some
// constructor B, inner is B's own call into a further constructor A — by
// intersecting pass-through indices: outer's (thisIndex, superIndex) pair
// survives into the result only if inner also passes that same parameter
// through untransformed, reindexed to inner's target. This is plain
// composition of the two partial index functions, so it is reflexive and
// associative wherever both sides are defined (spec §8 property 6).
func Chain(outer, inner *SuperCall) *SuperCall {
	var composed []SuperCallParameter
	for _, op := range outer.Params {
		for _, ip := range inner.Params {
			if ip.ThisIndex == op.SuperIndex {
				composed = append(composed, SuperCallParameter{ThisIndex: op.ThisIndex, SuperIndex: ip.SuperIndex})
				break
			}
		}
	}
	return &SuperCall{Constructor: outer.Constructor, Target: inner.Target, Params: composed}
}
