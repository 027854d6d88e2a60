package main

import (
	"fmt"

	"github.com/hypoanalysis/hypo/internal/model"
)

// unwiredDecoder stands in for spec §1's external byte-level class file
// decoder ("treated as an opaque service"). No bytecode-decoding library
// appears in the retrieved corpus (see DESIGN.md), so this CLI ships the
// wiring point and a clear error rather than a hand-rolled class file
// parser; a real deployment supplies its own provider.Decoder
// implementation (e.g. backed by an ASM-style bytecode library) in place
// of this one.
type unwiredDecoder struct{}

func (unwiredDecoder) Decode(name string, data []byte) (*model.ClassRecord, error) {
	return nil, fmt.Errorf("hypo: no class file decoder wired for %s; supply a provider.Decoder implementation", name)
}
