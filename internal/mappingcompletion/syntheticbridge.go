package mappingcompletion

import (
	"github.com/hypoanalysis/hypo/internal/hydrators"
	"github.com/hypoanalysis/hypo/internal/hypocontext"
	"github.com/hypoanalysis/hypo/internal/mapping"
	"github.com/hypoanalysis/hypo/internal/model"
)

// SyntheticBridgeMappingContributor is the default ChangeContributor
// spec §4.F's bridge linkage exists to feed: once hydration has recorded
// SYNTHETIC_TARGET(bridge)=real, the bridge should carry the same
// deobfuscated name as the method it forwards to, so a decompiler sees
// one coherent identifier instead of the bridge's own obfuscated or
// unrelated name. It only fires when the real method already has a
// mapping in this visit's class mapping (nothing to copy otherwise).
type SyntheticBridgeMappingContributor struct{}

// NewSyntheticBridgeMappingContributor constructs the contributor.
func NewSyntheticBridgeMappingContributor() *SyntheticBridgeMappingContributor {
	return &SyntheticBridgeMappingContributor{}
}

func (c *SyntheticBridgeMappingContributor) Contribute(record *model.ClassRecord, classMapping mapping.ClassMapping, _ *hypocontext.Context, registry *ChangeRegistry) error {
	if record == nil || classMapping == nil {
		return nil
	}
	for _, m := range record.Methods() {
		if !m.Synthetic {
			continue
		}
		target, ok := model.AttributeGet(m.Attributes, hydrators.SyntheticTargetKey)
		if !ok || target == nil {
			continue
		}
		if _, ok := classMapping.Method(target.Name, target.RawDescriptor); !ok {
			continue
		}
		change := &CopyMethodMappingToTargetChange{
			Source: MemberReference{ClassName: record.Name, Name: target.Name, Descriptor: target.RawDescriptor},
			Target: MemberReference{ClassName: record.Name, Name: m.Name, Descriptor: m.RawDescriptor},
		}
		if err := registry.Submit(change); err != nil {
			return err
		}
	}
	return nil
}
