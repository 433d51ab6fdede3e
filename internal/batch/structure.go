package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"pds-mcb-extract/internal/mcb"
)

// Structure is the per-asset sidecar describing what classification found
// in the bundle, written next to the exported geometry.
type Structure struct {
	Name              string           `json:"name"`
	Size              int              `json:"size"`
	PointerTableSlots int              `json:"pointerTableSlots"`
	PointerTable      []StructureEntry `json:"pointerTable"`
	Hierarchies       []StructureHier  `json:"hierarchies"`
	ModelSlots        []int            `json:"modelSlots"`
	AnimationSlots    []int            `json:"animationSlots"`
	PoseSlots         []int            `json:"poseSlots"`
	TypeCounts        map[string]int   `json:"typeCounts"`
}

// StructureEntry is one non-zero pointer table slot.
type StructureEntry struct {
	Slot   int    `json:"slot"`
	Offset uint32 `json:"offset"`
	Size   int    `json:"size"`
	Type   string `json:"type"`
}

// StructureHier is one walked bone tree.
type StructureHier struct {
	Slot      int             `json:"slot"`
	Offset    uint32          `json:"offset"`
	BoneCount int             `json:"boneCount"`
	Nodes     []StructureNode `json:"nodes"`
}

// StructureNode is one bone in traversal order.
type StructureNode struct {
	Offset      uint32 `json:"offset"`
	ModelOffset uint32 `json:"modelOffset"`
	Depth       int    `json:"depth"`
	Parent      int    `json:"parent"`
}

// BuildStructure summarizes a parsed bundle. Hierarchies are keyed by the
// slot whose entry roots them; hs must be in the same order as the
// hierarchy-classified entries.
func BuildStructure(name string, b *mcb.Bundle, hs []*mcb.Hierarchy) Structure {
	s := Structure{
		Name:              name,
		Size:              b.Len(),
		PointerTableSlots: len(b.Offsets),
		TypeCounts:        make(map[string]int),
	}
	hierIdx := 0
	for _, e := range b.Entries {
		if e.Offset == 0 {
			continue
		}
		kind := e.Kind.String()
		s.TypeCounts[kind]++
		s.PointerTable = append(s.PointerTable, StructureEntry{
			Slot:   e.Slot,
			Offset: e.Offset,
			Size:   e.Size,
			Type:   kind,
		})
		switch e.Kind {
		case mcb.KindModel:
			s.ModelSlots = append(s.ModelSlots, e.Slot)
		case mcb.KindAnimation:
			s.AnimationSlots = append(s.AnimationSlots, e.Slot)
		case mcb.KindPose:
			s.PoseSlots = append(s.PoseSlots, e.Slot)
		case mcb.KindHierarchy:
			if hierIdx < len(hs) {
				h := hs[hierIdx]
				hierIdx++
				sh := StructureHier{
					Slot:      e.Slot,
					Offset:    h.Root,
					BoneCount: h.BoneCount(),
				}
				for _, n := range h.Nodes {
					sh.Nodes = append(sh.Nodes, StructureNode{
						Offset:      n.Offset,
						ModelOffset: n.ModelOffset,
						Depth:       n.Depth,
						Parent:      n.Parent,
					})
				}
				s.Hierarchies = append(s.Hierarchies, sh)
			}
		}
	}
	return s
}

// WriteStructure writes the sidecar as indented JSON.
func WriteStructure(path string, s Structure) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode structure %s: %w", s.Name, err)
	}
	return os.WriteFile(path, data, 0644)
}
