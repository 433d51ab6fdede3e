// Package gltf writes extracted geometry as binary glTF (.glb).
package gltf

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Part is one bone's placed geometry: world-space positions and a
// triangulated index list.
type Part struct {
	Name      string
	Positions [][3]float32
	Indices   []uint32
}

// Export writes parts to path as a single-mesh .glb, one primitive per part.
// Parts with no triangles are skipped; exporting zero triangles overall is
// an error so callers never ship an empty file silently.
func Export(path, name string, parts []Part) error {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "pds-mcb-extract"

	mesh := &gltf.Mesh{Name: name}
	for _, p := range parts {
		if len(p.Indices) == 0 {
			continue
		}
		pos := modeler.WritePosition(doc, p.Positions)
		idx := modeler.WriteIndices(doc, p.Indices)
		mesh.Primitives = append(mesh.Primitives, &gltf.Primitive{
			Attributes: map[string]uint32{gltf.POSITION: pos},
			Indices:    gltf.Index(idx),
		})
	}
	if len(mesh.Primitives) == 0 {
		return fmt.Errorf("gltf: %s: no geometry to export", name)
	}

	doc.Meshes = append(doc.Meshes, mesh)
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name: name,
		Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("gltf: save %s: %w", path, err)
	}
	return nil
}

// Triangulate converts a quad index list to triangles, collapsing
// degenerate quads (fourth index equal to the third) to a single triangle.
func Triangulate(quads [][4]uint32) []uint32 {
	out := make([]uint32, 0, len(quads)*6)
	for _, q := range quads {
		out = append(out, q[0], q[1], q[2])
		if q[2] != q[3] {
			out = append(out, q[0], q[2], q[3])
		}
	}
	return out
}
