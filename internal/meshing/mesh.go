package meshing

import (
	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is the number of float32 per interleaved vertex
// (pos.xyz + normal.xyz + uv).
const VertexStride = 8

// Mesh is an indexed triangle mesh. Triangles index Vertices in groups of
// three with counter-clockwise winding. Normals are derived, never authored.
type Mesh struct {
	Vertices  []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Triangles []uint32
}

// addQuad appends four corners and the two triangles (0,1,2),(0,2,3).
func (m *Mesh) addQuad(corners [4]mgl32.Vec3, uvs [4]mgl32.Vec2) {
	base := uint32(len(m.Vertices))
	m.Triangles = append(m.Triangles,
		base, base+1, base+2,
		base, base+2, base+3,
	)
	m.Vertices = append(m.Vertices, corners[:]...)
	m.UVs = append(m.UVs, uvs[:]...)
}

// QuadCount is the number of faces in the mesh.
func (m *Mesh) QuadCount() int {
	return len(m.Vertices) / 4
}

// RecalculateNormals sets each vertex normal to the normalized sum of the
// face normals of its triangles, weighted by triangle area.
func (m *Mesh) RecalculateNormals() {
	normals := make([]mgl32.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Triangles); i += 3 {
		ia, ib, ic := m.Triangles[i], m.Triangles[i+1], m.Triangles[i+2]
		a, b, c := m.Vertices[ia], m.Vertices[ib], m.Vertices[ic]
		// Cross product length is twice the area, so the sum is area weighted.
		n := b.Sub(a).Cross(c.Sub(a))
		normals[ia] = normals[ia].Add(n)
		normals[ib] = normals[ib].Add(n)
		normals[ic] = normals[ic].Add(n)
	}
	for i, n := range normals {
		if n.Len() > 0 {
			normals[i] = n.Normalize()
		}
	}
	m.Normals = normals
}

// Interleaved packs the mesh as pos+normal+uv per vertex, the layout the
// render backend uploads.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*VertexStride)
	for i, v := range m.Vertices {
		var n mgl32.Vec3
		if i < len(m.Normals) {
			n = m.Normals[i]
		}
		var uv mgl32.Vec2
		if i < len(m.UVs) {
			uv = m.UVs[i]
		}
		out = append(out, v[0], v[1], v[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return out
}
