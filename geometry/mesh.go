package geometry

// MeshBuffer is an indexed triangle list.
type MeshBuffer struct {
	Positions []Vec3
	Indices   []uint32
}

func (m MeshBuffer) Triangles() int {
	return len(m.Indices) / 3
}

// MergeWith appends other, re-basing its indices.
func (m MeshBuffer) MergeWith(other MeshBuffer) MeshBuffer {
	base := uint32(len(m.Positions))
	out := MeshBuffer{
		Positions: append(append(make([]Vec3, 0, len(m.Positions)+len(other.Positions)), m.Positions...), other.Positions...),
		Indices:   append(make([]uint32, 0, len(m.Indices)+len(other.Indices)), m.Indices...),
	}
	for _, i := range other.Indices {
		out.Indices = append(out.Indices, base+i)
	}
	return out
}

func quad(a, b, c, d Vec3) MeshBuffer {
	return MeshBuffer{
		Positions: []Vec3{a, b, c, d},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}

// FlatRectMesh is a z=0 rectangle centered on the origin, lengthX by lengthY.
func FlatRectMesh(lengthX, lengthY float64) MeshBuffer {
	hx, hy := lengthX/2, lengthY/2
	return quad(V3(-hx, -hy, 0), V3(hx, -hy, 0), V3(hx, hy, 0), V3(-hx, hy, 0))
}

// FlatMeshForAabb is a rectangle spanning the XY extents of a at a's center height.
func FlatMeshForAabb(a Aabb) MeshBuffer {
	lo, hi := a.Min(), a.Max()
	z := a.Center.Z
	return quad(V3(lo.X, lo.Y, z), V3(hi.X, lo.Y, z), V3(hi.X, hi.Y, z), V3(lo.X, hi.Y, z))
}

// WallMesh is a box of the given thickness and height whose bottom centerline
// runs from start to end.
func WallMesh(start, end Vec3, thickness, height float64) MeshBuffer {
	dir := end.Sub(start).Planar()
	if dir.Length() == 0 {
		return MeshBuffer{}
	}
	side := FromPlanar(dir.Normalize().Perp().Mult(thickness/2), 0)
	up := V3(0, 0, height)

	b0, b1 := start.Sub(side), end.Sub(side)
	b2, b3 := end.Add(side), start.Add(side)
	t0, t1, t2, t3 := b0.Add(up), b1.Add(up), b2.Add(up), b3.Add(up)

	out := quad(t0, t1, t2, t3)
	for _, face := range []MeshBuffer{
		quad(b0, b1, t1, t0),
		quad(b1, b2, t2, t1),
		quad(b2, b3, t3, t2),
		quad(b3, b0, t0, t3),
	} {
		out = out.MergeWith(face)
	}
	return out
}
