package mesh

// Cube returns a unit cube centred on the origin: 8 corners, 12 triangles.
func Cube() Geometry {
	return Geometry{
		Name: "cube",
		Positions: []float32{
			// Front face
			-0.5, -0.5, 0.5,
			0.5, -0.5, 0.5,
			0.5, 0.5, 0.5,
			-0.5, 0.5, 0.5,
			// Back face
			-0.5, -0.5, -0.5,
			0.5, -0.5, -0.5,
			0.5, 0.5, -0.5,
			-0.5, 0.5, -0.5,
		},
		Indices: []uint32{
			0, 1, 2, 2, 3, 0, // front
			4, 5, 6, 6, 7, 4, // back
			0, 3, 7, 7, 4, 0, // left
			1, 2, 6, 6, 5, 1, // right
			3, 2, 6, 6, 7, 3, // top
			0, 1, 5, 5, 4, 0, // bottom
		},
	}
}

// Pyramid returns a square-based pyramid standing on y=0 with its apex at y=1.
func Pyramid() Geometry {
	return Geometry{
		Name: "pyramid",
		Positions: []float32{
			// Base
			-0.5, 0.0, -0.5,
			0.5, 0.0, -0.5,
			0.5, 0.0, 0.5,
			-0.5, 0.0, 0.5,
			// Apex
			0.0, 1.0, 0.0,
		},
		Indices: []uint32{
			0, 1, 2, 2, 3, 0, // base
			0, 1, 4,
			1, 2, 4,
			2, 3, 4,
			3, 0, 4,
		},
	}
}

// AxisLength is the length of each coordinate axis line.
const AxisLength = 3.0

// Axis line segments in the Axes geometry, as (first vertex, vertex count).
var (
	AxisX = [2]int32{0, 2}
	AxisY = [2]int32{2, 2}
	AxisZ = [2]int32{4, 2}
)

// Axes returns three line segments from the origin along +X, +Y and +Z.
func Axes() Geometry {
	return Geometry{
		Name: "axes",
		Positions: []float32{
			0, 0, 0, AxisLength, 0, 0, // X
			0, 0, 0, 0, AxisLength, 0, // Y
			0, 0, 0, 0, 0, AxisLength, // Z
		},
	}
}
