package raster

// Transform is a six-coefficient affine georeference in GDAL coefficient
// order:
//
//	world x = T[0] + col*T[1] + row*T[2]
//	world y = T[3] + col*T[4] + row*T[5]
//
// For north-up rasters T[2] and T[4] are zero and T[5] is negative (world y
// decreases as rows grow downward).
type Transform [6]float64

// Georef bundles the affine transform with the coordinate reference system
// tag supplied by a raster-loading collaborator, e.g. "EPSG:4326".
type Georef struct {
	Transform Transform
	CRS       string
}

// Bounds is the axis-aligned spatial extent of a raster.
type Bounds struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// PixelToWorld maps the top-left corner of pixel (r, c) to world coordinates.
func (t Transform) PixelToWorld(r, c float64) (x, y float64) {
	x = t[0] + c*t[1] + r*t[2]
	y = t[3] + c*t[4] + r*t[5]
	return x, y
}

// Scale composes the transform with a pixel-size scale, as required after
// resampling: sx and sy are the ratios of old to new pixel counts, so that
// the scaled transform covers the same extent with the new grid shape.
func (t Transform) Scale(sx, sy float64) Transform {
	return Transform{
		t[0], t[1] * sx, t[2] * sy,
		t[3], t[4] * sx, t[5] * sy,
	}
}

// GridBounds computes the spatial extent of a rows x cols raster under the
// transform, taking both opposite corners so that negative pixel heights and
// rotated transforms still give a well-ordered box.
func (t Transform) GridBounds(rows, cols int) Bounds {
	x0, y0 := t.PixelToWorld(0, 0)
	x1, y1 := t.PixelToWorld(float64(rows), float64(cols))
	b := Bounds{MinX: x0, MinY: y0, MaxX: x1, MaxY: y1}
	if b.MinX > b.MaxX {
		b.MinX, b.MaxX = b.MaxX, b.MinX
	}
	if b.MinY > b.MaxY {
		b.MinY, b.MaxY = b.MaxY, b.MinY
	}
	return b
}

// CornerRing returns the closed 5-point boundary ring of the extent as
// (x, y) pairs, wound from the top-left corner: top-left, top-right,
// bottom-right, bottom-left, top-left. A vectorization collaborator can hand
// this directly to a polygon writer.
func (b Bounds) CornerRing() [5][2]float64 {
	return [5][2]float64{
		{b.MinX, b.MaxY},
		{b.MaxX, b.MaxY},
		{b.MaxX, b.MinY},
		{b.MinX, b.MinY},
		{b.MinX, b.MaxY},
	}
}

// Width returns the horizontal span of the extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical span of the extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }
