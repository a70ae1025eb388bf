package layout

// brandingGap is the fixed clearance between a branding image and body content.
const brandingGap = 4.0

// Geometry is the page model in millimetres. Branding image heights create
// insets that shift where body content may begin and end on every page.
type Geometry struct {
	PageWidth  float64
	PageHeight float64

	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64

	// Vertical extent of branding images; zero when absent.
	HeaderImageHeight float64
	FooterImageHeight float64
}

// A4 returns the default page geometry.
func A4() Geometry {
	return Geometry{
		PageWidth:    210,
		PageHeight:   297,
		MarginLeft:   15,
		MarginRight:  15,
		MarginTop:    12,
		MarginBottom: 12,
	}
}

// ContentStartY is where body content may begin, below the header inset.
func (g Geometry) ContentStartY() float64 {
	y := g.MarginTop
	if g.HeaderImageHeight > 0 {
		y += g.HeaderImageHeight + brandingGap
	}
	return y
}

// ContentEndY is where body content must stop, above the footer inset.
// The closing footer block anchors here regardless of the body cursor.
func (g Geometry) ContentEndY() float64 {
	y := g.PageHeight - g.MarginBottom
	if g.FooterImageHeight > 0 {
		y -= g.FooterImageHeight + brandingGap
	}
	return y
}

// ContentWidth is the usable horizontal extent.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - g.MarginLeft - g.MarginRight
}
