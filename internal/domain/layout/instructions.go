// Package layout turns a populated invoice into an ordered sequence of
// page-relative draw instructions (text, lines, filled rectangles). The
// byte-level document format is a renderer's concern; this package only
// decides what goes where.
//
// Page anatomy (A4, mm):
//
//	┌─────────────────────────────────────────────┐
//	│  branding header inset (optional image)      │
//	│  TITLE + number/dates     ── contentStartY   │
//	│  SELLER block   │   BILL TO block            │
//	│  ───────────────────────────────────────     │
//	│  ITEM TABLE (wrapped rows, page breaks)      │
//	│            TOTALS BOX  │ banking (if free)   │
//	│  amount in words                             │
//	│  banking / notes / terms (as present)        │
//	│  footer rule + thank you  ── contentEndY     │
//	│  branding footer inset (optional image)      │
//	└─────────────────────────────────────────────┘
package layout

// Align is horizontal text alignment within the op's box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Color is an RGB triple (0-255 per channel).
type Color struct {
	R, G, B uint8
}

var (
	colorInk    = Color{40, 40, 40}
	colorAccent = Color{0, 70, 127}
	colorMuted  = Color{110, 110, 110}
	colorWhite  = Color{255, 255, 255}
)

// Instruction is one page-relative draw operation.
type Instruction interface {
	instruction()
}

// TextOp draws a single line of text. X/Y is the anchor of the baseline box;
// W bounds alignment for center/right.
type TextOp struct {
	Page  int
	X, Y  float64
	W     float64
	Text  string
	Size  float64
	Bold  bool
	Align Align
	Color Color
}

// LineOp draws a straight rule.
type LineOp struct {
	Page           int
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          Color
}

// RectOp draws a filled rectangle.
type RectOp struct {
	Page    int
	X, Y    float64
	W, H    float64
	Fill    Color
}

// ImageOp places a branding image by reference; the renderer owns decoding.
type ImageOp struct {
	Page    int
	X, Y    float64
	W, H    float64
	Name    string // "logo", "header", "footer"
}

func (TextOp) instruction()  {}
func (LineOp) instruction()  {}
func (RectOp) instruction()  {}
func (ImageOp) instruction() {}

// Document is the laid-out result handed to a rendering backend.
type Document struct {
	PageCount int
	Ops       []Instruction
	// Watermark, when non-empty, asks the renderer for a diagonal low-opacity
	// overlay on every page. Presentation flag only; set for cancelled invoices.
	Watermark string
}
