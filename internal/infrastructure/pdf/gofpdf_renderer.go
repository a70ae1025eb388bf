// Package pdf renders laid-out documents to PDF bytes with gofpdf. It plays
// the instruction sequence back verbatim; nothing here decides placement.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/phpdave11/gofpdf"

	"github.com/kdadks/billing-api/internal/application/billing"
	"github.com/kdadks/billing-api/internal/domain/entity"
	"github.com/kdadks/billing-api/internal/domain/layout"
)

var _ billing.DocumentRenderer = (*Renderer)(nil)

// Renderer is the gofpdf rendering backend.
type Renderer struct{}

// NewRenderer builds the backend.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render replays the document's draw instructions onto PDF pages.
func (r *Renderer) Render(ctx context.Context, doc *layout.Document, branding *entity.CompanySettings) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0) // pagination was decided during layout
	pdf.SetMargins(0, 0, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	images := registerImages(pdf, branding)

	for page := 0; page < doc.PageCount; page++ {
		pdf.AddPage()
		for _, op := range doc.Ops {
			switch o := op.(type) {
			case layout.TextOp:
				if o.Page != page {
					continue
				}
				drawText(pdf, tr, o)
			case layout.LineOp:
				if o.Page != page {
					continue
				}
				pdf.SetDrawColor(int(o.Color.R), int(o.Color.G), int(o.Color.B))
				pdf.SetLineWidth(o.Width)
				pdf.Line(o.X1, o.Y1, o.X2, o.Y2)
			case layout.RectOp:
				if o.Page != page {
					continue
				}
				pdf.SetFillColor(int(o.Fill.R), int(o.Fill.G), int(o.Fill.B))
				pdf.Rect(o.X, o.Y, o.W, o.H, "F")
			case layout.ImageOp:
				if o.Page != page {
					continue
				}
				if img, ok := images[o.Name]; ok {
					pdf.ImageOptions(img.name, o.X, o.Y, o.W, o.H, false, img.options, 0, "")
				}
			}
		}
		if doc.Watermark != "" {
			drawWatermark(pdf, tr, doc.Watermark)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawText(pdf *gofpdf.Fpdf, tr func(string) string, o layout.TextOp) {
	style := ""
	if o.Bold {
		style = "B"
	}
	pdf.SetFont("Arial", style, o.Size)
	pdf.SetTextColor(int(o.Color.R), int(o.Color.G), int(o.Color.B))

	align := "L"
	switch o.Align {
	case layout.AlignCenter:
		align = "C"
	case layout.AlignRight:
		align = "R"
	}

	w := o.W
	if w <= 0 {
		w = pdf.GetStringWidth(tr(o.Text)) + 1
	}
	// TextOp.Y is the top of the line box; CellFormat wants the same.
	pdf.SetXY(o.X, o.Y)
	pdf.CellFormat(w, o.Size*0.3528, tr(o.Text), "", 0, align, false, 0, "")
}

// drawWatermark overlays a diagonal low-opacity banner across the current page.
func drawWatermark(pdf *gofpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetAlpha(0.12, "Normal")
	pdf.SetFont("Arial", "B", 72)
	pdf.SetTextColor(180, 0, 0)

	w, h := pdf.GetPageSize()
	pdf.TransformBegin()
	pdf.TransformRotate(45, w/2, h/2)
	tw := pdf.GetStringWidth(tr(text))
	pdf.Text(w/2-tw/2, h/2, tr(text))
	pdf.TransformEnd()
	pdf.SetAlpha(1, "Normal")
}

type registeredImage struct {
	name    string
	options gofpdf.ImageOptions
}

// registerImages registers whichever branding images are configured so
// ImageOps can reference them by name.
func registerImages(pdf *gofpdf.Fpdf, branding *entity.CompanySettings) map[string]registeredImage {
	out := map[string]registeredImage{}
	if branding == nil {
		return out
	}
	for name, data := range map[string][]byte{
		"logo":   branding.LogoImage,
		"header": branding.HeaderImage,
		"footer": branding.FooterImage,
	} {
		if len(data) == 0 {
			continue
		}
		imageType := ""
		switch http.DetectContentType(data) {
		case "image/png":
			imageType = "PNG"
		case "image/jpeg":
			imageType = "JPG"
		case "image/gif":
			imageType = "GIF"
		default:
			continue // unsupported format: skip rather than fail the render
		}
		opts := gofpdf.ImageOptions{ImageType: imageType}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		out[name] = registeredImage{name: name, options: opts}
	}
	return out
}
