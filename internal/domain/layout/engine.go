package layout

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kdadks/billing-api/internal/domain/currency"
	"github.com/kdadks/billing-api/internal/domain/entity"
	"github.com/kdadks/billing-api/internal/domain/money"
)

// Input is everything the engine needs to lay out one invoice.
type Input struct {
	Invoice  *entity.Invoice
	Customer *entity.Customer
	Country  *entity.Country // customer jurisdiction, may be nil
	Company  *entity.CompanySettings
	Geometry Geometry
	Measurer Measurer // nil selects the built-in approximate measurer
}

// Vertical rhythm (mm).
const (
	lineH      = 4.5
	smallLineH = 3.8
	minRowH    = 8.0
	cellPadY   = 1.6
	headerRowH = 8.0
	totalRowH  = 6.0
	sectionGap = 4.0
	footerH    = 14.0
)

// Item table column widths (mm). Sum must equal A4 content width (180).
var tableCols = struct {
	idx, desc, qty, unit, rate, tax, amount float64
}{8, 77, 16, 14, 22, 13, 30}

// enIN groups digits the Indian way (1,00,000) for on-document amounts.
var enIN = message.NewPrinter(language.MustParse("en-IN"))

type engine struct {
	geo Geometry
	m   Measurer
	cur currency.Info

	ops  []Instruction
	page int
	y    float64
}

// Build lays the invoice out onto one or more pages and returns the draw
// instructions in paint order.
func Build(in Input) (*Document, error) {
	if in.Invoice == nil || in.Customer == nil || in.Company == nil {
		return nil, fmt.Errorf("layout: invoice, customer and company are required")
	}

	geo := in.Geometry
	if geo.PageWidth == 0 {
		geo = A4()
	}
	m := in.Measurer
	if m == nil {
		m = approxMeasurer{}
	}

	e := &engine{geo: geo, m: m, cur: currency.Resolve(in.Country)}
	e.startPage()

	totals := money.ComputeTotals(in.Invoice.Items)

	e.renderTitle(in.Invoice)
	e.renderParties(in.Company, in.Customer, in.Country)
	e.renderItemTable(in.Invoice.Items)
	totalsTopY := e.renderTotalsBox(totals)
	totalsPage := e.page
	e.renderAmountInWords(totals.Total)
	e.renderClosingBlocks(in.Invoice, in.Company, totalsTopY, totalsPage)
	e.renderFooter(in.Company)

	doc := &Document{PageCount: e.page + 1, Ops: e.ops}
	if in.Invoice.Status == entity.StatusCancelled {
		doc.Watermark = "CANCELLED"
	}
	return doc, nil
}

// ── page management ───────────────────────────────────────────────────────────

func (e *engine) startPage() {
	if e.geo.HeaderImageHeight > 0 {
		e.ops = append(e.ops, ImageOp{
			Page: e.page, X: e.geo.MarginLeft, Y: e.geo.MarginTop,
			W: e.geo.ContentWidth(), H: e.geo.HeaderImageHeight, Name: "header",
		})
	}
	if e.geo.FooterImageHeight > 0 {
		e.ops = append(e.ops, ImageOp{
			Page: e.page, X: e.geo.MarginLeft,
			Y: e.geo.PageHeight - e.geo.MarginBottom - e.geo.FooterImageHeight,
			W: e.geo.ContentWidth(), H: e.geo.FooterImageHeight, Name: "footer",
		})
	}
	e.y = e.geo.ContentStartY()
}

func (e *engine) newPage() {
	e.page++
	e.startPage()
}

// ensure starts a new page when h more millimetres would cross the body
// threshold. The footer block is excluded from the body region.
func (e *engine) ensure(h float64) {
	if e.y+h > e.geo.ContentEndY()-footerH {
		e.newPage()
	}
}

// ── primitives ────────────────────────────────────────────────────────────────

func (e *engine) text(x, y, w float64, s string, size float64, bold bool, a Align, c Color) {
	e.ops = append(e.ops, TextOp{Page: e.page, X: x, Y: y, W: w, Text: s, Size: size, Bold: bold, Align: a, Color: c})
}

func (e *engine) rule(x1, y1, x2, y2, width float64, c Color) {
	e.ops = append(e.ops, LineOp{Page: e.page, X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width, Color: c})
}

func (e *engine) rect(x, y, w, h float64, fill Color) {
	e.ops = append(e.ops, RectOp{Page: e.page, X: x, Y: y, W: w, H: h, Fill: fill})
}

// wrapText emits wrapped lines of s starting at y and returns the advanced y.
func (e *engine) wrapText(x, y, w float64, s string, size float64, bold bool, lh float64, c Color) float64 {
	for _, line := range wrap(e.m, s, w, size, bold) {
		e.text(x, y, w, line, size, bold, AlignLeft, c)
		y += lh
	}
	return y
}

func (e *engine) formatAmount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return e.cur.Symbol + enIN.Sprintf("%.2f", f)
}

// ── header ────────────────────────────────────────────────────────────────────

func (e *engine) renderTitle(inv *entity.Invoice) {
	left := e.geo.MarginLeft
	right := e.geo.PageWidth - e.geo.MarginRight
	w := e.geo.ContentWidth()

	e.text(left, e.y, w, "TAX INVOICE", 14, true, AlignLeft, colorAccent)
	e.text(left, e.y, w, inv.InvoiceNumber, 12, true, AlignRight, colorInk)
	e.y += 6

	e.text(left, e.y, w, "Date: "+inv.InvoiceDate.Format("02 Jan 2006"), 9, false, AlignRight, colorMuted)
	e.y += lineH
	if inv.DueDate != nil {
		e.text(left, e.y, w, "Due: "+inv.DueDate.Format("02 Jan 2006"), 9, false, AlignRight, colorMuted)
		e.y += lineH
	}

	e.rule(left, e.y+1, right, e.y+1, 0.5, colorAccent)
	e.y += 4
}

// optLine is one optional row of a party column. Absent fields render nothing
// and cost no vertical space; the column cursor only advances for present
// rows, so any combination of optional data keeps positions correct.
type optLine struct {
	when bool
	text string
	size float64
	bold bool
	c    Color
}

// renderColumn folds a column's optional lines with a running cursor and
// returns the y below its last rendered line.
func (e *engine) renderColumn(x, w, y float64, lines []optLine) float64 {
	for _, l := range lines {
		if !l.when || l.text == "" {
			continue
		}
		lh := lineH
		if l.size < 9 {
			lh = smallLineH
		}
		y = e.wrapText(x, y, w, l.text, l.size, l.bold, lh, l.c)
	}
	return y
}

func (e *engine) renderParties(co *entity.CompanySettings, cu *entity.Customer, country *entity.Country) {
	left := e.geo.MarginLeft
	colW := e.geo.ContentWidth()/2 - 5
	rightX := left + e.geo.ContentWidth()/2 + 5
	topY := e.y

	seller := []optLine{
		{true, "From", 8, true, colorMuted},
		{true, co.CompanyName, 10, true, colorInk},
		{co.AddressLine1 != "", co.AddressLine1, 8.5, false, colorInk},
		{co.AddressLine2 != "", co.AddressLine2, 8.5, false, colorInk},
		{true, joinNonEmpty(co.City, co.State, co.PostalCode), 8.5, false, colorInk},
		{co.Country != "", co.Country, 8.5, false, colorInk},
		{co.TaxID != "", "GSTIN: " + co.TaxID, 8.5, false, colorMuted},
		{co.PAN != "", "PAN: " + co.PAN, 8.5, false, colorMuted},
		{co.Email != "", co.Email, 8.5, false, colorMuted},
		{co.Phone != "", co.Phone, 8.5, false, colorMuted},
	}

	countryCode := ""
	countryName := ""
	if country != nil {
		countryCode = country.Code
		countryName = country.Name
	}
	buyer := []optLine{
		{true, "Bill To", 8, true, colorMuted},
		{true, cu.Name, 10, true, colorInk},
		{cu.AddressLine1 != "", cu.AddressLine1, 8.5, false, colorInk},
		{cu.AddressLine2 != "", cu.AddressLine2, 8.5, false, colorInk},
		{true, joinNonEmpty(cu.City, cu.State, cu.PostalCode), 8.5, false, colorInk},
		{countryName != "", countryName, 8.5, false, colorInk},
		{cu.TaxID != "", currency.TaxIDLabel(countryCode) + ": " + cu.TaxID, 8.5, false, colorMuted},
		{cu.Email != "", cu.Email, 8.5, false, colorMuted},
		{cu.Phone != "", cu.Phone, 8.5, false, colorMuted},
	}

	leftY := e.renderColumn(left, colW, topY, seller)
	rightY := e.renderColumn(rightX, colW, topY, buyer)

	// Columns advance independently; the body resumes below the taller one so
	// they can never overlap whatever optional data either side carries.
	if leftY > rightY {
		e.y = leftY
	} else {
		e.y = rightY
	}
	e.y += sectionGap
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}

// ── item table ────────────────────────────────────────────────────────────────

func (e *engine) colX() (x [8]float64) {
	x[0] = e.geo.MarginLeft
	x[1] = x[0] + tableCols.idx
	x[2] = x[1] + tableCols.desc
	x[3] = x[2] + tableCols.qty
	x[4] = x[3] + tableCols.unit
	x[5] = x[4] + tableCols.rate
	x[6] = x[5] + tableCols.tax
	x[7] = x[6] + tableCols.amount // right edge
	return x
}

func (e *engine) renderTableHeaderRow() {
	x := e.colX()
	e.rect(x[0], e.y, e.geo.ContentWidth(), headerRowH, colorAccent)

	cy := e.y + cellPadY + 2.4
	cap := func(cx, cw float64, s string, a Align) {
		e.text(cx+1, cy, cw-2, s, 8.5, true, a, colorWhite)
	}
	cap(x[0], tableCols.idx, "#", AlignCenter)
	cap(x[1], tableCols.desc, "Item & Description", AlignLeft)
	cap(x[2], tableCols.qty, "Qty", AlignRight)
	cap(x[3], tableCols.unit, "Unit", AlignCenter)
	cap(x[4], tableCols.rate, "Rate", AlignRight)
	cap(x[5], tableCols.tax, e.cur.TaxLabel+"%", AlignCenter)
	cap(x[6], tableCols.amount, "Amount", AlignRight)

	e.y += headerRowH
}

func (e *engine) renderItemTable(items []entity.InvoiceItem) {
	e.renderTableHeaderRow()
	x := e.colX()

	for i, it := range items {
		descLines := wrap(e.m, it.Description, tableCols.desc-2, 8, false)
		// Name line plus wrapped description drive the height; a present
		// classification code costs one extra text line.
		rowH := float64(1+len(descLines))*lineH + 2*cellPadY
		if it.HSNCode != "" {
			rowH += smallLineH
		}
		if rowH < minRowH {
			rowH = minRowH
		}

		// A row never splits across pages: push the whole row and a fresh
		// table header onto the next page instead.
		if e.y+rowH > e.geo.ContentEndY()-footerH {
			e.newPage()
			e.renderTableHeaderRow()
		}

		cy := e.y + cellPadY + 2.2
		e.text(x[0]+1, cy, tableCols.idx-2, fmt.Sprintf("%d", i+1), 8.5, false, AlignCenter, colorInk)
		e.text(x[1]+1, cy, tableCols.desc-2, it.ItemName, 8.5, true, AlignLeft, colorInk)
		dy := cy + lineH
		for _, l := range descLines {
			e.text(x[1]+1, dy, tableCols.desc-2, l, 8, false, AlignLeft, colorMuted)
			dy += lineH
		}
		if it.HSNCode != "" {
			e.text(x[1]+1, dy, tableCols.desc-2, "HSN: "+it.HSNCode, 7.5, false, AlignLeft, colorMuted)
		}

		e.text(x[2]+1, cy, tableCols.qty-2, it.Quantity.String(), 8.5, false, AlignRight, colorInk)
		e.text(x[3]+1, cy, tableCols.unit-2, it.Unit, 8.5, false, AlignCenter, colorInk)
		e.text(x[4]+1, cy, tableCols.rate-2, e.formatAmount(it.UnitPrice), 8.5, false, AlignRight, colorInk)
		e.text(x[5]+1, cy, tableCols.tax-2, it.TaxRate.StringFixed(0)+"%", 8.5, false, AlignCenter, colorInk)
		e.text(x[6]+1, cy, tableCols.amount-2, e.formatAmount(it.LineTotal()), 8.5, false, AlignRight, colorInk)

		e.y += rowH
		e.rule(x[0], e.y, x[7], e.y, 0.2, Color{220, 220, 220})
	}

	e.rule(x[0], e.y, x[7], e.y, 0.4, colorAccent)
	e.y += sectionGap
}

// ── totals ────────────────────────────────────────────────────────────────────

const totalsBoxW = 70.0

// renderTotalsBox draws the right-aligned totals block and returns its top y,
// which the banking block reuses as a shared vertical origin.
func (e *engine) renderTotalsBox(t money.Totals) float64 {
	boxH := 3*totalRowH + 2
	e.ensure(boxH + lineH*2)

	right := e.geo.PageWidth - e.geo.MarginRight
	x := right - totalsBoxW
	top := e.y
	labelW := totalsBoxW * 0.55
	valueW := totalsBoxW - labelW

	row := func(label, value string, bold bool, c Color) {
		e.text(x, e.y+1.4, labelW, label, 9, bold, AlignLeft, c)
		e.text(x+labelW, e.y+1.4, valueW, value, 9, bold, AlignRight, c)
		e.y += totalRowH
	}

	row("Subtotal", e.formatAmount(t.Subtotal), false, colorInk)
	row(e.cur.TaxLabel, e.formatAmount(t.TaxAmount), false, colorInk)
	e.rule(x, e.y, right, e.y, 0.4, colorAccent)
	e.y += 1
	row("Total", e.formatAmount(t.Total), true, colorAccent)

	return top
}

func (e *engine) renderAmountInWords(total decimal.Decimal) {
	right := e.geo.PageWidth - e.geo.MarginRight
	x := right - totalsBoxW
	words := money.AmountInWords(total, e.cur.Name)

	e.ensure(lineH * 3)
	e.text(x, e.y+1, totalsBoxW, "Amount in Words:", 8, true, AlignLeft, colorMuted)
	e.y += lineH
	// Wrapped to the totals box width, not the page width.
	e.y = e.wrapText(x, e.y, totalsBoxW, words, 8, false, smallLineH, colorInk)
	e.y += sectionGap
}

// ── closing blocks ────────────────────────────────────────────────────────────

func (e *engine) bankingLines(co *entity.CompanySettings) []optLine {
	return []optLine{
		{true, "Bank Details", 8.5, true, colorAccent},
		{co.BankAccountName != "", "Account Name: " + co.BankAccountName, 8, false, colorInk},
		{co.BankAccountNumber != "", "Account No: " + co.BankAccountNumber, 8, false, colorInk},
		{co.BankName != "", "Bank: " + co.BankName, 8, false, colorInk},
		{co.BankIFSC != "", "IFSC: " + co.BankIFSC, 8, false, colorInk},
		{co.BankSWIFT != "", "SWIFT: " + co.BankSWIFT, 8, false, colorInk},
	}
}

// renderClosingBlocks places banking, notes and terms. Banking sits beside
// the totals box (same vertical origin) when there are no notes to use that
// space; otherwise it drops below the totals, followed by notes, then terms.
// totalsTopY is only valid while the cursor is still on totalsPage; after a
// page break the beside slot no longer exists and banking flows at the cursor.
func (e *engine) renderClosingBlocks(inv *entity.Invoice, co *entity.CompanySettings, totalsTopY float64, totalsPage int) {
	left := e.geo.MarginLeft
	sideW := e.geo.ContentWidth() - totalsBoxW - 10

	if co.HasBankDetails() && inv.Notes == "" && e.page == totalsPage {
		sideY := e.renderColumn(left, sideW, totalsTopY, e.bankingLines(co))
		if sideY > e.y {
			e.y = sideY + sectionGap
		}
	} else if co.HasBankDetails() {
		e.ensure(lineH * 7)
		e.y = e.renderColumn(left, e.geo.ContentWidth(), e.y, e.bankingLines(co))
		e.y += sectionGap
	}

	if inv.Notes != "" {
		e.ensure(lineH * 4)
		e.text(left, e.y, e.geo.ContentWidth(), "Notes", 8.5, true, AlignLeft, colorAccent)
		e.y += lineH
		e.y = e.wrapText(left, e.y, e.geo.ContentWidth(), inv.Notes, 8, false, smallLineH, colorInk)
		e.y += sectionGap
	}

	if inv.TermsConditions != "" {
		e.ensure(lineH * 4)
		e.text(left, e.y, e.geo.ContentWidth(), "Terms & Conditions", 8.5, true, AlignLeft, colorAccent)
		e.y += lineH
		e.y = e.wrapText(left, e.y, e.geo.ContentWidth(), inv.TermsConditions, 8, false, smallLineH, colorMuted)
		e.y += sectionGap
	}
}

// ── footer ────────────────────────────────────────────────────────────────────

// renderFooter anchors the final block at ContentEndY regardless of where the
// body cursor landed, so the footer position is stable on short invoices.
func (e *engine) renderFooter(co *entity.CompanySettings) {
	left := e.geo.MarginLeft
	right := e.geo.PageWidth - e.geo.MarginRight
	w := e.geo.ContentWidth()

	y := e.geo.ContentEndY() - footerH
	e.rule(left, y, right, y, 0.3, colorMuted)
	y += lineH
	e.text(left, y, w, "Thank you for your business!", 9, true, AlignCenter, colorAccent)
	y += lineH
	e.text(left, y, w, "This is a computer generated invoice and does not require a signature.", 7, false, AlignCenter, colorMuted)
}
