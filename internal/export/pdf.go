package export

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin = 10.0 // mm
	titleSize = 14.0 // pt
	titleLine = 10.0 // mm
)

// PDF writes a one-page A4 document holding img scaled to fit the page,
// under an optional title. Landscape images get a landscape page.
func PDF(w io.Writer, img image.Image, title string) error {
	var buf bytes.Buffer
	if err := PNG(&buf, img); err != nil {
		return err
	}

	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("export pdf: empty image")
	}
	orientation := "P"
	if size.X > size.Y {
		orientation = "L"
	}

	p := gofpdf.New(orientation, "mm", "A4", "")
	p.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	p.SetAutoPageBreak(false, pdfMargin)
	p.AddPage()

	top := pdfMargin
	if title != "" {
		p.SetTitle(title, true)
		p.SetFont("Helvetica", "B", titleSize)
		p.CellFormat(0, titleLine, p.UnicodeTranslatorFromDescriptor("")(title), "", 1, "C", false, 0, "")
		top += titleLine
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("board", opts, &buf)

	pageW, pageH := p.GetPageSize()
	boxW, boxH := pageW-2*pdfMargin, pageH-top-pdfMargin
	scale := min(boxW/float64(size.X), boxH/float64(size.Y))
	imgW, imgH := float64(size.X)*scale, float64(size.Y)*scale
	x := (pageW - imgW) / 2
	p.ImageOptions("board", x, top, imgW, imgH, false, opts, 0, "")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}
