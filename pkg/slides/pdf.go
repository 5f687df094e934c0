package slides

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"github.com/artem13815/tutor/pkg/content"
)

// pdfDeck treats every page as a slide. Images are not extracted from PDFs.
type pdfDeck struct {
	r *pdf.Reader
}

func openPDF(r io.ReaderAt, size int64) (*pdfDeck, error) {
	pr, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &pdfDeck{r: pr}, nil
}

func (d *pdfDeck) Texts() ([]content.SlideText, error) {
	n := d.r.NumPage()
	out := make([]content.SlideText, 0, n)
	for i := 1; i <= n; i++ {
		p := d.r.Page(i)
		if p.V.IsNull() {
			out = append(out, content.SlideText{Number: i})
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		out = append(out, content.SlideText{Number: i, Text: normalizeWhitespace(text)})
	}
	return out, nil
}

func (d *pdfDeck) Images() ([]content.SlideImageRef, error) { return nil, nil }

func (d *pdfDeck) Image(int) (content.Image, bool, error) { return content.Image{}, false, nil }

var (
	spaceRunRe   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRunRe = regexp.MustCompile(`\n+`)
)

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = newlineRunRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
