package slides

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/artem13815/tutor/pkg/content"
)

const drawingNS = "http://schemas.openxmlformats.org/drawingml/2006/main"

var slidePartRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

var imageMimeByExt = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

// pptxDeck reads slide parts lazily from an open pptx archive.
type pptxDeck struct {
	parts map[string]*zip.File
	// slide part names in presentation order; slide n is slides[n-1]
	slides []string
}

func openPPTX(r io.ReaderAt, size int64) (*pptxDeck, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open pptx: %w", err)
	}
	d := &pptxDeck{parts: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		d.parts[f.Name] = f
	}
	d.slides, err = d.presentationOrder()
	if err != nil {
		return nil, fmt.Errorf("open pptx: %w", err)
	}
	if len(d.slides) == 0 {
		d.slides = d.fileNameOrder()
	}
	if len(d.slides) == 0 {
		return nil, errors.New("open pptx: no slides found")
	}
	return d, nil
}

type presentation struct {
	SlideIDs []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

// presentationOrder follows the slide list of ppt/presentation.xml, which is the order
// the author sees. It returns nil when the deck has no usable slide list.
func (d *pptxDeck) presentationOrder() ([]string, error) {
	const presName, relsName = "ppt/presentation.xml", "ppt/_rels/presentation.xml.rels"
	if _, ok := d.parts[presName]; !ok {
		return nil, nil
	}
	if _, ok := d.parts[relsName]; !ok {
		return nil, nil
	}
	raw, err := d.read(presName)
	if err != nil {
		return nil, err
	}
	var pres presentation
	if err := xml.Unmarshal(raw, &pres); err != nil {
		return nil, fmt.Errorf("presentation: %w", err)
	}
	rels, err := d.relationships(relsName)
	if err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(rels.Items))
	for _, r := range rels.Items {
		if strings.HasSuffix(r.Type, "/slide") {
			targets[r.ID] = resolveTarget("ppt", r.Target)
		}
	}
	var out []string
	for _, id := range pres.SlideIDs {
		if t, ok := targets[id.RelID]; ok {
			if _, exists := d.parts[t]; exists {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

// fileNameOrder numbers slides by their slideN.xml part names.
func (d *pptxDeck) fileNameOrder() []string {
	type numbered struct {
		n    int
		name string
	}
	var found []numbered
	for name := range d.parts {
		if m := slidePartRe.FindStringSubmatch(name); m != nil {
			n, _ := strconv.Atoi(m[1])
			found = append(found, numbered{n: n, name: name})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })
	out := make([]string, len(found))
	for i, f := range found {
		out[i] = f.name
	}
	return out
}

func (d *pptxDeck) Texts() ([]content.SlideText, error) {
	out := make([]content.SlideText, 0, len(d.slides))
	for i, part := range d.slides {
		n := i + 1
		raw, err := d.read(part)
		if err != nil {
			return nil, err
		}
		text, err := slideText(raw)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", n, err)
		}
		out = append(out, content.SlideText{Number: n, Text: text})
	}
	return out, nil
}

func (d *pptxDeck) Images() ([]content.SlideImageRef, error) {
	var out []content.SlideImageRef
	for n := 1; n <= len(d.slides); n++ {
		targets, err := d.imageTargets(n)
		if err != nil {
			return nil, err
		}
		for _, t := range targets {
			out = append(out, content.SlideImageRef{Number: n, Name: path.Base(t)})
		}
	}
	return out, nil
}

// Image returns the first embedded image of a known type on the slide.
func (d *pptxDeck) Image(slide int) (content.Image, bool, error) {
	targets, err := d.imageTargets(slide)
	if err != nil {
		return content.Image{}, false, err
	}
	for _, t := range targets {
		mime, ok := imageMimeByExt[strings.ToLower(path.Ext(t))]
		if !ok {
			continue
		}
		data, err := d.read(t)
		if err != nil {
			return content.Image{}, false, err
		}
		if len(data) == 0 {
			continue
		}
		return content.Image{Data: data, MimeType: mime}, true, nil
	}
	return content.Image{}, false, nil
}

type relationships struct {
	Items []struct {
		ID         string `xml:"Id,attr"`
		Type       string `xml:"Type,attr"`
		Target     string `xml:"Target,attr"`
		TargetMode string `xml:"TargetMode,attr"`
	} `xml:"Relationship"`
}

func (d *pptxDeck) relationships(name string) (relationships, error) {
	var rels relationships
	raw, err := d.read(name)
	if err != nil {
		return rels, err
	}
	if err := xml.Unmarshal(raw, &rels); err != nil {
		return rels, fmt.Errorf("%s: %w", name, err)
	}
	return rels, nil
}

// resolveTarget turns a relationship target into an archive path.
func resolveTarget(baseDir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(baseDir, target)
}

// imageTargets lists archive paths of images linked from the slide, in relationship order.
func (d *pptxDeck) imageTargets(slide int) ([]string, error) {
	if slide < 1 || slide > len(d.slides) {
		return nil, nil
	}
	part := d.slides[slide-1]
	dir, file := path.Split(part)
	relsName := dir + "_rels/" + file + ".rels"
	if _, ok := d.parts[relsName]; !ok {
		return nil, nil
	}
	rels, err := d.relationships(relsName)
	if err != nil {
		return nil, fmt.Errorf("slide %d: %w", slide, err)
	}
	var out []string
	for _, r := range rels.Items {
		if !strings.HasSuffix(r.Type, "/image") || strings.EqualFold(r.TargetMode, "External") {
			continue
		}
		target := resolveTarget(path.Dir(part), r.Target)
		if _, ok := d.parts[target]; ok {
			out = append(out, target)
		}
	}
	return out, nil
}

func (d *pptxDeck) read(name string) ([]byte, error) {
	f, ok := d.parts[name]
	if !ok {
		return nil, fmt.Errorf("pptx part %s missing", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// slideText collects <a:t> runs, one line per non-empty <a:p> paragraph.
func slideText(raw []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	var (
		lines []string
		para  strings.Builder
		inRun bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space == drawingNS && t.Name.Local == "t" {
				inRun = true
			}
		case xml.EndElement:
			if t.Name.Space != drawingNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				if line := normalizeWhitespace(para.String()); line != "" {
					lines = append(lines, line)
				}
				para.Reset()
			}
		case xml.CharData:
			if inRun {
				para.Write(t)
			}
		}
	}
	if line := normalizeWhitespace(para.String()); line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}
