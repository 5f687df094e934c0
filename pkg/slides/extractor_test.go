package slides

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/tutor/pkg/content"
	"github.com/artem13815/tutor/pkg/deck"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

func slideXML(paragraphs ...string) string {
	body := ""
	for _, p := range paragraphs {
		body += fmt.Sprintf(`<a:p><a:r><a:t>%s</a:t></a:r></a:p>`, p)
	}
	return `<?xml version="1.0" encoding="UTF-8"?>` +
		`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
		`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">` +
		`<p:cSld><p:spTree><p:sp><p:txBody>` + body + `</p:txBody></p:sp></p:spTree></p:cSld></p:sld>`
}

func imageRels(targets ...string) string {
	out := `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`
	for i, t := range targets {
		out += fmt.Sprintf(`<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="%s"/>`, i+1, t)
	}
	out += `<Relationship Id="rId99" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`
	return out + `</Relationships>`
}

func presentationXML(relIDs ...string) string {
	out := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><p:sldIdLst>`
	for i, id := range relIDs {
		out += fmt.Sprintf(`<p:sldId id="%d" r:id="%s"/>`, 256+i, id)
	}
	return out + `</p:sldIdLst></p:presentation>`
}

// presentationRels maps rIdN to the given slide targets, relative to ppt/.
func presentationRels(targets ...string) string {
	out := `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`
	out += `<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`
	for i, t := range targets {
		out += fmt.Sprintf(`<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="%s"/>`, i+2, t)
	}
	return out + `</Relationships>`
}

// writePPTX builds a three-slide deck whose parts are slide1, slide2 and slide10:
// slide 1 text only, slide 2 image only, slide 3 text with an image.
func writePPTX(t *testing.T) string {
	t.Helper()
	return writeDeck(t, map[string][]byte{
		"ppt/presentation.xml":              []byte(presentationXML("rId2", "rId3", "rId4")),
		"ppt/_rels/presentation.xml.rels":   []byte(presentationRels("slides/slide1.xml", "slides/slide2.xml", "slides/slide10.xml")),
		"ppt/slides/slide1.xml":             []byte(slideXML("Gradient descent", "  ", "Step   size")),
		"ppt/slides/slide2.xml":             []byte(slideXML()),
		"ppt/slides/_rels/slide2.xml.rels":  []byte(imageRels("../media/image1.emf", "../media/image2.png")),
		"ppt/slides/slide10.xml":            []byte(slideXML("Backprop")),
		"ppt/slides/_rels/slide10.xml.rels": []byte(imageRels("../media/image3.jpeg")),
		"ppt/media/image1.emf":              []byte("emf"),
		"ppt/media/image2.png":              pngBytes,
		"ppt/media/image3.jpeg":             []byte{0xff, 0xd8, 0xff},
	})
}

func writeDeck(t *testing.T, parts map[string][]byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "deck.pptx")
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, data := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return p
}

func TestExtractText_PPTX(t *testing.T) {
	e := NewExtractor(FileLocator(writePPTX(t)))

	got, err := e.ExtractText(context.Background(), content.Reference{})
	require.NoError(t, err)
	assert.Equal(t, []content.SlideText{
		{Number: 1, Text: "Gradient descent\nStep size"},
		{Number: 2, Text: ""},
		{Number: 3, Text: "Backprop"},
	}, got)
}

func TestExtractText_FollowsPresentationOrder(t *testing.T) {
	p := writeDeck(t, map[string][]byte{
		"ppt/presentation.xml":             []byte(presentationXML("rId3", "rId2")),
		"ppt/_rels/presentation.xml.rels":  []byte(presentationRels("slides/slide1.xml", "slides/slide3.xml")),
		"ppt/slides/slide1.xml":            []byte(slideXML("shown second")),
		"ppt/slides/slide3.xml":            []byte(slideXML("shown first")),
		"ppt/slides/_rels/slide1.xml.rels": []byte(imageRels("../media/image1.png")),
		"ppt/media/image1.png":             pngBytes,
	})
	e := NewExtractor(FileLocator(p))

	got, err := e.ExtractText(context.Background(), content.Reference{})
	require.NoError(t, err)
	assert.Equal(t, []content.SlideText{
		{Number: 1, Text: "shown first"},
		{Number: 2, Text: "shown second"},
	}, got)

	refs, err := e.ExtractImages(context.Background(), content.Reference{})
	require.NoError(t, err)
	assert.Equal(t, []content.SlideImageRef{{Number: 2, Name: "image1.png"}}, refs)

	_, ok, err := e.ExtractImageForSlide(context.Background(), content.Reference{}, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExtractText_FileNameOrderWithoutPresentation(t *testing.T) {
	p := writeDeck(t, map[string][]byte{
		"ppt/slides/slide10.xml": []byte(slideXML("ten")),
		"ppt/slides/slide2.xml":  []byte(slideXML("two")),
	})

	got, err := NewExtractor(FileLocator(p)).ExtractText(context.Background(), content.Reference{})
	require.NoError(t, err)
	assert.Equal(t, []content.SlideText{
		{Number: 1, Text: "two"},
		{Number: 2, Text: "ten"},
	}, got)
}

func TestExtractImages_PPTX(t *testing.T) {
	e := NewExtractor(FileLocator(writePPTX(t)))

	refs, err := e.ExtractImages(context.Background(), content.Reference{})
	require.NoError(t, err)
	assert.Equal(t, []content.SlideImageRef{
		{Number: 2, Name: "image1.emf"},
		{Number: 2, Name: "image2.png"},
		{Number: 3, Name: "image3.jpeg"},
	}, refs)

	img, ok, err := e.ExtractImageForSlide(context.Background(), content.Reference{}, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "image/png", img.MimeType)
	assert.Equal(t, pngBytes, img.Data)

	_, ok, err = e.ExtractImageForSlide(context.Background(), content.Reference{}, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExtractor_FeedsResolver(t *testing.T) {
	r := content.NewResolver(NewExtractor(FileLocator(writePPTX(t))))
	ref := &content.Reference{DeckID: uuid.New(), Slide: 2}

	res, err := r.Resolve(context.Background(), content.IntentExplainSlide, ref)
	require.NoError(t, err)
	assert.Equal(t, content.KindImageOnly, res.Kind())

	ref.Slide = 3
	res, err = r.Resolve(context.Background(), content.IntentExplainSlide, ref)
	require.NoError(t, err)
	assert.Equal(t, content.KindTextAndImage, res.Kind())
	assert.Contains(t, res.Text, "Backprop")

	ref.Slide = 4
	_, err = r.Resolve(context.Background(), content.IntentExplainSlide, ref)
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestExtractor_MissingFileIsNotFound(t *testing.T) {
	e := NewExtractor(FileLocator(filepath.Join(t.TempDir(), "gone.pptx")))
	_, err := e.ExtractText(context.Background(), content.Reference{})
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestExtractor_CorruptDeck(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken.pptx")
	require.NoError(t, os.WriteFile(p, []byte("not a zip"), 0o644))

	_, err := NewExtractor(FileLocator(p)).ExtractText(context.Background(), content.Reference{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, content.ErrNotFound)
}

type stubRepo struct {
	deck.Repository
	d deck.Deck
}

func (s stubRepo) GetForOwner(_ context.Context, owner, id uuid.UUID) (deck.Deck, error) {
	if owner != s.d.OwnerID || id != s.d.ID {
		return deck.Deck{}, deck.ErrNotFound
	}
	return s.d, nil
}

func TestRepositoryLocator(t *testing.T) {
	d := deck.Deck{ID: uuid.New(), OwnerID: uuid.New(), StoragePath: writePPTX(t)}
	e := NewExtractor(RepositoryLocator{Repo: stubRepo{d: d}})

	got, err := e.ExtractText(context.Background(), content.Reference{OwnerID: d.OwnerID, DeckID: d.ID})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = e.ExtractText(context.Background(), content.Reference{OwnerID: uuid.New(), DeckID: d.ID})
	assert.ErrorIs(t, err, content.ErrNotFound)
}
