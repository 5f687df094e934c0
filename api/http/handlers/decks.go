package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/tutor/api/http/presenter"
	"github.com/artem13815/tutor/pkg/deck"
	"github.com/artem13815/tutor/pkg/log"
	"github.com/artem13815/tutor/pkg/security/jwt"
)

const (
	// MaxUploadBytes caps each deck in an upload.
	MaxUploadBytes = 50 << 20
	// MaxUploadBody caps the whole multipart request.
	MaxUploadBody = 4 * MaxUploadBytes
)

type DeckHandler struct {
	svc deck.UseCase
	// Limit uploaded file size read into memory (bytes)
	maxBytes int64
}

func NewDeckHandler(svc deck.UseCase) *DeckHandler {
	return &DeckHandler{svc: svc, maxBytes: MaxUploadBytes}
}

// uploadFields are the multipart fields a deck may arrive under.
var uploadFields = []string{"files", "uploads", "file"}

type pendingUpload struct {
	filename string
	data     []byte
}

// Upload stores one or more .pptx or .pdf decks for the current user.
// Every file is checked before any is stored, so a bad file rejects the whole request.
// @Summary Upload slide decks
// @Tags    files
// @Accept  multipart/form-data
// @Produce json
// @Param   files formData file true "presentations (.pptx or .pdf), repeat the field for several files"
// @Security BearerAuth
// @Success 201 {object} map[string][]deck.Deck
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 413 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /files/upload [post]
func (h *DeckHandler) Upload(c *fiber.Ctx) error {
	owner, err := jwt.UserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	form, err := c.MultipartForm()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pptx or pdf)")
	}
	var headers []*multipart.FileHeader
	for _, field := range uploadFields {
		headers = append(headers, form.File[field]...)
	}
	if len(headers) == 0 {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pptx or pdf)")
	}

	pending := make([]pendingUpload, 0, len(headers))
	for _, fh := range headers {
		if _, ok := deck.SupportedExtensions[strings.ToLower(filepath.Ext(fh.Filename))]; !ok {
			return presenter.Error(c, http.StatusBadRequest, fmt.Sprintf("%s: %v", fh.Filename, deck.ErrUnsupportedFormat))
		}
		if fh.Size > h.maxBytes {
			return presenter.Error(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("%s: %v: limit is %d bytes", fh.Filename, errFileTooLarge, h.maxBytes))
		}
		data, err := readHeader(fh, h.maxBytes)
		if errors.Is(err, errFileTooLarge) {
			return presenter.Error(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("%s: %v", fh.Filename, err))
		}
		if err != nil {
			return presenter.Error(c, http.StatusBadRequest, fmt.Sprintf("%s: %v", fh.Filename, err))
		}
		pending = append(pending, pendingUpload{filename: fh.Filename, data: data})
	}

	uploaded := make([]deck.Deck, 0, len(pending))
	for _, p := range pending {
		d, err := h.svc.Upload(c.UserContext(), owner, p.filename, p.data)
		switch {
		case errors.Is(err, deck.ErrUnsupportedFormat), errors.Is(err, deck.ErrEmptyFile):
			return presenter.Error(c, http.StatusBadRequest, fmt.Sprintf("%s: %v", p.filename, err))
		case err != nil:
			log.FromCtx(c.UserContext()).Error().Err(err).Str("filename", p.filename).Int("stored", len(uploaded)).Msg("deck upload failed")
			return presenter.Error(c, http.StatusInternalServerError, "failed to store file")
		}
		uploaded = append(uploaded, d)
	}
	return presenter.JSON(c, http.StatusCreated, fiber.Map{"uploaded": uploaded})
}

// List returns the current user's decks, newest first.
// @Summary List uploaded slide decks
// @Tags    files
// @Produce json
// @Param   limit  query int false "page size (1..200)" default(20)
// @Param   offset query int false "offset" default(0)
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /files/list [get]
func (h *DeckHandler) List(c *fiber.Ctx) error {
	owner, err := jwt.UserID(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	limit, offset := parseLimitOffset(c, 20)
	items, err := h.svc.List(c.UserContext(), owner, limit, offset)
	if err != nil {
		log.FromCtx(c.UserContext()).Error().Err(err).Msg("list decks failed")
		return presenter.Error(c, http.StatusInternalServerError, "failed to list files")
	}
	if items == nil {
		items = []deck.Deck{}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"items":  items,
		"limit":  limit,
		"offset": offset,
	})
}

var errFileTooLarge = errors.New("file too large")

func readHeader(fh *multipart.FileHeader, max int64) ([]byte, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, errors.New("failed to open uploaded file")
	}
	defer file.Close()
	return readAtMost(file, max)
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("%w: limit is %d bytes", errFileTooLarge, max)
	}
	return b, nil
}
