package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"memekit_server/internal/archive"
	"memekit_server/internal/assemble"
	"memekit_server/internal/site"
	"memekit_server/internal/types"
)

const defaultNetwork = "Pump.fun"

// maxMediaBytes bounds uploads; the archive is fully buffered in memory.
const maxMediaBytes = 32 << 20

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	assembler *assemble.Assembler
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(assembler *assemble.Assembler) *APIHandler {
	return &APIHandler{assembler: assembler}
}

// POST /generate
func (h *APIHandler) GenerateKit(c *gin.Context) {
	req, err := bindRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Received generation request for coin %s (%s)", req.CoinName, req.Ticker)

	tree, err := h.assembler.Assemble(c.Request.Context(), req)
	if err != nil {
		log.Printf("Error assembling project for coin %s: %v", req.CoinName, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate project"})
		return
	}
	defer func() {
		if rmErr := tree.Remove(); rmErr != nil {
			log.Printf("WARN: Failed to remove working tree %s: %v", tree.Root, rmErr)
		}
	}()

	data, err := archive.Pack(tree)
	if err != nil {
		log.Printf("Error packing working tree %s: %v", tree.Root, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to package project"})
		return
	}

	filename := fmt.Sprintf("generated_%s_%s.zip", site.Slug(req.CoinName), tree.Token)
	log.Printf("Generation successful for coin %s: %d files, %d archive bytes", req.CoinName, len(tree.Files), len(data))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/zip", data)
}

// POST /preview
func (h *APIHandler) PreviewSite(c *gin.Context) {
	req, err := bindRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.assembler.Preview(c.Request.Context(), req)
	if err != nil {
		log.Printf("Error rendering preview for coin %s: %v", req.CoinName, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render preview"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// bindRequest reads the multipart form into a GenerationRequest, rejecting
// missing required fields before any pipeline work starts.
func bindRequest(c *gin.Context) (types.GenerationRequest, error) {
	req := types.GenerationRequest{
		Narrative:   c.PostForm("narrative"),
		CoinName:    c.PostForm("coin_name"),
		Ticker:      c.PostForm("ticker"),
		Network:     c.DefaultPostForm("network", defaultNetwork),
		XURL:        c.PostForm("x_url"),
		TelegramURL: c.PostForm("telegram_url"),
		PumpFunURL:  c.PostForm("pump_fun"),
	}

	for field, value := range map[string]string{
		"narrative": req.Narrative,
		"coin_name": req.CoinName,
		"ticker":    req.Ticker,
	} {
		if value == "" {
			return types.GenerationRequest{}, fmt.Errorf("missing required form field %q", field)
		}
	}

	header, err := c.FormFile("file")
	if err != nil {
		// Media is optional; plain urlencoded forms are fine too.
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return req, nil
		}
		return types.GenerationRequest{}, fmt.Errorf("invalid file upload: %w", err)
	}
	if header.Size > maxMediaBytes {
		return types.GenerationRequest{}, fmt.Errorf("media upload exceeds %d bytes", maxMediaBytes)
	}

	f, err := header.Open()
	if err != nil {
		return types.GenerationRequest{}, fmt.Errorf("open file upload: %w", err)
	}
	defer f.Close()

	media, err := io.ReadAll(f)
	if err != nil {
		return types.GenerationRequest{}, fmt.Errorf("read file upload: %w", err)
	}

	req.MediaName = header.Filename
	req.Media = media
	return req, nil
}
