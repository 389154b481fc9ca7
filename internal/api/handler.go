// Package api exposes the recalculation core over HTTP for integrations and
// manual testing: the same parsing and arithmetic the bot runs, minus the
// chat transport.
package api

import (
	"bytes"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dispatchrepublic/trip-rate-bot/internal/extractor"
	"github.com/dispatchrepublic/trip-rate-bot/internal/models"
	"github.com/dispatchrepublic/trip-rate-bot/internal/parser"
	"github.com/dispatchrepublic/trip-rate-bot/internal/recalc"
	"github.com/dispatchrepublic/trip-rate-bot/internal/writer"
)

const version = "1.0.0"

// RecalcRequest is the JSON body for /api/recalc.
type RecalcRequest struct {
	Text    string `json:"text"`    // the original trip post, verbatim
	Command string `json:"command"` // "Add 100" / "Minus 50.25"
}

// RecalcResponse is the JSON response from /api/recalc.
type RecalcResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Text    string `json:"text,omitempty"`
	Rate    string `json:"rate,omitempty"`
	PerMile string `json:"perMile,omitempty"`
}

// ExtractResponse is the JSON response from /api/extract.
type ExtractResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Rate    string `json:"rate,omitempty"`
	PerMile string `json:"perMile,omitempty"`
	Miles   string `json:"miles,omitempty"`
	RawText string `json:"rawText,omitempty"`
}

// Server is the fiber HTTP surface.
type Server struct {
	log *zap.Logger
	app *fiber.App
}

// NewServer builds the app and registers routes.
func NewServer(log *zap.Logger) *Server {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	s := &Server{log: log, app: app}

	app.Get("/api/health", s.handleHealth)
	app.Post("/api/recalc", s.handleRecalc)
	app.Post("/api/extract", s.handleExtract)
	return s
}

// Listen serves until Shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(5 * time.Second)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": version,
	})
}

func (s *Server) handleRecalc(c *fiber.Ctx) error {
	reqID := uuid.NewString()

	var req RecalcRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(RecalcResponse{
			Success: false, Error: "invalid JSON body",
		})
	}

	adj, ok := parser.ParseAdjustment(req.Command)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(RecalcResponse{
			Success: false, Error: "not an adjustment command; use 'Add 100' or 'Minus 50'",
		})
	}

	post, err := parser.Extract(req.Text)
	if err != nil {
		return s.recalcFailure(c, err)
	}
	updated, err := recalc.Apply(post, adj)
	if err != nil {
		return s.recalcFailure(c, err)
	}
	out, err := recalc.Rewrite(req.Text, updated)
	if err != nil {
		return s.recalcFailure(c, err)
	}

	s.log.Info("recalculated",
		zap.String("request", reqID),
		zap.String("sign", string(adj.Sign)),
		zap.String("rate", updated.Rate.StringFixed(2)))

	return c.JSON(RecalcResponse{
		Success: true,
		Text:    out,
		Rate:    updated.Rate.StringFixed(2),
		PerMile: updated.PerMile.StringFixed(2),
	})
}

func (s *Server) recalcFailure(c *fiber.Ctx, err error) error {
	kind, _ := models.KindOf(err)
	return c.Status(fiber.StatusUnprocessableEntity).JSON(RecalcResponse{
		Success: false,
		Error:   err.Error(),
		Kind:    string(kind),
	})
}

func (s *Server) handleExtract(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ExtractResponse{
			Success: false, Error: "No file uploaded. Use form field 'file'.",
		})
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return c.Status(fiber.StatusBadRequest).JSON(ExtractResponse{
			Success: false, Error: "Only PDF files are supported.",
		})
	}

	tmpFile, err := os.CreateTemp("", "ratecon-*.pdf")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ExtractResponse{
			Success: false, Error: "Failed to create temp file.",
		})
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ExtractResponse{
			Success: false, Error: "Failed to save uploaded file.",
		})
	}

	pages, err := extractor.ExtractText(tmpPath)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ExtractResponse{
			Success: false, Error: err.Error(),
		})
	}

	text := strings.Join(pages, "\n")
	post, err := parser.Extract(text)
	if err != nil {
		kind, _ := models.KindOf(err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ExtractResponse{
			Success: false,
			Error:   err.Error(),
			Kind:    string(kind),
			RawText: text,
		})
	}

	if c.Query("format") == "csv" {
		var buf bytes.Buffer
		w := &writer.CSVWriter{IncludeHeader: true}
		if err := w.Write(&buf, fileHeader.Filename, []*models.TripPost{post}); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(ExtractResponse{
				Success: false, Error: "CSV generation failed.",
			})
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		return c.SendString(buf.String())
	}

	return c.JSON(ExtractResponse{
		Success: true,
		Rate:    post.Rate.StringFixed(2),
		PerMile: post.PerMile.StringFixed(2),
		Miles:   post.Miles.String(),
		RawText: text,
	})
}
