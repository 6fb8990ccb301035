package server

import (
	"bytes"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cffkit/cffkit/internal/cff"
	"github.com/cffkit/cffkit/internal/convert"
	"github.com/cffkit/cffkit/internal/validate"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}

// handleValidate checks a CFF YAML body and returns the report. A
// document that fails validation is still a successful request; only
// an empty body is a client error.
func (s *Server) handleValidate(c *fiber.Ctx) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "request body is empty",
		})
	}
	return c.JSON(validate.Bytes(body))
}

// handleConvert renders a CFF YAML body in the format named by the
// format query parameter.
func (s *Server) handleConvert(c *fiber.Ctx) error {
	format := c.Query("format")
	if format == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "format query parameter is required (" + strings.Join(convert.Formats(), ", ") + ")",
		})
	}

	doc, err := cff.ParseBytes(c.Body())
	if err != nil {
		report := validate.Bytes(c.Body())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  err.Error(),
			"issues": report.Issues,
		})
	}

	out, err := convert.Convert(doc, format)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if format == "schemaorg" || format == "zenodo" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	}
	return c.SendString(out)
}

func (s *Server) handleCitations(c *fiber.Ctx) error {
	if !s.catalogReady() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "citation index not built",
		})
	}

	records, err := s.searchCitations(
		c.Query("q"),
		c.Query("author"),
		c.Query("license"),
		c.QueryBool("valid"),
		c.QueryInt("limit", defaultSearchLimit),
	)
	if err != nil {
		s.log.Error("searching catalog", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "searching catalog failed",
		})
	}
	return c.JSON(records)
}

func (s *Server) handleCitation(c *fiber.Ctx) error {
	if !s.catalogReady() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "citation index not built",
		})
	}

	id := c.Params("id")
	rec, err := s.catalog.Get(id)
	if err != nil {
		s.log.Error("reading catalog", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "reading catalog failed",
		})
	}
	if rec == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "citation not found: " + id,
		})
	}
	return c.JSON(rec)
}
