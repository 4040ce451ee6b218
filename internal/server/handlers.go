package server

import (
	"errors"
	"mime/multipart"

	"fjacquet/xact-rollup/internal/factory"
	"fjacquet/xact-rollup/internal/logging"
	"fjacquet/xact-rollup/internal/models"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": ServiceName,
		"version": s.cfg.Version,
	})
}

// handleParseEstimate runs the full pipeline over an uploaded estimate file.
// The format form value overrides detection from the uploaded filename.
func (s *Server) handleParseEstimate(c *fiber.Ctx) error {
	estimate, err := s.parseUpload(c)
	if err != nil {
		return err
	}

	processed, err := s.engine.Process(c.UserContext(), estimate)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	return c.JSON(processed)
}

// handleValidateEstimate runs the pipeline plus the reviewer over an
// uploaded estimate file. An unparseable upload is a valid request with an
// invalid estimate, not a transport error, so both paths answer 200.
func (s *Server) handleValidateEstimate(c *fiber.Ctx) error {
	var report *models.ReviewReport

	estimate, err := s.parseUpload(c)
	if err != nil {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code != fiber.StatusUnprocessableEntity {
			return err // missing file field, oversized upload
		}
		report = s.reviewer.ReviewFailure(uploadName(c), err)
	} else {
		processed, procErr := s.engine.Process(c.UserContext(), estimate)
		if procErr != nil {
			report = s.reviewer.ReviewFailure(uploadName(c), procErr)
		} else {
			report = s.reviewer.Review(processed, uploadName(c))
		}
	}

	return c.JSON(fiber.Map{
		"valid":    report.Valid,
		"warnings": report.Warnings(),
		"errors":   report.Errors(),
	})
}

// handleReprice applies category total overrides to a posted estimate
// document and returns the revised document.
func (s *Server) handleReprice(c *fiber.Ctx) error {
	var req models.RepriceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid reprice request body")
	}
	if req.Estimate == nil {
		return fiber.NewError(fiber.StatusBadRequest, "estimate is required")
	}

	revised, count, err := s.engine.Reprice(c.UserContext(), req.Estimate, req.Overrides)
	if err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	s.logger.Info("Estimate repriced",
		logging.Field{Key: logging.FieldRequestID, Value: c.Locals(logging.FieldRequestID)},
		logging.Field{Key: logging.FieldCount, Value: count})

	return c.JSON(revised)
}

// parseUpload reads the multipart file field and parses it into a raw
// estimate. Errors carry the HTTP status the caller should answer with:
// 400 for a missing file, 413 over the size limit, 422 when parsing fails.
func (s *Server) parseUpload(c *fiber.Ctx) (*models.Estimate, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "multipart file field 'file' is required")
	}

	if limit := int64(s.cfg.MaxFileSizeMB) * 1024 * 1024; fileHeader.Size > limit {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "uploaded file exceeds the size limit")
	}

	parserType, err := resolveType(fileHeader, c.FormValue("format"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "uploaded file could not be read")
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			s.logger.WithError(closeErr).Warn("Failed to close uploaded file")
		}
	}()

	estimate, err := factory.ParseReader(parserType, f, s.logger)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	estimate.SourceFile = fileHeader.Filename

	return estimate, nil
}

// resolveType picks the parser type from the explicit format form value,
// falling back to the uploaded filename's extension.
func resolveType(fileHeader *multipart.FileHeader, format string) (factory.ParserType, error) {
	if format != "" {
		return factory.ParseType(format)
	}
	return factory.DetectType(fileHeader.Filename)
}

// uploadName returns the uploaded filename for review reports, empty when
// the upload never arrived.
func uploadName(c *fiber.Ctx) string {
	if fileHeader, err := c.FormFile("file"); err == nil {
		return fileHeader.Filename
	}
	return ""
}
