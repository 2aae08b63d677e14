// Package api exposes batch collation over HTTP for offline dataset
// preparation. The engine itself stays transport-free; this is glue over
// internal/collate.
package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/saridormi/commit-message-generation/internal/collate"
	"github.com/saridormi/commit-message-generation/internal/logger"
)

type Server struct {
	collator *collate.Collator
	log      logger.Logger
}

func NewServer(collator *collate.Collator, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{collator: collator, log: log}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/collate", s.handleCollate)
	e.GET("/v1/healthz", s.handleHealthz)
}

func (s *Server) handleHealthz(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCollate(c *echo.Context) error {
	req, err := decodeJSON[CollateRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, "invalid JSON body: "+err.Error())
	}

	examples := make([]collate.Example, len(req.Examples))
	for i, dto := range req.Examples {
		examples[i] = collate.Example{
			DiffIDs:    dto.DiffIDs,
			MsgIDs:     dto.MsgIDs,
			HistoryIDs: dto.HistoryIDs,
		}
	}

	batch, err := s.collator.Collate(examples)
	if err != nil {
		if errors.Is(err, collate.ErrInvalidInput) {
			return writeBadRequest(c, err.Error())
		}
		s.log.Error("collate failed", "error", err)
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "")
	}

	resp := CollateResponse{
		ID:        "batch_" + uuid.NewString(),
		BatchSize: len(examples),
		DiffIDs:   MatrixFrom(batch.DiffIDs),
		DiffMask:  MatrixFrom(batch.DiffMask),
		MsgIDs:    MatrixFrom(batch.MsgIDs),
		MsgMask:   MatrixFrom(batch.MsgMask),
		MsgLabels: MatrixFrom(batch.MsgLabels),
	}
	if s.collator.Config().EmitGenerationPrompt {
		genIDs := MatrixFrom(batch.GenerationIDs)
		genMask := MatrixFrom(batch.GenerationMask)
		resp.GenIDs = &genIDs
		resp.GenMask = &genMask
	}

	s.log.Debug("collated batch", "id", resp.ID, "rows", resp.BatchSize, "msg_len", batch.MsgIDs.Cols)
	return c.JSON(http.StatusOK, resp)
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg, "")
}

func writeError(c *echo.Context, status int, errType, msg, code string) error {
	return c.JSON(status, map[string]any{
		"error": ResponseError{
			Message: msg,
			Type:    errType,
			Code:    code,
		},
	})
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}
