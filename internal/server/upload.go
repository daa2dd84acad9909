package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sergioaramos/mistral-doc-extractor/constants"
	"github.com/sergioaramos/mistral-doc-extractor/internal/common"
	"github.com/sergioaramos/mistral-doc-extractor/internal/postprocess"
)

// handleUploadDocument receives a fiscal document, runs it through the
// external extraction service and returns the post-processed record.
func (s *Service) handleUploadDocument(c *gin.Context) {
	reqID := uuid.New().String()
	start := time.Now()

	fh, err := c.FormFile("file")
	if err != nil {
		s.fail(c, reqID, "no file provided",
			common.NewAppError("UPLOAD_ERROR", "no file provided", common.ErrInvalidInput))
		return
	}

	ext := constants.NormalizeExt(filepath.Ext(fh.Filename))
	if !constants.IsAllowedExt(ext) {
		msg := fmt.Sprintf("unsupported file type %q", ext)
		s.fail(c, reqID, msg, common.NewAppError("UPLOAD_ERROR", msg, common.ErrUnsupportedMedia))
		return
	}

	dst := filepath.Join(s.cfg.Upload.Dir, reqID+"."+ext)
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		s.fail(c, reqID, "failed to store upload",
			common.NewAppError("UPLOAD_ERROR", "failed to store upload", err))
		return
	}
	defer func() {
		if err := os.Remove(dst); err != nil {
			s.logger.Warn("upload cleanup failed", zap.String("req_id", reqID), zap.Error(err))
		}
	}()

	res, err := s.extractor.Extract(c.Request.Context(), dst)
	if err != nil {
		s.fail(c, reqID, "document extraction failed",
			common.NewAppError("EXTRACTION_ERROR", "document extraction failed", err))
		return
	}

	validated := s.fiscal.Validate(res.RecordJSON, res.RawText)
	processed := s.proc.Process(validated, res.RawText)

	if err := postprocess.ValidateRecordJSON(processed); err != nil {
		s.logger.Warn("record schema mismatch", zap.String("req_id", reqID), zap.Error(err))
	}

	s.logger.Info("document processed",
		zap.String("req_id", reqID),
		zap.String("file", fh.Filename),
		zap.Duration("elapsed", time.Since(start)),
	)
	c.Data(http.StatusOK, "application/json", processed)
}

// fail logs the error, notifies the webhook and writes the error response.
// The status code comes from the error's sentinel classification.
func (s *Service) fail(c *gin.Context, reqID, message string, err error) {
	status := common.HTTPStatus(err)
	s.logger.Error("upload failed",
		zap.String("req_id", reqID),
		zap.Int("status", status),
		zap.Error(err),
	)

	if s.notifier != nil {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Webhook.Timeout)
		defer cancel()
		if nerr := s.notifier.Notify(ctx, message); nerr != nil {
			s.logger.Warn("webhook notify failed", zap.String("req_id", reqID), zap.Error(nerr))
		}
	}

	c.JSON(status, gin.H{"detail": message})
}
