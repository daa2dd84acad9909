// Package server exposes the document pipeline over HTTP.
package server

import (
	"log/slog"

	"go.uber.org/zap"

	"github.com/sergioaramos/mistral-doc-extractor/internal/common"
	"github.com/sergioaramos/mistral-doc-extractor/internal/extract"
	"github.com/sergioaramos/mistral-doc-extractor/internal/postprocess"
	"github.com/sergioaramos/mistral-doc-extractor/internal/webhook"
)

// Service wires the extraction client, the post-processing engine and the
// failure notifier behind the HTTP handlers.
type Service struct {
	logger    *zap.Logger
	cfg       *common.Config
	extractor extract.DocumentExtractor
	notifier  *webhook.Notifier
	fiscal    *postprocess.FiscalValidator
	proc      *postprocess.Processor
}

func NewService(logger *zap.Logger, cfg *common.Config, extractor extract.DocumentExtractor, notifier *webhook.Notifier, engineLog *slog.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logger:    logger,
		cfg:       cfg,
		extractor: extractor,
		notifier:  notifier,
		fiscal:    postprocess.NewFiscalValidator(engineLog),
		proc:      postprocess.NewProcessor(engineLog),
	}
}
