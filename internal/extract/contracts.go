package extract

import "context"

// ExtractionResult is what the external OCR+LLM extraction service returns
// for one document: its best-effort structured record and the raw recognized
// text. The record is frequently incomplete or mis-formatted; the post
// processing engine is responsible for repairing it.
type ExtractionResult struct {
	RecordJSON []byte `json:"record"`
	RawText    string `json:"raw_text"`
}

// DocumentExtractor is the interface the upload pipeline depends on. No
// implementation in this repository performs OCR or calls a generative model;
// those live behind the external service.
type DocumentExtractor interface {
	Extract(ctx context.Context, filePath string) (ExtractionResult, error)
}
