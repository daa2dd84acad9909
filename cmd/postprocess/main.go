package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sergioaramos/mistral-doc-extractor/internal/export"
	"github.com/sergioaramos/mistral-doc-extractor/internal/postprocess"
	"github.com/sergioaramos/mistral-doc-extractor/internal/record"
)

// postprocess runs the rule engine on an extracted record without the HTTP
// server. Useful for replaying documents and debugging rule behavior.
func main() {
	recordPath := flag.String("record", "", "path to the extracted record JSON (required)")
	textPath := flag.String("text", "", "path to the raw recognized text (optional)")
	outPath := flag.String("out", "", "write processed record here instead of stdout")
	xlsxPath := flag.String("xlsx", "", "also write a single-record XLSX export here")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *recordPath == "" {
		fmt.Fprintln(os.Stderr, "usage: postprocess -record record.json [-text raw.txt] [-out processed.json] [-xlsx out.xlsx]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*recordPath)
	if err != nil {
		log.Error("read record", "error", err)
		os.Exit(1)
	}

	var rawText string
	if *textPath != "" {
		b, err := os.ReadFile(*textPath)
		if err != nil {
			log.Error("read text", "error", err)
			os.Exit(1)
		}
		rawText = string(b)
	}

	processed := postprocess.Run(log, data, rawText)

	if err := postprocess.ValidateRecordJSON(processed); err != nil {
		log.Warn("record schema mismatch", "error", err)
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, processed, 0o644); err != nil {
			log.Error("write output", "error", err)
			os.Exit(1)
		}
	} else {
		os.Stdout.Write(processed)
		fmt.Println()
	}

	if *xlsxPath != "" {
		rec, err := record.Decode(processed)
		if err != nil {
			log.Error("decode processed record", "error", err)
			os.Exit(1)
		}
		book, err := export.NewService(log).ExportRecordsXLSX([]record.Record{rec})
		if err != nil {
			log.Error("export", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxPath, book, 0o644); err != nil {
			log.Error("write xlsx", "error", err)
			os.Exit(1)
		}
	}
}
