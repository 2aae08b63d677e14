package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/saridormi/commit-message-generation/internal/api"
	"github.com/saridormi/commit-message-generation/internal/collate"
	"github.com/saridormi/commit-message-generation/internal/dataset"
)

// batchJSON is the offline output shape: one JSON object per collated batch,
// field names matching the training consumer's expectations.
type batchJSON struct {
	BatchSize int `json:"batch_size"`

	DiffIDs   api.Matrix  `json:"diff_input_ids"`
	DiffMask  api.Matrix  `json:"diff_attention_mask"`
	MsgIDs    api.Matrix  `json:"msg_input_ids"`
	MsgMask   api.Matrix  `json:"msg_attention_mask"`
	MsgLabels api.Matrix  `json:"msg_labels"`
	GenIDs    *api.Matrix `json:"generation_input_ids,omitempty"`
	GenMask   *api.Matrix `json:"generation_attention_mask,omitempty"`
}

func collateCmd() *cli.Command {
	var (
		inputPath  string
		outputPath string
		batchSize  int64
	)

	return &cli.Command{
		Name:  "collate",
		Usage: "Collate a JSONL dataset into padded training batches",
		Flags: append(collatorFlags(),
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "JSONL dataset path (- for stdin)",
				Value:       "-",
				Destination: &inputPath,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output path (- for stdout), one JSON batch per line",
				Value:       "-",
				Destination: &outputPath,
			},
			&cli.Int64Flag{
				Name:        "batch-size",
				Aliases:     []string{"b"},
				Usage:       "examples per batch",
				Value:       16,
				Destination: &batchSize,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := LoadConfig()
			if cfg.BatchSize != nil && !c.IsSet("batch-size") {
				batchSize = *cfg.BatchSize
			}

			collator, err := buildCollator(c)
			if err != nil {
				return err
			}
			log := newLogger()

			in, err := openInput(inputPath)
			if err != nil {
				return err
			}
			defer in.Close()

			out, err := openOutput(outputPath)
			if err != nil {
				return err
			}
			defer out.Close()

			batches, err := dataset.ReadBatches(in, int(batchSize))
			if err != nil {
				return err
			}
			log.Info("dataset read", "batches", len(batches), "batch_size", batchSize)

			enc := json.NewEncoder(out)
			for i, examples := range batches {
				batch, err := collator.Collate(examples)
				if err != nil {
					return fmt.Errorf("batch %d: %w", i, err)
				}
				if err := enc.Encode(encodeBatch(collator, batch, len(examples))); err != nil {
					return fmt.Errorf("batch %d: write: %w", i, err)
				}
			}
			log.Info("collation done", "batches", len(batches))
			return nil
		},
	}
}

func encodeBatch(collator *collate.Collator, batch *collate.Batch, size int) batchJSON {
	out := batchJSON{
		BatchSize: size,
		DiffIDs:   api.MatrixFrom(batch.DiffIDs),
		DiffMask:  api.MatrixFrom(batch.DiffMask),
		MsgIDs:    api.MatrixFrom(batch.MsgIDs),
		MsgMask:   api.MatrixFrom(batch.MsgMask),
		MsgLabels: api.MatrixFrom(batch.MsgLabels),
	}
	if collator.Config().EmitGenerationPrompt {
		genIDs := api.MatrixFrom(batch.GenerationIDs)
		genMask := api.MatrixFrom(batch.GenerationMask)
		out.GenIDs = &genIDs
		out.GenMask = &genMask
	}
	return out
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
