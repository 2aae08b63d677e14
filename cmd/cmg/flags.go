package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/saridormi/commit-message-generation/internal/collate"
	"github.com/saridormi/commit-message-generation/internal/logger"
	"github.com/saridormi/commit-message-generation/internal/tokenizer"
)

var (
	specialTokensPath string
	maxLen            int64
	ignoreLabelID     int64
	includeHistory    bool
	generationPrompt  bool
	wrapSpecials      bool
	workers           int64
	logLevel          string
	logFormat         string
)

func collatorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "special-tokens",
			Aliases:     []string{"t"},
			Usage:       "path to the tokenizer's special-tokens JSON (bos/eos/pad ids and separator)",
			Destination: &specialTokensPath,
		},
		&cli.Int64Flag{
			Name:        "max-len",
			Usage:       "token budget for the assembled message sequence",
			Value:       512,
			Destination: &maxLen,
		},
		&cli.Int64Flag{
			Name:        "ignore-label",
			Usage:       "label sentinel excluded from loss computation",
			Value:       -100,
			Destination: &ignoreLabelID,
		},
		&cli.BoolFlag{
			Name:        "history",
			Usage:       "merge author history into the training sequence",
			Value:       true,
			Destination: &includeHistory,
		},
		&cli.BoolFlag{
			Name:        "generation-prompt",
			Usage:       "emit a left-padded history-only prompt field",
			Value:       true,
			Destination: &generationPrompt,
		},
		&cli.BoolFlag{
			Name:        "wrap-specials",
			Usage:       "wrap training sequences with bos/eos",
			Destination: &wrapSpecials,
		},
		&cli.Int64Flag{
			Name:        "workers",
			Usage:       "parallel assembly workers (0 = sequential)",
			Destination: &workers,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "debug, info, warn or error",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "pretty, text or json",
			Value:       "pretty",
			Destination: &logFormat,
		},
	}
}

func buildCollator(c *cli.Command) (*collate.Collator, error) {
	cfg := LoadConfig()
	applyCollatorConfig(c, cfg)

	if specialTokensPath == "" {
		return nil, errors.New("a special-tokens file is required (--special-tokens)")
	}
	st, err := tokenizer.LoadSpecialTokens(specialTokensPath)
	if err != nil {
		return nil, err
	}

	return collate.NewCollator(collate.CollatorConfig{
		BOSTokenID:           st.BOSTokenID,
		EOSTokenID:           st.EOSTokenID,
		PADTokenID:           st.PADTokenID,
		IgnoreLabelID:        int(ignoreLabelID),
		Separator:            st.SeparatorIDs,
		MaxLen:               int(maxLen),
		IncludeHistory:       includeHistory,
		EmitGenerationPrompt: generationPrompt,
		WrapSpecials:         wrapSpecials,
		Workers:              int(workers),
	})
}

func newLogger() logger.Logger {
	level := logger.ParseLevel(logLevel)
	switch logFormat {
	case "json":
		return logger.JSON(os.Stderr, level)
	case "text":
		return logger.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	default:
		return logger.Pretty(os.Stderr, level)
	}
}
