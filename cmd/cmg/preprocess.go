package main

import (
	"bufio"
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/saridormi/commit-message-generation/internal/diffproc"
)

func preprocessCmd() *cli.Command {
	var (
		inputPath  string
		outputPath string
	)

	return &cli.Command{
		Name:  "preprocess",
		Usage: "Filter raw tokenized diffs down to changed lines, one diff per line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "raw diffs path (- for stdin)",
				Value:       "-",
				Destination: &inputPath,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "processed diffs path (- for stdout)",
				Value:       "-",
				Destination: &outputPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
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

			scanner := bufio.NewScanner(in)
			scanner.Buffer(make([]byte, 64*1024), 8<<20)
			w := bufio.NewWriter(out)
			lines := 0
			for scanner.Scan() {
				if _, err := w.WriteString(diffproc.Process(scanner.Text())); err != nil {
					return err
				}
				if err := w.WriteByte('\n'); err != nil {
					return err
				}
				lines++
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read diffs: %w", err)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			newLogger().Info("diffs processed", "lines", lines)
			return nil
		},
	}
}
