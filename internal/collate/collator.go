package collate

import (
	"fmt"
	"sync"
)

// Collator assembles batches of examples into fixed-shape arrays for
// sequence-to-sequence training and autoregressive continuation. It holds
// no state between calls; Collate is a pure function of its input and the
// configuration, so one Collator may be shared across goroutines.
type Collator struct {
	cfg CollatorConfig
}

// NewCollator validates the configuration and returns a ready collator.
func NewCollator(cfg CollatorConfig) (*Collator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Collator{cfg: cfg}, nil
}

// Config returns the collator's configuration.
func (c *Collator) Config() CollatorConfig {
	return c.cfg
}

// Collate assembles, pads and stacks one batch. Row i of every output field
// corresponds to examples[i]; nothing in the pipeline reorders rows.
func (c *Collator) Collate(examples []Example) (*Batch, error) {
	if len(examples) == 0 {
		return nil, newInvalidInput("collate: empty example batch")
	}

	results := c.assembleAll(examples)

	trainingIDs := make([][]int, len(results))
	trainingLabels := make([][]int, len(results))
	diffIDs := make([][]int, len(results))
	for i, r := range results {
		trainingIDs[i] = r.trainingIDs
		trainingLabels[i] = r.trainingLabels
		diffIDs[i] = examples[i].DiffIDs
	}

	var batch Batch
	var err error

	// Diff rows bypass assembly entirely; they are independently tokenized
	// and only padded and stacked here.
	if batch.DiffIDs, batch.DiffMask, err = padAndStack(diffIDs, PadRight, c.cfg.PADTokenID); err != nil {
		return nil, fmt.Errorf("diff field: %w", err)
	}
	if batch.MsgIDs, batch.MsgMask, err = padAndStack(trainingIDs, PadRight, c.cfg.PADTokenID); err != nil {
		return nil, fmt.Errorf("msg field: %w", err)
	}
	// Labels take the ignore sentinel as fill so padded positions, like
	// history positions, never contribute to the loss.
	padLabels, _, err := pad(trainingLabels, PadRight, c.cfg.IgnoreLabelID)
	if err != nil {
		return nil, fmt.Errorf("label field: %w", err)
	}
	if batch.MsgLabels, err = stackRows(padLabels); err != nil {
		return nil, fmt.Errorf("label field: %w", err)
	}

	if c.cfg.EmitGenerationPrompt {
		promptIDs := make([][]int, len(results))
		for i, r := range results {
			promptIDs[i] = r.generationPromptIDs
		}
		if batch.GenerationIDs, batch.GenerationMask, err = padAndStack(promptIDs, PadLeft, c.cfg.PADTokenID); err != nil {
			return nil, fmt.Errorf("generation field: %w", err)
		}
	}

	return &batch, nil
}

// assembleAll runs per-example assembly, fanning out across a bounded pool
// when Workers allows it. Each assembly reads only its own example and the
// shared immutable configuration, so no locking is needed; the returned
// slice acts as the barrier before padding.
func (c *Collator) assembleAll(examples []Example) []assembled {
	results := make([]assembled, len(examples))

	workers := c.cfg.Workers
	if workers > len(examples) {
		workers = len(examples)
	}
	if workers <= 1 {
		for i, ex := range examples {
			results[i] = assembleExample(ex, c.cfg)
		}
		return results
	}

	var wg sync.WaitGroup
	next := make(chan int)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				results[i] = assembleExample(examples[i], c.cfg)
			}
		}()
	}
	for i := range examples {
		next <- i
	}
	close(next)
	wg.Wait()
	return results
}

func padAndStack(sequences [][]int, side PadSide, fill int) (IntMat, IntMat, error) {
	padded, masks, err := pad(sequences, side, fill)
	if err != nil {
		return IntMat{}, IntMat{}, err
	}
	ids, err := stackRows(padded)
	if err != nil {
		return IntMat{}, IntMat{}, err
	}
	mask, err := stackRows(masks)
	if err != nil {
		return IntMat{}, IntMat{}, err
	}
	return ids, mask, nil
}
