package collate

import (
	"errors"
	"reflect"
	"testing"
)

func newTestCollator(t *testing.T, cfg CollatorConfig) *Collator {
	t.Helper()
	c, err := NewCollator(cfg)
	if err != nil {
		t.Fatalf("NewCollator: %v", err)
	}
	return c
}

// TestCollateBatchShapes builds a two-example batch and checks per-field
// shapes, padding values and mask contents against hand-computed rows.
func TestCollateBatchShapes(t *testing.T) {
	c := newTestCollator(t, historyConfig())
	examples := []Example{
		{
			DiffIDs:    []int{30, 31, 32, 33},
			MsgIDs:     []int{5, 6, 7},
			HistoryIDs: [][]int{{2, 3}, {4}},
		},
		{
			DiffIDs:    []int{40, 41},
			MsgIDs:     []int{8, 9, 10, 11, 12},
			HistoryIDs: nil,
		},
	}
	batch, err := c.Collate(examples)
	if err != nil {
		t.Fatalf("Collate: %v", err)
	}

	// Row 0 assembles to length 8, row 1 to length 5, so the msg field is
	// 2x8 with three trailing pads on row 1.
	if batch.MsgIDs.Rows != 2 || batch.MsgIDs.Cols != 8 {
		t.Fatalf("msg shape: got %dx%d, want 2x8", batch.MsgIDs.Rows, batch.MsgIDs.Cols)
	}
	wantRow1 := []int64{8, 9, 10, 11, 12, 0, 0, 0}
	if !reflect.DeepEqual(batch.MsgIDs.Row(1), wantRow1) {
		t.Fatalf("msg row 1: got %v, want %v", batch.MsgIDs.Row(1), wantRow1)
	}
	wantMask1 := []int64{1, 1, 1, 1, 1, 0, 0, 0}
	if !reflect.DeepEqual(batch.MsgMask.Row(1), wantMask1) {
		t.Fatalf("msg mask 1: got %v, want %v", batch.MsgMask.Row(1), wantMask1)
	}

	// Labels pad with the sentinel, not the pad token.
	wantLabels1 := []int64{8, 9, 10, 11, 12, -100, -100, -100}
	if !reflect.DeepEqual(batch.MsgLabels.Row(1), wantLabels1) {
		t.Fatalf("msg labels 1: got %v, want %v", batch.MsgLabels.Row(1), wantLabels1)
	}

	// Diff field pads against its own maximum, independent of msg.
	if batch.DiffIDs.Cols != 4 {
		t.Fatalf("diff cols: got %d, want 4", batch.DiffIDs.Cols)
	}
	if !reflect.DeepEqual(batch.DiffIDs.Row(1), []int64{40, 41, 0, 0}) {
		t.Fatalf("diff row 1: got %v", batch.DiffIDs.Row(1))
	}

	// Generation prompts left-pad so continuations share a column:
	// row 0 is [1 2 3 100 4 100], row 1 is bos-only padded to 6.
	if !reflect.DeepEqual(batch.GenerationIDs.Row(0), []int64{1, 2, 3, 100, 4, 100}) {
		t.Fatalf("generation row 0: got %v", batch.GenerationIDs.Row(0))
	}
	if !reflect.DeepEqual(batch.GenerationIDs.Row(1), []int64{0, 0, 0, 0, 0, 1}) {
		t.Fatalf("generation row 1: got %v", batch.GenerationIDs.Row(1))
	}
	if !reflect.DeepEqual(batch.GenerationMask.Row(1), []int64{0, 0, 0, 0, 0, 1}) {
		t.Fatalf("generation mask 1: got %v", batch.GenerationMask.Row(1))
	}
}

func TestCollateEmptyBatchFails(t *testing.T) {
	c := newTestCollator(t, historyConfig())
	if _, err := c.Collate(nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestCollateOmitsGenerationFields(t *testing.T) {
	cfg := historyConfig()
	cfg.EmitGenerationPrompt = false
	c := newTestCollator(t, cfg)

	batch, err := c.Collate([]Example{{DiffIDs: []int{1}, MsgIDs: []int{5}}})
	if err != nil {
		t.Fatalf("Collate: %v", err)
	}
	if batch.GenerationIDs.Rows != 0 || batch.GenerationIDs.Data != nil {
		t.Fatalf("expected empty generation field, got %+v", batch.GenerationIDs)
	}
}

// TestCollateParallelMatchesSequential runs the same batch through a
// sequential and a multi-worker collator and expects identical arrays in
// identical row order.
func TestCollateParallelMatchesSequential(t *testing.T) {
	examples := make([]Example, 64)
	for i := range examples {
		examples[i] = Example{
			DiffIDs:    []int{i, i + 1, i + 2},
			MsgIDs:     []int{i, 50, 51},
			HistoryIDs: [][]int{{60, 61}, {i}},
		}
	}

	seq := newTestCollator(t, historyConfig())
	parCfg := historyConfig()
	parCfg.Workers = 8
	par := newTestCollator(t, parCfg)

	a, err := seq.Collate(examples)
	if err != nil {
		t.Fatalf("sequential collate: %v", err)
	}
	b, err := par.Collate(examples)
	if err != nil {
		t.Fatalf("parallel collate: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("parallel batch differs from sequential batch")
	}
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CollatorConfig)
	}{
		{"zero max len", func(c *CollatorConfig) { c.MaxLen = 0 }},
		{"negative max len", func(c *CollatorConfig) { c.MaxLen = -5 }},
		{"empty separator with history", func(c *CollatorConfig) { c.Separator = nil }},
		{"sentinel equals pad", func(c *CollatorConfig) { c.IgnoreLabelID = c.PADTokenID }},
		{"sentinel equals bos", func(c *CollatorConfig) { c.IgnoreLabelID = c.BOSTokenID }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := historyConfig()
			tc.mutate(&cfg)
			if _, err := NewCollator(cfg); !errors.Is(err, ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestConfigSeparatorOptionalWithoutHistory(t *testing.T) {
	cfg := historyConfig()
	cfg.IncludeHistory = false
	cfg.Separator = nil
	if _, err := NewCollator(cfg); err != nil {
		t.Fatalf("separator should be optional without history merging: %v", err)
	}
}
