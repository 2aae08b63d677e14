package collate

import (
	"errors"
	"reflect"
	"testing"
)

func TestPadRight(t *testing.T) {
	seqs := [][]int{
		{1, 2, 3, 4, 5, 6, 7, 8},
		{1, 2, 3, 4, 5},
	}
	padded, masks, err := pad(seqs, PadRight, 0)
	if err != nil {
		t.Fatalf("pad: %v", err)
	}

	wantRow := []int{1, 2, 3, 4, 5, 0, 0, 0}
	wantMask := []int{1, 1, 1, 1, 1, 0, 0, 0}
	if !reflect.DeepEqual(padded[1], wantRow) {
		t.Fatalf("padded row: got %v, want %v", padded[1], wantRow)
	}
	if !reflect.DeepEqual(masks[1], wantMask) {
		t.Fatalf("mask row: got %v, want %v", masks[1], wantMask)
	}
	if !reflect.DeepEqual(masks[0], []int{1, 1, 1, 1, 1, 1, 1, 1}) {
		t.Fatalf("full row mask: got %v", masks[0])
	}
}

func TestPadLeft(t *testing.T) {
	seqs := [][]int{
		{7, 8},
		{1, 2, 3, 4},
	}
	padded, masks, err := pad(seqs, PadLeft, 0)
	if err != nil {
		t.Fatalf("pad: %v", err)
	}

	if !reflect.DeepEqual(padded[0], []int{0, 0, 7, 8}) {
		t.Fatalf("padded row: got %v, want [0 0 7 8]", padded[0])
	}
	if !reflect.DeepEqual(masks[0], []int{0, 0, 1, 1}) {
		t.Fatalf("mask row: got %v, want [0 0 1 1]", masks[0])
	}
}

// TestPadMaskContiguity checks that every mask is one contiguous block of
// ones, anchored at the start for right padding and at the end for left
// padding, never interleaved.
func TestPadMaskContiguity(t *testing.T) {
	seqs := [][]int{{1}, {1, 2, 3}, {1, 2}, {}}
	for _, side := range []PadSide{PadRight, PadLeft} {
		_, masks, err := pad(seqs, side, 0)
		if err != nil {
			t.Fatalf("pad side %d: %v", side, err)
		}
		for i, mask := range masks {
			transitions := 0
			for j := 1; j < len(mask); j++ {
				if mask[j] != mask[j-1] {
					transitions++
				}
			}
			if transitions > 1 {
				t.Fatalf("side %d row %d: mask %v is not contiguous", side, i, mask)
			}
			ones := 0
			for _, v := range mask {
				ones += v
			}
			if ones != len(seqs[i]) {
				t.Fatalf("side %d row %d: mask sum %d, want %d", side, i, ones, len(seqs[i]))
			}
		}
	}
}

func TestPadDoesNotMutateInput(t *testing.T) {
	row := []int{1, 2, 3}
	seqs := [][]int{row, {4}}
	if _, _, err := pad(seqs, PadRight, 9); err != nil {
		t.Fatalf("pad: %v", err)
	}
	if !reflect.DeepEqual(row, []int{1, 2, 3}) {
		t.Fatalf("input mutated: %v", row)
	}
}

func TestPadEmptyFieldFails(t *testing.T) {
	_, _, err := pad(nil, PadRight, 0)
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
