package collate

// PadSide selects which side of a sequence receives fill values.
type PadSide int

const (
	// PadRight appends fill after real content. Used for fields consumed
	// left to right in one forward pass.
	PadRight PadSide = iota
	// PadLeft prepends fill before real content. Used for the generation
	// prompt so the next generated token lands in the same column for
	// every row of the batch.
	PadLeft
)

// pad pads every sequence to the batch-local maximum length of this field
// and returns a parallel 0/1 mask (1 = real content). Inputs are never
// mutated; each output row is freshly allocated.
func pad(sequences [][]int, side PadSide, fill int) (padded, masks [][]int, err error) {
	if len(sequences) == 0 {
		return nil, nil, newConfigurationError("collate: cannot pad an empty field, batch maximum is undefined")
	}

	target := 0
	for _, s := range sequences {
		if len(s) > target {
			target = len(s)
		}
	}

	padded = make([][]int, len(sequences))
	masks = make([][]int, len(sequences))
	for i, s := range sequences {
		row := make([]int, target)
		mask := make([]int, target)
		switch side {
		case PadLeft:
			off := target - len(s)
			for j := range off {
				row[j] = fill
			}
			copy(row[off:], s)
			for j := off; j < target; j++ {
				mask[j] = 1
			}
		default:
			copy(row, s)
			for j := len(s); j < target; j++ {
				row[j] = fill
			}
			for j := range len(s) {
				mask[j] = 1
			}
		}
		padded[i] = row
		masks[i] = mask
	}
	return padded, masks, nil
}
