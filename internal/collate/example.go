package collate

// Example is one training/generation row: the tokenized diff, the tokenized
// current commit message, and the author's prior messages ordered oldest to
// newest. Examples are immutable once handed to the collator; the engine
// never aliases or mutates their storage.
type Example struct {
	DiffIDs    []int
	MsgIDs     []int
	HistoryIDs [][]int
}

// assembled holds one example's aligned ragged sequences before padding.
// trainingIDs and trainingLabels always have identical length; labels carry
// IgnoreLabelID everywhere except the current-message positions.
type assembled struct {
	trainingIDs    []int
	trainingLabels []int

	// generationPromptIDs is BOS plus the merged history, never the
	// current message. Nil when the prompt field is not emitted.
	generationPromptIDs []int
}
