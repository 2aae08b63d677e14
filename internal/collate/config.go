package collate

import "fmt"

// CollatorConfig carries the token ids, separator and budget the collator
// needs. It is threaded explicitly through every call; nothing in this
// package reads process-global state.
type CollatorConfig struct {
	BOSTokenID int
	EOSTokenID int
	PADTokenID int

	// IgnoreLabelID is stamped over every label position that must not
	// contribute to the loss (history, separators, wrap tokens, padding).
	// It has to live outside the vocabulary range; -100 by convention.
	IgnoreLabelID int

	// Separator is inserted between any two concatenated turns, including
	// between the last history turn and the current message.
	Separator []int

	// MaxLen bounds the assembled training sequence per example.
	MaxLen int

	// IncludeHistory merges prior messages by the same author into the
	// training sequence, most recent first, until the budget is exhausted.
	IncludeHistory bool

	// EmitGenerationPrompt produces a history-only, left-padded prompt
	// field for autoregressive continuation.
	EmitGenerationPrompt bool

	// WrapSpecials wraps the training sequence with BOS/EOS and reserves
	// two budget slots for them.
	WrapSpecials bool

	// Workers bounds the number of goroutines assembling examples.
	// Zero or one means sequential assembly.
	Workers int
}

// Validate rejects configurations the engine cannot run with. Every
// returned error unwraps to ErrConfiguration.
func (c CollatorConfig) Validate() error {
	if c.MaxLen <= 0 {
		return newConfigurationError(fmt.Sprintf("collate: max_len must be positive, got %d", c.MaxLen))
	}
	if c.IncludeHistory && len(c.Separator) == 0 {
		return newConfigurationError("collate: history merging requires a non-empty separator")
	}
	if c.IgnoreLabelID == c.PADTokenID {
		return newConfigurationError(fmt.Sprintf("collate: ignore label id %d collides with pad token id", c.IgnoreLabelID))
	}
	if c.IgnoreLabelID == c.BOSTokenID {
		return newConfigurationError(fmt.Sprintf("collate: ignore label id %d collides with bos token id", c.IgnoreLabelID))
	}
	return nil
}

// msgBudget is the part of MaxLen available to the current message and
// merged history; wrapping reserves one slot each for BOS and EOS.
func (c CollatorConfig) msgBudget() int {
	if c.WrapSpecials {
		return c.MaxLen - 2
	}
	return c.MaxLen
}
