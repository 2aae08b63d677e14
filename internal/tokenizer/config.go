package tokenizer

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// SpecialTokens carries the reserved ids an external tokenizer exposes.
// The vocabulary owns these values; this module only threads them through.
type SpecialTokens struct {
	BOSTokenID int `json:"bos_token_id"`
	EOSTokenID int `json:"eos_token_id"`
	PADTokenID int `json:"pad_token_id"`
	UNKTokenID int `json:"unk_token_id"`

	// SeparatorIDs is the tokenized turn separator inserted between
	// concatenated messages.
	SeparatorIDs []int `json:"separator_ids"`
}

// LoadSpecialTokens reads a special-tokens description from a JSON file
// exported alongside the tokenizer.
func LoadSpecialTokens(path string) (SpecialTokens, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SpecialTokens{}, fmt.Errorf("tokenizer: read special tokens: %w", err)
	}
	var st SpecialTokens
	if err := json.Unmarshal(data, &st); err != nil {
		return SpecialTokens{}, fmt.Errorf("tokenizer: parse special tokens: %w", err)
	}
	return st, nil
}
