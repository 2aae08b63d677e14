// Package tokenizer defines the boundary to the external tokenizers that
// produce the integer id sequences this repository batches. Tokenization
// itself happens outside this module; only the interface and the special
// token ids cross into it.
package tokenizer

// Tokenizer is the minimal capability the pipeline relies on.
type Tokenizer interface {
	Encode(text string) ([]int, error)
	Decode(ids []int) (string, error)
}
