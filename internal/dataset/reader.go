package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/saridormi/commit-message-generation/internal/collate"
)

// maxRecordBytes bounds a single JSONL record; tokenized diffs can run long
// but anything past this is a corrupt file, not data.
const maxRecordBytes = 8 << 20

var ErrMalformedRecord = errors.New("dataset: malformed record")

// Record is the on-disk shape of one example: integer id sequences produced
// by an external tokenizer, one JSON object per line.
type Record struct {
	DiffIDs    []int   `json:"diff_input_ids"`
	MsgIDs     []int   `json:"msg_input_ids"`
	HistoryIDs [][]int `json:"history_input_ids"`
}

// Reader streams validated examples from a JSONL dataset file.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxRecordBytes)
	return &Reader{scanner: scanner}
}

// Next returns the next example, io.EOF at end of input, or an error
// wrapping ErrMalformedRecord when a line fails decoding or validation.
// Blank lines are skipped.
func (r *Reader) Next() (collate.Example, error) {
	for r.scanner.Scan() {
		r.line++
		raw := r.scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return collate.Example{}, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, r.line, err)
		}
		ex := collate.Example{
			DiffIDs:    rec.DiffIDs,
			MsgIDs:     rec.MsgIDs,
			HistoryIDs: rec.HistoryIDs,
		}
		if err := validate(ex); err != nil {
			return collate.Example{}, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, r.line, err)
		}
		return ex, nil
	}
	if err := r.scanner.Err(); err != nil {
		return collate.Example{}, err
	}
	return collate.Example{}, io.EOF
}

// ReadBatches reads the whole stream into bounded batches of at most
// batchSize examples, preserving file order. A short final batch is kept.
func ReadBatches(r io.Reader, batchSize int) ([][]collate.Example, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("dataset: batch size must be positive, got %d", batchSize)
	}
	reader := NewReader(r)
	var batches [][]collate.Example
	current := make([]collate.Example, 0, batchSize)
	for {
		ex, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		current = append(current, ex)
		if len(current) == batchSize {
			batches = append(batches, current)
			current = make([]collate.Example, 0, batchSize)
		}
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches, nil
}

// validate rejects records the engine would otherwise accept silently:
// token ids are vocabulary indices and can never be negative, and a record
// with no message field at all is a mining bug rather than an empty message.
func validate(ex collate.Example) error {
	if ex.MsgIDs == nil {
		return errors.New("missing msg_input_ids")
	}
	if err := checkIDs("diff_input_ids", ex.DiffIDs); err != nil {
		return err
	}
	if err := checkIDs("msg_input_ids", ex.MsgIDs); err != nil {
		return err
	}
	for i, turn := range ex.HistoryIDs {
		if err := checkIDs(fmt.Sprintf("history_input_ids[%d]", i), turn); err != nil {
			return err
		}
	}
	return nil
}

func checkIDs(field string, ids []int) error {
	for _, id := range ids {
		if id < 0 {
			return fmt.Errorf("%s: negative token id %d", field, id)
		}
	}
	return nil
}
