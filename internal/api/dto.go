package api

import "github.com/saridormi/commit-message-generation/internal/collate"

// CollateRequest is one batch of pre-tokenized examples. Row order is
// preserved in every response field.
type CollateRequest struct {
	Examples []ExampleDTO `json:"examples"`
}

type ExampleDTO struct {
	DiffIDs    []int   `json:"diff_input_ids"`
	MsgIDs     []int   `json:"msg_input_ids"`
	HistoryIDs [][]int `json:"history_input_ids"`
}

// Matrix is the wire form of one fixed-shape batch field.
type Matrix struct {
	Shape [2]int    `json:"shape"`
	Rows  [][]int64 `json:"rows"`
}

// CollateResponse carries the seven batch arrays. Generation fields are
// omitted when the service's collator does not emit a generation prompt.
type CollateResponse struct {
	ID        string `json:"id"`
	BatchSize int    `json:"batch_size"`

	DiffIDs   Matrix  `json:"diff_input_ids"`
	DiffMask  Matrix  `json:"diff_attention_mask"`
	MsgIDs    Matrix  `json:"msg_input_ids"`
	MsgMask   Matrix  `json:"msg_attention_mask"`
	MsgLabels Matrix  `json:"msg_labels"`
	GenIDs    *Matrix `json:"generation_input_ids,omitempty"`
	GenMask   *Matrix `json:"generation_attention_mask,omitempty"`
}

// MatrixFrom converts a materialized batch field to its wire form.
func MatrixFrom(m collate.IntMat) Matrix {
	rows := make([][]int64, m.Rows)
	for i := range rows {
		rows[i] = m.Row(i)
	}
	return Matrix{Shape: [2]int{m.Rows, m.Cols}, Rows: rows}
}

type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}
