package model

// BatchJob is one row of a batch box list: a named set of options and how
// many copies of the box to lay out.
type BatchJob struct {
	Name     string     `json:"name"`
	Quantity int        `json:"quantity"`
	Options  BoxOptions `json:"options"`
}
