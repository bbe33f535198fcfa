package uploader

import "fmt"

// Outcome is the result of one file. Exactly one of Key and Error is set.
type Outcome struct {
	Filename string `json:"filename"`
	Key      string `json:"key,omitempty"`
	Error    string `json:"error,omitempty"`
}

// OK reports whether the file was stored.
func (o Outcome) OK() bool {
	return o.Error == ""
}

// Summary holds the aggregate counts of a batch.
type Summary struct {
	Attempted int
	Succeeded int
	Failed    int
}

// Summarize counts outcomes.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Attempted: len(outcomes)}
	for _, o := range outcomes {
		if o.OK() {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

// Keys returns the stored keys in batch order.
func Keys(outcomes []Outcome) []string {
	var keys []string
	for _, o := range outcomes {
		if o.OK() {
			keys = append(keys, o.Key)
		}
	}
	return keys
}

// Errors returns "filename: reason" for every failed file in batch order.
func Errors(outcomes []Outcome) []string {
	var errs []string
	for _, o := range outcomes {
		if !o.OK() {
			errs = append(errs, fmt.Sprintf("%s: %s", o.Filename, o.Error))
		}
	}
	return errs
}
