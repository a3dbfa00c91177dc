package cache

import "encoding/json"

type Status int

const (
	Miss Status = iota
	Hit
	Failed
)

func (s Status) String() string {
	switch s {
	case Hit:
		return "hit"
	case Failed:
		return "failed"
	default:
		return "miss"
	}
}

// Result is the outcome of a Lookup. Value is set only on Hit, Err only on Failed.
type Result struct {
	Status Status
	Value  json.RawMessage
	Err    error
}

func hit(v json.RawMessage) Result { return Result{Status: Hit, Value: v} }
func miss() Result                 { return Result{Status: Miss} }
func failed(err error) Result      { return Result{Status: Failed, Err: err} }
