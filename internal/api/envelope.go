package api

// Envelope is the backend's single-object response shape.
type Envelope[T any] struct {
	Data T `json:"data"`
}

// List is the paginated response shape of GET /jobs.
type List[T any] struct {
	Data   []T   `json:"data"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

func unwrap[T any](do func(out any) error) (T, error) {
	var env Envelope[T]
	if err := do(&env); err != nil {
		var zero T
		return zero, err
	}
	return env.Data, nil
}
