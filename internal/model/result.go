package model

// Result is what a mutation hands back to a view instead of an error.
type Result struct {
	Success bool
	Error   string
}

func OK() Result {
	return Result{Success: true}
}

func Failed(message string) Result {
	return Result{Success: false, Error: message}
}
