package commons

// Response is the envelope every service operation returns. The CLI shell
// renders Message and Errors; Data carries the operation-specific payload.
type Response[T any] struct {
	Success bool
	Message string
	Data    *T
	Errors  []string
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}
