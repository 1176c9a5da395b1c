package handler

const (
	errInternalServer   = "Internal server error"
	errTaskNotFound     = "Task not found"
	errInvalidTaskID    = "Invalid task ID format"
	errValidationFailed = "Validation failed"
)
