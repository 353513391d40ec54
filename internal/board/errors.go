package board

// Errors
var (
	ErrTaskNotFound   = &BoardError{Message: "task not found"}
	ErrColumnNotFound = &BoardError{Message: "column not found"}
	ErrDuplicateTask  = &BoardError{Message: "task already on board"}
	ErrNotSameColumn  = &BoardError{Message: "tasks are in different columns"}
	ErrEmptyTitle     = &BoardError{Message: "title cannot be empty"}
)

type BoardError struct {
	Message string
}

func (e *BoardError) Error() string {
	return e.Message
}
