package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")

	ErrTaskNotFound     = fmt.Errorf("task %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrAssigneeNotFound = fmt.Errorf("assigned user %w", ErrNotFound)
	ErrProjetoNotFound  = fmt.Errorf("projeto %w", ErrNotFound)
	ErrCommentNotFound  = fmt.Errorf("comment %w", ErrNotFound)
	ErrFileNotFound     = fmt.Errorf("file %w", ErrNotFound)

	ErrInvalidStatus      = fmt.Errorf("%w: status must be one of PENDENTE, EM_ANDAMENTO, CONCLUIDA", ErrValidation)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", ErrValidation)
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}
