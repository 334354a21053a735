package util

import "errors"

var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrResultNotFound   = errors.New("result not found")
	ErrAccessDenied     = errors.New("item not accessible")
	ErrNotGradable      = errors.New("item does not accept submissions")
	ErrAlreadySubmitted = errors.New("item already submitted")
	ErrItemTypeMismatch = errors.New("submission item type does not match item")
	ErrJudgeUnavailable = errors.New("judge service unavailable")
)
