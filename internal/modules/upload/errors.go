package upload

import "errors"

var (
	ErrUploadNotFound  = errors.New("upload not found")
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
	ErrInvalidMimeType = errors.New("file type is not allowed")
)
