package post

import "errors"

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("post belongs to another user")
)
