// Package domain holds the post feature's domain errors.
package domain

import "errors"

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrNotAuthorized   = errors.New("user not authorized")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post has not yet been liked")
	ErrCommentNotFound = errors.New("comment does not exist")
	ErrAuthorNotFound  = errors.New("author not found")
)
