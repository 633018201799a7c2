// Package dto defines the post feature's request and response bodies.
package dto

import (
	"time"

	"github.com/samber/lo"

	"devconnector/internal/feature/post/domain/entity"
)

// TextReq is the body of POST /api/posts and POST /api/posts/comment/:id.
type TextReq struct {
	Text string `json:"text" binding:"required" msg:"Text is required"`
}

// LikeRes is one entry of a likes list.
type LikeRes struct {
	ID   string `json:"_id"`
	User string `json:"user"`
}

// CommentRes is one entry of a comments list.
type CommentRes struct {
	ID     string    `json:"_id"`
	User   string    `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// PostRes is the public shape of a post.
type PostRes struct {
	ID       string       `json:"_id"`
	User     string       `json:"user"`
	Text     string       `json:"text"`
	Name     string       `json:"name"`
	Avatar   string       `json:"avatar"`
	Likes    []LikeRes    `json:"likes"`
	Comments []CommentRes `json:"comments"`
	Date     time.Time    `json:"date"`
}

// NewLikes maps a likes list. The result is never nil.
func NewLikes(likes []entity.Like) []LikeRes {
	return lo.Map(likes, func(l entity.Like, _ int) LikeRes {
		return LikeRes{ID: l.ID, User: l.User}
	})
}

// NewComments maps a comments list. The result is never nil.
func NewComments(comments []entity.Comment) []CommentRes {
	return lo.Map(comments, func(c entity.Comment, _ int) CommentRes {
		return CommentRes{ID: c.ID, User: c.User, Text: c.Text, Name: c.Name, Avatar: c.Avatar, Date: c.Date}
	})
}

// NewPostRes maps a post to its public shape.
func NewPostRes(p *entity.Post) PostRes {
	return PostRes{
		ID:       p.ID,
		User:     p.UserID,
		Text:     p.Text,
		Name:     p.Name,
		Avatar:   p.Avatar,
		Likes:    NewLikes(p.Likes),
		Comments: NewComments(p.Comments),
		Date:     p.Date,
	}
}

// NewPostList maps a list of posts.
func NewPostList(posts []entity.Post) []PostRes {
	return lo.Map(posts, func(p entity.Post, _ int) PostRes {
		return NewPostRes(&p)
	})
}
