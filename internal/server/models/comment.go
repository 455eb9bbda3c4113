package models

import (
	"time"

	"github.com/rivalrockets/rivalrockets/internal/common"
	"github.com/rivalrockets/rivalrockets/internal/server/markdown"
)

// Comment belongs to one machine. Disabled comments are hidden by
// moderators but kept in storage.
type Comment struct {
	ID        int64     `db:"id"`
	Body      string    `db:"body"`
	BodyHTML  string    `db:"body_html"`
	Timestamp time.Time `db:"timestamp"`
	Disabled  bool      `db:"disabled"`
	AuthorID  int64     `db:"author_id"`
	MachineID int64     `db:"machine_id"`
}

// SetBody replaces the comment body and recomputes the sanitized HTML
// rendering in the same call.
func (c *Comment) SetBody(body string) {
	c.Body = body
	c.BodyHTML = markdown.ToSafeHTML(body)
}

// CommentInput is the request payload for creating a comment.
type CommentInput struct {
	Body string `json:"body"`
}

// NewCommentFromRequest validates the payload and returns a
// partially-populated comment. An empty body is a ValidationError.
func NewCommentFromRequest(in CommentInput) (*Comment, error) {
	if in.Body == "" {
		return nil, common.NewValidationError("comment", "body")
	}
	c := &Comment{}
	c.SetBody(in.Body)
	return c, nil
}

// CommentProjection is the JSON view of a comment returned over the API.
type CommentProjection struct {
	URL       string    `json:"url"`
	Machine   string    `json:"machine"`
	Body      string    `json:"body"`
	BodyHTML  string    `json:"body_html"`
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
}

func (c *Comment) Projection(urls *URLBuilder) CommentProjection {
	return CommentProjection{
		URL:       urls.Comment(c.ID),
		Machine:   urls.Machine(c.MachineID),
		Body:      c.Body,
		BodyHTML:  c.BodyHTML,
		Timestamp: c.Timestamp,
		Author:    urls.User(c.AuthorID),
	}
}
