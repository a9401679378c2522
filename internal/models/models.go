package models

import (
	"time"
	"unicode/utf8"
)

// StrLength is how many characters of a text are used for its short representation.
const StrLength = 15

type User struct {
	UserID       string    `json:"userId" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// FullName falls back to the username when no name was given at signup.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}

type Group struct {
	GroupID     string `json:"groupId" db:"group_id"`
	Title       string `json:"title" db:"title"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
}

func (g *Group) String() string {
	return g.Title
}

type Post struct {
	PostID    string    `json:"postId" db:"post_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	GroupID   *string   `json:"groupId" db:"group_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Image     string    `json:"image" db:"image"`

	// filled by read queries
	AuthorUsername string  `json:"authorUsername" db:"author_username"`
	GroupTitle     *string `json:"groupTitle" db:"group_title"`
	GroupSlug      *string `json:"groupSlug" db:"group_slug"`
	CommentCount   int     `json:"commentCount" db:"comment_count"`
}

func (p *Post) String() string {
	return shorten(p.Text)
}

// HasGroup reports whether the post is attached to a group that still exists.
func (p *Post) HasGroup() bool {
	return p.GroupID != nil && p.GroupSlug != nil
}

type Comment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	PostID    string    `json:"postId" db:"post_id"`

	AuthorUsername string `json:"authorUsername" db:"author_username"`
}

func (c *Comment) String() string {
	return shorten(c.Text)
}

// Follow means UserID wants AuthorID's posts in their feed.
type Follow struct {
	FollowID string `json:"followId" db:"follow_id"`
	UserID   string `json:"userId" db:"user_id"`
	AuthorID string `json:"authorId" db:"author_id"`
}

func shorten(text string) string {
	if utf8.RuneCountInString(text) <= StrLength {
		return text
	}
	return string([]rune(text)[:StrLength])
}
