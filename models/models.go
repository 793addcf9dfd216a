package models

import "time"

type User struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Password    []byte     `json:"-"`
	IsSuperuser bool       `json:"is_superuser"`
	LastLogin   *time.Time `json:"last_login"`
	DateJoined  time.Time  `json:"date_joined"`
}

type Category struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Created time.Time `json:"created"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// Avatar is an uploaded title image. Content is the path of the stored
// file relative to the media root.
type Avatar struct {
	ID      int64     `json:"id"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
}

type Article struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
	AuthorID   int64     `json:"author_id"`
	CategoryID *int64    `json:"category_id"`
	AvatarID   *int64    `json:"avatar_id"`
}

type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Created   time.Time `json:"created"`
	AuthorID  int64     `json:"author_id"`
	ArticleID int64     `json:"article_id"`
	ParentID  *int64    `json:"parent_id"`
}
