// Package client is a Go client for the Blogful HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

type Client struct {
	http.Client
	Addr string
}

func New(addr string) *Client {
	return &Client{Addr: addr, Client: http.Client{Timeout: 10 * time.Second}}
}

// APIError is a non-2xx response. Message comes from the error body when
// the server sent one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("blogful: %d %s", e.StatusCode, e.Message)
}

type Article struct {
	ID            int64     `json:"id"`
	Style         string    `json:"style"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	DatePublished time.Time `json:"date_published"`
}

type NewArticle struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Style   string `json:"style"`
}

// ArticleUpdate sends only the non-nil fields.
type ArticleUpdate struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Style   *string `json:"style,omitempty"`
}

type Comment struct {
	ID            int64     `json:"id"`
	Text          string    `json:"text"`
	DateCommented time.Time `json:"date_commented"`
	ArticleID     int64     `json:"article_id"`
	UserID        int64     `json:"user_id"`
}

type NewComment struct {
	Text          string    `json:"text"`
	DateCommented time.Time `json:"date_commented"`
	ArticleID     int64     `json:"article_id"`
	UserID        int64     `json:"user_id"`
}

type CommentUpdate struct {
	Text          *string    `json:"text,omitempty"`
	DateCommented *time.Time `json:"date_commented,omitempty"`
	ArticleID     *int64     `json:"article_id,omitempty"`
	UserID        *int64     `json:"user_id,omitempty"`
}

type User struct {
	ID          int64     `json:"id"`
	Fullname    string    `json:"fullname"`
	Username    string    `json:"username"`
	Nickname    string    `json:"nickname"`
	DateCreated time.Time `json:"date_created"`
}

type NewUser struct {
	Fullname string  `json:"fullname"`
	Username string  `json:"username"`
	Nickname *string `json:"nickname,omitempty"`
	Password *string `json:"password,omitempty"`
}

type UserUpdate struct {
	Fullname *string `json:"fullname,omitempty"`
	Username *string `json:"username,omitempty"`
	Nickname *string `json:"nickname,omitempty"`
	Password *string `json:"password,omitempty"`
}

const (
	articlesPath = "/api/articles"
	commentsPath = "/api/comments"
	usersPath    = "/api/users"
)

func (c *Client) Ping(ctx context.Context) (string, error) {
	resp, err := c.send(ctx, http.MethodGet, "/ping", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

func (c *Client) ListArticles(ctx context.Context) ([]Article, error) {
	return list[Article](ctx, c, articlesPath)
}

func (c *Client) GetArticle(ctx context.Context, id int64) (*Article, error) {
	return get[Article](ctx, c, articlesPath, id)
}

func (c *Client) CreateArticle(ctx context.Context, a NewArticle) (*Article, error) {
	return create[Article](ctx, c, articlesPath, a)
}

func (c *Client) UpdateArticle(ctx context.Context, id int64, u ArticleUpdate) error {
	return c.update(ctx, articlesPath, id, u)
}

func (c *Client) DeleteArticle(ctx context.Context, id int64) error {
	return c.delete(ctx, articlesPath, id)
}

func (c *Client) ListComments(ctx context.Context) ([]Comment, error) {
	return list[Comment](ctx, c, commentsPath)
}

func (c *Client) GetComment(ctx context.Context, id int64) (*Comment, error) {
	return get[Comment](ctx, c, commentsPath, id)
}

func (c *Client) CreateComment(ctx context.Context, cm NewComment) (*Comment, error) {
	return create[Comment](ctx, c, commentsPath, cm)
}

func (c *Client) UpdateComment(ctx context.Context, id int64, u CommentUpdate) error {
	return c.update(ctx, commentsPath, id, u)
}

func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.delete(ctx, commentsPath, id)
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	return list[User](ctx, c, usersPath)
}

func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	return get[User](ctx, c, usersPath, id)
}

func (c *Client) CreateUser(ctx context.Context, u NewUser) (*User, error) {
	return create[User](ctx, c, usersPath, u)
}

func (c *Client) UpdateUser(ctx context.Context, id int64, u UserUpdate) error {
	return c.update(ctx, usersPath, id, u)
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, usersPath, id)
}

func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var out []T
	if err := c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func get[T any](ctx context.Context, c *Client, path string, id int64) (*T, error) {
	var out T
	if err := c.call(ctx, http.MethodGet, itemPath(path, id), nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func create[T any](ctx context.Context, c *Client, path string, in any) (*T, error) {
	var out T
	if err := c.call(ctx, http.MethodPost, path, in, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) update(ctx context.Context, path string, id int64, in any) error {
	return c.call(ctx, http.MethodPatch, itemPath(path, id), in, nil)
}

func (c *Client) delete(ctx context.Context, path string, id int64) error {
	return c.call(ctx, http.MethodDelete, itemPath(path, id), nil, nil)
}

func itemPath(path string, id int64) string {
	return path + "/" + strconv.FormatInt(id, 10)
}

// call sends in as JSON and decodes the response into out, if given.
func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader

	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}

		body = bytes.NewReader(b)
	}

	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}

	return nil
}

// send performs the request and turns non-2xx answers into *APIError.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, body)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()

	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error.Message != "" {
		apiErr.Message = payload.Error.Message
	}

	return nil, apiErr
}
