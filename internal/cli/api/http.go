// Package api — HTTP-клиент CLI к серверу хранилища.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FieldError — нарушение валидации, как его отдаёт сервер.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error — ответ сервера со статусом не 2xx.
type Error struct {
	Status  int
	Message string
	Details []FieldError
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if len(e.Details) > 0 {
		parts := make([]string, 0, len(e.Details))
		for _, d := range e.Details {
			parts = append(parts, d.Field+" "+d.Message)
		}
		msg += ": " + strings.Join(parts, "; ")
	}
	return fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
}

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Item struct {
	ID         int64     `json:"id"`
	OwnerID    int64     `json:"owner_id"`
	OwnerEmail string    `json:"owner_email,omitempty"`
	Name       string    `json:"name"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Session — ответ register/login.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Client отправляет токен в заголовке Authorization: Bearer.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Do выполняет запрос и декодирует тело ответа в out (если out не nil).
func (c *Client) Do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var eb struct {
			Error   string       `json:"error"`
			Details []FieldError `json:"details"`
		}
		if json.Unmarshal(raw, &eb) == nil {
			apiErr.Message = eb.Error
			apiErr.Details = eb.Details
		}
		return apiErr
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type itemInput struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

func (c *Client) Register(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	if err := c.Do(ctx, http.MethodPost, "/api/auth/register", credentials{email, password}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	if err := c.Do(ctx, http.MethodPost, "/api/auth/login", credentials{email, password}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.Do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.Do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ListItems возвращает свои записи, а при all — все записи (только admin).
func (c *Client) ListItems(ctx context.Context, all bool) ([]Item, error) {
	path := "/api/vault"
	if all {
		path = "/api/vault/all"
	}
	var out struct {
		Items []Item `json:"items"`
	}
	if err := c.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) GetItem(ctx context.Context, id int64) (*Item, error) {
	return c.itemCall(ctx, http.MethodGet, fmt.Sprintf("/api/vault/%d", id), nil)
}

func (c *Client) CreateItem(ctx context.Context, name, note string) (*Item, error) {
	return c.itemCall(ctx, http.MethodPost, "/api/vault", itemInput{name, note})
}

func (c *Client) UpdateItem(ctx context.Context, id int64, name, note string) (*Item, error) {
	return c.itemCall(ctx, http.MethodPut, fmt.Sprintf("/api/vault/%d", id), itemInput{name, note})
}

func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/vault/%d", id), nil, nil)
}

func (c *Client) Search(ctx context.Context, query string) ([]Item, error) {
	var out struct {
		Items []Item `json:"items"`
	}
	if err := c.Do(ctx, http.MethodPost, "/api/vault/search", map[string]string{"query": query}, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *Client) itemCall(ctx context.Context, method, path string, payload any) (*Item, error) {
	var out struct {
		Item Item `json:"item"`
	}
	if err := c.Do(ctx, method, path, payload, &out); err != nil {
		return nil, err
	}
	return &out.Item, nil
}
