// file: internals/features/integrations/webflow/client.go
package webflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

const (
	DefaultBaseURL = "https://api.webflow.com"
	defaultTimeout = 20 * time.Second
)

var ErrNotConfigured = errors.New("webflow: api token or collection id missing")

// APIError is a non-2xx answer from the CMS API.
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("webflow %s: status %d: %s", e.Op, e.Status, strings.TrimSpace(e.Body))
}

// Fields is the fieldData of a collection item.
type Fields map[string]any

// SetString stores v, or "" when v is nil, so cleared values are cleared
// remotely too.
func (f Fields) SetString(key string, v *string) {
	if v == nil {
		f[key] = ""
		return
	}
	f[key] = *v
}

type Item struct {
	ID         string `json:"id"`
	IsDraft    bool   `json:"isDraft"`
	IsArchived bool   `json:"isArchived"`
	FieldData  Fields `json:"fieldData"`
}

type itemRequest struct {
	IsArchived bool   `json:"isArchived"`
	IsDraft    bool   `json:"isDraft"`
	FieldData  Fields `json:"fieldData"`
}

// Client talks to the CMS v2 collection-items API for one collection.
type Client struct {
	BaseURL      string
	Token        string
	CollectionID string
	Timeout      time.Duration
}

func NewClient(token, collectionID string) *Client {
	return &Client{
		BaseURL:      DefaultBaseURL,
		Token:        strings.TrimSpace(token),
		CollectionID: strings.TrimSpace(collectionID),
		Timeout:      defaultTimeout,
	}
}

func (c *Client) Configured() bool {
	return c != nil && c.Token != "" && c.CollectionID != ""
}

func (c *Client) itemsPath(suffix string) string {
	return "/v2/collections/" + c.CollectionID + "/items" + suffix
}

// CreateItemLive creates and publishes an item in one call.
func (c *Client) CreateItemLive(ctx context.Context, fields Fields) (*Item, error) {
	return c.writeItem(ctx, fiber.MethodPost, c.itemsPath("/live"), "create live item", fields)
}

func (c *Client) UpdateItemLive(ctx context.Context, itemID string, fields Fields) (*Item, error) {
	return c.writeItem(ctx, fiber.MethodPatch, c.itemsPath("/"+itemID+"/live"), "update live item", fields)
}

// CreateItem creates a staged item; it needs PublishItems to go live.
func (c *Client) CreateItem(ctx context.Context, fields Fields) (*Item, error) {
	return c.writeItem(ctx, fiber.MethodPost, c.itemsPath(""), "create staged item", fields)
}

func (c *Client) UpdateItem(ctx context.Context, itemID string, fields Fields) (*Item, error) {
	return c.writeItem(ctx, fiber.MethodPatch, c.itemsPath("/"+itemID), "update staged item", fields)
}

func (c *Client) PublishItems(ctx context.Context, itemIDs []string) error {
	body := map[string]any{"itemIds": itemIDs}
	return c.do(ctx, fiber.MethodPost, c.itemsPath("/publish"), "publish items", body, nil)
}

func (c *Client) writeItem(ctx context.Context, method, path, op string, fields Fields) (*Item, error) {
	var out Item
	req := itemRequest{IsArchived: false, IsDraft: false, FieldData: fields}
	if err := c.do(ctx, method, path, op, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path, op string, body, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(strings.TrimRight(c.BaseURL, "/") + path)
	a.Set(fiber.HeaderAuthorization, "Bearer "+c.Token)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	a.Timeout(timeout)
	a.JSONEncoder(sonic.Marshal)
	if body != nil {
		a.JSON(body)
	}
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return fmt.Errorf("webflow %s: %w", op, err)
	}

	status, respBody, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("webflow %s: %w", op, errors.Join(errs...))
	}
	if status < 200 || status >= 300 {
		return &APIError{Op: op, Status: status, Body: string(respBody)}
	}
	if out != nil && len(respBody) > 0 {
		if err := sonic.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("webflow %s: decode response: %w", op, err)
		}
	}
	return nil
}
