package vaultsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	var out []Account
	err := c.call(ctx, http.MethodGet, "/v1/accounts", nil, &out)
	return out, err
}

func (c *Client) GetAccount(ctx context.Context, id int64) (Account, error) {
	var out Account
	err := c.call(ctx, http.MethodGet, fmt.Sprintf("/v1/accounts/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateAccount(ctx context.Context, req AccountRequest) (Account, error) {
	var out Account
	err := c.call(ctx, http.MethodPost, "/v1/accounts", req, &out)
	return out, err
}

func (c *Client) UpdateAccount(ctx context.Context, id int64, req AccountRequest) (Account, error) {
	var out Account
	err := c.call(ctx, http.MethodPut, fmt.Sprintf("/v1/accounts/%d", id), req, &out)
	return out, err
}

func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/v1/accounts/%d", id), nil, nil)
}

// ReorderAccounts sets the display order and returns the reordered list.
func (c *Client) ReorderAccounts(ctx context.Context, ids []int64) ([]Account, error) {
	var out []Account
	err := c.call(ctx, http.MethodPost, "/v1/accounts/reorder", ReorderRequest{IDs: ids}, &out)
	return out, err
}

// AccountCode returns the current TOTP code of an account.
func (c *Client) AccountCode(ctx context.Context, id int64) (CodeResponse, error) {
	var out CodeResponse
	err := c.call(ctx, http.MethodGet, fmt.Sprintf("/v1/accounts/%d/code", id), nil, &out)
	return out, err
}

// Export downloads every account in format ("text" or "json").
func (c *Client) Export(ctx context.Context, format string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, "/v1/accounts/export?format="+url.QueryEscape(format), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if err := parseErrorResponse(resp, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) UniqueTags(ctx context.Context) ([]string, error) {
	var out []string
	err := c.call(ctx, http.MethodGet, "/v1/tags", nil, &out)
	return out, err
}

func (c *Client) TagCandidates(ctx context.Context, tag string) (TagCandidatesResponse, error) {
	var out TagCandidatesResponse
	err := c.call(ctx, http.MethodGet, "/v1/tags/accounts?from="+url.QueryEscape(tag), nil, &out)
	return out, err
}

func (c *Client) ReplaceTag(ctx context.Context, from, to string) (TagReplaceResponse, error) {
	var out TagReplaceResponse
	err := c.call(ctx, http.MethodPost, "/v1/tags/replace", TagReplaceRequest{FromTag: from, ToTag: to}, &out)
	return out, err
}

func (c *Client) SetTags(ctx context.Context, id int64, tags string) error {
	return c.call(ctx, http.MethodPatch, fmt.Sprintf("/v1/accounts/%d/tags", id), SetTagsRequest{Tags: tags}, nil)
}

func (c *Client) ListGroups(ctx context.Context) ([]Group, error) {
	var out []Group
	err := c.call(ctx, http.MethodGet, "/v1/groups", nil, &out)
	return out, err
}

func (c *Client) CreateGroup(ctx context.Context, name string) (Group, error) {
	var out Group
	err := c.call(ctx, http.MethodPost, "/v1/groups", GroupRequest{Name: name}, &out)
	return out, err
}

func (c *Client) RenameGroup(ctx context.Context, id int64, name string) (Group, error) {
	var out Group
	err := c.call(ctx, http.MethodPut, fmt.Sprintf("/v1/groups/%d", id), GroupRequest{Name: name}, &out)
	return out, err
}

func (c *Client) DeleteGroup(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/v1/groups/%d", id), nil, nil)
}
