package api

import (
	"context"
	"fmt"

	"github.com/me/voirie/pkg/model"
)

// ListUsers returns all backend user records.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var list []model.User
	if err := c.get(ctx, "/users", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetUser fetches one user by id.
func (c *Client) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := c.get(ctx, fmt.Sprintf("/users/%d", id), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser replaces a user record.
func (c *Client) UpdateUser(ctx context.Context, id int64, u model.User) (*model.User, error) {
	var updated model.User
	if err := c.put(ctx, fmt.Sprintf("/users/%d", id), u, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/users/%d", id))
}

// ListTypeUsers returns the user type reference rows.
func (c *Client) ListTypeUsers(ctx context.Context) ([]model.TypeUser, error) {
	var list []model.TypeUser
	if err := c.get(ctx, "/type-users", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListStatuses returns the signalement progress statuses.
func (c *Client) ListStatuses(ctx context.Context) ([]model.Status, error) {
	var list []model.Status
	if err := c.get(ctx, "/statuses", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListValidationStatuses returns the manager workflow statuses.
func (c *Client) ListValidationStatuses(ctx context.Context) ([]model.ValidationStatus, error) {
	var list []model.ValidationStatus
	if err := c.get(ctx, "/validation-statuses", &list); err != nil {
		return nil, err
	}
	return list, nil
}
