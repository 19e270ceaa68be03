package api

import (
	"context"
	"fmt"

	"github.com/me/voirie/pkg/model"
)

// AdminCreateUserInput is the payload for the privileged user-creation
// endpoint (creates both the provider account and the backend mirror).
type AdminCreateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // USER or MANAGER
}

// AdminCreateUser provisions a user through the admin endpoint.
func (c *Client) AdminCreateUser(ctx context.Context, in AdminCreateUserInput) (*model.Session, error) {
	headers, err := c.adminHeaders()
	if err != nil {
		return nil, err
	}
	var resp model.Session
	if err := c.do(ctx, "POST", "/admin/users", in, &resp, headers); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminUnblockUser resets a blocked account's attempt counter.
func (c *Client) AdminUnblockUser(ctx context.Context, userID int64) (*model.Session, error) {
	headers, err := c.adminHeaders()
	if err != nil {
		return nil, err
	}
	var resp model.Session
	path := fmt.Sprintf("/admin/users/%d/unblock", userID)
	if err := c.do(ctx, "POST", path, nil, &resp, headers); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SyncFirebaseSignalements asks the backend to reconcile signalement
// records between Firestore and the relational store, both directions.
// The client only triggers the run and reports the returned counts;
// the merge logic lives entirely server-side.
func (c *Client) SyncFirebaseSignalements(ctx context.Context) model.SyncResult {
	headers, err := c.adminHeaders()
	if err != nil {
		return model.SyncResult{Success: false, Message: ErrorMessage(err)}
	}

	var result model.SyncResult
	if err := c.do(ctx, "POST", "/admin/firebase/sync/signalements", nil, &result, headers); err != nil {
		return model.SyncResult{Success: false, Message: ErrorMessage(err)}
	}
	return result
}
