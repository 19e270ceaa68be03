package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/me/voirie/pkg/model"
)

// signalementBody shapes a SignalementInput the way the backend's
// relational layer expects: referenced entities as {id} objects.
func signalementBody(in model.SignalementInput, includeUser bool) map[string]any {
	body := map[string]any{
		"status":      map[string]int64{"id": in.StatusID},
		"latitude":    in.Latitude,
		"longitude":   in.Longitude,
		"description": in.Description,
		"surfaceArea": in.SurfaceArea,
		"budget":      in.Budget,
	}
	if includeUser {
		body["user"] = map[string]int64{"id": in.UserID}
	}
	if in.EntrepriseID > 0 {
		body["entreprise"] = map[string]int64{"id": in.EntrepriseID}
	} else {
		body["entreprise"] = nil
	}
	if in.PhotoURL != "" {
		body["photoUrl"] = in.PhotoURL
	} else {
		body["photoUrl"] = nil
	}
	return body
}

// ListSignalements returns every signalement visible to the caller.
func (c *Client) ListSignalements(ctx context.Context) ([]model.Signalement, error) {
	var list []model.Signalement
	if err := c.get(ctx, "/signalements", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListSignalementsByValidationStatus filters by workflow state name
// (pending / approved / rejected).
func (c *Client) ListSignalementsByValidationStatus(ctx context.Context, status string) ([]model.Signalement, error) {
	var list []model.Signalement
	path := "/signalements?validationStatus=" + url.QueryEscape(status)
	if err := c.get(ctx, path, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateSignalement submits a new report.
func (c *Client) CreateSignalement(ctx context.Context, in model.SignalementInput) (*model.Signalement, error) {
	var sig model.Signalement
	if err := c.post(ctx, "/signalements", signalementBody(in, true), &sig); err != nil {
		return nil, err
	}
	return &sig, nil
}

// UpdateSignalement replaces an existing report.
func (c *Client) UpdateSignalement(ctx context.Context, id int64, in model.SignalementInput) (*model.Signalement, error) {
	var sig model.Signalement
	path := fmt.Sprintf("/signalements/%d", id)
	if err := c.put(ctx, path, signalementBody(in, false), &sig); err != nil {
		return nil, err
	}
	return &sig, nil
}

// PatchSignalementStatus moves a report to a new progress status.
func (c *Client) PatchSignalementStatus(ctx context.Context, id, statusID int64) error {
	path := fmt.Sprintf("/signalements/%d/status", id)
	body := map[string]int64{"statusId": statusID}
	return c.do(ctx, "PATCH", path, body, nil, nil)
}

// DeleteSignalement removes a report.
func (c *Client) DeleteSignalement(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/signalements/%d", id))
}

// ValidateSignalement records a manager decision. The endpoint is
// guarded by the static admin key, not the caller's own session.
func (c *Client) ValidateSignalement(ctx context.Context, signalementID, statusID, userID int64, note string) error {
	headers, err := c.adminHeaders()
	if err != nil {
		return err
	}

	body := map[string]any{
		"statusId": statusID,
		"userId":   userID,
	}
	if note != "" {
		body["note"] = note
	} else {
		body["note"] = nil
	}

	path := fmt.Sprintf("/signalements/%d/validate", signalementID)
	return c.do(ctx, "POST", path, body, nil, headers)
}
