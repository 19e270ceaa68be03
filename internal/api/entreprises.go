package api

import (
	"context"
	"fmt"

	"github.com/me/voirie/pkg/model"
)

// ListEntreprises returns all registered contractors.
func (c *Client) ListEntreprises(ctx context.Context) ([]model.Entreprise, error) {
	var list []model.Entreprise
	if err := c.get(ctx, "/entreprises", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetEntreprise fetches one contractor by id.
func (c *Client) GetEntreprise(ctx context.Context, id int64) (*model.Entreprise, error) {
	var e model.Entreprise
	if err := c.get(ctx, fmt.Sprintf("/entreprises/%d", id), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEntreprise registers a contractor.
func (c *Client) CreateEntreprise(ctx context.Context, e model.Entreprise) (*model.Entreprise, error) {
	var created model.Entreprise
	if err := c.post(ctx, "/entreprises", e, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateEntreprise replaces a contractor record.
func (c *Client) UpdateEntreprise(ctx context.Context, id int64, e model.Entreprise) (*model.Entreprise, error) {
	var updated model.Entreprise
	if err := c.put(ctx, fmt.Sprintf("/entreprises/%d", id), e, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteEntreprise removes a contractor.
func (c *Client) DeleteEntreprise(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/entreprises/%d", id))
}
