package client

import (
	"context"
	"encoding/json"
)

// Catalogue actions accepted by the manage endpoints.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Result is the answer of a catalogue mutation; Data holds the created or
// updated row and is empty for deletes.
type Result struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (c *Client) ListInstruments(ctx context.Context, s *Session) ([]Instrument, error) {
	var out []Instrument
	if err := c.get(ctx, s, "/functions/v1/get-instruments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListOrchestras(ctx context.Context, s *Session) ([]Orchestra, error) {
	var out []Orchestra
	if err := c.get(ctx, s, "/functions/v1/get-orchestras", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type manageInstrument struct {
	Action string `json:"action"`
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
}

func (c *Client) CreateInstrument(ctx context.Context, s *Session, name string) (*Result, error) {
	return c.manage(ctx, s, "/functions/v1/manage-instruments", manageInstrument{Action: ActionCreate, Name: name})
}

func (c *Client) RenameInstrument(ctx context.Context, s *Session, id, name string) (*Result, error) {
	return c.manage(ctx, s, "/functions/v1/manage-instruments", manageInstrument{Action: ActionUpdate, ID: id, Name: name})
}

func (c *Client) DeleteInstrument(ctx context.Context, s *Session, id string) (*Result, error) {
	return c.manage(ctx, s, "/functions/v1/manage-instruments", manageInstrument{Action: ActionDelete, ID: id})
}

type manageOrchestra struct {
	Action      string  `json:"action"`
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (c *Client) CreateOrchestra(ctx context.Context, s *Session, name string, description *string) (*Result, error) {
	return c.manage(ctx, s, "/functions/v1/manage-orchestras", manageOrchestra{Action: ActionCreate, Name: name, Description: description})
}

// UpdateOrchestra leaves the stored description untouched when description is nil.
func (c *Client) UpdateOrchestra(ctx context.Context, s *Session, id, name string, description *string) (*Result, error) {
	return c.manage(ctx, s, "/functions/v1/manage-orchestras", manageOrchestra{Action: ActionUpdate, ID: id, Name: name, Description: description})
}

func (c *Client) DeleteOrchestra(ctx context.Context, s *Session, id string) (*Result, error) {
	return c.manage(ctx, s, "/functions/v1/manage-orchestras", manageOrchestra{Action: ActionDelete, ID: id})
}

func (c *Client) manage(ctx context.Context, s *Session, p string, in any) (*Result, error) {
	var out Result
	if err := c.post(ctx, s, p, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
