package client

import (
	"context"
	"net/url"
)

func (c *Client) UserInstruments(ctx context.Context, s *Session, userID string) ([]InstrumentRef, error) {
	var out []InstrumentRef
	if err := c.get(ctx, s, "/functions/v1/get-user-instruments", url.Values{"userId": {userID}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UserOrchestras(ctx context.Context, s *Session, userID string) ([]OrchestraRef, error) {
	var out []OrchestraRef
	if err := c.get(ctx, s, "/functions/v1/get-user-orchestras", url.Values{"userId": {userID}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetUserInstruments replaces the user's whole instrument set.
func (c *Client) SetUserInstruments(ctx context.Context, s *Session, userID string, instrumentIDs []string) (*Message, error) {
	if instrumentIDs == nil {
		instrumentIDs = []string{}
	}
	in := struct {
		UserID        string   `json:"userId"`
		InstrumentIDs []string `json:"instrumentIds"`
	}{userID, instrumentIDs}

	var out Message
	if err := c.post(ctx, s, "/functions/v1/manage-user-instruments", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetUserOrchestras replaces the user's whole orchestra set.
func (c *Client) SetUserOrchestras(ctx context.Context, s *Session, userID string, orchestraIDs []string) (*Message, error) {
	if orchestraIDs == nil {
		orchestraIDs = []string{}
	}
	in := struct {
		UserID       string   `json:"userId"`
		OrchestraIDs []string `json:"orchestraIds"`
	}{userID, orchestraIDs}

	var out Message
	if err := c.post(ctx, s, "/functions/v1/manage-user-orchestras", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
