package client

import "context"

type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type UpdateUserRequest struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	// Password is changed only when non-empty.
	Password string `json:"password,omitempty"`
}

func (c *Client) CreateUser(ctx context.Context, s *Session, in CreateUserRequest) (*Identity, error) {
	var out struct {
		Success bool      `json:"success"`
		User    *Identity `json:"user"`
	}
	if err := c.post(ctx, s, "/functions/v1/create-user", in, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) UpdateUser(ctx context.Context, s *Session, in UpdateUserRequest) (*Message, error) {
	var out Message
	if err := c.post(ctx, s, "/functions/v1/update-user", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, s *Session, userID string) (*Message, error) {
	var out Message
	in := map[string]string{"userId": userID}
	if err := c.post(ctx, s, "/functions/v1/delete-user", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context, s *Session) ([]User, error) {
	var out []User
	if err := c.get(ctx, s, "/functions/v1/get-all-users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
