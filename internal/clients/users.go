package clients

import "context"

type User struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber"`
	Enabled     bool     `json:"enabled"`
	Roles       []string `json:"roles"`
}

type UsersClient struct{ c *Client }

func NewUsersClient(c *Client) *UsersClient { return &UsersClient{c: c} }

func (uc *UsersClient) List(ctx context.Context) ([]User, error) {
	var out []User
	if err := uc.c.get(ctx, "/auth/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *UsersClient) ListAdmins(ctx context.Context) ([]User, error) {
	var out []User
	if err := uc.c.get(ctx, "/auth/users/admins", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *UsersClient) CreateAdmin(ctx context.Context, req RegisterRequest) error {
	return uc.c.post(ctx, "/auth/users/create-admin", req, nil)
}
