package clients

import "context"

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// AuthResponse is the token blob the backend returns on login/register.
// The token is stored and forwarded as-is; its contents are opaque here.
type AuthResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber"`
	Roles       []string `json:"roles"`
	Token       string   `json:"token"`
}

type AuthClient struct{ c *Client }

func NewAuthClient(c *Client) *AuthClient { return &AuthClient{c: c} }

func (ac *AuthClient) Login(ctx context.Context, creds Credentials) (AuthResponse, error) {
	var out AuthResponse
	if err := ac.c.post(ctx, "/auth/login", creds, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}

func (ac *AuthClient) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var out AuthResponse
	if err := ac.c.post(ctx, "/auth/register", req, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}

func (ac *AuthClient) Logout(ctx context.Context) error {
	return ac.c.post(ctx, "/auth/logout", nil, nil)
}

// Me returns the authenticated user's profile.
func (ac *AuthClient) Me(ctx context.Context) (AuthResponse, error) {
	var out AuthResponse
	if err := ac.c.get(ctx, "/auth/me", nil, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}
