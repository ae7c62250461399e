package api

import "context"

// ProfileInput is the payload for updating the current user's profile.
type ProfileInput struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// PasswordInput is the payload for changing the current user's password.
type PasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// FetchCurrentUser retrieves the account the bearer token belongs to.
func (c *Client) FetchCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FetchUsers retrieves all user accounts, for staff views.
func (c *Client) FetchUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile edits the current user's profile.
func (c *Client) UpdateProfile(ctx context.Context, input ProfileInput) (*User, error) {
	var user User
	if err := c.put(ctx, "/users/profile", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword changes the current user's password.
func (c *Client) ChangePassword(ctx context.Context, input PasswordInput) error {
	return c.put(ctx, "/users/password", input, nil)
}
