package source

import (
	"context"
	"fmt"

	"roblox-pass-proxy/internal/upstream"
)

// UserAdapter resolves user ids against the users mirror.
type UserAdapter struct {
	client  *upstream.Client
	baseURL string
}

var _ UserResolver = (*UserAdapter)(nil)

// NewUserAdapter creates an adapter for the users endpoint.
func NewUserAdapter(client *upstream.Client, baseURL string) *UserAdapter {
	return &UserAdapter{client: client, baseURL: baseURL}
}

type userProfile struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// Username returns the user's name, falling back to displayName and then to
// "". A profile with no usable name is not an error.
func (a *UserAdapter) Username(ctx context.Context, userID int64) (string, error) {
	url := fmt.Sprintf("%s/v1/users/%d", a.baseURL, userID)

	var profile userProfile
	if err := a.client.GetJSON(ctx, url, &profile); err != nil {
		return "", err
	}

	if profile.Name != "" {
		return profile.Name, nil
	}
	return profile.DisplayName, nil
}
