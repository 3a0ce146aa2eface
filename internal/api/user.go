package api

import (
	"context"
	"net/http"

	"MindTrace/internal/models"
)

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (c *Client) GetProfile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := c.doJSON(ctx, "user.get_profile", http.MethodGet, "/user/profile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Profile, error) {
	var p models.Profile
	if err := c.doJSON(ctx, "user.update_profile", http.MethodPut, "/user/profile", update, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	return c.doJSON(ctx, "user.change_password", http.MethodPost, "/user/change-password", ChangePasswordRequest{CurrentPassword: current, NewPassword: next}, nil)
}

// DeleteAccount soft-deletes the account server-side.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.doJSON(ctx, "user.delete_account", http.MethodDelete, "/user/account", nil, nil)
}

// UploadProfileImage sends the image as the multipart field "photo".
func (c *Client) UploadProfileImage(ctx context.Context, filename string, image []byte) (*models.Profile, error) {
	var p models.Profile
	err := c.doMultipart(ctx, "user.upload_profile_image", "/user/profile-image", nil, "photo", filename, image, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProfileImage(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := c.doJSON(ctx, "user.delete_profile_image", http.MethodDelete, "/user/profile-image", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
