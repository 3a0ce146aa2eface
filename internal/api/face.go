package api

import (
	"context"

	"MindTrace/internal/models"
)

type FaceRegisterResponse struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
}

// RegisterFace enrolls a face under a name and relation. The frame travels
// as the multipart field "file".
func (c *Client) RegisterFace(ctx context.Context, name, relation, filename string, frame []byte) (*FaceRegisterResponse, error) {
	fields := map[string]string{"name": name, "relation": relation}
	var out FaceRegisterResponse
	if err := c.doMultipart(ctx, "face.register", "/face/register", fields, "file", filename, frame, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecognizeFace submits one JPEG frame and returns the best match with its
// confidence in [0,1].
func (c *Client) RecognizeFace(ctx context.Context, filename string, frame []byte) (*models.FaceMatch, error) {
	var match models.FaceMatch
	if err := c.doMultipart(ctx, "face.recognize", "/face/recognize", nil, "file", filename, frame, &match); err != nil {
		return nil, err
	}
	return &match, nil
}
