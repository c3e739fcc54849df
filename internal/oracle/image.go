package oracle

import (
	"context"
	"encoding/base64"
	"fmt"

	"ai-vocab-coach/config"
	"ai-vocab-coach/pkg/apperror"
	"ai-vocab-coach/pkg/apperror/status"
	"ai-vocab-coach/pkg/logger"
)

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateImage requests a mnemonic image for the term. A declined
// generation is a non-fatal (nil, nil) outcome; callers proceed without an
// image reference.
func (c *Client) GenerateImage(ctx context.Context, term string) (*GeneratedImage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := imageRequest{
		Model:  c.imageModel,
		Prompt: fmt.Sprintf("A simple, memorable illustration to help remember the word %q. No text in the image.", sanitize(term)),
		N:      1,
		Size:   "1024x1024",
	}
	var resp imageResponse
	if err := c.api.Post(ctx, "/images/generations", req, &resp); err != nil {
		logger.Error(err, "%v: image generation failed", config.ModuleOracle)
		return nil, apperror.FromContext(err, apperror.KindImage, status.ResolverImageFailed)
	}
	if resp.Error != nil {
		return nil, apperror.Wrapf(apperror.KindImage, status.ResolverImageFailed, "api error: %s", resp.Error.Message)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		// no image, by the service's own choice
		return nil, nil
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindOracle, status.OracleMalformedPayload, err)
	}
	return &GeneratedImage{Data: data, Mime: "image/png"}, nil
}
