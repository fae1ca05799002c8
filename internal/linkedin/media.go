package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"linkedinctl/pkg/logging"
)

type initializeUploadRequest struct {
	Owner string `json:"owner"`
}

type initializeUploadEnvelope struct {
	InitializeUploadRequest initializeUploadRequest `json:"initializeUploadRequest"`
}

type initializeUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	Image     string `json:"image"`
}

// decodeInitializeUpload handles both response shapes the endpoint is known
// to produce: the documented {"value": {...}} envelope and the bare object.
func decodeInitializeUpload(body []byte) (initializeUploadResponse, error) {
	var wrapped struct {
		Value initializeUploadResponse `json:"value"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Value.UploadURL != "" {
		return wrapped.Value, nil
	}

	var direct initializeUploadResponse
	if err := json.Unmarshal(body, &direct); err != nil {
		return initializeUploadResponse{}, fmt.Errorf("parsing initializeUpload response: %w", err)
	}
	if direct.UploadURL == "" || direct.Image == "" {
		return initializeUploadResponse{}, fmt.Errorf("initializeUpload response missing uploadUrl or image: %s", strings.TrimSpace(string(body)))
	}

	return direct, nil
}

// UploadImage uploads a local image file and returns its persistent URN.
//
// The upload is two-phase: initializeUpload registers the asset under the
// authenticated member and yields a one-time upload URL, then the raw bytes
// are PUT there. The upload URL is pre-authorized, so the second request
// carries only the bearer token and an octet-stream content type. A missing
// local file fails before any network traffic.
func (c *Client) UploadImage(ctx context.Context, path string) (string, error) {
	imageBytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("image file not found: %s", path)
		}
		return "", fmt.Errorf("reading image file: %w", err)
	}

	payload := initializeUploadEnvelope{
		InitializeUploadRequest: initializeUploadRequest{Owner: c.rec.PersonURN},
	}
	_, body, err := c.do(ctx, http.MethodPost, c.baseURL+"/images?action=initializeUpload", payload)
	if err != nil {
		return "", err
	}

	init, err := decodeInitializeUpload(body)
	if err != nil {
		return "", err
	}

	logging.Debug("LinkedInAPI", "uploading %d bytes for %s", len(imageBytes), init.Image)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, init.UploadURL, bytes.NewReader(imageBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.rec.AccessToken)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	return init.Image, nil
}
