// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package verification

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/envelope"
)

// ErrServerRejected is returned for every non-2xx answer of the verification endpoint.
var ErrServerRejected = errors.New("verification server rejected the request")

// Client calls the verification endpoint over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient returns a client for the server at baseURL. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Verify posts submission and decodes the answer. The request is bound to scope.Ctx.
func (c *Client) Verify(rootScope *envelope.Scope, submission Submission) (Response, error) {
	scope := rootScope.NewChildScope("verification.Client.Verify")
	defer scope.Finish()

	body, err := json.Marshal(submission)
	if err != nil {
		return Response{}, fmt.Errorf("failed to marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(scope.Ctx, http.MethodPost, c.baseURL+VerifyPath, bytes.NewReader(body))
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	scope.InjectHeaders(req.Header)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp ErrorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, maxSubmissionBytes)).Decode(&errResp)
		return Response{}, fmt.Errorf("%w: status %d code %d: %s", ErrServerRejected, resp.StatusCode, errResp.ErrorCode, errResp.ErrorMessage)
	}

	var response Response
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return Response{}, fmt.Errorf("failed to decode verification response: %w", err)
	}
	return response, nil
}
