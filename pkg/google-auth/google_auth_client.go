package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseUrl = "https://www.googleapis.com/oauth2/v1"

type GetUserDetailsResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	PictureUrl    string `json:"picture"`
	FirstName     string `json:"given_name"`
	LastName      string `json:"family_name"`
}

type Client struct {
	HttpClient *http.Client
	BaseUrl    string
}

func NewClient() *Client {
	return &Client{
		HttpClient: &http.Client{Timeout: 10 * time.Second},
		BaseUrl:    defaultBaseUrl,
	}
}

// GetUserDetails exchanges an OAuth access token for the user's profile.
func (c *Client) GetUserDetails(ctx context.Context, accessToken string) (*GetUserDetailsResponse, error) {
	endpoint := strings.TrimRight(c.BaseUrl, "/") + "/userinfo?access_token=" + url.QueryEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get google user details: %w", err)
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}
	if response.StatusCode != http.StatusOK {
		type errResponse struct {
			Error string `json:"error"`
		}
		errJson := errResponse{}
		err = json.Unmarshal(responseBytes, &errJson)
		if err != nil {
			return nil, fmt.Errorf("received status code %d and failed to read error: %w", response.StatusCode, err)
		}
		return nil, fmt.Errorf("failed with status code %d: %s", response.StatusCode, errJson.Error)
	}

	var responseJson GetUserDetailsResponse
	err = json.Unmarshal(responseBytes, &responseJson)
	if err != nil {
		return nil, err
	}
	if responseJson.ID == "" {
		return nil, fmt.Errorf("google user details missing id")
	}

	return &responseJson, nil
}
