// Package hosting looks up public user records on Git hosting providers so
// the add command can prefill the Git identity. This is the only part of
// mgit that performs network I/O; the core components never import it.
package hosting

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v82/github"

	mgiterrors "github.com/PrajsRamteke/mgit/internal/errors"
)

// lookupTimeout bounds every provider request.
const lookupTimeout = 10 * time.Second

// UserInfo is the plain user record the rest of the tool consumes.
type UserInfo struct {
	Login string
	Name  string
	Email string
	ID    int64
}

// Client queries hosting provider user APIs.
type Client struct {
	gh            *gh.Client
	httpClient    *http.Client
	gitlabBaseURL string
}

// NewClient creates a client against the public provider endpoints.
func NewClient() *Client {
	httpClient := &http.Client{Timeout: lookupTimeout}
	return &Client{
		gh:            gh.NewClient(httpClient),
		httpClient:    httpClient,
		gitlabBaseURL: "https://gitlab.com",
	}
}

// NewClientWithBaseURLs creates a client against test servers.
func NewClientWithBaseURLs(httpClient *http.Client, githubBaseURL, gitlabBaseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)
	u, err := url.Parse(githubBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing GitHub base URL: %w", err)
	}
	client.BaseURL = u
	return &Client{gh: client, httpClient: httpClient, gitlabBaseURL: gitlabBaseURL}, nil
}

// Lookup fetches the public user record for username on the provider.
// Bitbucket and custom hosts have no anonymous user API; callers must
// supply the identity themselves.
func (c *Client) Lookup(ctx context.Context, provider, username string) (*UserInfo, error) {
	switch provider {
	case "github":
		return c.lookupGitHub(ctx, username)
	case "gitlab":
		return c.lookupGitLab(ctx, username)
	default:
		return nil, mgiterrors.ValidationError{
			Field:      "provider",
			Value:      provider,
			Message:    "user lookup is not supported for this provider",
			Suggestion: "Pass --email and --name explicitly",
		}
	}
}

func (c *Client) lookupGitHub(ctx context.Context, username string) (*UserInfo, error) {
	user, resp, err := c.gh.Users.Get(ctx, username)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, c.userNotFound("github", username)
		}
		return nil, fmt.Errorf("querying github user '%s': %w", username, err)
	}
	return &UserInfo{
		Login: user.GetLogin(),
		Name:  user.GetName(),
		Email: user.GetEmail(),
		ID:    user.GetID(),
	}, nil
}

func (c *Client) lookupGitLab(ctx context.Context, username string) (*UserInfo, error) {
	endpoint := fmt.Sprintf("%s/api/v4/users?username=%s", c.gitlabBaseURL, url.QueryEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying gitlab user '%s': %w", username, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("querying gitlab user '%s': unexpected status %d", username, resp.StatusCode)
	}

	var users []struct {
		ID          int64  `json:"id"`
		Username    string `json:"username"`
		Name        string `json:"name"`
		PublicEmail string `json:"public_email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("decoding gitlab response: %w", err)
	}
	if len(users) == 0 {
		return nil, c.userNotFound("gitlab", username)
	}
	return &UserInfo{
		Login: users[0].Username,
		Name:  users[0].Name,
		Email: users[0].PublicEmail,
		ID:    users[0].ID,
	}, nil
}

func (c *Client) userNotFound(provider, username string) error {
	return mgiterrors.NotFoundError{
		Kind:       provider + " user",
		Name:       username,
		Suggestion: "Check the spelling, or pass --email and --name explicitly",
	}
}

// NoreplyEmail builds the provider's noreply commit address for users whose
// email is not public.
func NoreplyEmail(provider, login string, id int64) string {
	switch provider {
	case "github":
		return fmt.Sprintf("%d+%s@users.noreply.github.com", id, login)
	case "gitlab":
		return fmt.Sprintf("%d-%s@users.noreply.gitlab.com", id, login)
	default:
		return ""
	}
}
