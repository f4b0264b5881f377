// Package hubstaff is the remote data source: it authenticates against the
// Hubstaff API and fetches activity and project records. Remote failures are
// absorbed at this boundary. A failed call yields an empty result for the
// cycle, never an error.
package hubstaff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hubsync/hubsync/internal/config"
	"github.com/hubsync/hubsync/internal/logger"
	"github.com/hubsync/hubsync/internal/models"
)

// ErrNotSupported marks API capabilities this client deliberately does not
// implement.
var ErrNotSupported = errors.New("not supported by this client")

const requestTimeout = 30 * time.Second

type Client struct {
	baseURL  string
	appToken string
	email    string
	password string

	httpClient *http.Client
	logger     *log.Logger

	// authToken is set by the first successful authentication and attached
	// to every subsequent request.
	authToken string
}

func NewClient(cfg config.Config, lg *log.Logger) *Client {
	if lg == nil {
		lg = logger.Discard()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		appToken:   cfg.AppToken,
		email:      cfg.Email,
		password:   cfg.Password,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     lg,
	}
}

// Authenticate exchanges the configured credentials for a session token.
// On any non-success outcome the client simply stays unauthenticated;
// later fetches will come back empty instead of failing.
func (c *Client) Authenticate(ctx context.Context) {
	form := url.Values{}
	form.Set("email", c.email)
	form.Set("password", c.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v339/members/login", strings.NewReader(form.Encode()))
	if err != nil {
		c.logger.Debug("building auth request failed", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("AppToken", c.appToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("authentication request failed", "error", err)
		return
	}
	defer resp.Body.Close()

	c.logger.Debug("trying to authenticate", "status", resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		return
	}

	var body struct {
		AuthToken string `json:"auth_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.AuthToken == "" {
		c.logger.Debug("auth response had no token", "error", err)
		return
	}
	c.authToken = body.AuthToken
}

// Authenticated reports whether a session token is cached.
func (c *Client) Authenticated() bool {
	return c.authToken != ""
}

// get performs an authenticated GET, authenticating lazily on first use.
func (c *Client) get(ctx context.Context, path string, headers map[string]string, query url.Values) (*http.Response, error) {
	if c.authToken == "" {
		c.Authenticate(ctx)
	}

	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("AppToken", c.appToken)
	if c.authToken != "" {
		req.Header.Set("AuthToken", c.authToken)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return c.httpClient.Do(req)
}

// DailyActivities fetches activity records for the inclusive date range
// [start, stop], both in YYYY-MM-DD form and both defaulting to today.
func (c *Client) DailyActivities(ctx context.Context, org models.Organization, start, stop string) []models.Activity {
	if start == "" && stop == "" {
		today := time.Now().Format(models.DateFormat)
		start, stop = today, today
	}

	query := url.Values{}
	query.Set("date[stop]", stop)

	path := fmt.Sprintf("v339/company/%d/operations/by_day", org.ID)
	resp, err := c.get(ctx, path, map[string]string{"DateStart": start}, query)
	if err != nil {
		c.logger.Warn("daily activities request failed", "org", org.ID, "error", err)
		return nil
	}
	defer resp.Body.Close()

	c.logger.Debug("getting daily activities", "start", start, "stop", stop, "status", resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var body struct {
		DailyActivities []activityPayload `json:"daily_activities"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Warn("undecodable activities response", "error", err)
		return nil
	}

	activities := make([]models.Activity, 0, len(body.DailyActivities))
	for _, p := range body.DailyActivities {
		a, err := p.toActivity()
		if err != nil {
			c.logger.Warn("skipping malformed activity record", "id", p.ID, "error", err)
			continue
		}
		activities = append(activities, a)
	}
	return activities
}

// Projects fetches all projects for the organization.
func (c *Client) Projects(ctx context.Context, org models.Organization) []models.Project {
	path := fmt.Sprintf("v339/company/%d/projects", org.ID)
	resp, err := c.get(ctx, path, nil, nil)
	if err != nil {
		c.logger.Warn("projects request failed", "org", org.ID, "error", err)
		return nil
	}
	defer resp.Body.Close()

	c.logger.Debug("getting projects", "org", org.ID, "status", resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var body struct {
		Projects []projectPayload `json:"projects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Warn("undecodable projects response", "error", err)
		return nil
	}

	projects := make([]models.Project, 0, len(body.Projects))
	for _, p := range body.Projects {
		proj, err := p.toProject()
		if err != nil {
			c.logger.Warn("skipping malformed project record", "id", p.ID, "error", err)
			continue
		}
		projects = append(projects, proj)
	}
	return projects
}

// Organizations would list the organizations visible to the account.
func (c *Client) Organizations(ctx context.Context) ([]models.Organization, error) {
	return nil, ErrNotSupported
}

// Project would fetch a single project's detail.
func (c *Client) Project(ctx context.Context, id int64) (*models.Project, error) {
	return nil, ErrNotSupported
}
