package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nholloway4/followd/internal/domain/follower"
	"github.com/nholloway4/followd/internal/platform/config"
	"github.com/nholloway4/followd/internal/platform/fanout"
	"github.com/nholloway4/followd/internal/platform/httpclient"
	"github.com/nholloway4/followd/internal/ports"
)

// Compile-time interface check.
var _ ports.GitHubClient = (*GitHubClient)(nil)

// GitHubClient is the outbound adapter for the GitHub REST API. It
// implements [ports.GitHubClient], translating GitHub's wire representation
// into domain entities and walking paginated listings.
//
// Listings are fetched page by page: the first page's Link header reveals
// the total page count, and the remaining pages are fetched concurrently
// with bounded fan-out. Page counts beyond the configured cap are truncated
// with a warning rather than failed.
//
// The underlying [httpclient.Client] provides circuit breaking, retry with
// exponential backoff, rate limiting, OpenTelemetry tracing, and health
// checking for every outbound call.
type GitHubClient struct {
	req    *Requester
	logger *slog.Logger

	perPage     int
	maxPages    int
	pageWorkers int
}

// NewGitHubClient creates a GitHubClient that sends requests through the
// given [httpclient.Client]. Pagination behavior (page size, page cap,
// concurrent page fetches) comes from cfg.
func NewGitHubClient(client *httpclient.Client, cfg *config.GitHubConfig, logger *slog.Logger) *GitHubClient {
	return &GitHubClient{
		req:         NewRequester(client, logger),
		logger:      logger,
		perPage:     cfg.PerPage,
		maxPages:    cfg.MaxPages,
		pageWorkers: cfg.PageWorkers,
	}
}

// ListFollowers fetches all pages of GET /users/{login}/followers.
func (c *GitHubClient) ListFollowers(ctx context.Context, login string) ([]follower.Follower, error) {
	return c.listAccounts(ctx, login, "followers")
}

// ListFollowing fetches all pages of GET /users/{login}/following.
func (c *GitHubClient) ListFollowing(ctx context.Context, login string) ([]follower.Follower, error) {
	return c.listAccounts(ctx, login, "following")
}

// GetUser fetches GET /users/{login} and returns the translated profile.
// Returns domain.ErrNotFound if the user does not exist.
func (c *GitHubClient) GetUser(ctx context.Context, login string) (*follower.User, error) {
	path := "/users/" + url.PathEscape(login)

	var dto userDTO
	if _, err := c.req.Get(ctx, path, &dto); err != nil {
		return nil, err
	}
	return toDomainUser(&dto), nil
}

// listAccounts walks a paginated listing endpoint. The first page is
// fetched synchronously; when its Link header announces more pages, the
// rest are fetched concurrently and stitched together in page order.
func (c *GitHubClient) listAccounts(ctx context.Context, login, resource string) ([]follower.Follower, error) {
	firstPage, header, err := c.fetchPage(ctx, login, resource, 1)
	if err != nil {
		return nil, err
	}

	last := lastPage(header.Get("Link"))
	if last <= 1 {
		return firstPage, nil
	}

	if last > c.maxPages {
		c.logger.WarnContext(ctx, "truncating paginated listing",
			slog.String("login", login),
			slog.String("resource", resource),
			slog.Int("total_pages", last),
			slog.Int("max_pages", c.maxPages),
		)
		last = c.maxPages
	}

	pages := make([]int, 0, last-1)
	for p := 2; p <= last; p++ {
		pages = append(pages, p)
	}

	results := fanout.Run(ctx, c.pageWorkers, pages, func(ctx context.Context, page int) ([]follower.Follower, error) {
		accounts, _, err := c.fetchPage(ctx, login, resource, page)
		return accounts, err
	})

	rest, err := fanout.Values(results)
	if err != nil {
		return nil, fmt.Errorf("fetching %s pages for %s: %w", resource, login, err)
	}

	all := firstPage
	for _, page := range rest {
		all = append(all, page...)
	}
	return all, nil
}

// fetchPage fetches a single listing page and returns the translated
// entries plus the response header.
func (c *GitHubClient) fetchPage(ctx context.Context, login, resource string, page int) ([]follower.Follower, http.Header, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(c.perPage))
	q.Set("page", strconv.Itoa(page))
	path := fmt.Sprintf("/users/%s/%s?%s", url.PathEscape(login), resource, q.Encode())

	var dtos []accountDTO
	header, err := c.req.Get(ctx, path, &dtos)
	if err != nil {
		return nil, nil, err
	}
	return toDomainFollowerList(dtos), header, nil
}

// lastPage extracts the page number of the rel="last" entry from a Link
// header. Returns 0 when the header is absent or carries no last link,
// which means the current page is the only one.
func lastPage(linkHeader string) int {
	if linkHeader == "" {
		return 0
	}

	for _, part := range strings.Split(linkHeader, ",") {
		sections := strings.Split(part, ";")
		if len(sections) < 2 {
			continue
		}
		if !strings.Contains(sections[1], `rel="last"`) {
			continue
		}

		raw := strings.Trim(strings.TrimSpace(sections[0]), "<>")
		u, err := url.Parse(raw)
		if err != nil {
			return 0
		}
		page, err := strconv.Atoi(u.Query().Get("page"))
		if err != nil {
			return 0
		}
		return page
	}
	return 0
}
