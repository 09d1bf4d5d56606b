// Package clients talks to sibling services over HTTP. Every call
// carries a bounded timeout, and enrichment callers treat any failure
// as "no data for this key" rather than an error for the request.
package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shahafle/costs-manager/logger"
	"github.com/shahafle/costs-manager/models"
)

// ErrUserNotFound means the users service explicitly answered 404 for
// the id, as opposed to being unreachable.
var ErrUserNotFound = errors.New("user not found")

const requestTimeout = 5 * time.Second

type UsersClient struct {
	baseURL string
	client  *http.Client
}

func NewUsersClient(baseURL string) *UsersClient {
	return &UsersClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// GetUser fetches display info for one user. A 404 maps to
// ErrUserNotFound; every other failure is an ordinary error the caller
// may degrade on.
func (c *UsersClient) GetUser(ctx context.Context, id int) (*models.UserView, error) {
	url := fmt.Sprintf("%s/api/users/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrUserNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code fetching user: %d", resp.StatusCode)
	}

	var user struct {
		ID        int    `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &models.UserView{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FirstName + " " + user.LastName,
	}, nil
}

// FetchUsers fetches display info for every id in parallel. Ids whose
// fetch failed are simply absent from the result; a fully failed batch
// yields an empty map, never an error.
func (c *UsersClient) FetchUsers(ctx context.Context, ids []int) map[int]*models.UserView {
	users := make(map[int]*models.UserView, len(ids))

	var mu sync.Mutex
	var g errgroup.Group
	for _, id := range ids {
		id := id
		g.Go(func() error {
			user, err := c.GetUser(ctx, id)
			if err != nil {
				logger.Get().Warn("could not fetch user from users-service",
					zap.Int("user_id", id),
					zap.Error(err))
				return nil
			}
			mu.Lock()
			users[id] = user
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return users
}
