package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahafle/costs-manager/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(true, logger.ErrorLevel); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func usersStub(t *testing.T, known map[int]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/", func(w http.ResponseWriter, r *http.Request) {
		var id int
		fmt.Sscanf(r.URL.Path, "/api/users/%d", &id)
		firstName, ok := known[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(w, `{"id":"x","message":"User not found"}`)
			return
		}
		fmt.Fprintf(w, `{"id":%d,"first_name":%q,"last_name":"Israeli"}`, id, firstName)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestGetUser(t *testing.T) {
	server := usersStub(t, map[int]string{3: "Mosh"})
	client := NewUsersClient(server.URL)

	user, err := client.GetUser(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, user.ID)
	assert.Equal(t, "Mosh Israeli", user.FullName)
}

func TestGetUserNotFound(t *testing.T) {
	server := usersStub(t, nil)
	client := NewUsersClient(server.URL)

	_, err := client.GetUser(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	client := NewUsersClient(server.URL)

	_, err := client.GetUser(context.Background(), 3)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound, "a 500 is not an explicit not-found")
}

func TestGetUserUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	client := NewUsersClient(url)

	_, err := client.GetUser(context.Background(), 3)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}

func TestFetchUsersPartialFailure(t *testing.T) {
	server := usersStub(t, map[int]string{1: "Mosh", 2: "Dana"})
	client := NewUsersClient(server.URL)

	users := client.FetchUsers(context.Background(), []int{1, 2, 3})
	require.Len(t, users, 2)
	assert.Equal(t, "Mosh Israeli", users[1].FullName)
	assert.Equal(t, "Dana Israeli", users[2].FullName)
	assert.NotContains(t, users, 3)
}

func TestFetchUsersFullBatchFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	client := NewUsersClient(url)

	users := client.FetchUsers(context.Background(), []int{1, 2, 3})
	assert.Empty(t, users)
}

func TestGetTotal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/costs/total/3", r.URL.Path)
		fmt.Fprint(w, `{"total":120.5}`)
	}))
	t.Cleanup(server.Close)
	client := NewCostsClient(server.URL)

	total, err := client.GetTotal(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 120.5, total)
}

func TestGetTotalUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	client := NewCostsClient(url)

	_, err := client.GetTotal(context.Background(), 3)
	assert.Error(t, err)
}
