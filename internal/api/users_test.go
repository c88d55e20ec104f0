package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subflow/admin-client/internal/notify"
	"github.com/subflow/admin-client/internal/tokenstore"
)

func usersServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/users", r.URL.Path)
		w.Write([]byte(body))
	}))
}

func TestGetUsers_ForwardsPageAndLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "8", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := makeClient(server.URL, tokenstore.NewMemory(), notify.Nop{})

	_, err := client.GetUsers(context.Background(), 2, 8)
	require.NoError(t, err)
}

func TestGetUsers_PaginationFlags(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantNext    bool
		wantPrev    bool
		wantTotal   int
		wantPageNum int
	}{
		{
			name:        "middle page has next and prev",
			body:        `{"data":[],"meta":{"total":20,"page":2,"limit":8}}`,
			wantNext:    true,
			wantPrev:    true,
			wantTotal:   20,
			wantPageNum: 2,
		},
		{
			name:        "last page has no next",
			body:        `{"data":[],"meta":{"total":10,"page":2,"limit":8}}`,
			wantNext:    false,
			wantPrev:    true,
			wantTotal:   10,
			wantPageNum: 2,
		},
		{
			name:        "missing meta defaults to requested values",
			body:        `{"data":[]}`,
			wantNext:    false,
			wantPrev:    true,
			wantTotal:   0,
			wantPageNum: 2,
		},
		{
			name:        "partial meta never yields next page",
			body:        `{"data":[],"meta":{"total":100}}`,
			wantNext:    false,
			wantPrev:    true,
			wantTotal:   100,
			wantPageNum: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := usersServer(t, tt.body)
			defer server.Close()

			client := makeClient(server.URL, tokenstore.NewMemory(), notify.Nop{})

			page, err := client.GetUsers(context.Background(), 2, 8)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNext, page.HasNextPage)
			assert.Equal(t, tt.wantPrev, page.HasPrevPage)
			assert.Equal(t, tt.wantTotal, page.Total)
			assert.Equal(t, tt.wantPageNum, page.Page)
		})
	}
}

func TestGetUsers_FirstPageHasNoPrev(t *testing.T) {
	server := usersServer(t, `{"data":[],"meta":{"total":20,"page":1,"limit":8}}`)
	defer server.Close()

	client := makeClient(server.URL, tokenstore.NewMemory(), notify.Nop{})

	page, err := client.GetUsers(context.Background(), 1, 8)
	require.NoError(t, err)
	assert.False(t, page.HasPrevPage)
	assert.True(t, page.HasNextPage)
}

func TestGetUsers_NormalizesStatusToLower(t *testing.T) {
	server := usersServer(t, `{"data":[
		{"id":"u1","name":"Alice","email":"alice@example.com","status":"PAID"},
		{"id":"u2","name":"Bob","email":"bob@example.com","status":"Unpaid"}
	],"meta":{"total":2,"page":1,"limit":8}}`)
	defer server.Close()

	client := makeClient(server.URL, tokenstore.NewMemory(), notify.Nop{})

	page, err := client.GetUsers(context.Background(), 1, 8)
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "paid", page.Data[0].Status)
	assert.True(t, page.Data[0].Paid())
	assert.Equal(t, "unpaid", page.Data[1].Status)
	assert.False(t, page.Data[1].Paid())
}

func TestGetUsers_UnwrappedArrayBody(t *testing.T) {
	server := usersServer(t, `[{"id":"u1","name":"Alice","email":"alice@example.com","status":"paid"}]`)
	defer server.Close()

	client := makeClient(server.URL, tokenstore.NewMemory(), notify.Nop{})

	page, err := client.GetUsers(context.Background(), 1, 8)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Alice", page.Data[0].Name)
	assert.Equal(t, 0, page.Total)
}
