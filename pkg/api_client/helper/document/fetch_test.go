package document

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromInput_PrefersURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"nodes": []}`))
	}))
	defer srv.Close()

	in := &models.WorkflowInput{WorkflowUrl: srv.URL, WorkflowBody: "ignored"}
	b, err := FromInput(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, `{"nodes": []}`, string(b))
}

func TestFromInput_BodyThenInline(t *testing.T) {
	b, err := FromInput(context.Background(), &models.WorkflowInput{WorkflowBody: "  nodes: []\n"})
	require.NoError(t, err)
	assert.Equal(t, "nodes: []", string(b))

	b, err = FromInput(context.Background(), &models.WorkflowInput{Workflow: json.RawMessage(`{"nodes":[]}`)})
	require.NoError(t, err)
	assert.Equal(t, `{"nodes":[]}`, string(b))

	b, err = FromInput(context.Background(), &models.WorkflowInput{Workflow: json.RawMessage(`null`)})
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = FromInput(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestFetchURL_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := FetchURL(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrFetch)
	assert.Contains(t, err.Error(), "404")

	_, err = FetchURL(context.Background(), "://bad")
	assert.ErrorIs(t, err, ErrFetch)
}
