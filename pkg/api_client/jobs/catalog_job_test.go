package jobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/models"
	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSources(t *testing.T) {
	got := ParseSources(" https://a.example/index.json, ,http://b.example:8080/x/index.json")
	assert.Equal(t, []models.CatalogSource{
		{Name: "a.example", IndexURL: "https://a.example/index.json"},
		{Name: "b.example:8080", IndexURL: "http://b.example:8080/x/index.json"},
	}, got)
	assert.Empty(t, ParseSources(""))
}

func TestScheduleCatalogRefresh_RunsImmediately(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/index.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"workflows": [{"links": {"href": "/wf.json"}}]}`))
	})
	mux.HandleFunc("/wf.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": "Ping", "nodes": [{"id": "1", "name": "Start", "type": "n8n-nodes-base.manualTrigger"}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := services.NewCatalogService(nil, nil, "", nil)
	c, err := ScheduleCatalogRefresh(ctx, svc, []models.CatalogSource{{Name: "test", IndexURL: srv.URL + "/index.json"}}, "@every 1h")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Len(t, c.Entries(), 1)

	require.Eventually(t, func() bool { return svc.Store().Len() == 1 }, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "Ping", svc.Store().List()[0].Name)
}

func TestScheduleCatalogRefresh_InvalidSpec(t *testing.T) {
	_, err := ScheduleCatalogRefresh(context.Background(), services.NewCatalogService(nil, nil, "", nil), nil, "every now and then")
	assert.Error(t, err)
}

func TestScheduleCatalogFromEnv_Disabled(t *testing.T) {
	t.Setenv("CATALOG_INDEX_URLS", "")
	c, err := ScheduleCatalogFromEnv(context.Background(), services.NewCatalogService(nil, nil, "", nil))
	require.NoError(t, err)
	assert.Nil(t, c)
}
