package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/metrics"
	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/models"
	"github.com/google/uuid"
)

// CatalogStore houdt de geharvestte workflows in het geheugen, op bron-URL
type CatalogStore struct {
	mu      sync.RWMutex
	entries map[string]models.CatalogEntry
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{entries: map[string]models.CatalogEntry{}}
}

// Put voegt een entry toe of vervangt de entry met dezelfde bron-URL.
// Een bestaande entry behoudt zijn ID.
func (s *CatalogStore) Put(e models.CatalogEntry) models.CatalogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.entries[e.SourceURL]; ok && e.ID == "" {
		e.ID = prev.ID
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	s.entries[e.SourceURL] = e
	return e
}

// List geeft alle entries gesorteerd op naam en bron-URL
func (s *CatalogStore) List() []models.CatalogEntry {
	s.mu.RLock()
	out := make([]models.CatalogEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].SourceURL < out[j].SourceURL
	})
	return out
}

func (s *CatalogStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// CatalogService haalt index.json op, analyseert de gelinkte workflows en bewaart ze in de store.
// Met een register endpoint wordt elke entry daarnaast gepost.
type CatalogService struct {
	httpClient       *http.Client
	registerEndpoint string
	store            *CatalogStore
	workflows        *WorkflowService
	metrics          *metrics.Metrics
}

// NewCatalogService maakt een nieuwe service; registerEndpoint is optioneel
func NewCatalogService(store *CatalogStore, workflows *WorkflowService, registerEndpoint string, m *metrics.Metrics) *CatalogService {
	if store == nil {
		store = NewCatalogStore()
	}
	if workflows == nil {
		workflows = NewWorkflowService(nil, m)
	}
	return &CatalogService{
		httpClient:       &http.Client{Timeout: 30 * time.Second},
		registerEndpoint: strings.TrimSpace(registerEndpoint),
		store:            store,
		workflows:        workflows,
		metrics:          m,
	}
}

// NewCatalogServiceFromEnv leest het register endpoint uit env.
// CATALOG_REGISTER_ENDPOINT is optioneel; leeg betekent alleen in-memory.
func NewCatalogServiceFromEnv(store *CatalogStore, workflows *WorkflowService, m *metrics.Metrics) *CatalogService {
	return NewCatalogService(store, workflows, os.Getenv("CATALOG_REGISTER_ENDPOINT"), m)
}

func (s *CatalogService) Store() *CatalogStore { return s.store }

// RunOnce voert een harvest uit voor één bron. Documenten die niet opgehaald of geparsed kunnen
// worden komen als entry met hasError in de catalogus.
func (s *CatalogService) RunOnce(ctx context.Context, src models.CatalogSource) error {
	if strings.TrimSpace(src.IndexURL) == "" {
		return errors.New("source indexUrl is empty")
	}
	name := src.Name
	if name == "" {
		name = src.IndexURL
	}

	body, err := s.get(ctx, src.IndexURL)
	if err != nil {
		return fmt.Errorf("fetch index: %w", err)
	}
	hrefs, err := extractIndexHrefs(body, src.IndexURL)
	if err != nil {
		return err
	}

	var errs []error
	for _, href := range hrefs {
		entry := s.analyze(ctx, name, href)
		entry = s.store.Put(entry)
		if s.registerEndpoint != "" {
			if err := s.postEntry(ctx, entry); err != nil {
				errs = append(errs, fmt.Errorf("post %s failed: %w", href, err))
			}
		}
	}
	s.metrics.SetCatalogEntries(s.store.Len())
	log.Printf("[catalog %s] workflows=%d total=%d", name, len(hrefs), s.store.Len())
	return errors.Join(errs...)
}

func (s *CatalogService) analyze(ctx context.Context, source, href string) models.CatalogEntry {
	entry := models.CatalogEntry{
		Source:     source,
		SourceURL:  href,
		Name:       href,
		AnalyzedAt: time.Now().UTC(),
	}
	doc, err := s.get(ctx, href)
	if err != nil {
		entry.HasError = true
		entry.Error = err.Error()
		return entry
	}
	a, err := s.workflows.Analyze(doc)
	if err != nil {
		entry.HasError = true
		entry.Error = err.Error()
		return entry
	}
	if a.HasError {
		entry.HasError = true
		entry.Error = a.Error
		return entry
	}
	if a.Name != "" {
		entry.Name = a.Name
	}
	entry.Tags = a.Tags
	entry.Summary = models.CatalogSummary{
		TotalSteps:   a.Summary.TotalSteps,
		AISteps:      a.Summary.AISteps,
		HTTPSteps:    a.Summary.HTTPSteps,
		CodeSteps:    a.Summary.CodeSteps,
		Disconnected: a.Summary.Disconnected,
	}
	return entry
}

func (s *CatalogService) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, rawURL, strings.TrimSpace(string(b)))
	}
	return io.ReadAll(resp.Body)
}

// postEntry stuurt de catalogus entry naar het geconfigureerde endpoint
func (s *CatalogService) postEntry(ctx context.Context, entry models.CatalogEntry) error {
	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.registerEndpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return nil
}

// extractIndexHrefs parseert verschillende mogelijke vormen van index.json en retourneert
// absolute hrefs (relatief aan de index URL), zonder dubbelen
func extractIndexHrefs(data []byte, indexURL string) ([]string, error) {
	type linkObj struct {
		Href string `json:"href"`
	}
	type entryFlexible struct {
		Links json.RawMessage `json:"links"`
	}
	type root struct {
		Workflows []entryFlexible `json:"workflows"`
		Apis      []entryFlexible `json:"apis"`
	}

	var r root
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse index.json: %w", err)
	}
	base, _ := url.Parse(indexURL)

	var raw []string
	for _, e := range append(r.Workflows, r.Apis...) {
		// 1) links als array van objecten
		var arr []linkObj
		if err := json.Unmarshal(e.Links, &arr); err == nil {
			for _, l := range arr {
				raw = append(raw, l.Href)
			}
			continue
		}
		// 2) links als enkel object
		var obj linkObj
		if err := json.Unmarshal(e.Links, &obj); err == nil {
			raw = append(raw, obj.Href)
			continue
		}
		// 3) links als string
		var s string
		if err := json.Unmarshal(e.Links, &s); err == nil {
			raw = append(raw, s)
		}
	}

	seen := map[string]struct{}{}
	var out []string
	for _, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if ref, err := url.Parse(h); err == nil && base != nil {
			h = base.ResolveReference(ref).String()
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out, nil
}
