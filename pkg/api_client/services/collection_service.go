package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/developer-overheid-nl/don-workflows-api/pkg/workflow"
	"github.com/google/uuid"
)

// ErrNoHTTPSteps is returned when a workflow has nothing to export
var ErrNoHTTPSteps = errors.New("workflow bevat geen HTTP stappen")

const postmanSchema = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

// CollectionService zet de HTTP stappen van een workflow om naar Postman en Bruno collecties
type CollectionService struct {
	analyzer *workflow.Analyzer
}

// NewCollectionService Constructor-functie
func NewCollectionService(analyzer *workflow.Analyzer) *CollectionService {
	if analyzer == nil {
		analyzer = workflow.New()
	}
	return &CollectionService{analyzer: analyzer}
}

type postmanCollection struct {
	Info postmanInfo   `json:"info"`
	Item []postmanItem `json:"item"`
}

type postmanInfo struct {
	PostmanID   string `json:"_postman_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Schema      string `json:"schema"`
}

type postmanItem struct {
	Name    string         `json:"name"`
	Request postmanRequest `json:"request"`
}

type postmanRequest struct {
	Method string          `json:"method"`
	Header []postmanKV     `json:"header"`
	URL    postmanURL      `json:"url"`
	Body   *postmanRawBody `json:"body,omitempty"`
}

type postmanKV struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type postmanURL struct {
	Raw   string      `json:"raw"`
	Query []postmanKV `json:"query,omitempty"`
}

type postmanRawBody struct {
	Mode    string         `json:"mode"`
	Raw     string         `json:"raw"`
	Options map[string]any `json:"options,omitempty"`
}

// httpSteps analyseert het document en geeft de uitgaande HTTP stappen in uitvoervolgorde terug.
// Triggers (zoals webhooks) ontvangen verzoeken en worden niet geëxporteerd.
func (s *CollectionService) httpSteps(doc []byte) (*workflow.Analysis, []workflow.HTTPConfig, error) {
	if strings.TrimSpace(string(doc)) == "" {
		return nil, nil, ErrEmptyWorkflow
	}
	a := s.analyzer.Analyze(doc)
	if a.HasError {
		return nil, nil, fmt.Errorf("%w: %s", ErrInvalidWorkflow, a.Error)
	}
	triggers := map[string]struct{}{}
	for _, st := range a.Steps {
		if st.IsTrigger {
			triggers[st.ID] = struct{}{}
		}
	}
	var out []workflow.HTTPConfig
	for _, h := range a.HTTP {
		if _, ok := triggers[h.NodeID]; ok {
			continue
		}
		out = append(out, h)
	}
	if len(out) == 0 {
		return nil, nil, ErrNoHTTPSteps
	}
	return a, out, nil
}

func collectionName(a *workflow.Analysis, fallback string) (title, file string) {
	title = strings.TrimSpace(a.Name)
	if title == "" {
		title = "Workflow"
	}
	file = SanitizeFilename(a.Name)
	if file == "" {
		file = fallback
	}
	return title, file
}

// ConvertWorkflowToPostman converteert de HTTP stappen naar een Postman Collection (v2.1) JSON
// Retourneert de json-bytes en een bestandsnaam zonder extensie.
func (s *CollectionService) ConvertWorkflowToPostman(doc []byte) ([]byte, string, error) {
	a, requests, err := s.httpSteps(doc)
	if err != nil {
		return nil, "", err
	}
	title, name := collectionName(a, "postman-collection")

	col := postmanCollection{
		Info: postmanInfo{
			PostmanID:   uuid.New().String(),
			Name:        title,
			Description: fmt.Sprintf("%d HTTP stappen uit workflow %q", len(requests), title),
			Schema:      postmanSchema,
		},
		Item: make([]postmanItem, 0, len(requests)),
	}
	for _, h := range requests {
		req := postmanRequest{
			Method: h.Method,
			Header: make([]postmanKV, 0, len(h.Headers)),
			URL:    postmanURL{Raw: rawURL(h)},
		}
		for _, hd := range h.Headers {
			req.Header = append(req.Header, postmanKV{Key: hd.Name, Value: hd.Value})
		}
		for _, q := range h.QueryParameters {
			req.URL.Query = append(req.URL.Query, postmanKV{Key: q.Name, Value: q.Value})
		}
		if h.Body != nil {
			body := &postmanRawBody{Mode: "raw", Raw: *h.Body}
			if json.Valid([]byte(*h.Body)) {
				body.Options = map[string]any{"raw": map[string]any{"language": "json"}}
			}
			req.Body = body
		}
		col.Item = append(col.Item, postmanItem{
			Name:    fmt.Sprintf("%d. %s", h.StepNumber, h.NodeName),
			Request: req,
		})
	}

	b, err := json.MarshalIndent(col, "", "  ")
	if err != nil {
		return nil, "", err
	}
	log.Printf("[postman] workflow=%q requests=%d", title, len(col.Item))
	return b, name, nil
}

// ConvertWorkflowToBruno converteert de HTTP stappen naar een Bruno collectie ZIP
// Retourneert de zip-bytes en een bestandsnaam zonder extensie.
func (s *CollectionService) ConvertWorkflowToBruno(doc []byte) ([]byte, string, error) {
	a, requests, err := s.httpSteps(doc)
	if err != nil {
		return nil, "", err
	}
	title, name := collectionName(a, "bruno-collection")

	meta, err := json.MarshalIndent(map[string]any{
		"version": "1",
		"name":    title,
		"type":    "collection",
		"ignore":  []string{"node_modules", ".git"},
	}, "", "  ")
	if err != nil {
		return nil, "", err
	}

	files := []zipEntry{{Name: "bruno.json", Data: meta}}
	for i, h := range requests {
		base := SanitizeFilename(h.NodeName)
		if base == "" {
			base = "request"
		}
		files = append(files, zipEntry{
			Name: fmt.Sprintf("%02d-%s.bru", i+1, base),
			Data: []byte(brunoRequest(h, i+1)),
		})
	}
	// bronbestand meeleveren voor referentie
	files = append(files, zipEntry{Name: "source/workflow" + GuessExt(doc), Data: doc})

	zipBytes, err := ZipFiles(files)
	if err != nil {
		return nil, "", err
	}
	log.Printf("[bruno] workflow=%q requests=%d", title, len(requests))
	return zipBytes, name, nil
}

// rawURL voegt de query parameters toe aan de URL
func rawURL(h workflow.HTTPConfig) string {
	if len(h.QueryParameters) == 0 {
		return h.URL
	}
	parts := make([]string, 0, len(h.QueryParameters))
	for _, q := range h.QueryParameters {
		parts = append(parts, url.QueryEscape(q.Name)+"="+url.QueryEscape(q.Value))
	}
	sep := "?"
	if strings.Contains(h.URL, "?") {
		sep = "&"
	}
	return h.URL + sep + strings.Join(parts, "&")
}

// brunoRequest rendert één .bru bestand
func brunoRequest(h workflow.HTTPConfig, seq int) string {
	var b strings.Builder
	b.WriteString("meta {\n")
	b.WriteString("  name: " + h.NodeName + "\n")
	b.WriteString("  type: http\n")
	b.WriteString(fmt.Sprintf("  seq: %d\n", seq))
	b.WriteString("}\n\n")

	bodyMode := "none"
	if h.Body != nil {
		bodyMode = "text"
		if json.Valid([]byte(*h.Body)) {
			bodyMode = "json"
		}
	}

	b.WriteString(strings.ToLower(h.Method) + " {\n")
	b.WriteString("  url: " + rawURL(h) + "\n")
	b.WriteString("  body: " + bodyMode + "\n")
	b.WriteString("  auth: none\n")
	b.WriteString("}\n")

	if len(h.QueryParameters) > 0 {
		b.WriteString("\nparams:query {\n")
		for _, q := range h.QueryParameters {
			b.WriteString("  " + q.Name + ": " + q.Value + "\n")
		}
		b.WriteString("}\n")
	}
	if len(h.Headers) > 0 {
		b.WriteString("\nheaders {\n")
		for _, hd := range h.Headers {
			b.WriteString("  " + hd.Name + ": " + hd.Value + "\n")
		}
		b.WriteString("}\n")
	}
	if h.Body != nil {
		b.WriteString("\nbody:" + bodyMode + " {\n")
		for _, line := range strings.Split(*h.Body, "\n") {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("}\n")
	}
	return b.String()
}
