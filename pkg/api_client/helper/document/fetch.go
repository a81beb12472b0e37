package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/models"
)

// ErrFetch wordt teruggegeven wanneer een workflow niet via de URL opgehaald kan worden.
var ErrFetch = errors.New("kon workflow niet ophalen")

// maxDocumentSize begrenst documenten die via een URL opgehaald worden.
const maxDocumentSize = 10 << 20

// FromInput levert de ruwe document bytes uit de envelope:
// URL heeft voorrang, daarna workflowBody (JSON of YAML), daarna het inline workflow object.
func FromInput(ctx context.Context, in *models.WorkflowInput) ([]byte, error) {
	if in == nil {
		return nil, nil
	}
	// 1) Voorkeur: URL ophalen als opgegeven
	if u := strings.TrimSpace(in.WorkflowUrl); u != "" {
		return FetchURL(ctx, u)
	}
	// 2) Fallback: body-string
	if s := strings.TrimSpace(in.WorkflowBody); s != "" {
		return []byte(s), nil
	}
	// 3) Inline document
	raw := strings.TrimSpace(string(in.Workflow))
	if raw == "" || raw == "null" {
		return nil, nil
	}
	return []byte(raw), nil
}

// FetchURL haalt de inhoud op van een URL met een korte timeout
func FetchURL(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.8")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: HTTP %d bij ophalen van URL", ErrFetch, resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return b, nil
}
