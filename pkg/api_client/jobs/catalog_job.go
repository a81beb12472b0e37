package jobs

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/models"
	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/services"
	"github.com/robfig/cron/v3"
)

// DefaultRefreshSpec is used when CATALOG_REFRESH_SPEC is not set
const DefaultRefreshSpec = "@every 15m"

// ScheduleCatalogRefresh zet een cron job op die de opgegeven bronnen harvest.
// De job draait eenmaal direct en daarna volgens spec; hij stopt wanneer ctx afloopt.
func ScheduleCatalogRefresh(ctx context.Context, svc *services.CatalogService, sources []models.CatalogSource, spec string) (*cron.Cron, error) {
	if strings.TrimSpace(spec) == "" {
		spec = DefaultRefreshSpec
	}
	c := cron.New(cron.WithChain(
		cron.Recover(cron.DefaultLogger),
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	id, err := c.AddFunc(spec, func() { refresh(ctx, svc, sources) })
	if err != nil {
		return nil, err
	}

	c.Start()
	// eerste run niet laten wachten op het schema
	go c.Entry(id).WrappedJob.Run()
	go func() {
		<-ctx.Done()
		c.Stop()
	}()
	return c, nil
}

func refresh(ctx context.Context, svc *services.CatalogService, sources []models.CatalogSource) {
	jobCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()
	for _, src := range sources {
		if err := svc.RunOnce(jobCtx, src); err != nil {
			log.Printf("[catalog %s] failed: %v", src.Name, err)
		}
	}
}

// ParseSources zet een komma-gescheiden lijst index URLs om naar bronnen
func ParseSources(list string) []models.CatalogSource {
	var out []models.CatalogSource
	for _, raw := range strings.Split(list, ",") {
		u := strings.TrimSpace(raw)
		if u == "" {
			continue
		}
		out = append(out, models.CatalogSource{Name: sourceName(u), IndexURL: u})
	}
	return out
}

func sourceName(indexURL string) string {
	s := strings.TrimPrefix(strings.TrimPrefix(indexURL, "https://"), "http://")
	if i := strings.IndexByte(s, '/'); i > 0 {
		s = s[:i]
	}
	return s
}

// ScheduleCatalogFromEnv bouwt de bronnen uit CATALOG_INDEX_URLS en plant de harvest.
// Zonder bronnen wordt er niets gepland en is de teruggegeven cron nil.
func ScheduleCatalogFromEnv(ctx context.Context, svc *services.CatalogService) (*cron.Cron, error) {
	sources := ParseSources(os.Getenv("CATALOG_INDEX_URLS"))
	if len(sources) == 0 {
		log.Println("[catalog] geen CATALOG_INDEX_URLS, harvest uitgeschakeld")
		return nil, nil
	}
	return ScheduleCatalogRefresh(ctx, svc, sources, os.Getenv("CATALOG_REFRESH_SPEC"))
}
