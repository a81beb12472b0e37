package api_client

import (
	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/handler"
	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/helper/problem"
	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/wI2L/fizz"
	"github.com/wI2L/fizz/openapi"
	"golang.org/x/time/rate"
)

var (
	apiVersionHeader = fizz.Header(
		"API-Version",
		"De API-versie van de response",
		"",
	)

	badRequestResponse = fizz.Response(
		"400",
		"Bad Request",
		problem.APIError{},
		nil,
		nil,
	)

	notFoundResponse = fizz.Response(
		"404",
		"Not Found",
		nil,
		nil,
		nil,
	)

	tooManyRequestsResponse = fizz.Response(
		"429",
		"Too Many Requests",
		problem.APIError{},
		nil,
		nil,
	)
)

func NewRouter(apiVersion string, controller *handler.WorkflowController, gatherer prometheus.Gatherer, limiter *rate.Limiter) *fizz.Fizz {
	//gin.SetMode(gin.ReleaseMode)
	g := gin.Default()
	tonic.SetErrorHook(problem.ErrorHook)

	// Configure CORS to allow access from everywhere
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "HEAD", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "API-Version"}
	config.ExposeHeaders = []string{"API-Version", "Content-Disposition"}
	g.Use(cors.New(config))

	g.Use(APIVersionMiddleware(apiVersion))
	if gatherer != nil {
		g.GET("/metrics", gin.WrapH(metrics.Handler(gatherer)))
	}
	f := fizz.NewFromEngine(g)

	f.Generator().SetServers([]*openapi.Server{
		{
			URL:         "https://api.developer.overheid.nl/workflows/v1",
			Description: "Production",
		},
		{
			URL:         "https://api-register.don.apps.digilab.network/workflows/v1",
			Description: "Test",
		},
	})

	gen := f.Generator()

	gen.API().Components.Responses["404"] = &openapi.ResponseOrRef{
		Reference: &openapi.Reference{
			Ref: "https://static.developer.overheid.nl/adr/components.yaml#/responses/404",
		},
	}

	gen.API().Components.Headers["API-Version"] = &openapi.HeaderOrRef{
		Header: &openapi.Header{
			Description: "De API-versie van de response",
			Schema: &openapi.SchemaOrRef{
				Schema: &openapi.Schema{
					Type:    "string",
					Example: "1.0.0",
				},
			},
		},
	}

	info := &openapi.Info{
		Title:       "Workflows API v1",
		Description: "Analyse, visualisatie en export van automatiseringsworkflows (n8n)",
		Version:     apiVersion,
		Contact: &openapi.Contact{
			Name:  "Team developer.overheid.nl",
			Email: "developer.overheid@geonovum.nl",
			URL:   "https://github.com/developer-overheid-nl/don-workflows-api/issues",
		},
	}

	root := f.Group("/v1", "API v1", "Workflows API V1 routes")
	if limiter != nil {
		root.Use(RateLimitMiddleware(limiter))
	}

	// Analyse, visualisatie, lint & export
	workflows := root.Group("/workflows", "Workflows", "Analyse en export van workflows")

	bodyHint := " Body: { workflowUrl } of { workflowBody } (stringified JSON of YAML) of { workflow } (object), of het workflow document zelf."

	// POST /v1/workflows/analyze
	workflows.POST("/analyze",
		[]fizz.OperationOption{
			fizz.ID("analyzeWorkflow"),
			fizz.Summary("Analyseer workflow (POST)"),
			fizz.Description("Bepaalt de uitvoervolgorde en categoriseert de stappen (AI, HTTP, code, overig)." + bodyHint),
			apiVersionHeader,
			badRequestResponse,
			tooManyRequestsResponse,
		},
		tonic.Handler(controller.AnalyzeWorkflow, 200),
	)

	// POST /v1/workflows/visualize
	workflows.POST("/visualize",
		[]fizz.OperationOption{
			fizz.ID("visualizeWorkflow"),
			fizz.Summary("Visualiseer workflow (POST)"),
			fizz.Description("Converteert een workflow naar Markdown en Mermaid. output is optioneel en kan 'markdown', 'mermaid' of 'both' zijn." + bodyHint),
			apiVersionHeader,
			badRequestResponse,
			tooManyRequestsResponse,
		},
		tonic.Handler(controller.VisualizeWorkflow, 200),
	)

	// POST /v1/workflows/lint
	workflows.POST("/lint",
		[]fizz.OperationOption{
			fizz.ID("lintWorkflow"),
			fizz.Summary("Lint workflow (POST)"),
			fizz.Description("Controleert de workflow op triggers, losse nodes, cycli en ontbrekende configuratie." + bodyHint),
			apiVersionHeader,
			badRequestResponse,
			tooManyRequestsResponse,
		},
		tonic.Handler(controller.LintWorkflow, 200),
	)

	// POST /v1/workflows/postman
	workflows.POST("/postman",
		[]fizz.OperationOption{
			fizz.ID("createPostmanCollection"),
			fizz.Summary("Maak Postman-collectie (POST)"),
			fizz.Description("Zet de HTTP stappen van een workflow om naar Postman Collection JSON (v2.1)." + bodyHint),
			apiVersionHeader,
			badRequestResponse,
			notFoundResponse,
			tooManyRequestsResponse,
		},
		tonic.Handler(controller.ExportPostman, 200),
	)

	// POST /v1/workflows/bruno
	workflows.POST("/bruno",
		[]fizz.OperationOption{
			fizz.ID("createBrunoCollection"),
			fizz.Summary("Maak Bruno-collectie (POST)"),
			fizz.Description("Zet de HTTP stappen van een workflow om naar een Bruno collectie ZIP." + bodyHint),
			apiVersionHeader,
			badRequestResponse,
			notFoundResponse,
			tooManyRequestsResponse,
		},
		tonic.Handler(controller.ExportBruno, 200),
	)

	// GET /v1/catalog
	catalog := root.Group("/catalog", "Catalogus", "Periodiek geharveste workflows")
	catalog.GET("",
		[]fizz.OperationOption{
			fizz.ID("listCatalog"),
			fizz.Summary("Lijst van geharveste workflows"),
			apiVersionHeader,
			tooManyRequestsResponse,
		},
		tonic.Handler(controller.ListCatalog, 200),
	)

	// OpenAPI documentatie
	f.GET("/v1/openapi.json", []fizz.OperationOption{}, f.OpenAPI(info, "json"))

	return f
}

// RateLimitMiddleware weigert requests met 429 zodra de limiter geen tokens meer heeft
func RateLimitMiddleware(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			apiErr := problem.NewTooManyRequests("Te veel verzoeken, probeer het later opnieuw")
			c.Header("Content-Type", "application/problem+json")
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(apiErr.Status, apiErr)
			return
		}
		c.Next()
	}
}

type apiVersionWriter struct {
	gin.ResponseWriter
	version string
}

func (w *apiVersionWriter) WriteHeader(code int) {
	if code >= 200 && code < 300 {
		w.Header().Set("API-Version", w.version)
	}
	w.ResponseWriter.WriteHeader(code)
}

func APIVersionMiddleware(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &apiVersionWriter{c.Writer, version}
		c.Next()
	}
}
