package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/helper/document"
	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/helper/problem"
	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/models"
	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/services"
	"github.com/developer-overheid-nl/don-workflows-api/pkg/workflow"
	"github.com/gin-gonic/gin"
)

type WorkflowController struct {
	Workflows   *services.WorkflowService
	Linter      *services.LintService
	Collections *services.CollectionService
	Catalog     *services.CatalogStore
}

func NewWorkflowController(workflows *services.WorkflowService, linter *services.LintService, collections *services.CollectionService, catalog *services.CatalogStore) *WorkflowController {
	return &WorkflowController{Workflows: workflows, Linter: linter, Collections: collections, Catalog: catalog}
}

// loadDocument haalt het workflow document uit de request body
func loadDocument(ctx context.Context, body *models.WorkflowInput) ([]byte, error) {
	if body == nil || !body.HasContent() {
		return nil, problem.NewBadRequest("", "Body moet workflowUrl, workflowBody of workflow bevatten",
			problem.InvalidParam{Name: "workflow", Reason: "ontbreekt"})
	}
	content, err := document.FromInput(ctx, body)
	if err != nil {
		return nil, problem.NewBadRequest(body.WorkflowUrl, "Kon workflow laden vanaf URL",
			problem.InvalidParam{Name: "workflowUrl", Reason: err.Error()})
	}
	if len(content) == 0 {
		return nil, problem.NewBadRequest("", "Leeg workflow document")
	}
	return content, nil
}

// toProblem vertaalt service fouten naar problem details
func toProblem(err error) error {
	switch {
	case errors.Is(err, services.ErrEmptyWorkflow):
		return problem.NewBadRequest("", "Leeg workflow document")
	case errors.Is(err, services.ErrInvalidWorkflow):
		return problem.NewBadRequest("", err.Error(), problem.InvalidParam{Name: "workflow", Reason: "ongeldige structuur"})
	case errors.Is(err, services.ErrNoHTTPSteps):
		return problem.NewNotFound("", "Workflow bevat geen HTTP stappen om te exporteren")
	default:
		return problem.NewInternalServerError(err.Error())
	}
}

/* ------------------------- ANALYZE ------------------------- */

// POST /v1/workflows/analyze
func (wc *WorkflowController) AnalyzeWorkflow(c *gin.Context, body *models.WorkflowInput) (*workflow.Analysis, error) {
	content, err := loadDocument(c.Request.Context(), body)
	if err != nil {
		return nil, err
	}
	res, err := wc.Workflows.Analyze(content)
	if err != nil {
		return nil, toProblem(err)
	}
	return res, nil
}

/* ------------------------- VISUALIZE ------------------------- */

// POST /v1/workflows/visualize
func (wc *WorkflowController) VisualizeWorkflow(c *gin.Context, body *models.WorkflowVisualizeInput) (*models.WorkflowVisualization, error) {
	if body == nil {
		return nil, problem.NewBadRequest("", "Body ontbreekt")
	}
	content, err := loadDocument(c.Request.Context(), &body.WorkflowInput)
	if err != nil {
		return nil, err
	}
	markdown, mermaid, err := wc.Workflows.Visualize(content)
	if err != nil {
		return nil, toProblem(err)
	}

	out := &models.WorkflowVisualization{}
	switch body.Output {
	case "markdown":
		out.Markdown = markdown
	case "mermaid":
		out.Mermaid = mermaid
	case "", "both":
		out.Markdown = markdown
		out.Mermaid = mermaid
	default:
		return nil, problem.NewBadRequest("", "Ongeldige output", problem.InvalidParam{Name: "output", Reason: "markdown, mermaid of both"})
	}
	return out, nil
}

/* ------------------------- LINT ------------------------- */

// POST /v1/workflows/lint
func (wc *WorkflowController) LintWorkflow(c *gin.Context, body *models.WorkflowInput) (*models.LintResult, error) {
	content, err := loadDocument(c.Request.Context(), body)
	if err != nil {
		return nil, err
	}
	res, err := wc.Linter.Lint(content)
	if err != nil {
		return nil, toProblem(err)
	}
	return res, nil
}

/* ------------------------- POSTMAN ------------------------- */

// POST /v1/workflows/postman
func (wc *WorkflowController) ExportPostman(c *gin.Context, body *models.WorkflowInput) error {
	content, err := loadDocument(c.Request.Context(), body)
	if err != nil {
		return err
	}
	jsonBytes, name, err := wc.Collections.ConvertWorkflowToPostman(content)
	if err != nil {
		return toProblem(err)
	}

	c.Header("Content-Disposition", "attachment; filename=\""+name+".json\"")
	c.Data(http.StatusOK, "application/json", jsonBytes)
	return nil
}

/* ------------------------- BRUNO ------------------------- */

// POST /v1/workflows/bruno
func (wc *WorkflowController) ExportBruno(c *gin.Context, body *models.WorkflowInput) error {
	content, err := loadDocument(c.Request.Context(), body)
	if err != nil {
		return err
	}
	zipBytes, name, err := wc.Collections.ConvertWorkflowToBruno(content)
	if err != nil {
		return toProblem(err)
	}

	c.Header("Content-Disposition", "attachment; filename=\""+name+".zip\"")
	c.Data(http.StatusOK, "application/zip", zipBytes)
	return nil
}

/* ------------------------- CATALOG ------------------------- */

// GET /v1/catalog
func (wc *WorkflowController) ListCatalog(c *gin.Context) ([]models.CatalogEntry, error) {
	if wc.Catalog == nil {
		return []models.CatalogEntry{}, nil
	}
	return wc.Catalog.List(), nil
}
