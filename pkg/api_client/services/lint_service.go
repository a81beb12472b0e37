package services

import (
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/developer-overheid-nl/don-workflows-api/pkg/api_client/models"
	"github.com/developer-overheid-nl/don-workflows-api/pkg/workflow"
	"github.com/google/uuid"
)

const (
	severityError   = "error"
	severityWarning = "warning"
)

// finding is één overtreding van een lintregel
type finding struct {
	message string
	path    string
}

// lintInput bundelt wat de regels nodig hebben
type lintInput struct {
	graph    *workflow.Graph
	analysis *workflow.Analysis
}

type lintRule struct {
	code     string
	severity string
	check    func(in lintInput) []finding
}

// measuredRules zijn de regels die meetellen voor de workflow score
var measuredRules = []lintRule{
	{"has-trigger", severityError, checkHasTrigger},
	{"no-disconnected-nodes", severityWarning, checkDisconnected},
	{"no-cycles", severityWarning, checkCycles},
	{"traversal-complete", severityError, checkTraversal},
	{"http-url-present", severityError, checkHTTPURL},
	{"ai-model-present", severityWarning, checkAIModel},
	{"code-not-empty", severityWarning, checkCodeSource},
}

// LintService controleert workflows op structuur en configuratie
type LintService struct {
	analyzer *workflow.Analyzer
}

func NewLintService(analyzer *workflow.Analyzer) *LintService {
	if analyzer == nil {
		analyzer = workflow.New()
	}
	return &LintService{analyzer: analyzer}
}

// Lint lint een workflow document en geeft een LintResult incl. score terug
func (s *LintService) Lint(doc []byte) (*models.LintResult, error) {
	if strings.TrimSpace(string(doc)) == "" {
		return nil, ErrEmptyWorkflow
	}
	now := time.Now()

	res := workflow.Ingest(doc)
	if res.HasError {
		msgID := uuid.New().String()
		detail := ErrInvalidWorkflow.Error()
		if res.Err != nil {
			detail = res.Err.Error()
		}
		log.Printf("[lint] structural error: %s", detail)
		return &models.LintResult{
			ID:        uuid.New().String(),
			Successes: false,
			Failures:  1,
			Score:     0,
			Messages: []models.LintMessage{{
				ID:        msgID,
				Code:      "workflow-structure",
				Severity:  severityError,
				CreatedAt: now,
				Infos: []models.LintMessageInfo{{
					ID:            uuid.New().String(),
					LintMessageID: msgID,
					Message:       detail,
					Path:          "$",
				}},
			}},
			CreatedAt: now,
		}, nil
	}

	in := lintInput{graph: res.Graph, analysis: s.analyzer.AnalyzeGraph(res.Graph)}
	msgs := []models.LintMessage{}
	for _, rule := range measuredRules {
		found := rule.check(in)
		if len(found) == 0 {
			continue
		}
		msgID := uuid.New().String()
		msg := models.LintMessage{
			ID:        msgID,
			Code:      rule.code,
			Severity:  rule.severity,
			CreatedAt: now,
		}
		for _, f := range found {
			msg.Infos = append(msg.Infos, models.LintMessageInfo{
				ID:            uuid.New().String(),
				LintMessageID: msgID,
				Message:       f.message,
				Path:          f.path,
			})
		}
		msgs = append(msgs, msg)
	}

	var errCount, warnCount int
	for _, m := range msgs {
		switch m.Severity {
		case severityError:
			errCount++
		case severityWarning:
			warnCount++
		}
	}
	score, failed := ComputeWorkflowScore(msgs)
	log.Printf("[lint] workflow=%q messages=%d errors=%d warnings=%d score=%d", res.Graph.Name, len(msgs), errCount, warnCount, score)

	return &models.LintResult{
		ID:           uuid.New().String(),
		WorkflowName: res.Graph.Name,
		Successes:    score == 100,
		Failures:     errCount,
		Warnings:     warnCount,
		Score:        score,
		FailedRules:  failed,
		Messages:     msgs,
		CreatedAt:    now,
	}, nil
}

// ComputeWorkflowScore berekent de score en retourneert ook de gefaalde regels
func ComputeWorkflowScore(msgs []models.LintMessage) (score int, failed []string) {
	known := make(map[string]struct{}, len(measuredRules))
	for _, r := range measuredRules {
		known[r.code] = struct{}{}
	}
	failedSet := map[string]struct{}{}
	for _, m := range msgs {
		if _, ok := known[m.Code]; ok {
			failedSet[m.Code] = struct{}{}
		}
	}
	for k := range failedSet {
		failed = append(failed, k)
	}
	sort.Strings(failed)

	total := len(measuredRules)
	if total == 0 {
		return 100, failed
	}
	score = int(math.Round((1 - float64(len(failed))/float64(total)) * 100))
	return score, failed
}

func nodePath(name string) string { return "nodes." + name }

func checkHasTrigger(in lintInput) []finding {
	if len(in.analysis.Steps) == 0 || in.analysis.Summary.Triggers > 0 {
		return nil
	}
	return []finding{{message: "Workflow heeft geen trigger node", path: "nodes"}}
}

func checkDisconnected(in lintInput) []finding {
	var out []finding
	for _, s := range in.analysis.Steps {
		if s.IsDisconnected {
			out = append(out, finding{message: "Node '" + s.Name + "' is niet bereikbaar vanaf een startpunt", path: nodePath(s.Name)})
		}
	}
	return out
}

func checkCycles(in lintInput) []finding {
	var out []finding
	for _, cycle := range workflow.FindCycles(in.graph) {
		out = append(out, finding{
			message: "Cyclus tussen nodes: " + strings.Join(cycle, " → "),
			path:    nodePath(cycle[0]),
		})
	}
	return out
}

// checkTraversal meldt nodes met een inkomende verbinding die de volgorde toch nooit bereikt,
// omdat een voorganger in een cyclus of een onbereikbare tak blijft hangen.
func checkTraversal(in lintInput) []finding {
	var out []finding
	if in.analysis.Truncated {
		out = append(out, finding{message: "Volgorde bepalen is afgebroken na het maximale aantal iteraties", path: "connections"})
	}
	incoming := map[string]struct{}{}
	for _, e := range in.graph.Edges() {
		incoming[e.To] = struct{}{}
	}
	for _, s := range in.analysis.Steps {
		if !s.IsDisconnected {
			continue
		}
		if _, ok := incoming[s.Name]; ok {
			out = append(out, finding{message: "Node '" + s.Name + "' heeft invoer maar wordt nooit bereikt", path: nodePath(s.Name)})
		}
	}
	return out
}

func checkHTTPURL(in lintInput) []finding {
	var out []finding
	for _, h := range in.analysis.HTTP {
		if h.URL == workflow.NoURL {
			out = append(out, finding{message: "HTTP node '" + h.NodeName + "' heeft geen URL", path: nodePath(h.NodeName) + ".parameters.url"})
		}
	}
	return out
}

func checkAIModel(in lintInput) []finding {
	var out []finding
	for _, c := range in.analysis.AI {
		if c.Model == nil {
			out = append(out, finding{message: "AI node '" + c.NodeName + "' heeft geen model", path: nodePath(c.NodeName) + ".parameters.model"})
		}
	}
	return out
}

func checkCodeSource(in lintInput) []finding {
	var out []finding
	for _, c := range in.analysis.Code {
		if c.Source == nil {
			out = append(out, finding{message: "Code node '" + c.NodeName + "' bevat geen code", path: nodePath(c.NodeName) + ".parameters"})
		}
	}
	return out
}
