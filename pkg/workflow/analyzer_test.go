package workflow

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_ScenarioA(t *testing.T) {
	a := Analyze(scenarioA)
	require.False(t, a.HasError)

	var names []string
	var categories []Category
	var numbers []int
	for _, s := range a.Steps {
		names = append(names, s.Name)
		categories = append(categories, s.Category)
		numbers = append(numbers, s.StepNumber)
	}
	assert.Equal(t, []string{"Trigger", "CodeNode", "HttpNode"}, names)
	assert.Equal(t, []Category{CategoryGeneric, CategoryCode, CategoryHTTP}, categories)
	assert.Equal(t, []int{1, 2, 3}, numbers)

	require.Len(t, a.Code, 1)
	assert.Equal(t, 2, a.Code[0].StepNumber)
	require.Len(t, a.HTTP, 1)
	assert.Equal(t, "HttpNode", a.HTTP[0].NodeName)
	assert.Empty(t, a.AI)

	assert.Equal(t, Summary{TotalSteps: 3, HTTPSteps: 1, CodeSteps: 1, GenericSteps: 1, Triggers: 1}, a.Summary)
}

func TestAnalyze_Marketplace(t *testing.T) {
	a := Analyze(marketplaceFlow)
	require.False(t, a.HasError, a.Error)

	assert.Equal(t, "Lead enrichment", a.Name)
	assert.Equal(t, []string{"sales", "ai"}, a.Tags)
	require.Len(t, a.Steps, 6)
	assert.Equal(t, "Webhook", a.Steps[0].Name)
	assert.Equal(t, "Orphan", a.Steps[5].Name)
	assert.True(t, a.Steps[5].IsDisconnected)

	require.Len(t, a.AI, 1)
	assert.Equal(t, "OpenAI", a.AI[0].Provider)
	assert.Equal(t, strPtr("gpt-4o-mini"), a.AI[0].Model)

	// webhook trigger and the request node are both HTTP
	require.Len(t, a.HTTP, 2)
	assert.Equal(t, "POST", a.HTTP[0].Method)
	assert.Equal(t, "lead", a.HTTP[0].URL)
	assert.Equal(t, []Header{{"Authorization", "Bearer token"}}, a.HTTP[1].Headers)
	assert.Contains(t, a.HTTP[1].CurlCommand, "-d ")

	require.Len(t, a.Code, 1)
	assert.Equal(t, []string{"score"}, a.Code[0].FunctionNames)

	assert.Equal(t, Summary{
		TotalSteps: 6, AISteps: 1, HTTPSteps: 2, CodeSteps: 1, GenericSteps: 2,
		Triggers: 1, Disconnected: 1,
	}, a.Summary)
	assert.Len(t, a.Edges, 4)
	assert.False(t, a.Truncated)
}

func TestAnalyze_NoDoubleCounting(t *testing.T) {
	a := Analyze(marketplaceFlow)
	ids := map[string]int{}
	for _, c := range a.AI {
		ids[c.NodeID]++
	}
	for _, c := range a.HTTP {
		ids[c.NodeID]++
	}
	for _, c := range a.Code {
		ids[c.NodeID]++
	}
	for id, n := range ids {
		assert.Equal(t, 1, n, id)
	}
	for _, s := range a.Steps {
		if s.Category == CategoryGeneric {
			assert.NotContains(t, ids, s.ID)
		}
	}
	assert.Equal(t, a.Summary.TotalSteps,
		a.Summary.AISteps+a.Summary.HTTPSteps+a.Summary.CodeSteps+a.Summary.GenericSteps)
}

func TestAnalyze_StructuralErrorIsRenderable(t *testing.T) {
	a := Analyze(`{"name": "broken"}`)
	assert.True(t, a.HasError)
	assert.Contains(t, a.Error, "nodes")

	b, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{
	  "hasError": true,
	  "error": "workflow document has no nodes array",
	  "steps": [], "ai": [], "http": [], "code": [], "edges": [],
	  "summary": {"totalSteps": 0, "aiSteps": 0, "httpSteps": 0, "codeSteps": 0, "genericSteps": 0, "triggers": 0, "disconnected": 0},
	  "truncated": false
	}`, string(b))
}

func TestAnalyze_CustomClassifier(t *testing.T) {
	c, err := NewClassifier(Rule{Category: CategoryCode, Patterns: []string{"set"}})
	require.NoError(t, err)

	a := New(WithClassifier(c)).Analyze(marketplaceFlow)
	require.Len(t, a.Code, 1)
	assert.Equal(t, "Set Fields", a.Code[0].NodeName)
	assert.Empty(t, a.HTTP)
	assert.Same(t, c, New(WithClassifier(c)).Classifier())
	assert.NotNil(t, New(WithClassifier(nil)).Classifier())
}

func TestAnalyze_ConcurrentRunsAgree(t *testing.T) {
	want := Analyze(marketplaceFlow)
	analyzer := New()

	var wg sync.WaitGroup
	results := make([]*Analysis, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = analyzer.Analyze(marketplaceFlow)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("concurrent analysis differs (-want +got):\n%s", diff)
		}
	}
}

func TestAggregate_UnknownConfigIsGeneric(t *testing.T) {
	a := Aggregate([]Record{
		{Step: OrderedStep{Node: Node{ID: "1"}, StepNumber: 1}, Category: CategoryAI},
		{Step: OrderedStep{Node: Node{ID: "2"}, StepNumber: 2, IsDisconnected: true}, Category: CategoryHTTP, Config: HTTPConfig{}},
	})
	assert.Equal(t, CategoryGeneric, a.Steps[0].Category)
	assert.Equal(t, CategoryHTTP, a.Steps[1].Category)
	assert.Equal(t, 1, a.Summary.GenericSteps)
	assert.Equal(t, 1, a.Summary.Disconnected)
}
