package workflow

// scenarioA is a manual trigger feeding a code node feeding an HTTP request.
const scenarioA = `{
  "name": "Scenario A",
  "nodes": [
    {"id": "1", "name": "Trigger", "type": "n8n-nodes-base.manualTrigger", "parameters": {}, "position": [0, 0]},
    {"id": "2", "name": "CodeNode", "type": "code", "parameters": {"jsCode": "return items;"}, "position": [200, 0]},
    {"id": "3", "name": "HttpNode", "type": "httpRequest", "parameters": {"url": "https://example.com"}, "position": [400, 0]}
  ],
  "connections": {
    "Trigger": {"main": [[{"node": "CodeNode", "type": "main", "index": 0}]]},
    "CodeNode": {"main": [[{"node": "HttpNode", "type": "main", "index": 0}]]}
  }
}`

// scenarioB is a two node cycle without trigger or root.
const scenarioB = `{
  "nodes": [
    {"id": "b", "name": "B", "type": "n8n-nodes-base.set", "parameters": {}, "position": [300, 100]},
    {"id": "a", "name": "A", "type": "n8n-nodes-base.set", "parameters": {}, "position": [100, 100]}
  ],
  "connections": {
    "A": {"main": [[{"node": "B", "type": "main", "index": 0}]]},
    "B": {"main": [[{"node": "A", "type": "main", "index": 0}]]}
  }
}`

// marketplaceFlow mixes every category, a sticky note and a disconnected node.
const marketplaceFlow = `{
  "name": "Lead enrichment",
  "tags": [{"id": "t1", "name": "sales"}, "ai"],
  "nodes": [
    {"id": "n0", "name": "Note", "type": "n8n-nodes-base.stickyNote", "parameters": {"content": "readme"}, "position": [-200, -200]},
    {"id": "n1", "name": "Webhook", "type": "n8n-nodes-base.webhook", "parameters": {"path": "lead", "httpMethod": "POST"}, "position": [0, 0]},
    {"id": "n2", "name": "Summarize", "type": "@n8n/n8n-nodes-langchain.openAi", "parameters": {
      "modelId": {"__rl": true, "value": "gpt-4o-mini", "mode": "list"},
      "messages": {"values": [
        {"role": "system", "content": "You are a sales assistant."},
        {"content": "Summarize {{ $json.company }}"}
      ]},
      "options": {"temperature": 0.2}
    }, "position": [200, 0]},
    {"id": "n3", "name": "Score", "type": "n8n-nodes-base.code", "parameters": {"jsCode": "const score = items.length;\nreturn [{json: {score}}];"}, "position": [400, 0]},
    {"id": "n4", "name": "Push CRM", "type": "n8n-nodes-base.httpRequest", "parameters": {
      "method": "POST",
      "url": "https://crm.example.com/leads",
      "headerParameters": {"parameters": [{"name": "Authorization", "value": "Bearer token"}]},
      "jsonBody": "{\"score\": 1}"
    }, "position": [600, 0]},
    {"id": "n5", "name": "Set Fields", "type": "n8n-nodes-base.set", "parameters": {}, "position": [800, 0]},
    {"id": "n6", "name": "Orphan", "type": "n8n-nodes-base.noOp", "parameters": {}, "position": [0, 400]}
  ],
  "connections": {
    "Webhook": {"main": [[{"node": "Summarize", "type": "main", "index": 0}]]},
    "Summarize": {"main": [[{"node": "Score", "type": "main", "index": 0}]]},
    "Score": {"main": [[{"node": "Push CRM", "type": "main", "index": 0}]]},
    "Push CRM": {"main": [[{"node": "Set Fields", "type": "main", "index": 0}]]}
  }
}`

func stepNames(steps []OrderedStep) []string {
	names := make([]string, 0, len(steps))
	for _, s := range steps {
		names = append(names, s.Name)
	}
	return names
}

func mustGraph(doc string) *Graph {
	res := Ingest(doc)
	if res.HasError {
		panic(res.Err)
	}
	return res.Graph
}

func strPtr(s string) *string { return &s }
