package services

// leadFlow mixes every category, a sticky note and a disconnected node.
const leadFlow = `{
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

// triggeredLoopFlow has a trigger whose target sits in a cycle, so neither cycle node is ever reached.
const triggeredLoopFlow = `{
  "name": "Triggered loop",
  "nodes": [
    {"id": "s", "name": "Start", "type": "n8n-nodes-base.manualTrigger", "position": [0, 0]},
    {"id": "a", "name": "A", "type": "n8n-nodes-base.set", "position": [200, 0]},
    {"id": "b", "name": "B", "type": "n8n-nodes-base.set", "position": [400, 0]}
  ],
  "connections": {
    "Start": {"main": [[{"node": "A"}]]},
    "A": {"main": [[{"node": "B"}]]},
    "B": {"main": [[{"node": "A"}]]}
  }
}`

// loopFlow is a two node cycle without a trigger.
const loopFlow = `{
  "name": "Loop",
  "nodes": [
    {"id": "b", "name": "B", "type": "n8n-nodes-base.set", "position": [300, 100]},
    {"id": "a", "name": "A", "type": "n8n-nodes-base.set", "position": [100, 100]}
  ],
  "connections": {
    "A": {"main": [[{"node": "B"}]]},
    "B": {"main": [[{"node": "A"}]]}
  }
}`

// agentFlow wires a chat model into an agent through a non-main port.
const agentFlow = `
name: Support bot
nodes:
  - id: "1"
    name: Chat Trigger
    type: "@n8n/n8n-nodes-langchain.chatTrigger"
    position: [0, 0]
  - id: "2"
    name: Agent
    type: "@n8n/n8n-nodes-langchain.agent"
    position: [200, 0]
  - id: "3"
    name: Model
    type: "@n8n/n8n-nodes-langchain.lmChatOpenAi"
    parameters:
      model: gpt-4o
    position: [200, 200]
connections:
  Chat Trigger:
    main:
      - - node: Agent
  Model:
    ai_languageModel:
      - - node: Agent
          type: ai_languageModel
`
