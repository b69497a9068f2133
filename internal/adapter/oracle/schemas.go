package oracle

import "github.com/santhosh-tekuri/jsonschema/v5"

// Reply schemas, compiled once. Required fields are the ones the engine
// reads unconditionally; everything else may be omitted, and unknown extras
// are tolerated rather than failing the whole reply.

var decisionSchema = jsonschema.MustCompileString("decision.schema.json", `{
  "type": "object",
  "required": ["intent"],
  "properties": {
    "intent": {
      "enum": ["bond-request", "bond-accept", "raid", "spawn", "request-grant", "message", "idle"]
    },
    "target_id": { "type": "string" },
    "content": { "type": "string" },
    "reasoning": { "type": "string" }
  }
}`)

var grantsSchema = jsonschema.MustCompileString("grants.schema.json", `{
  "type": "object",
  "required": ["grants"],
  "properties": {
    "grants": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["agent_id", "amount"],
        "properties": {
          "agent_id": { "type": "string", "minLength": 1 },
          "amount": { "type": "integer" },
          "reasoning": { "type": "string" }
        }
      }
    }
  }
}`)

var characterSchema = jsonschema.MustCompileString("character.schema.json", `{
  "type": "object",
  "required": ["name", "species"],
  "properties": {
    "name": { "type": "string", "minLength": 1 },
    "species": { "type": "string", "minLength": 1 },
    "personality": { "type": "array", "items": { "type": "string" } },
    "backstory": { "type": "string" }
  }
}`)

var missionSchema = jsonschema.MustCompileString("mission.schema.json", `{
  "type": "object",
  "required": ["title", "goal"],
  "properties": {
    "title": { "type": "string", "minLength": 1 },
    "description": { "type": "string" },
    "goal": { "type": "string", "minLength": 1 },
    "tasks": { "type": "object", "additionalProperties": { "type": "string" } }
  }
}`)

var progressSchema = jsonschema.MustCompileString("progress.schema.json", `{
  "type": "object",
  "required": ["is_complete", "summary"],
  "properties": {
    "is_complete": { "type": "boolean" },
    "summary": { "type": "string" },
    "tasks": { "type": "object", "additionalProperties": { "type": "string" } }
  }
}`)

var narrativeSchema = jsonschema.MustCompileString("narrative.schema.json", `{
  "type": "object",
  "required": ["narrative"],
  "properties": {
    "narrative": { "type": "string", "minLength": 1 }
  }
}`)
