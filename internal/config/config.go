package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port"`
}

type Neo4jConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type PromptsConfig struct {
	Extraction string `toml:"extraction"`
	Chat       string `toml:"chat"`
}

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Neo4j   Neo4jConfig   `toml:"neo4j"`
	LLM     LLMConfig     `toml:"llm"`
	Prompts PromptsConfig `toml:"prompts"`
}

// DefaultExtractionPrompt takes the cleaned document text.
const DefaultExtractionPrompt = `You are a knowledge graph extraction engine.
Read the text below and extract the entities it mentions and the relationships between them.

Respond with ONLY a JSON object of this exact shape:
{
  "nodes": [{"id": "short_stable_id", "label": "Human Readable Name", "properties": {"key": "value"}}],
  "edges": [{"source_id": "id", "target_id": "id", "relationship_type": "VERB_PHRASE"}]
}

Rules:
- Every node id must be unique, lowercase, and stable for the same real-world entity.
- Every edge must reference node ids that appear in "nodes".
- Keep relationship types short, e.g. WORKS_AT, MANAGES, LOCATED_IN.

Text:
%s`

// DefaultChatPrompt takes the serialized graph context and the question.
const DefaultChatPrompt = `You are answering questions about a knowledge graph.
Only use the information in the graph context below. If the graph does not contain
the answer, say so and set confidence to LOW.

Graph context:
%s

Question: %s

Respond with ONLY a JSON object of this exact shape:
{
  "answer": "your answer",
  "confidence": "HIGH|MEDIUM|LOW",
  "relevant_node_ids": ["ids of the nodes that support the answer"],
  "suggested_queries": ["up to three follow-up questions"]
}`

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.fillDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.fillDefaults()
	return cfg
}

func (c *Config) fillDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Neo4j.URI == "" {
		c.Neo4j.URI = "bolt://localhost:7687"
	}
	if c.Neo4j.User == "" {
		c.Neo4j.User = "neo4j"
	}
	if c.Neo4j.Password == "" {
		c.Neo4j.Password = "password"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "gemini"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.0-flash"
	}
	if c.Prompts.Extraction == "" {
		c.Prompts.Extraction = DefaultExtractionPrompt
	}
	if c.Prompts.Chat == "" {
		c.Prompts.Chat = DefaultChatPrompt
	}
}
