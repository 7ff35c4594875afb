package server

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agenthands/cartograph/internal/config"
	"github.com/agenthands/cartograph/internal/core/chat"
	"github.com/agenthands/cartograph/internal/core/extraction"
	"github.com/agenthands/cartograph/internal/core/model"
	"github.com/agenthands/cartograph/internal/core/pathfinder"
	"github.com/agenthands/cartograph/internal/core/session"
	"github.com/agenthands/cartograph/internal/driver"
	"github.com/agenthands/cartograph/internal/ingest"
	"github.com/agenthands/cartograph/internal/llm"
	"github.com/agenthands/cartograph/internal/store"
)

const lowConfidenceNote = "**Note:** This answer may be unreliable as the information was not found in the knowledge graph.\n\n"

type Server struct {
	Store     *store.Store
	Extractor *extraction.Extractor
	Chatter   *chat.Chatter
	Finder    *pathfinder.Finder
	Session   *session.Context
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}

	// Env vars win over the config file.
	if v := os.Getenv("NEO4J_URI"); v != "" {
		cfg.Neo4j.URI = v
	}
	if v := os.Getenv("NEO4J_USER"); v != "" {
		cfg.Neo4j.User = v
	}
	if v := os.Getenv("NEO4J_PASSWORD"); v != "" {
		cfg.Neo4j.Password = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	d, err := driver.NewNeo4jDriver(cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password)
	if err != nil {
		log.Fatalf("Failed to create Neo4j driver: %v", err)
	}
	if err := d.BuildIndices(context.Background()); err != nil {
		log.Printf("Warning: failed to build indices: %v", err)
	}

	llmClient, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	st := store.New(d)

	return &Server{
		Store:     st,
		Extractor: extraction.NewExtractor(llmClient, cfg.Prompts.Extraction),
		Chatter:   chat.NewChatter(llmClient, cfg.Prompts.Chat),
		Finder:    pathfinder.NewFinder(st),
		Session:   session.New(),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(requestID())

	r.POST("/extract", s.Extract)
	r.GET("/graph", s.GetGraph)
	r.POST("/chat", s.Chat)
	r.GET("/healthz", s.Health)

	return r
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func reqID(c *gin.Context) string {
	return c.GetString("request_id")
}

// Extract ingests text, a URL or uploaded files, extracts a graph from the
// result and caches it as the session context. Persistence is best-effort:
// the extracted graph is returned even when the store is down.
func (s *Server) Extract(c *gin.Context) {
	content, ok := s.collectContent(c)
	if !ok {
		return
	}

	content = ingest.Preprocess(content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No text content to extract from"})
		return
	}

	graph, err := s.Extractor.ExtractGraph(c.Request.Context(), content)
	if err != nil {
		log.Printf("[%s] Extraction failed: %v", reqID(c), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Extraction failed: " + err.Error()})
		return
	}

	s.Session.Set(graph)

	if s.Store.IsReachable(c.Request.Context()) {
		if err := s.Store.UpsertGraph(c.Request.Context(), graph); err != nil {
			log.Printf("[%s] Warning: failed to persist graph: %v", reqID(c), err)
		}
	} else {
		log.Printf("[%s] Warning: store unreachable, graph not persisted", reqID(c))
	}

	c.JSON(http.StatusOK, graph)
}

// collectContent resolves the request's text/URL/file inputs into one blob.
// It writes the error response itself and returns ok=false on rejection.
func (s *Server) collectContent(c *gin.Context) (string, bool) {
	form, _ := c.MultipartForm()
	text := c.PostForm("text")

	if form != nil && len(form.File["files"]) > 0 {
		texts := map[string]string{}
		var order []string

		for _, fh := range form.File["files"] {
			f, err := fh.Open()
			if err != nil {
				log.Printf("[%s] Warning: failed to open upload %s: %v", reqID(c), fh.Filename, err)
				continue
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				log.Printf("[%s] Warning: failed to read upload %s: %v", reqID(c), fh.Filename, err)
				continue
			}

			fileText, err := ingest.ExtractTextFromFile(data, fh.Filename)
			if err != nil {
				log.Printf("[%s] Warning: failed to extract text from %s: %v", reqID(c), fh.Filename, err)
				continue
			}
			texts[fh.Filename] = fileText
			order = append(order, fh.Filename)
		}

		content := ingest.JoinDocuments(texts, order)
		if content == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to extract text from any uploaded files"})
			return "", false
		}
		return content, true
	}

	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either text or file(s) must be provided"})
		return "", false
	}

	if ingest.IsURL(text) {
		body, err := ingest.FetchURL(c.Request.Context(), text)
		if err != nil {
			log.Printf("[%s] URL fetch failed: %v", reqID(c), err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch URL"})
			return "", false
		}
		content, err := ingest.ExtractTextFromHTML(strings.NewReader(body))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse fetched page"})
			return "", false
		}
		return content, true
	}

	return text, true
}

// GetGraph reads back the persisted graph and makes it the session context.
func (s *Server) GetGraph(c *gin.Context) {
	if !s.Store.IsReachable(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Cannot connect to graph store"})
		return
	}

	graph, err := s.Store.FetchGraph(c.Request.Context())
	if err != nil {
		log.Printf("[%s] Failed to load graph: %v", reqID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load graph"})
		return
	}

	s.Session.Set(graph)
	c.JSON(http.StatusOK, graph)
}

type ChatRequest struct {
	Question string `json:"question"`
}

type ChatResponse struct {
	Answer           string           `json:"answer"`
	Confidence       model.Confidence `json:"confidence"`
	Path             *model.Path      `json:"path"`
	SuggestedQueries []string         `json:"suggested_queries"`
}

// Chat answers a question about the session graph, grounding the answer in
// a path found by the path-finder. Path-finding never fails the response.
func (s *Server) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A question is required"})
		return
	}

	graph := s.Session.Get()
	if graph == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No graph loaded. Please extract a graph first."})
		return
	}

	answer, err := s.Chatter.Ask(c.Request.Context(), req.Question, chat.SummarizeGraph(graph))
	if err != nil {
		log.Printf("[%s] Chat failed: %v", reqID(c), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Chat failed: " + err.Error()})
		return
	}

	path := s.Finder.FindPath(c.Request.Context(), answer.RelevantNodeIDs, graph)

	answerText := answer.Answer
	if answer.Confidence == model.ConfidenceLow {
		answerText = lowConfidenceNote + answerText
	}

	c.JSON(http.StatusOK, ChatResponse{
		Answer:           answerText,
		Confidence:       answer.Confidence,
		Path:             path,
		SuggestedQueries: answer.SuggestedQueries,
	})
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"store_reachable": s.Store.IsReachable(c.Request.Context()),
	})
}
