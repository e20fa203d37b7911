package api

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// RAG endpoints are placeholders: no retrieval, no ranking, no external calls.
// They return fixed values until a document index and embedding search exist.

type RAGQueryRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k"`
}

type RAGQueryResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

type VectorSearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type VectorSearchResponse struct {
	Results []string `json:"results"`
}

type RAGHandler struct{}

func NewRAGHandler() *RAGHandler {
	return &RAGHandler{}
}

// Query answers a free-text question --> POST /rag/query
func (h *RAGHandler) Query(c echo.Context) error {
	req := RAGQueryRequest{TopK: 5}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	resp := RAGQueryResponse{
		Answer:  fmt.Sprintf("Answer to: %s", req.Question),
		Sources: []string{"doc1", "doc2"},
	}
	return c.JSON(200, resp)
}

// VectorSearch runs a similarity search --> POST /rag/vector-search
func (h *RAGHandler) VectorSearch(c echo.Context) error {
	req := VectorSearchRequest{TopK: 5}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	resp := VectorSearchResponse{
		Results: []string{"doc1", "doc2"},
	}
	return c.JSON(200, resp)
}
