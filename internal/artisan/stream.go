package artisan

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
)

// ProgressStream reports the steps of a long multi-step write over one
// long-lived HTTP response. Once Begin has flushed the headers, HTTP status
// semantics are gone: success and failure both travel in the terminal frame.
type ProgressStream struct {
	w gin.ResponseWriter
}

// NewProgressStream switches the response to a text/event-stream and flushes
// the headers immediately.
func NewProgressStream(c *gin.Context) *ProgressStream {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()
	return &ProgressStream{w: c.Writer}
}

// Step emits one progress frame.
func (s *ProgressStream) Step(name string) {
	s.frame(gin.H{"status": "progress", "step": name})
}

// Complete emits the terminal success frame.
func (s *ProgressStream) Complete(extra gin.H) {
	payload := gin.H{"status": "complete"}
	for k, v := range extra {
		payload[k] = v
	}
	s.frame(payload)
}

// Error emits the terminal failure frame.
func (s *ProgressStream) Error(message string) {
	s.frame(gin.H{"status": "error", "message": message})
}

// frame writes one `data: <json>\n\n` chunk and flushes it to the client.
func (s *ProgressStream) frame(payload gin.H) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(s.w, "data: %s\n\n", data)
	s.w.Flush()
}
