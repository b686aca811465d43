package service

import (
	"encoding/json"
	"io"
	"log"
	"time"
)

// FileUpload is an incoming file passed down from the transport layer.
// Name is the client-supplied file name; Reader streams the content.
type FileUpload struct {
	Name        string
	Reader      io.Reader
	Size        int64
	ContentType string
}

// logJSON emits one JSON object per line to stdout for best-effort failures
// that are logged instead of surfaced (compensating cleanup, courtesy mail).
func logJSON(data map[string]any) {
	data["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		data["level"] = "warn"
	}
	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal service log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
