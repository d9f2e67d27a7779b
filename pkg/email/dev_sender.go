package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender writes each email to a directory as an HTML file plus a JSON
// metadata sidecar instead of delivering it.
type DevSender struct {
	dir string
}

// NewDevSender creates a file-based sender. The directory is created on the
// first send.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir}
}

type devMetadata struct {
	Timestamp string `json:"timestamp"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
}

func (d *DevSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating output dir: %v", ErrFailedToSend, err)
	}

	now := time.Now()
	name := msg.Tag
	if name == "" {
		name = msg.Subject
	}
	base := now.Format("2006_01_02_150405") + "_" + safeFilename(name)

	if err := os.WriteFile(filepath.Join(d.dir, base+".html"), []byte(msg.BodyHTML), 0o644); err != nil {
		return fmt.Errorf("%w: writing html: %v", ErrFailedToSend, err)
	}

	meta, err := json.MarshalIndent(devMetadata{
		Timestamp: now.Format(time.RFC3339),
		To:        msg.To,
		Subject:   msg.Subject,
		Tag:       msg.Tag,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshaling metadata: %v", ErrFailedToSend, err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, base+".json"), meta, 0o644); err != nil {
		return fmt.Errorf("%w: writing metadata: %v", ErrFailedToSend, err)
	}

	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

func safeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeFilenameChars.ReplaceAllString(s, "")
	if len(s) > 80 {
		s = s[:80]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
