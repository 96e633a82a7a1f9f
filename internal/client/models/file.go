// Package models defines the client-side view of the file-storage API.
package models

import (
	"fmt"
	"io"
	"math"
)

// State partitions the file collection. A list query selects one partition.
type State string

const (
	StateActive  State = "active"
	StateDeleted State = "deleted"
)

// ParseState accepts "active" and "deleted"; empty means active.
func ParseState(s string) (State, error) {
	switch State(s) {
	case "", StateActive:
		return StateActive, nil
	case StateDeleted:
		return StateDeleted, nil
	default:
		return "", fmt.Errorf("unknown state %q (want active or deleted)", s)
	}
}

// FileItem is a file record as described by the server. The client never
// mutates it.
type FileItem struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Path           string   `json:"path"`
	Size           int64    `json:"size"`
	ThumbAvailable bool     `json:"thumb_available"`
	Mime           string   `json:"mime,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	State          string   `json:"state,omitempty"`
	CreatedAt      string   `json:"created_at,omitempty"`
	UpdatedAt      string   `json:"updated_at,omitempty"`
}

// ListFilter selects the files to show. Zero Page/PageSize leave the server
// defaults in place.
type ListFilter struct {
	Query    string
	Tag      string
	State    State
	Page     int
	PageSize int
}

// Normalized returns a copy with the default state filled in.
func (f ListFilter) Normalized() ListFilter {
	if f.State == "" {
		f.State = StateActive
	}
	return f
}

// FileList is the body of GET /files.
type FileList struct {
	Items    []FileItem `json:"items"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// User is the body of GET /me.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Credentials is the body of POST /auth/register and /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is the success body of the auth endpoints.
type Token struct {
	Token string `json:"token"`
}

// MetaPatch is the body of PATCH /files/{id}. Nil fields are left unchanged.
type MetaPatch struct {
	Name *string   `json:"name,omitempty"`
	Tags *[]string `json:"tags,omitempty"`
}

// Upload is one file of POST /files/upload. Empty Tags and Folder are not
// sent.
type Upload struct {
	FileName    string
	ContentType string
	Content     io.Reader
	Tags        []string
	Folder      string
}

// Blob is a binary response: thumbnail, preview or download.
type Blob struct {
	Data        []byte
	ContentType string
	FileName    string
}

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// HumanSize formats a byte count with one decimal in 1024 steps:
// 0 → "0 B", 1536 → "1.5 KB". Negative sizes render as "".
func HumanSize(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}
	if bytes < 0 {
		return ""
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i < 0 {
		i = 0
	}
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/math.Pow(1024, float64(i)), sizeUnits[i])
}
