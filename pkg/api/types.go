package api

import "github.com/ssargent/binrec/pkg/schema"

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// TypeSummary represents a compiled record type in listings
type TypeSummary struct {
	Name string `json:"name"`
	Size int    `json:"size"`
	Doc  string `json:"doc,omitempty"`
}

// FieldInfo represents a single field of a record layout
type FieldInfo struct {
	Name    string      `json:"name,omitempty"`
	Type    string      `json:"type"`
	Offset  int         `json:"offset"`
	Width   int         `json:"width"`
	Default interface{} `json:"default,omitempty"`
	Doc     string      `json:"doc,omitempty"`
}

// TypeInfo represents a record type together with its field layout
type TypeInfo struct {
	Name   string      `json:"name"`
	Size   int         `json:"size"`
	Doc    string      `json:"doc,omitempty"`
	Fields []FieldInfo `json:"fields"`
}

// DecodeResponse represents the result of decoding a raw record buffer
type DecodeResponse struct {
	Type   string                 `json:"type"`
	Size   int                    `json:"size"`
	Values map[string]interface{} `json:"values"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string
}

// Registry defines the interface for resolving compiled record layouts
type Registry interface {
	Layout(name string) (*schema.Layout, error)
	Names() []string
	Doc(name string) string
}
