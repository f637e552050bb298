package model

import "strings"

// Role is the part a node plays in the running topology.
type Role string

const (
	RoleIngress    Role = "ingress"
	RoleProcessing Role = "processing"
	RoleEgress     Role = "egress"
)

var roleAliases = map[string]Role{
	"spout":      RoleIngress,
	"ingress":    RoleIngress,
	"bolt":       RoleProcessing,
	"operator":   RoleProcessing,
	"processing": RoleProcessing,
	"drain":      RoleEgress,
	"egress":     RoleEgress,
}

// ParseRole maps a declared node kind to its role.
func ParseRole(kind string) (Role, bool) {
	r, ok := roleAliases[strings.ToLower(kind)]
	return r, ok
}

// RuntimeKind is the word the stream runtime uses for the role in class names.
func (r Role) RuntimeKind() string {
	switch r {
	case RoleIngress:
		return "spout"
	case RoleProcessing:
		return "bolt"
	case RoleEgress:
		return "drain"
	default:
		return string(r)
	}
}

// Topology is the authored pipeline model as submitted for translation.
type Topology struct {
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties"`
	// Variables is the template substitution source. Nil disables templating.
	Variables map[string]any `json:"variables,omitempty"`
	Nodes     []Node         `json:"nodes"`
	Wires     []Wire         `json:"wires"`
}

// Node is one authored processing unit.
type Node struct {
	Type            string  `json:"type"`
	Language        string  `json:"language"`
	Name            string  `json:"name"`
	Params          *Params `json:"params"`
	ModuleID        string  `json:"moduleId,omitempty"`
	VersionCode     any     `json:"versionCode,omitempty"`
	ModuleVersionID string  `json:"moduleVersionId,omitempty"`
	Parallelism     any     `json:"parallelism,omitempty"`
}

// Endpoint is one side of a wire. Node is the position of the node in
// Topology.Nodes.
type Endpoint struct {
	Node     int    `json:"node"`
	Terminal string `json:"terminal,omitempty"`
}

// HasTerminal reports whether the endpoint names a terminal.
func (e *Endpoint) HasTerminal() bool {
	return e != nil && e.Terminal != ""
}

// Wire connects two node endpoints.
type Wire struct {
	Src *Endpoint `json:"src"`
	Tgt *Endpoint `json:"tgt"`
}
