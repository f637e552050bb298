package model

// Descriptor is the execution descriptor handed to the build collaborator.
type Descriptor struct {
	Properties    map[string]any `json:"properties"`
	BuilderConfig BuilderConfig  `json:"builderConfig"`
}

// BuilderConfig groups the materialized components by role.
type BuilderConfig struct {
	Ingress    []*Component `json:"ingress"`
	Processing []*Component `json:"processing"`
	Egress     []*Component `json:"egress"`
}

// Len returns the number of components across all roles.
func (b BuilderConfig) Len() int {
	return len(b.Ingress) + len(b.Processing) + len(b.Egress)
}

// Component is a materialized node.
type Component struct {
	Role          Role     `json:"type"`
	Class         string   `json:"class,omitempty"`
	Script        string   `json:"script,omitempty"`
	Language      string   `json:"language"`
	AbstractionID string   `json:"abstractionId"`
	Parallelism   string   `json:"parallelism"`
	Sources       []Source `json:"sources"`
	Params        *Params  `json:"params"`
}

// Source is a wired input of a component.
type Source struct {
	SourceID string `json:"sourceId"`
	StreamID string `json:"streamId,omitempty"`
	Grouping string `json:"grouping"`
}

// GroupingShuffle is the only grouping the builder emits.
const GroupingShuffle = "shuffle"

// Dependency is a build coordinate required by the packaged topology.
type Dependency struct {
	GroupID    string `json:"groupId"`
	ArtifactID string `json:"artifactId"`
	Version    string `json:"version"`
}

func (d Dependency) String() string {
	return d.GroupID + ":" + d.ArtifactID + ":" + d.Version
}
