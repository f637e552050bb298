package model

// Field is one declared parameter of a module version.
type Field struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Label    string    `json:"label,omitempty"`
	Required bool      `json:"required,omitempty"`
	Default  any       `json:"default,omitempty"`
}

// ModuleVersion is a stored schema for one version of a module.
type ModuleVersion struct {
	ID          string  `json:"id"`
	ModuleID    string  `json:"moduleId"`
	VersionCode int     `json:"versionCode"`
	Fields      []Field `json:"fields"`
}

// FieldSchema maps parameter names to their declarations.
type FieldSchema map[string]Field

// Schema indexes the fields by name.
func (mv *ModuleVersion) Schema() FieldSchema {
	schema := make(FieldSchema, len(mv.Fields))
	for _, f := range mv.Fields {
		f.Type = ParseFieldType(string(f.Type))
		schema[f.Name] = f
	}
	return schema
}

// Library is an extra artifact a module needs at runtime.
type Library struct {
	Name       string `json:"name,omitempty"`
	URL        string `json:"url,omitempty"`
	GroupID    string `json:"groupId,omitempty"`
	ArtifactID string `json:"artifactId,omitempty"`
	Version    string `json:"version,omitempty"`
}

// Module is a stored module record.
type Module struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type,omitempty"`
	Language  string    `json:"language,omitempty"`
	Libraries []Library `json:"libraries,omitempty"`
}
