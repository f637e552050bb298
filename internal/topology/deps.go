package topology

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"topology-builder/internal/ctxlog"
	"topology-builder/internal/model"
	"topology-builder/pkg/utils"
)

// ModuleSource provides module records.
type ModuleSource interface {
	GetModulesByIDs(ctx context.Context, ids []string) ([]model.Module, error)
}

// Dependencies lists the build coordinates a topology needs: one per module
// version used by its nodes, plus the libraries each module declares.
// Modules the source does not know are skipped.
func Dependencies(ctx context.Context, src ModuleSource, nodes []model.Node, group string) ([]model.Dependency, error) {
	logger := ctxlog.FromContext(ctx)

	var ids []string
	versions := make(map[string][]string)
	for _, n := range nodes {
		if n.ModuleID == "" || n.VersionCode == nil {
			continue
		}
		code := utils.Stringify(n.VersionCode)
		known, seen := versions[n.ModuleID]
		if !seen {
			ids = append(ids, n.ModuleID)
		}
		if !contains(known, code) {
			versions[n.ModuleID] = append(known, code)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	modules, err := src.GetModulesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load modules: %w", err)
	}
	byID := make(map[string]model.Module, len(modules))
	for _, m := range modules {
		byID[m.ID] = m
	}

	var deps []model.Dependency
	for _, id := range ids {
		m, ok := byID[id]
		if !ok {
			logger.Warn("Module not found; skipping its dependencies.", "module_id", id)
			continue
		}
		for _, v := range versions[id] {
			deps = append(deps, model.Dependency{GroupID: group, ArtifactID: m.Name, Version: v})
		}
		for _, lib := range m.Libraries {
			d, err := LibraryCoordinate(lib)
			if err != nil {
				return nil, fmt.Errorf("module %s: %w", m.Name, err)
			}
			deps = append(deps, d)
		}
	}
	return deps, nil
}

// repository path segments that precede the group id in a Maven layout URL
var repositoryMarkers = map[string]bool{
	"maven2":       true,
	"repository":   true,
	"repositories": true,
	"releases":     true,
	"snapshots":    true,
	"public":       true,
}

// LibraryCoordinate returns the coordinate of a library, taken from its
// explicit fields or parsed from a Maven repository URL such as
// https://repo1.maven.org/maven2/org/json/json/20090211/json-20090211.jar.
func LibraryCoordinate(lib model.Library) (model.Dependency, error) {
	if lib.GroupID != "" && lib.ArtifactID != "" && lib.Version != "" {
		return model.Dependency{GroupID: lib.GroupID, ArtifactID: lib.ArtifactID, Version: lib.Version}, nil
	}
	if lib.URL == "" {
		return model.Dependency{}, fmt.Errorf("library %q has neither coordinates nor a url", lib.Name)
	}

	u, err := url.Parse(lib.URL)
	if err != nil {
		return model.Dependency{}, fmt.Errorf("library %q: %w", lib.Name, err)
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	n := len(segs)
	if n < 4 {
		return model.Dependency{}, fmt.Errorf("library url %q is not a repository artifact path", lib.URL)
	}
	file, version, artifact := segs[n-1], segs[n-2], segs[n-3]
	if !strings.HasPrefix(file, artifact+"-"+version) {
		return model.Dependency{}, fmt.Errorf("library url %q: file %q does not match %s/%s", lib.URL, file, artifact, version)
	}

	groupSegs := segs[:n-3]
	start := 0
	for i, s := range groupSegs {
		if repositoryMarkers[s] {
			start = i + 1
		}
	}
	if start >= len(groupSegs) {
		return model.Dependency{}, fmt.Errorf("library url %q has no group path", lib.URL)
	}
	return model.Dependency{
		GroupID:    strings.Join(groupSegs[start:], "."),
		ArtifactID: artifact,
		Version:    version,
	}, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
