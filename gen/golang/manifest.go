package golang

import (
	"encoding/json"
	"fmt"

	"github.com/querygen-dev/querygen/gen/model"
)

// ManifestName is the file name the generation manifest is written to.
const ManifestName = "manifest.json"

// Manifest describes one generation run: what produced it, from which
// package, and the files it wrote. It is the machine-readable inventory
// tooling can diff between runs.
type Manifest struct {
	Generator string           `json:"generator"`
	Version   string           `json:"version"`
	RunID     string           `json:"run_id"`
	Package   string           `json:"package"`
	Source    string           `json:"source"`
	Entities  []ManifestEntity `json:"entities"`
}

// ManifestEntity is one entity's entry in the manifest.
type ManifestEntity struct {
	Name    string   `json:"name"`
	File    string   `json:"file"`
	Members []string `json:"members"`
}

// BuildManifest renders the manifest for a schema. Entities follow the
// schema's sorted order, so output is reproducible apart from the run ID.
func BuildManifest(schema *model.Schema, pkg, version, runID string) ([]byte, error) {
	m := Manifest{
		Generator: "querygen",
		Version:   version,
		RunID:     runID,
		Package:   pkg,
		Source:    schema.Package.Path,
		Entities:  make([]ManifestEntity, 0, len(schema.Entities)),
	}

	for _, e := range schema.Entities {
		me := ManifestEntity{
			Name:    e.Type.Name,
			File:    FileName(e.Type.SimpleName()),
			Members: make([]string, 0, len(e.Properties)),
		}
		for _, p := range e.Properties {
			member := p.Member
			if member == "" {
				member = MemberName(p.Name)
			}
			me.Members = append(me.Members, member)
		}
		m.Entities = append(m.Entities, me)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}
