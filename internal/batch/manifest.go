package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry is one asset in the output manifest.
type ManifestEntry struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Models      int    `json:"models"`
	Hierarchies int    `json:"hierarchies"`
	Animations  int    `json:"animations"`
	PoseFound   bool   `json:"poseFound"`
	Geometry    string `json:"geometry,omitempty"`
	Structure   string `json:"structure"`
	Error       string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json summarizing a batch run.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		e := ManifestEntry{
			Name:        r.Name,
			Category:    r.Category,
			Models:      r.Models,
			Hierarchies: r.Hierarchies,
			Animations:  r.Animations,
			PoseFound:   r.PoseFound,
			Structure:   r.Name + "_structure.json",
			Error:       r.Error,
		}
		if r.Success && r.Models > 0 {
			e.Geometry = r.Name + ".glb"
		}
		entries[i] = e
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
