// Package batch runs the full extraction pipeline over a set of bundle
// files with a worker pool.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/rs/zerolog"

	"pds-mcb-extract/internal/catalog"
	"pds-mcb-extract/internal/gltf"
	"pds-mcb-extract/internal/mathutil"
	"pds-mcb-extract/internal/mcb"
	"pds-mcb-extract/internal/postprocess"
	"pds-mcb-extract/internal/raster"
	"pds-mcb-extract/internal/skeleton"
)

// Config holds the shared settings for a batch run.
type Config struct {
	OutputDir     string
	Workers       int
	PoseTolerance int32

	// Preview rendering; Previews=false skips it entirely.
	Previews    bool
	RenderSize  int
	Supersample int
	WebPQuality int

	Log zerolog.Logger
}

// Result is the outcome of processing one asset.
type Result struct {
	Name        string
	Category    string
	Models      int
	Hierarchies int
	Animations  int
	PoseFound   bool
	Success     bool
	Error       string
}

// Run processes all assets with cfg.Workers goroutines and reports progress
// every two seconds. Results keep the input order.
func Run(cfg Config, assets []catalog.Asset) []Result {
	total := len(assets)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					cfg.Log.Info().
						Int64("done", p).
						Int("total", total).
						Float64("per_sec", rate).
						Msg("progress")
				}
			}
		}
	}()

	workChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workChan {
				results[idx] = processAsset(cfg, assets[idx])
				processed.Add(1)
			}
		}()
	}
	for i := range assets {
		workChan <- i
	}
	close(workChan)
	wg.Wait()
	close(done)

	return results
}

func processAsset(cfg Config, asset catalog.Asset) Result {
	res := Result{Name: asset.Name, Category: asset.Category}
	fail := func(err error) Result {
		res.Error = err.Error()
		return res
	}

	data, err := os.ReadFile(asset.Path)
	if err != nil {
		return fail(err)
	}
	bundle, err := mcb.Parse(data)
	if err != nil {
		return fail(err)
	}

	var hierarchies []*mcb.Hierarchy
	for _, e := range bundle.EntriesOfKind(mcb.KindHierarchy) {
		hierarchies = append(hierarchies, bundle.WalkHierarchy(e.Offset))
	}
	res.Hierarchies = len(hierarchies)
	res.Animations = len(bundle.EntriesOfKind(mcb.KindAnimation))

	var parts []gltf.Part
	var pieces []raster.Piece
	seen := make(map[uint32]bool)

	for _, h := range hierarchies {
		pose := posedOrIdentity(cfg, bundle, asset.Name, h, &res)
		worlds := skeleton.Evaluate(h.Nodes, pose)
		for bi, n := range h.Nodes {
			if n.ModelOffset == 0 {
				continue
			}
			seen[n.ModelOffset] = true
			m, err := bundle.DecodeModel(n.ModelOffset)
			if err != nil {
				cfg.Log.Warn().Str("asset", asset.Name).Uint32("offset", n.ModelOffset).
					Err(err).Msg("model decode failed")
				continue
			}
			addPart(&parts, &pieces, fmt.Sprintf("%s_bone%d", asset.Name, bi),
				m, skeleton.PlaceModel(m, worlds[bi]))
		}
	}

	// Loose models outside every hierarchy export unposed.
	identity := mathutil.Mat4Identity()
	for _, e := range bundle.EntriesOfKind(mcb.KindModel) {
		if seen[e.Offset] {
			continue
		}
		m, err := bundle.DecodeModel(e.Offset)
		if err != nil {
			continue
		}
		addPart(&parts, &pieces, fmt.Sprintf("%s_slot%d", asset.Name, e.Slot),
			m, skeleton.PlaceModel(m, identity))
	}
	res.Models = len(parts)

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fail(err)
	}

	if len(parts) > 0 {
		glbPath := filepath.Join(cfg.OutputDir, asset.Name+".glb")
		if err := gltf.Export(glbPath, asset.Name, parts); err != nil {
			return fail(err)
		}
	}

	// Structure sidecar comes after pose resolution so pose slots are tagged.
	structPath := filepath.Join(cfg.OutputDir, asset.Name+"_structure.json")
	if err := WriteStructure(structPath, BuildStructure(asset.Name, bundle, hierarchies)); err != nil {
		return fail(err)
	}

	if cfg.Previews && len(pieces) > 0 {
		if err := writePreview(cfg, asset.Name, pieces); err != nil {
			return fail(err)
		}
	}

	res.Success = true
	return res
}

// posedOrIdentity resolves the static pose for h, falling back to an
// identity rest pose when the bundle has no matching pose block.
func posedOrIdentity(cfg Config, b *mcb.Bundle, name string, h *mcb.Hierarchy, res *Result) []mcb.BonePose {
	tol := cfg.PoseTolerance
	if tol <= 0 {
		tol = mcb.DefaultScaleTolerance
	}
	pose, err := b.FindPoseTolerance(h.BoneCount(), tol)
	if err != nil {
		cfg.Log.Warn().Str("asset", name).Int("bones", h.BoneCount()).
			Msg("no pose block, using identity pose")
		return mcb.IdentityPose(h.BoneCount()).Bones
	}
	res.PoseFound = true
	return pose.Bones
}

func addPart(parts *[]gltf.Part, pieces *[]raster.Piece, name string, m *mcb.Model, placed []mathutil.Vec3) {
	if len(placed) == 0 || len(m.Quads) == 0 {
		return
	}
	positions := make([][3]float32, len(placed))
	for i, p := range placed {
		positions[i] = [3]float32{float32(p[0]), float32(p[1]), float32(p[2])}
	}
	quads := make([][4]uint32, len(m.Quads))
	for i, q := range m.Quads {
		quads[i] = [4]uint32{uint32(q.Index[0]), uint32(q.Index[1]), uint32(q.Index[2]), uint32(q.Index[3])}
	}
	*parts = append(*parts, gltf.Part{
		Name:      name,
		Positions: positions,
		Indices:   gltf.Triangulate(quads),
	})
	*pieces = append(*pieces, raster.Piece{Positions: placed, Quads: m.Quads})
}

func writePreview(cfg Config, name string, pieces []raster.Piece) error {
	img := raster.Render(pieces, cfg.RenderSize, cfg.Supersample)
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize)
	}
	f, err := os.Create(filepath.Join(cfg.OutputDir, name+".webp"))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("batch: webp encode %s: %w", name, err)
	}
	return nil
}
