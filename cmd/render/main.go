// Command render produces a flat-shaded WebP preview of a single MCB
// bundle, posing every hierarchy it contains.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/rs/zerolog"

	"pds-mcb-extract/internal/anim"
	"pds-mcb-extract/internal/mathutil"
	"pds-mcb-extract/internal/mcb"
	"pds-mcb-extract/internal/postprocess"
	"pds-mcb-extract/internal/raster"
	"pds-mcb-extract/internal/skeleton"
)

func main() {
	output := flag.String("o", "", "output WebP path (default: input name + .webp)")
	size := flag.Int("size", 512, "output image size in pixels")
	supersample := flag.Int("supersample", 2, "supersampling factor")
	tolerance := flag.Int("tolerance", mcb.DefaultScaleTolerance, "pose scan scale tolerance")
	clipIdx := flag.Int("clip", -1, "animation clip index to pose with (-1 = static pose)")
	frame := flag.Int("frame", 0, "frame of the selected clip")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if flag.NArg() != 1 {
		log.Fatal().Msg("usage: render [flags] <file.mcb>")
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("read failed")
	}
	bundle, err := mcb.Parse(data)
	if err != nil {
		log.Fatal().Err(err).Msg("parse failed")
	}

	var clip *mcb.Clip
	if *clipIdx >= 0 {
		clips := bundle.DecodeClips()
		if *clipIdx >= len(clips) {
			log.Fatal().Int("clips", len(clips)).Msg("clip index out of range")
		}
		clip = clips[*clipIdx]
		log.Info().Int("mode", clip.Mode).Int("frames", clip.FrameCount).Msg("posing with clip")
	}

	var pieces []raster.Piece
	seen := make(map[uint32]bool)
	for _, e := range bundle.EntriesOfKind(mcb.KindHierarchy) {
		h := bundle.WalkHierarchy(e.Offset)
		pose, err := bundle.FindPoseTolerance(h.BoneCount(), int32(*tolerance))
		bones := mcb.IdentityPose(h.BoneCount()).Bones
		if err != nil {
			log.Warn().Int("bones", h.BoneCount()).Msg("no pose block, using identity pose")
		} else {
			bones = pose.Bones
		}
		if clip != nil {
			player := anim.NewPlayer(clip, bones)
			for f := 0; f < *frame; f++ {
				player.Step()
			}
			bones = player.Pose()
		}
		worlds := skeleton.Evaluate(h.Nodes, bones)
		for bi, n := range h.Nodes {
			if n.ModelOffset == 0 {
				continue
			}
			seen[n.ModelOffset] = true
			m, err := bundle.DecodeModel(n.ModelOffset)
			if err != nil {
				continue
			}
			pieces = append(pieces, raster.Piece{
				Positions: skeleton.PlaceModel(m, worlds[bi]),
				Quads:     m.Quads,
			})
		}
	}
	identity := mathutil.Mat4Identity()
	for _, e := range bundle.EntriesOfKind(mcb.KindModel) {
		if seen[e.Offset] {
			continue
		}
		m, err := bundle.DecodeModel(e.Offset)
		if err != nil {
			continue
		}
		pieces = append(pieces, raster.Piece{
			Positions: skeleton.PlaceModel(m, identity),
			Quads:     m.Quads,
		})
	}
	if len(pieces) == 0 {
		log.Fatal().Msg("no renderable geometry in bundle")
	}

	img := raster.Render(pieces, *size, *supersample)
	if *supersample > 1 {
		img = postprocess.Downsample(img, *size)
	}

	out := *output
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		out = strings.TrimSuffix(base, ".mcb") + ".webp"
	}
	f, err := os.Create(out)
	if err != nil {
		log.Fatal().Err(err).Msg("create failed")
	}
	defer f.Close()
	if err := nativewebp.Encode(f, img, nil); err != nil {
		log.Fatal().Err(err).Msg("webp encode failed")
	}
	log.Info().Str("output", out).Int("pieces", len(pieces)).Msg("rendered")
}
