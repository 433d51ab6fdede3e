// Command inspect dumps a bundle's pointer table classification, bone
// trees and animation headers in human-readable form.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"pds-mcb-extract/internal/mcb"
)

func main() {
	showBones := flag.Bool("bones", false, "dump hierarchy bone trees")
	showClips := flag.Bool("clips", false, "dump animation clip headers")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect [flags] <file.mcb>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	bundle, err := mcb.Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Retag pose entries before printing the table.
	for _, e := range bundle.EntriesOfKind(mcb.KindHierarchy) {
		h := bundle.WalkHierarchy(e.Offset)
		bundle.FindPose(h.BoneCount())
	}

	fmt.Printf("%s: %d bytes, %d pointer slots\n\n", path, bundle.Len(), len(bundle.Offsets))
	fmt.Println("slot  offset    size      type")
	for _, e := range bundle.Entries {
		if e.Offset == 0 {
			continue
		}
		fmt.Printf("%4d  0x%06x  %8d  %s\n", e.Slot, e.Offset, e.Size, e.Kind)
	}

	if *showBones {
		for _, e := range bundle.EntriesOfKind(mcb.KindHierarchy) {
			h := bundle.WalkHierarchy(e.Offset)
			fmt.Printf("\nhierarchy at slot %d: %d bones\n", e.Slot, h.BoneCount())
			for i, n := range h.Nodes {
				model := "-"
				if n.ModelOffset != 0 {
					model = fmt.Sprintf("0x%06x", n.ModelOffset)
				}
				fmt.Printf("%s[%d] node 0x%06x model %s parent %d\n",
					strings.Repeat("  ", n.Depth), i, n.Offset, model, n.Parent)
			}
		}
	}

	if *showClips {
		for _, c := range bundle.DecodeClips() {
			tracks := 0
			for _, bone := range c.Tracks {
				for _, t := range bone {
					if len(t.Entries) > 0 {
						tracks++
					}
				}
			}
			fmt.Printf("\nclip at 0x%06x: mode %d, %d bones, %d frames, %d tracks (pos=%v rot=%v scale=%v)\n",
				c.Offset, c.Mode, c.BoneCount, c.FrameCount, tracks,
				c.HasPosition, c.HasRotation, c.HasScale)
		}
	}
}
