// anvil - NBT and region file inspection tool
//
// Usage:
//
//	anvil nbt <file>                     Dump a .dat (NBT) file, gzip-sniffed
//	anvil region <file> [-x N -z N]      Inspect an .mca region file
//	anvil version                        Print version info
//
// With -x and -z, prints the chunk document at that coordinate; without
// them, prints a summary of present chunks.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Neumenon/anvil/nbt"
	"github.com/Neumenon/anvil/region"
)

const version = "0.2.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "nbt":
		if len(os.Args) < 3 {
			fatal("anvil nbt: missing file argument")
		}
		cmdNBT(os.Args[2])

	case "region":
		cmdRegion(os.Args[2:])

	case "version":
		fmt.Printf("anvil %s\n", version)

	default:
		fmt.Fprintf(os.Stderr, "anvil: unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func cmdNBT(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fatal("read file: %v", err)
	}

	doc, err := nbt.Decode(data)
	if err != nil {
		fatal("parse NBT: %v", err)
	}

	fmt.Printf("Root tag name: %q\n", doc.Name)
	fmt.Println(nbt.FormatSNBTWithOptions(doc.Tag, nbt.SNBTOptions{Pretty: true}))
}

func cmdRegion(args []string) {
	fs := flag.NewFlagSet("region", flag.ExitOnError)
	x := fs.Int("x", 0, "chunk X coordinate")
	z := fs.Int("z", 0, "chunk Z coordinate")

	if len(args) < 1 {
		fatal("anvil region: missing file argument")
	}
	path := args[0]
	if err := fs.Parse(args[1:]); err != nil {
		os.Exit(1)
	}
	haveCoords := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "x" || f.Name == "z" {
			haveCoords = true
		}
	})

	r, err := region.Open(path)
	if err != nil {
		fatal("open region: %v", err)
	}
	defer r.Close()

	if haveCoords {
		doc, err := r.ChunkTag(int32(*x), int32(*z))
		if err != nil {
			fatal("read chunk: %v", err)
		}
		if doc == nil {
			fmt.Printf("Chunk (%d, %d) is not present in this region.\n", *x, *z)
			return
		}
		fmt.Printf("Chunk (%d, %d) root tag name: %q\n", *x, *z, doc.Name)
		fmt.Println(nbt.FormatSNBTWithOptions(doc.Tag, nbt.SNBTOptions{Pretty: true}))
		return
	}

	present := 0
	for cz := int32(0); cz < 32; cz++ {
		for cx := int32(0); cx < 32; cx++ {
			if r.Location(cx, cz).Present() {
				present++
			}
		}
	}
	fmt.Printf("Region file with %d of 1024 chunks present. Use -x and -z to inspect one.\n", present)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  anvil nbt <file>                  Dump an NBT file")
	fmt.Fprintln(os.Stderr, "  anvil region <file> [-x N -z N]   Inspect a region file")
	fmt.Fprintln(os.Stderr, "  anvil version                     Print version info")
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
