// Command cachectl inspects and maintains the gateway's on-disk cache
// directory without a running server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/vidgate/vidgate/internal/cache"
	"github.com/vidgate/vidgate/internal/config"
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg := config.Load()

	disk, err := cache.NewDiskTier(cfg.CacheDir, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open cache dir: %v\n", err)
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "sweep":
		removed := disk.CleanupExpired()
		fmt.Printf("removed %d expired entries from %s\n", removed, disk.Dir())
	case "stats":
		out, _ := json.MarshalIndent(disk.Stats(), "", "  ")
		fmt.Println(string(out))
	case "clear":
		before := disk.Size()
		disk.Clear()
		fmt.Printf("removed %d entries from %s\n", before, disk.Dir())
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: cachectl <command>

Commands:
  sweep   remove expired entries from the disk cache
  stats   print disk cache statistics
  clear   remove all entries from the disk cache

The cache directory comes from CACHE_DIR (default ./cache).
`)
}
