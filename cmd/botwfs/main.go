// Command botwfs mounts one or more layered, read-only content directories
// as a single overlay filesystem, with SARC-family archives exposed
// transparently as directories and an optional copy-on-write work
// directory.
//
// Usage:
//
//	botwfs <content_dir>... <mount_point> [-w <work_dir>]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/zeldamods/botwfstools/internal/config"
	"github.com/zeldamods/botwfstools/internal/contentfs"
	"github.com/zeldamods/botwfstools/internal/metrics"
	"github.com/zeldamods/botwfstools/internal/mount"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("botwfs", flag.ContinueOnError)
	workDir := fs.String("w", "", "copy-on-write work directory")
	fs.StringVar(workDir, "workdir", "", "copy-on-write work directory (alias of -w)")
	configPath := fs.String("config", "", "path to an ambient-tunables YAML file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	positional := fs.Args()
	if len(positional) < 2 {
		return fmt.Errorf("usage: botwfs <content_dir>... <mount_point> [-w <work_dir>]")
	}
	contentDirs, mountPoint := positional[:len(positional)-1], positional[len(positional)-1]

	allDirs := append(append([]string{}, contentDirs...), mountPoint)
	if *workDir != "" {
		allDirs = append(allDirs, *workDir)
	}
	for _, d := range allDirs {
		if err := requireDirectory(d); err != nil {
			return err
		}
	}

	roots := make([]string, len(contentDirs))
	for i, d := range contentDirs {
		real, err := filepath.EvalSymlinks(d)
		if err != nil {
			return fmt.Errorf("error: %s: %w", d, err)
		}
		roots[i] = real
	}
	realMountPoint, err := filepath.EvalSymlinks(mountPoint)
	if err != nil {
		return fmt.Errorf("error: %s: %w", mountPoint, err)
	}
	realWorkDir := ""
	if *workDir != "" {
		realWorkDir, err = filepath.EvalSymlinks(*workDir)
		if err != nil {
			return fmt.Errorf("error: %s: %w", *workDir, err)
		}
	}

	cfg := config.NewDefault()
	if *configPath != "" {
		if err := cfg.LoadFromFile(*configPath); err != nil {
			return err
		}
	}
	cfg.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	collector, err := metrics.NewCollector(&metrics.Config{
		Enabled:   cfg.Global.MetricsPort != 0,
		Port:      cfg.Global.MetricsPort,
		Path:      cfg.Global.MetricsPath,
		Namespace: "botwfs",
	})
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := collector.Start(ctx); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	defer collector.Stop(ctx)

	ops := contentfs.NewOperationsWithCacheSizes(roots, realWorkDir, cfg.Cache.ArchiveCacheSize, cfg.Cache.PathCacheSize)
	ops.SetArchiveCacheObserver(func(hit bool) {
		if hit {
			collector.RecordArchiveCacheHit()
		} else {
			collector.RecordArchiveCacheMiss()
		}
	})
	host := mount.NewHost(ops, collector)

	log.Printf("botwfs: mounting %v at %s (work dir: %q)", roots, realMountPoint, realWorkDir)
	if !host.Mount(realMountPoint, nil) {
		return fmt.Errorf("error: mount at %s failed", realMountPoint)
	}
	return nil
}

func requireDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("error: %s is not a directory", path)
	}
	return nil
}
