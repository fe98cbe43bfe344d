package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/perfstage/perfstage/stage"
	"github.com/perfstage/perfstage/stage/config"
	"github.com/perfstage/perfstage/stage/plan"
)

func main() {
	var (
		namespace   = flag.String("namespace", "default", "Namespace to publish archive ConfigMaps in")
		planFile    = flag.String("plan", "", "YAML staging plan (overrides -namespace and positional scripts)")
		outputDir   = flag.String("output", "", "Directory for archive files (default: current directory)")
		parallelism = flag.Int("parallelism", 0, "Concurrent staging operations (default: config/env)")
		k6Binary    = flag.String("k6-binary", "", "k6 executable to use (default: config/env)")
		retract     = flag.String("retract", "", "Comma-separated ConfigMap names to retract instead of staging")
		checkOnly   = flag.Bool("check", false, "Only check prerequisites and exit")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Setup context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, stopping...")
		cancel()
		// Second interrupt force-exits
		<-sigCh
		os.Exit(130) // 128 + SIGINT(2)
	}()

	cfg := config.FromEnv()
	if *k6Binary != "" {
		cfg = cfg.WithK6Binary(*k6Binary)
	}
	if *outputDir != "" {
		cfg = cfg.WithOutputDir(*outputDir)
	}
	if *parallelism > 0 {
		cfg = cfg.WithParallelism(*parallelism)
	}

	targetNamespace := *namespace
	scripts := flag.Args()

	var loaded *plan.Plan
	if *planFile != "" {
		var err error
		loaded, err = plan.Load(*planFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading plan: %v\n", err)
			os.Exit(1)
		}
		targetNamespace = loaded.Namespace
		scripts = loaded.ScriptPaths()
		if loaded.Parallelism > 0 {
			cfg = cfg.WithParallelism(loaded.Parallelism)
		}
		if loaded.OutputDir != "" {
			cfg = cfg.WithOutputDir(loaded.OutputDir)
		}
		fmt.Printf("Loaded plan %s: %s (%d scripts)\n", loaded.Name, loaded.Description, len(scripts))
	}

	s, err := stage.New(ctx, targetNamespace, stage.WithConfig(cfg), stage.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to cluster: %v\n", err)
		os.Exit(1)
	}

	if *checkOnly {
		os.Exit(runCheck(s))
	}

	if *retract != "" {
		os.Exit(runRetract(s, strings.Split(*retract, ",")))
	}

	if len(scripts) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no scripts given; pass script paths or -plan")
		os.Exit(1)
	}

	os.Exit(runStage(s, scripts))
}

func runCheck(s *stage.Stage) int {
	prereqs, err := s.CheckPrerequisites()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error checking prerequisites: %v\n", err)
		return 1
	}
	fmt.Print(prereqs.String())
	if !prereqs.AllMet {
		return 1
	}
	return 0
}

func runStage(s *stage.Stage, scripts []string) int {
	results, err := s.StageScripts(scripts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error staging scripts: %v\n", err)
	}

	staged := 0
	for _, r := range results {
		if r == nil {
			continue
		}
		staged++
		fmt.Printf("staged %s -> %s/%s\n", r.ArchiveFilename, r.Namespace, r.ConfigMapName)
	}
	fmt.Printf("%d of %d scripts staged\n", staged, len(scripts))

	if err != nil || staged != len(scripts) {
		return 1
	}
	return 0
}

func runRetract(s *stage.Stage, names []string) int {
	failed := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := s.Retract(name); err != nil {
			fmt.Fprintf(os.Stderr, "Error retracting %s: %v\n", name, err)
			failed++
			continue
		}
		fmt.Printf("retracted %s/%s\n", s.Namespace(), name)
	}
	if failed > 0 {
		return 1
	}
	return 0
}
