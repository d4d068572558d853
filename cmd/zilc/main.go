// Command zilc is the outer CLI: build emits a story file from a
// populated program model, run shells out to an external interpreter,
// and analyze inspects a finished story file. Subcommand dispatch
// follows the reference interpreter's flag.StringVar/flag.Parse style
// (main.go), generalized to multiple subcommands the way `go` or
// `git` dispatch on os.Args[1].
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/exec"

	"github.com/alanquatermain/zilc/cmd/zilc/internal/inspector"
	"github.com/alanquatermain/zilc/emitter"
	"github.com/alanquatermain/zilc/model"
	"github.com/alanquatermain/zilc/zconfig"
	"github.com/alanquatermain/zilc/zlog"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "build":
		os.Exit(runBuild(os.Args[2:]))
	case "run":
		os.Exit(runRun(os.Args[2:]))
	case "analyze":
		os.Exit(runAnalyze(os.Args[2:]))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: zilc <build|run|analyze> [flags] INPUT")
}

// runBuild reads a JSON-encoded model.Program (the form the out-of-scope
// ZAP assembler would hand us) and emits a story file.
func runBuild(args []string) int {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	out := fs.String("out", "", "output story file path (default: zilc.toml's project.output)")
	validate := fs.Bool("validate", true, "run the post-emission Validator and report findings")
	configPath := fs.String("config", "zilc.toml", "project config file")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: zilc build [--out FILE] [--validate] MODEL.json")
		return 2
	}

	log := zlog.Default()

	cfg, err := zconfig.LoadFrom(*configPath)
	if err != nil {
		log.Errorf("loading config: %v", err)
		return 1
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		log.Errorf("reading model: %v", err)
		return 1
	}

	var p model.Program
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Errorf("parsing model: %v", err)
		return 1
	}
	if p.Version == 0 {
		p.Version = cfg.Project.Version
	}
	if p.ReleaseNumber == 0 {
		p.ReleaseNumber = cfg.Project.ReleaseNumber
	}

	outPath := *out
	if outPath == "" {
		outPath = cfg.Project.Output
	}

	image, warnings, err := emitter.Emit(&p, emitter.Options{Validate: *validate, Log: log})
	if err != nil {
		log.Criticalf("emission failed: %v", err)
		return 1
	}
	for _, w := range warnings {
		log.Warningf("validator: %s", w.String())
	}

	if err := os.WriteFile(outPath, image, 0o644); err != nil {
		log.Errorf("writing %s: %v", outPath, err)
		return 1
	}

	log.Noticef("wrote %s (%d bytes)", outPath, len(image))
	return 0
}

// runRun is a stub: this module emits story files, it doesn't
// interpret them. It shells out to whatever binary ZIL_INTERPRETER or
// the config's [run] interpreter key names.
func runRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "zilc.toml", "project config file")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: zilc run STORYFILE")
		return 2
	}

	log := zlog.Default()

	interp := os.Getenv("ZIL_INTERPRETER")
	if interp == "" {
		cfg, err := zconfig.LoadFrom(*configPath)
		if err == nil {
			interp = cfg.Run.Interpreter
		}
	}
	if interp == "" {
		log.Errorf("no interpreter configured: set ZIL_INTERPRETER or zilc.toml's [run] interpreter key")
		return 1
	}

	cmd := exec.Command(interp, fs.Arg(0))
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		log.Errorf("running %s: %v", interp, err)
		return 1
	}
	return 0
}

func runAnalyze(args []string) int {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	strict := fs.Bool("strict", false, "exit 1 if the Validator reports any finding")
	interactive := fs.Bool("interactive", false, "launch the interactive inspector instead of printing a summary")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: zilc analyze [--strict] [--interactive] STORYFILE")
		return 2
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	report, err := inspector.Analyze(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *interactive {
		if err := inspector.Run(report); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	fmt.Print(report.Summary())

	if *strict && len(report.Warnings) > 0 {
		return 1
	}
	return 0
}
