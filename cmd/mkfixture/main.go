package main

import (
	"fmt"
	"os"

	"github.com/darianmavgo/mkfixture/config"
	"github.com/darianmavgo/mkfixture/converters"
	_ "github.com/darianmavgo/mkfixture/converters/all"
	"github.com/darianmavgo/mkfixture/workspace"
)

type cliArgs struct {
	dir        string
	configPath string
	exportPath string
	logMode    bool
	generate   bool
	combine    bool
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  mkfixture [--config <file>] [--log] [dir]                # Generate fixtures and the combined output in dir (default .)")
	fmt.Println("  mkfixture [--config <file>] [--log] --no-combine [dir]   # Only generate the per-source fixtures")
	fmt.Println("  mkfixture [--config <file>] [--log] --combine-only [dir] # Only rebuild the combined output")
	fmt.Println("  mkfixture --export-config <file>                         # Write the default configuration (.hcl or .yaml)")
}

func parseArgs(args []string) (*cliArgs, error) {
	a := &cliArgs{dir: ".", generate: true, combine: true}
	var positional []string
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--log":
			a.logMode = true
		case "--no-combine":
			a.combine = false
		case "--combine-only":
			a.generate = false
		case "--config", "--export-config":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a file argument", arg)
			}
			i++
			if arg == "--config" {
				a.configPath = args[i]
			} else {
				a.exportPath = args[i]
			}
		default:
			positional = append(positional, arg)
		}
	}
	if !a.generate && !a.combine {
		return nil, fmt.Errorf("--no-combine and --combine-only leave nothing to do")
	}
	if len(positional) > 1 {
		return nil, fmt.Errorf("expected at most one directory, got %d", len(positional))
	}
	if len(positional) == 1 {
		a.dir = positional[0]
	}
	return a, nil
}

// run executes one invocation and returns the names written to the workspace.
func run(a *cliArgs) ([]string, error) {
	if a.exportPath != "" {
		if err := config.Export(a.exportPath, config.DefaultConfig()); err != nil {
			return nil, err
		}
		return []string{a.exportPath}, nil
	}

	cfg := config.DefaultConfig()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if a.logMode {
		cfg.Verbose = true
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	ws, err := workspace.NewDir(a.dir)
	if err != nil {
		return nil, err
	}

	var written []string
	if a.generate {
		written, err = converters.Generate(ws, opts)
		if err != nil {
			return written, err
		}
	}
	if a.combine {
		if err := converters.Combine(ws, opts); err != nil {
			return written, err
		}
		written = append(written, opts.CombinedName)
	}
	return written, nil
}

func main() {
	a, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		usage()
		os.Exit(1)
	}

	written, err := run(a)
	if err != nil {
		fmt.Printf("Error generating fixtures: %v\n", err)
		os.Exit(1)
	}

	for _, name := range written {
		fmt.Printf("Wrote %s\n", name)
	}
}
