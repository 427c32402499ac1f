// Copyright 2026 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2026 Charles University, Faculty of Arts,
//                Department of Linguistics
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command soundshift is a thin demo around the library: it parses a
// rule and a sequence from the command line and prints the forward
// rewrite, the backward ancestor candidates, or a sound distance. It is
// deliberately not the full CLI surface described by the library's
// external-interface docs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/czcorpus/soundshift/cnf"
	"github.com/czcorpus/soundshift/features"
	"github.com/czcorpus/soundshift/parser"
	"github.com/czcorpus/soundshift/rules"
)

var (
	version   string
	build     string
	gitCommit string
)

// applyConf loads and applies an optional configuration file; with no
// path the process defaults stay in place.
func applyConf(confPath string) {
	if confPath == "" {
		return
	}
	conf, err := cnf.LoadConf(confPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if conf.Verbosity > 0 {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if err := conf.Apply(); err != nil {
		log.Fatal().Err(err).Msg("failed to apply config")
	}
	log.Info().
		Str("featureSystem", conf.ResolvedFeatureSystem()).
		Str("resourceDir", conf.ResourceDir).
		Msg("configured soundshift")
}

func resolveSystem(name string) features.System {
	if name == "" {
		return features.Default()
	}
	system, err := features.GetSystem(name)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resolve feature system")
	}
	return system
}

// printJSON writes v as a single JSON document on stdout.
func printJSON(v any) {
	out, err := sonic.MarshalString(v)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to serialize output")
	}
	fmt.Println(out)
}

type forwardResult struct {
	Rule   string `json:"rule"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

func runForward(args []string) {
	forwardCmd := flag.NewFlagSet("forward", flag.ExitOnError)
	confPath := forwardCmd.String("conf", "", "a path to a soundshift configuration file")
	systemName := forwardCmd.String("system", "", "feature system name (default: process default)")
	asJSON := forwardCmd.Bool("json", false, "emit the result as JSON")
	forwardCmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s forward [options] <rule> <sequence>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Apply a sound-change rule to a sequence.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		forwardCmd.PrintDefaults()
	}
	forwardCmd.Parse(args)

	if forwardCmd.NArg() < 2 {
		forwardCmd.Usage()
		os.Exit(1)
	}
	applyConf(*confPath)
	system := resolveSystem(*systemName)

	rule, err := parser.ParseRuleWithSystem(forwardCmd.Arg(0), system)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse rule")
	}
	seq := parser.ParseSequenceWithSystem(forwardCmd.Arg(1), system)
	out, err := rules.ForwardWithSystem(seq, rule, system)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to apply rule")
	}

	if *asJSON {
		printJSON(forwardResult{
			Rule:   rule.Source,
			Input:  parser.FormatSequence(seq),
			Output: parser.FormatSequence(out),
		})
		return
	}
	fmt.Println(parser.FormatSequence(out))
}

type backwardResult struct {
	Rule      string   `json:"rule"`
	Input     string   `json:"input"`
	Ancestors []string `json:"ancestors"`
}

func runBackward(args []string) {
	backwardCmd := flag.NewFlagSet("backward", flag.ExitOnError)
	confPath := backwardCmd.String("conf", "", "a path to a soundshift configuration file")
	systemName := backwardCmd.String("system", "", "feature system name (default: process default)")
	asJSON := backwardCmd.Bool("json", false, "emit the result as JSON")
	backwardCmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s backward [options] <rule> <sequence>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Enumerate possible ancestors of a sequence under a rule.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		backwardCmd.PrintDefaults()
	}
	backwardCmd.Parse(args)

	if backwardCmd.NArg() < 2 {
		backwardCmd.Usage()
		os.Exit(1)
	}
	applyConf(*confPath)
	system := resolveSystem(*systemName)

	rule, err := parser.ParseRuleWithSystem(backwardCmd.Arg(0), system)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse rule")
	}
	seq := parser.ParseSequenceWithSystem(backwardCmd.Arg(1), system)
	candidates, err := rules.BackwardWithSystem(seq, rule, system)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to enumerate ancestors")
	}

	formatted := make([]string, len(candidates))
	for i, c := range candidates {
		formatted[i] = parser.FormatSequence(c)
	}

	if *asJSON {
		printJSON(backwardResult{
			Rule:      rule.Source,
			Input:     parser.FormatSequence(seq),
			Ancestors: formatted,
		})
		return
	}
	for _, f := range formatted {
		fmt.Println(f)
	}
}

type distanceResult struct {
	System   string  `json:"system"`
	A        string  `json:"a"`
	B        string  `json:"b"`
	Distance float64 `json:"distance"`
}

func runDistance(args []string) {
	distanceCmd := flag.NewFlagSet("distance", flag.ExitOnError)
	confPath := distanceCmd.String("conf", "", "a path to a soundshift configuration file")
	systemName := distanceCmd.String("system", "", "feature system name (default: process default)")
	asJSON := distanceCmd.Bool("json", false, "emit the result as JSON")
	distanceCmd.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s distance [options] <grapheme-a> <grapheme-b>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print the geometry-weighted distance between two sounds.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		distanceCmd.PrintDefaults()
	}
	distanceCmd.Parse(args)

	if distanceCmd.NArg() < 2 {
		distanceCmd.Usage()
		os.Exit(1)
	}
	applyConf(*confPath)
	system := resolveSystem(*systemName)

	fsA, okA := system.GraphemeToFeatures(distanceCmd.Arg(0))
	fsB, okB := system.GraphemeToFeatures(distanceCmd.Arg(1))
	if !okA || !okB {
		log.Warn().
			Str("a", distanceCmd.Arg(0)).
			Str("b", distanceCmd.Arg(1)).
			Msg("one or both graphemes are unknown to the inventory")
	}
	d := system.SoundDistance(fsA, fsB)

	if *asJSON {
		printJSON(distanceResult{
			System:   system.Name(),
			A:        distanceCmd.Arg(0),
			B:        distanceCmd.Arg(1),
			Distance: d,
		})
		return
	}
	fmt.Printf("%.4f\n", d)
}

func runSystems(args []string) {
	systemsCmd := flag.NewFlagSet("systems", flag.ExitOnError)
	asJSON := systemsCmd.Bool("json", false, "emit the result as JSON")
	systemsCmd.Parse(args)

	names := features.ListSystems()
	if *asJSON {
		printJSON(names)
		return
	}
	for _, n := range names {
		fmt.Println(n)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "soundshift %s (build %s, commit %s)\n\n", version, build, gitCommit)
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  forward    Apply a sound-change rule to a sequence\n")
	fmt.Fprintf(os.Stderr, "  backward   Enumerate possible ancestors of a sequence under a rule\n")
	fmt.Fprintf(os.Stderr, "  distance   Print the distance between two sounds\n")
	fmt.Fprintf(os.Stderr, "  systems    List the registered feature systems\n")
	fmt.Fprintf(os.Stderr, "\nRun '%s <command> -h' for more information about a command.\n", os.Args[0])
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "forward":
		runForward(os.Args[2:])
	case "backward":
		runBackward(os.Args[2:])
	case "distance":
		runDistance(os.Args[2:])
	case "systems":
		runSystems(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}
