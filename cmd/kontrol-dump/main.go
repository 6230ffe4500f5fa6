package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/kontrolhq/kontrol"
	"github.com/kontrolhq/kontrol/report"
	"github.com/kontrolhq/kontrol/version"
)

type assignments []string

func (a *assignments) String() string     { return strings.Join(*a, ",") }
func (a *assignments) Set(s string) error { *a = append(*a, s); return nil }

func main() {
	var sets, midis assignments
	flag.Var(&sets, "set", "Change a parameter before printing, `id=value`. Numbers are clamped to the parameter range. Can be repeated.")
	flag.Var(&midis, "midi", "Move a parameter as a MIDI controller would, `id=position` with position in 0..127. Can be repeated.")
	tmplFile := flag.String("t", "", "Template file used to print the parameters. By default, prints one line per parameter.")
	reset := flag.Bool("reset", false, "Reset all parameters to their defaults after applying changes.")
	yamlOut := flag.Bool("y", false, "Print the parameter definitions as YAML instead of a listing.")
	debug := flag.Bool("debug", false, "Log diagnostics, including the values of all parameters.")
	help := flag.Bool("h", false, "Show help.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	kontrol.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	rep := report.Default()
	if *tmplFile != "" {
		text, err := os.ReadFile(*tmplFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not read template %v: %v\n", *tmplFile, err)
			os.Exit(1)
		}
		if rep, err = report.New(string(text)); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}
	process := func(r io.Reader) error {
		params, err := kontrol.LoadParams(r)
		if err != nil {
			return err
		}
		if err := apply(params, sets, midis); err != nil {
			return err
		}
		if *reset {
			params.ResetAll()
		}
		for p := range params.All() {
			p.Dump()
		}
		if *yamlOut {
			return params.Save(os.Stdout)
		}
		return rep.Write(os.Stdout, params.Slice())
	}
	files := flag.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}
	retval := 0
	for _, file := range files {
		if err := processFile(file, process); err != nil {
			fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", file, err)
			retval = 1
		}
	}
	os.Exit(retval)
}

func processFile(name string, process func(io.Reader) error) error {
	if name == "-" {
		return process(os.Stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return process(f)
}

// apply performs the -set and -midi changes, in that order.
func apply(params *kontrol.Params, sets, midis []string) error {
	for _, s := range sets {
		id, v, err := parseAssignment(s)
		if err != nil {
			return err
		}
		val := kontrol.String(v)
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			val = kontrol.Float(float32(f))
		}
		if _, err := params.Change(id, val); err != nil {
			return err
		}
	}
	for _, s := range midis {
		id, v, err := parseAssignment(s)
		if err != nil {
			return err
		}
		pos, err := strconv.Atoi(v)
		if err != nil || pos < 0 || pos > 127 {
			return fmt.Errorf("invalid MIDI position %q, expected 0..127", v)
		}
		if _, err := params.ChangeMidi(id, pos); err != nil {
			return err
		}
	}
	return nil
}

func parseAssignment(s string) (id, value string, err error) {
	id, value, ok := strings.Cut(s, "=")
	if !ok || id == "" {
		return "", "", fmt.Errorf("invalid assignment %q, expected id=value", s)
	}
	return id, value, nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Prints kontrol parameter definitions read from .yml files.\nUsage: %s [flags] [file ...]\n", os.Args[0])
	flag.PrintDefaults()
}
