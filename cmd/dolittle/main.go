// Command dolittle is a line-oriented REPL for the dolittle-go
// interpreter: a bufio.Scanner over stdin, one exec per line, the heap
// kept alive across lines until exit.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	dolittle "github.com/higumachan/dolittle-go"
	"github.com/higumachan/dolittle-go/internal"
)

func main() {
	configPath := flag.String("config", "", "path to a dolittle.yaml startup config")
	trace := flag.Bool("trace", false, "log one line per evaluated method call")
	flag.Parse()

	cfg := dolittle.DefaultConfig()
	if *configPath != "" {
		loaded, err := dolittle.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "dolittle: loading config:", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	interp := dolittle.New()
	if *trace || cfg.Trace {
		interp.SetTracer(os.Stderr)
	}

	fmt.Printf("dolittle-go on %s\n", internal.HostInfo())

	if cfg.Init != "" {
		src, err := os.ReadFile(cfg.Init)
		if err != nil {
			fmt.Fprintln(os.Stderr, "dolittle: reading init file:", err)
		} else if err := interp.Exec(string(src)); err != nil {
			fmt.Fprintln(os.Stderr, "dolittle:", err)
		}
	}

	stdin := bufio.NewScanner(os.Stdin)
	fmt.Print(cfg.PS1)
	for stdin.Scan() {
		line := stdin.Text()
		if err := interp.Exec(line); err != nil {
			fmt.Println("error:", err)
		}
		fmt.Print(cfg.PS1)
	}
	fmt.Println()
	if err := stdin.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "dolittle:", err)
		os.Exit(1)
	}
}
