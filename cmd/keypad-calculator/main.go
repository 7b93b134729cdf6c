package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"
	"github.com/karupanerura/keypad-calculator/internal/calculator"
	"github.com/karupanerura/keypad-calculator/internal/input"
	"github.com/karupanerura/keypad-calculator/internal/keypad"
	"github.com/karupanerura/keypad-calculator/internal/server"
	"github.com/mattn/go-isatty"
)

type Option struct {
	Files   []string          `short:"f" long:"file" description:"[OPTIONAL] Key script file (YAML or JSON), may be repeated" required:"false"`
	Keys    string            `short:"k" long:"keys" description:"[OPTIONAL] Comma separated key labels to press" required:"false"`
	Expect  string            `short:"e" long:"expect" description:"[OPTIONAL] Display expected after --keys" required:"false"`
	Aliases map[string]string `short:"a" long:"alias" description:"[OPTIONAL] Extra key label as alias:label, may be repeated" required:"false"`
	Listen  string            `short:"l" long:"listen" description:"[OPTIONAL] Listen host and port to serve sessions over HTTP" required:"false"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	_, err := parser.ParseArgs(args)
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		} else {
			parser.WriteHelp(os.Stdout)
			return 1
		}
	}
	if opt.Listen != "" && (len(opt.Files) != 0 || opt.Keys != "") {
		parser.WriteHelp(os.Stdout)
		return 1
	}

	keymap, err := keypad.DefaultKeymap().WithAliases(opt.Aliases)
	if err != nil {
		log.Printf("invalid alias: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// server mode
	if opt.Listen != "" {
		if err = server.ListenAndServe(ctx, opt.Listen, server.NewHTTPHandler(keymap)); err != nil {
			log.Printf("failed to serve: %v", err)
			return 1
		}
		return 0
	}

	scripts, err := loadScripts(opt)
	if err != nil {
		log.Printf("failed to load scripts: %v", err)
		return 1
	}

	// interactive mode
	if len(scripts) == 0 {
		if err = interact(ctx, os.Stdin, os.Stdout, keymap); err != nil {
			log.Printf("failed to read keys: %v", err)
			return 1
		}
		return 0
	}

	reports, err := keypad.Replay(ctx, keymap, scripts)
	if err != nil {
		log.Printf("failed to replay scripts: %v", err)
		return 1
	}
	if err = dumpJSON(os.Stdout, reports); err != nil {
		log.Printf("failed to dump reports: %v", err)
		return 1
	}
	if failed := keypad.Failed(reports); len(failed) != 0 {
		log.Printf("failed scripts: %s", strings.Join(failed, ", "))
		return 1
	}
	return 0
}

func loadScripts(opt Option) ([]keypad.Script, error) {
	var scripts []keypad.Script
	for _, path := range opt.Files {
		s, err := keypad.ParseScriptFile(path)
		if err != nil {
			return nil, fmt.Errorf("keypad.ParseScriptFile: %w", err)
		}
		scripts = append(scripts, s...)
	}

	if opt.Keys != "" {
		script := keypad.Script{Name: "keys", Keys: splitKeys(opt.Keys)}
		if opt.Expect != "" {
			script.Expect = &opt.Expect
		}
		scripts = append(scripts, script)
	}
	return scripts, nil
}

// splitKeys splits a comma separated list of labels, dropping empty ones.
func splitKeys(s string) []string {
	var keys []string
	for _, key := range strings.Split(s, ",") {
		key = strings.TrimSpace(key)
		if key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// interact reads whitespace separated labels line by line and prints the
// display after each line.
func interact(ctx context.Context, r io.Reader, w io.Writer, keymap *keypad.Keymap) error {
	s := calculator.NewSession()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		results, err := keypad.PressAll(ctx, s, keymap, strings.Fields(scanner.Text()))
		if err != nil {
			return err
		}
		for _, result := range results {
			if result.Result == input.AddingPossible.String() || result.Result == keypad.Evaluated {
				continue
			}
			if err = dumpJSON(w, result); err != nil {
				return err
			}
		}
		if _, err = fmt.Fprintln(w, s.Display()); err != nil {
			return fmt.Errorf("fmt.Fprintln: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner.Scan: %w", err)
	}
	return nil
}

func dumpJSON(w io.Writer, v any) error {
	opts := []json.EncodeOptionFunc{json.DisableHTMLEscape()}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if isatty.IsTerminal(f.Fd()) {
			opts = append(opts, json.Colorize(json.DefaultColorScheme))
		}
	}

	b, err := json.MarshalIndentWithOption(v, "", "\t", opts...)
	if err != nil {
		return fmt.Errorf("json.MarshalIndentWithOption: %w", err)
	}

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
