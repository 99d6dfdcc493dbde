// Copyright 2025 The SpellServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the spell checking server and CLI application.

Note: This is a BETA release. APIs and functionality may rapidly change.

SpellServe provides fast spell checking and correction suggestions using a
Patricia trie word index with frequency ranking and phonetic matching. It can
operate as a MessagePack IPC server for integration with text editors, as an
interactive CLI for testing and debugging, or as a one-shot file checker.

Corrections combine single-edit candidate generation (deletions, insertions,
substitutions, adjacent transpositions and word splits) with phonetic bucket
lookups and prefix completions, ranked by a weighted score of edit distance,
word frequency and shared prefix length.

# Usage

Check a file and print misspellings with positions:

	spellserve document.txt

Check a single word:

	spellserve -w helo

Run the interactive CLI with a custom dictionary:

	spellserve -i -dict /path/to/words.dict

Start the MessagePack IPC server:

	spellserve -serve

The dictionary file holds one word per line with an optional frequency:

	hello:2415
	world:1938
	gopher

Words without a frequency default to 1. The dictionary is rewritten in
sorted order by -a/-r and the CLI :save command.

# Configuration

Runtime configuration is managed through a TOML file that supports engine
parameters, dictionary settings, and server limits:

	[engine]
	max_edit_distance = 2
	max_suggestions = 10
	edit_distance_weight = 1.0
	frequency_weight = 0.5

	[dict]
	path = "dictionaries/en_US.dict"
	default_frequency = 1

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Requests are
processed synchronously with microsecond timing information included in
responses.

Send a check request:

	{"id": "req1", "op": "check", "w": "helo"}

Receive the verdict with ranked corrections:

	{"id": "req1", "ok": false, "s": ["hello", "help", "hole"], "c": 3, "t": 145}

Dictionary management requests mutate the loaded word set at runtime:

	{"id": "dict1", "op": "add", "w": "hyperscaler", "f": 20}
	{"id": "dict2", "op": "remove", "w": "hyperscaler"}

# Command Line Flags

The following flags control application behavior:

	-dict string
	    Path to the dictionary file (default "dictionaries/en_US.dict")
	-d  Enable debug mode with detailed logging
	-i  Run the interactive CLI instead of one-shot mode
	-serve
	    Start the MessagePack IPC server
	-w string
	    Check a single word and exit
	-a string
	    Add a word to the dictionary and save
	-r string
	    Remove a word from the dictionary and save
	-s int
	    Number of suggestions to return (default from config)
	-stats
	    Print dictionary statistics and exit
	-no-filter
	    Disable input filtering for debugging
	-case-sensitive
	    Keep token casing when checking text
	-ignore-numbers
	    Skip numeric tokens when checking text (default true)
	-ignore-urls
	    Skip URLs when checking text (default true)
	-ignore-emails
	    Skip email addresses when checking text (default true)
	-config string
	    Path to a custom config.toml

Exactly one positional argument is accepted: a file to spell check.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/spellserve/internal/cli"
	"github.com/bastiangx/spellserve/internal/utils"
	"github.com/bastiangx/spellserve/pkg/checker"
	"github.com/bastiangx/spellserve/pkg/config"
	"github.com/bastiangx/spellserve/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "spellserve"
	gh      = "https://github.com/bastiangx/spellserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	dictPath := flag.String("dict", "", "Path to the dictionary file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	interactive := flag.Bool("i", false, "Run interactive CLI -- useful for testing and debugging")
	serveMode := flag.Bool("serve", false, "Start the MessagePack IPC server")
	checkWord := flag.String("w", "", "Check a single word and exit")
	addWord := flag.String("a", "", "Add a word to the dictionary and save")
	removeWord := flag.String("r", "", "Remove a word from the dictionary and save")
	suggestLimit := flag.Int("s", 0, "Number of suggestions to return")
	showStats := flag.Bool("stats", false, "Print dictionary statistics and exit")
	noFilter := flag.Bool("no-filter", false, "Disable input filtering (DBG only)")
	caseSensitive := flag.Bool("case-sensitive", false, "Keep token casing when checking text")
	ignoreNumbers := flag.Bool("ignore-numbers", true, "Skip numeric tokens when checking text")
	ignoreURLs := flag.Bool("ignore-urls", true, "Skip URLs when checking text")
	ignoreEmails := flag.Bool("ignore-emails", true, "Skip email addresses when checking text")
	configPath := flag.String("config", "", "Path to a custom config.toml")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	dict := appConfig.Dict.Path
	if *dictPath != "" {
		dict = *dictPath
	}
	limit := appConfig.Engine.MaxSuggestions
	if *suggestLimit > 0 {
		limit = *suggestLimit
	}

	chk := checker.New()
	chk.Engine().SetMaxEditDistance(appConfig.Engine.MaxEditDistance)
	chk.Engine().SetWeights(appConfig.Weights())
	chk.SetMaxSuggestions(limit)

	proc := chk.Processor()
	proc.SetCaseSensitive(*caseSensitive)
	proc.SetIgnoreNumbers(*ignoreNumbers)
	proc.SetIgnoreURLs(*ignoreURLs)
	proc.SetIgnoreEmails(*ignoreEmails)

	if utils.FileExists(dict) {
		if err := chk.LoadDictionary(dict); err != nil {
			log.Fatalf("Failed to load dictionary: %v", err)
		}
		log.Debugf("Loaded %d words from ( %s )", chk.WordCount(), dict)
	} else {
		log.Warnf("Dictionary file not found at %s, starting with empty dictionary...", dict)
	}

	switch {
	case *addWord != "":
		chk.AddWordWithFrequency(*addWord, appConfig.DictFrequency())
		if err := chk.SaveDictionary(dict); err != nil {
			log.Fatalf("Failed to save dictionary: %v", err)
		}
		log.Printf("Added '%s' to %s", *addWord, dict)

	case *removeWord != "":
		if !chk.RemoveWord(*removeWord) {
			log.Fatalf("Word not found: %s", *removeWord)
		}
		if err := chk.SaveDictionary(dict); err != nil {
			log.Fatalf("Failed to save dictionary: %v", err)
		}
		log.Printf("Removed '%s' from %s", *removeWord, dict)

	case *showStats:
		stats := chk.Stats()
		log.Printf("Words:  %s", utils.FormatWithCommas(stats.WordCount))
		log.Printf("Memory: %s bytes", utils.FormatWithCommas(stats.MemoryBytes))

	case *checkWord != "":
		runWordCheck(chk, *checkWord)

	case *interactive:
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(chk, dict, limit, *noFilter)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}

	case *serveMode:
		log.Debug("spawning IPC")
		srv := server.NewServer(chk, appConfig.Server.RequestsPerSec, appConfig.Server.Burst)
		showStartupInfo(dict, chk.WordCount(), appConfig.Engine.MaxEditDistance)
		if err := srv.Start(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}

	case flag.NArg() == 1:
		runFileCheck(chk, flag.Arg(0))

	default:
		flag.Usage()
		os.Exit(2)
	}
}

// runWordCheck verifies one word and prints corrections to stdout.
func runWordCheck(chk *checker.Checker, word string) {
	if chk.IsCorrect(word) {
		fmt.Printf("'%s' is spelled correctly\n", word)
		return
	}
	fmt.Printf("'%s' is not in the dictionary\n", word)
	suggestions := chk.Suggestions(word)
	if len(suggestions) == 0 {
		fmt.Println("No suggestions found")
		os.Exit(1)
	}
	fmt.Println("Did you mean:")
	for i, s := range suggestions {
		fmt.Printf("%2d. %s\n", i+1, s)
	}
	os.Exit(1)
}

// runFileCheck spell checks a file and prints each misspelling with
// its position. Exits nonzero when misspellings are found.
func runFileCheck(chk *checker.Checker, path string) {
	missing, err := chk.CheckFile(path)
	if err != nil {
		log.Fatalf("Failed to check file: %v", err)
	}
	if len(missing) == 0 {
		fmt.Printf("%s: no misspellings found\n", path)
		return
	}
	for _, m := range missing {
		fmt.Printf("Line %d, Column %d: '%s'\n", m.Line, m.Column, m.Word)
		suggestions := chk.Suggestions(m.Word)
		if len(suggestions) > 0 {
			fmt.Printf("  did you mean: %s\n", formatList(suggestions))
		}
	}
	fmt.Printf("%s: %d misspellings\n", path, len(missing))
	os.Exit(1)
}

func formatList(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += ", "
		}
		out += w
	}
	return out
}

// printVersion shows the lipgloss-styled version banner.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()

	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["version"] = lipgloss.NewStyle().
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})

	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ SpellServe ] Serves really fast spell checking!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dictPath string, wordCount, maxEditDistance int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("============")
	println(" SpellServe ")
	println("============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("dictionary: ( %s )", dictPath)
	log.Infof("words: [ %d ]", wordCount)
	log.Infof("max edit distance: [ %d ]", maxEditDistance)
	log.Info("status: ready")
	println("============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
