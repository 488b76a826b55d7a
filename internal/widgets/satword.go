package widgets

import (
	"bufio"
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"strings"

	"splitflap/internal/applog"
	"splitflap/internal/board"
)

// SATWordWidget shows a random vocabulary entry from a dictionary file.
// Each line reads `word (type) definition (example)`.
type SATWordWidget struct {
	Path string
}

type dictEntry struct {
	word       string
	wordType   string
	definition string
}

func (SATWordWidget) Name() string { return "sat-word" }

func (w SATWordWidget) Generate(_ context.Context, _ json.RawMessage) ([]string, error) {
	entries, err := loadDictionary(w.Path)
	if err != nil {
		return nil, &WidgetError{Widget: "sat-word", Reason: "reading dictionary", Err: err}
	}
	if len(entries) == 0 {
		return nil, &WidgetError{Widget: "sat-word", Reason: "no words available in dictionary"}
	}
	entry := entries[rand.Intn(len(entries))]
	applog.Infof("sat-word widget: selected %q (%s)", entry.word, entry.wordType)

	lines := []string{entry.word + " (" + entry.wordType + "):", ""}
	lines = append(lines, board.Wrap(entry.definition)...)
	return lines, nil
}

func loadDictionary(path string) ([]dictEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []dictEntry
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		entry, ok := parseDictLine(scanner.Text())
		if !ok {
			if strings.TrimSpace(scanner.Text()) != "" {
				applog.Warnf("dictionary line %d does not follow expected pattern", lineNo)
			}
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// parseDictLine splits `word (type) definition (example)`; the trailing
// example is dropped from the board output.
func parseDictLine(line string) (dictEntry, bool) {
	line = strings.ToLower(strings.TrimSpace(line))
	word, rest, ok := strings.Cut(line, " ")
	if !ok {
		return dictEntry{}, false
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "(") {
		return dictEntry{}, false
	}
	wordType, rest, ok := strings.Cut(rest[1:], ")")
	if !ok {
		return dictEntry{}, false
	}
	definition := strings.TrimSpace(rest)
	if open := strings.LastIndex(definition, "("); open >= 0 && strings.HasSuffix(definition, ")") {
		definition = strings.TrimSpace(definition[:open])
	}
	if word == "" || wordType == "" || definition == "" {
		return dictEntry{}, false
	}
	return dictEntry{word: word, wordType: strings.TrimSpace(wordType), definition: definition}, true
}
