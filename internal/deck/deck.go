package deck

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// superstarSuffix marks the first line of a text deck list.
const superstarSuffix = " (Superstar Card)"

// List is a raw deck: the chosen superstar and the card titles in arsenal order.
type List struct {
	Name      string
	Superstar string
	Titles    []string
}

// DeckFile represents the top-level YAML structure.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry represents a single deck in the YAML file.
type DeckEntry struct {
	Name      string      `yaml:"name"`
	Superstar string      `yaml:"superstar"`
	Cards     []CardEntry `yaml:"cards"`
}

// CardEntry represents a card and its count in a deck.
type CardEntry struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// Load reads a deck file, choosing the format by extension. YAML files may hold
// several decks; text files hold exactly one.
func Load(path string) ([]List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		l, err := ParseText(data)
		if err != nil {
			return nil, err
		}
		if l.Name == "" {
			l.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		return []List{l}, nil
	}
}

// LoadOne reads a deck file and returns its nth deck (1-indexed).
func LoadOne(path string, n int) (List, error) {
	lists, err := Load(path)
	if err != nil {
		return List{}, err
	}
	if n < 1 || n > len(lists) {
		return List{}, fmt.Errorf("deck %d not found (have %d decks)", n, len(lists))
	}
	return lists[n-1], nil
}

// ParseText parses the plain list format: the first non-blank line names the
// superstar, every following non-blank line is one card title.
func ParseText(data []byte) (List, error) {
	var l List
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if l.Superstar == "" {
			l.Superstar = strings.TrimSuffix(line, superstarSuffix)
			continue
		}
		l.Titles = append(l.Titles, line)
	}
	if err := sc.Err(); err != nil {
		return List{}, fmt.Errorf("read deck list: %w", err)
	}
	if l.Superstar == "" {
		return List{}, fmt.Errorf("deck list is empty")
	}
	return l, nil
}

// ParseYAML parses a YAML deck file.
func ParseYAML(data []byte) ([]List, error) {
	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	lists := make([]List, 0, len(df.Decks))
	for _, d := range df.Decks {
		l := List{Name: d.Name, Superstar: d.Superstar}
		for _, entry := range d.Cards {
			for i := 0; i < entry.Count; i++ {
				l.Titles = append(l.Titles, entry.Name)
			}
		}
		lists = append(lists, l)
	}
	return lists, nil
}

// Discover lists deck files (.txt, .yaml, .yml) in dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".txt", ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
