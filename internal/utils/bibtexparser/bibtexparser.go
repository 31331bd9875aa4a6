package bibtexparser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nickng/bibtex"
)

var ErrNoEntries = errors.New("no BibTeX entries found")

var (
	whitespace      = regexp.MustCompile(`\s+`)
	authorSeparator = regexp.MustCompile(`(?i)\s+and\s+`)
)

// BibEntry is one parsed entry with cleaned field values.
type BibEntry struct {
	Type     string
	CiteName string
	Fields   map[string]string
}

// Draft is the submission form prefilled from a BibTeX entry.
type Draft struct {
	BibtexEntryType string   `json:"bibtexEntryType"`
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	AuthorRaw       string   `json:"authorRaw,omitempty"`
	Journal         string   `json:"journal"`
	Booktitle       string   `json:"booktitle,omitempty"`
	Publisher       string   `json:"publisher,omitempty"`
	Year            *int     `json:"year,omitempty"`
	DOI             string   `json:"doi"`
	URL             string   `json:"url,omitempty"`
	Volume          string   `json:"volume,omitempty"`
	Number          string   `json:"number,omitempty"`
	Pages           string   `json:"pages,omitempty"`
	Abstract        string   `json:"abstract,omitempty"`
	RawBibtex       string   `json:"rawBibtex"`
}

func ParseBibTeX(content string) ([]BibEntry, error) {
	bib, err := bibtex.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse BibTeX: %w", err)
	}

	entries := make([]BibEntry, 0, len(bib.Entries))
	for _, e := range bib.Entries {
		entry := BibEntry{
			Type:     strings.ToUpper(e.Type),
			CiteName: e.CiteName,
			Fields:   make(map[string]string, len(e.Fields)),
		}
		for key, value := range e.Fields {
			if value == nil {
				continue
			}
			entry.Fields[strings.ToLower(key)] = cleanFieldValue(value.String())
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ParseDraft converts the first entry of content into a submission draft.
func ParseDraft(content string) (*Draft, error) {
	entries, err := ParseBibTeX(content)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	draft := entries[0].Draft()
	draft.RawBibtex = strings.TrimSpace(content)
	return draft, nil
}

func (e BibEntry) Draft() *Draft {
	f := e.Fields
	journal := f["journal"]
	if journal == "" {
		journal = f["booktitle"]
	}
	entryType := e.Type
	if entryType == "" {
		entryType = "ARTICLE"
	}
	return &Draft{
		BibtexEntryType: entryType,
		Title:           f["title"],
		Authors:         SplitAuthors(f["author"]),
		AuthorRaw:       f["author"],
		Journal:         journal,
		Booktitle:       f["booktitle"],
		Publisher:       f["publisher"],
		Year:            parseYear(f["year"]),
		DOI:             f["doi"],
		URL:             f["url"],
		Volume:          f["volume"],
		Number:          f["number"],
		Pages:           f["pages"],
		Abstract:        f["abstract"],
	}
}

// SplitAuthors splits a BibTeX author list on the "and" separator.
func SplitAuthors(author string) []string {
	authors := []string{}
	for _, a := range authorSeparator.Split(author, -1) {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	return authors
}

func parseYear(raw string) *int {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &year
}

func cleanFieldValue(value string) string {
	value = strings.NewReplacer("{", "", "}", "", "\"", "").Replace(value)
	value = whitespace.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}
