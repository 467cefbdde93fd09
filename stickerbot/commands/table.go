package commands

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/silenole/stickerbot/stickerbot/config"
)

// Command binds a keyword to a handler name.
type Command struct {
	Name    string
	Keyword string
}

// Table is checked in order; the first keyword contained in the message wins.
type Table []Command

func DefaultTable() Table {
	return Table{
		{Name: config.CommandHelp, Keyword: "ayuda"},
		{Name: config.CommandOpenPack, Keyword: "abrir sobre"},
		{Name: config.CommandViewAlbum, Keyword: "ver album"},
	}
}

// Len and String implement fuzzy.Source over the keywords.
func (t Table) Len() int {
	return len(t)
}

func (t Table) String(i int) string {
	return t[i].Keyword
}

// Match expects text already lower-cased.
func (t Table) Match(text string) (Command, bool) {
	for _, c := range t {
		if c.Keyword != "" && strings.Contains(text, c.Keyword) {
			return c, true
		}
	}
	return Command{}, false
}

// Suggest returns the keyword closest to what the user typed after the wake
// word, if any keyword is a fuzzy match for it.
func (t Table) Suggest(rest string) (Command, bool) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return Command{}, false
	}
	matches := fuzzy.FindFrom(rest, t)
	if len(matches) == 0 {
		return Command{}, false
	}
	return t[matches[0].Index], true
}

// Keyword returns the configured keyword for a handler name.
func (t Table) Keyword(name string) string {
	for _, c := range t {
		if c.Name == name {
			return c.Keyword
		}
	}
	return ""
}
