// Package docs embeds the help topics served by `craveboard docs`.
package docs

import (
	"embed"
	"sort"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// Topic is one embedded help page. Title comes from the page's first
// heading so listings stay in sync with the markdown itself.
type Topic struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Topics lists the embedded pages sorted by name.
func Topics() []Topic {
	entries, err := contentFS.ReadDir("content")
	if err != nil {
		return nil
	}
	topics := make([]Topic, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		if name == "" || name == e.Name() {
			continue
		}
		body, _ := Get(name)
		topics = append(topics, Topic{Name: name, Title: firstHeading(body)})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics
}

// Get returns the markdown body of a topic. Lookup is case-insensitive.
func Get(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}
	b, err := contentFS.ReadFile("content/" + name + ".md")
	if err != nil {
		return "", false
	}
	return string(b), true
}

func firstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if t, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(t)
		}
	}
	return ""
}
