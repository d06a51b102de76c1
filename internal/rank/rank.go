// Package rank orders switcher candidates for a query.
package rank

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mj1618/switcheroo/internal/model"
)

// Result is one ranked window.
type Result struct {
	App    string       `yaml:"app"               json:"app"`
	Window model.Window `yaml:"window"            json:"window"`
	Score  int          `yaml:"score"             json:"score"`
	// Matched holds byte offsets into Text that matched the query.
	Matched []int  `yaml:"matched,omitempty" json:"matched,omitempty"`
	Text    string `yaml:"-"                 json:"-"`
}

// candidates adapts a window list to fuzzy.Source.
type candidates []Result

func (c candidates) String(i int) string { return c[i].Text }
func (c candidates) Len() int            { return len(c) }

// Candidates flattens apps into unranked results. Each result's Text is
// "<app name> <window title>".
func Candidates(apps []model.App) []Result {
	var out []Result
	for _, app := range apps {
		for _, w := range app.Windows {
			out = append(out, Result{
				App:    app.Name,
				Window: w,
				Text:   app.Name + " " + w.Title,
			})
		}
	}
	return out
}

// Rank scores every candidate against query and returns the matches ordered
// by descending score, then app name, then window title. An empty query keeps
// every candidate with score 0.
func Rank(query string, results []Result) []Result {
	var ranked []Result
	if strings.TrimSpace(query) == "" {
		ranked = append(ranked, results...)
		for i := range ranked {
			ranked[i].Score = 0
			ranked[i].Matched = nil
		}
	} else {
		src := candidates(results)
		for _, m := range fuzzy.FindFrom(query, src) {
			r := src[m.Index]
			r.Score = m.Score
			r.Matched = m.MatchedIndexes
			ranked = append(ranked, r)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.App != b.App {
			return a.App < b.App
		}
		return a.Window.Title < b.Window.Title
	})
	return ranked
}

// FilterApp keeps results whose app name contains name, case-insensitively.
func FilterApp(results []Result, name string) []Result {
	if name == "" {
		return results
	}
	needle := strings.ToLower(name)
	var out []Result
	for _, r := range results {
		if strings.Contains(strings.ToLower(r.App), needle) {
			out = append(out, r)
		}
	}
	return out
}

// Pick returns the result for windowID, or the top result when windowID is 0.
func Pick(results []Result, windowID uint32) (Result, bool) {
	if windowID == 0 {
		if len(results) == 0 {
			return Result{}, false
		}
		return results[0], true
	}
	for _, r := range results {
		if r.Window.ID == windowID {
			return r, true
		}
	}
	return Result{}, false
}
