// Package updater checks the release feed for a newer SkillPort build.
package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultURL is the latest-release endpoint.
const DefaultURL = "https://api.github.com/repos/Dicklesworthstone/skillport/releases/latest"

// checkTimeout keeps a slow feed from delaying startup.
const checkTimeout = 2 * time.Second

// Release is the subset of the release payload we read.
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Checker queries a release feed.
type Checker struct {
	URL    string
	Client *http.Client
}

// New returns a checker for the default feed.
func New() *Checker {
	return &Checker{URL: DefaultURL, Client: &http.Client{Timeout: checkTimeout}}
}

// Check returns the newer release, or nil when current is up to date.
func (c *Checker) Check(ctx context.Context, current string) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("check for updates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release feed returned status: %s", resp.Status)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if CompareVersions(rel.TagName, current) > 0 {
		return &rel, nil
	}
	return nil, nil
}

// CompareVersions returns 1 if v1 > v2, -1 if v1 < v2, 0 if equal. Versions
// are dotted numbers with an optional "v" prefix; a pre-release suffix after
// "-" is ignored. Missing segments count as zero.
func CompareVersions(v1, v2 string) int {
	a, b := segments(v1), segments(v2)
	for i := 0; i < max(len(a), len(b)); i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		switch {
		case x > y:
			return 1
		case x < y:
			return -1
		}
	}
	return 0
}

func segments(v string) []int {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ".")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			n = 0
		}
		out[i] = n
	}
	return out
}
