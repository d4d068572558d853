// Command fixtures downloads public domain story files from the
// IF-Archive for use as golden-file regression fixtures against the
// Validator and round-trip decode helpers. It is not part of the
// build pipeline; it's a developer tool for populating testdata.
//
// Grounded on selectstoryui/ui.go's downloadStoryList/downloadStory:
// same goquery index scrape and sha256-keyed, TTL'd file cache, minus
// the bubbletea picker since this runs non-interactively in CI.
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const indexURL = "https://www.ifarchive.org/indexes/if-archive/games/zcode/"
const cacheTTL = 7 * 24 * time.Hour

var versionPattern = regexp.MustCompile(`\.z([12345678])$`)

type storyLink struct {
	name string
	href string
	ver  byte
}

func main() {
	dir := flag.String("dir", "testdata/fixtures", "directory to write downloaded story files into")
	version := flag.String("version", "", "only fetch story files of this Z-Machine version (1-8); empty means all")
	limit := flag.Int("limit", 10, "maximum number of story files to fetch")
	flag.Parse()

	if err := run(*dir, *version, *limit); err != nil {
		fmt.Fprintln(os.Stderr, "fixtures:", err)
		os.Exit(1)
	}
}

func run(dir, version string, limit int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	links, err := fetchIndex(dir)
	if err != nil {
		return fmt.Errorf("fetching index: %w", err)
	}

	fetched := 0
	for _, l := range links {
		if fetched >= limit {
			break
		}
		if version != "" && string(l.ver) != version {
			continue
		}

		data, err := fetchStory(l.href, dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fixtures: skipping %s: %v\n", l.name, err)
			continue
		}

		dest := filepath.Join(dir, sanitizeName(l.name)+".z"+string(l.ver))
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
		fmt.Printf("fixtures: wrote %s (%d bytes)\n", dest, len(data))
		fetched++
	}

	fmt.Printf("fixtures: fetched %d stories\n", fetched)
	return nil
}

// fetchIndex scrapes the IF-Archive zcode directory listing the same
// way downloadStoryList does: a dl/dt per title, an href ending in
// .zN giving the Z-Machine version.
func fetchIndex(cacheDir string) ([]storyLink, error) {
	cachePath := cacheFilePath(cacheDir, "index.html")
	var body []byte

	if isCacheValid(cachePath) {
		if data, err := os.ReadFile(cachePath); err == nil {
			body = data
		}
	}

	if body == nil {
		c := &http.Client{Timeout: 10 * time.Second}
		res, err := c.Get(indexURL)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
		}
		body, err = io.ReadAll(res.Body)
		if err != nil {
			return nil, err
		}
		_ = os.WriteFile(cachePath, body, 0o644)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}

	var links []storyLink
	doc.Find("dl dt").Each(func(_ int, s *goquery.Selection) {
		title := strings.Replace(s.Find("a").Text(), "◆", "", 1)
		href, _ := s.Find("a").Attr("href")
		m := versionPattern.FindStringSubmatch(href)
		if m == nil {
			return
		}
		links = append(links, storyLink{name: title, href: href, ver: m[1][0]})
	})

	return links, nil
}

func fetchStory(href, cacheDir string) ([]byte, error) {
	full := href
	if !strings.HasPrefix(full, "http") {
		full = "https://www.ifarchive.org" + href
	}

	cachePath := cacheFilePath(cacheDir, full)
	if isCacheValid(cachePath) {
		if data, err := os.ReadFile(cachePath); err == nil {
			return data, nil
		}
	}

	c := &http.Client{Timeout: 60 * time.Second}
	res, err := c.Get(full)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	_ = os.WriteFile(cachePath, data, 0o644)
	return data, nil
}

func cacheFilePath(cacheDir, key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(cacheDir, ".cache-"+hex.EncodeToString(hash[:]))
}

func isCacheValid(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) < cacheTTL
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
	return strings.Trim(name, "_")
}
