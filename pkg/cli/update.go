package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"regexp"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

type githubRelease struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
	Assets     []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

var semverRe = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

// detectLatestFallback queries the GitHub Releases API for repo and returns
// the highest published semver release. It returns (nil, false, nil) when
// no release qualifies.
func detectLatestFallback(repo string) (*selfupdate.Release, bool, error) {
	apiURL := fmt.Sprintf("https://api.github.com/repos/%s/releases", repo)
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(apiURL)
	if err != nil {
		return nil, false, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed reading github response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(body))
	}

	var releases []githubRelease
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, false, fmt.Errorf("failed to decode github releases: %w", err)
	}
	r, ok := pickLatestRelease(releases)
	return r, ok, nil
}

// pickLatestRelease skips drafts and prereleases, reads a semver from the tag
// (or the release name) and returns the highest one. Assets whose names
// mention an OS or architecture are preferred over the first asset.
func pickLatestRelease(releases []githubRelease) (*selfupdate.Release, bool) {
	type candidate struct {
		ver      semver.Version
		assetURL string
	}
	var candidates []candidate
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		match := semverRe.FindString(r.TagName)
		if match == "" {
			if match = semverRe.FindString(r.Name); match == "" {
				continue
			}
		}
		v, err := semver.Parse(strings.TrimPrefix(match, "v"))
		if err != nil {
			continue
		}
		assetURL := ""
		for _, a := range r.Assets {
			n := strings.ToLower(a.Name)
			if strings.Contains(n, "darwin") || strings.Contains(n, "linux") || strings.Contains(n, "windows") ||
				strings.Contains(n, "amd64") || strings.Contains(n, "arm64") {
				assetURL = a.BrowserDownloadURL
				break
			}
			if assetURL == "" {
				assetURL = a.BrowserDownloadURL
			}
		}
		candidates = append(candidates, candidate{ver: v, assetURL: assetURL})
	}
	if len(candidates) == 0 {
		return nil, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ver.GT(candidates[j].ver)
	})
	return &selfupdate.Release{Version: candidates[0].ver, AssetURL: candidates[0].assetURL}, true
}

// CheckForUpdates compares Version with the latest release of
// cfg.UpdateRepo and, after confirmation read from in, replaces the running
// executable and restarts it.
func CheckForUpdates(cfg Config, in *bufio.Reader, out io.Writer) error {
	repo := cfg.UpdateRepo
	latest, found, err := detectLatestFallback(repo)
	fmt.Fprintf(out, "Current version: %s\n", Version)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if !found || latest == nil {
		fmt.Fprintf(out, "No releases found for %s.\n", repo)
		return nil
	}
	fmt.Fprintf(out, "Latest version: %s\n", latest.Version)

	currentVer, parseErr := semver.Parse(strings.TrimPrefix(Version, "v"))
	if parseErr != nil {
		fmt.Fprintf(out, "warning: could not parse current version %q: %v\n", Version, parseErr)
	} else if latest.Version.LTE(currentVer) {
		fmt.Fprintf(out, "You are already running the latest version: %s.\n", currentVer)
		return nil
	}

	if latest.AssetURL == "" {
		fmt.Fprintf(out, "A new version (%s) is available but there is no downloadable asset.\n", latest.Version)
		fmt.Fprintln(out, "Please visit the project releases page to download the new version.")
		return nil
	}

	answer, err := PromptLineFrom(in, out, fmt.Sprintf("A new version (%s) is available. Update now? (y/N): ", latest.Version))
	if err != nil {
		return fmt.Errorf("failed reading input: %w", err)
	}
	if answer = strings.ToLower(answer); answer != "y" && answer != "yes" {
		fmt.Fprintln(out, "Update cancelled.")
		return nil
	}

	fmt.Fprintln(out, "Updating...")
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	// Exec only returns on error.
	argv := append([]string{exe}, os.Args[1:]...)
	if err := syscall.Exec(exe, argv, os.Environ()); err != nil {
		cmd := exec.Command(exe, os.Args[1:]...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if startErr := cmd.Start(); startErr != nil {
			fmt.Fprintf(out, "Updated to version %s, but failed to restart automatically: %v; fallback start error: %v\n", latest.Version, err, startErr)
			fmt.Fprintln(out, "Please restart the application manually.")
			return nil
		}
		os.Exit(0)
	}
	return nil
}
