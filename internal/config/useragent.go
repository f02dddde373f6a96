package config

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
)

// ServerName is the MCP implementation name and User-Agent product token.
const ServerName = "gpt5-mcp"

var platformOnce = sync.OnceValue(detectPlatform)

// UserAgent builds the User-Agent sent upstream:
// gpt5-mcp/<version> (<os> <release>; <arch>; <go version>)
func UserAgent(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		version = "dev"
	}
	ua := fmt.Sprintf("%s/%s (%s; %s; %s)", ServerName, version, platformOnce(), runtime.GOARCH, runtime.Version())
	return headerSafe(ua, ServerName+"/"+version)
}

func detectPlatform() string {
	name := runtime.GOOS
	if name != "linux" {
		return name
	}
	f, err := os.Open("/etc/os-release")
	if err != nil {
		return name
	}
	defer f.Close()
	if release := osReleaseVersion(f); release != "" {
		return name + " " + release
	}
	return name
}

// osReleaseVersion reads VERSION_ID, falling back to VERSION, from os-release
// formatted content.
func osReleaseVersion(f *os.File) string {
	var versionID, version string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok || strings.HasPrefix(key, "#") {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		switch key {
		case "VERSION_ID":
			versionID = value
		case "VERSION":
			version = value
		}
	}
	if versionID != "" {
		return versionID
	}
	return version
}

// headerSafe replaces bytes that net/http rejects in header values. An empty
// result falls back to the bare product token.
func headerSafe(s, fallback string) string {
	var b strings.Builder
	for _, r := range s {
		if r < ' ' || r > '~' {
			r = '_'
		}
		b.WriteRune(r)
	}
	if strings.TrimSpace(b.String()) == "" {
		return fallback
	}
	return b.String()
}
