// Package chrome locates a local Chrome or Chromium binary for the headless engines.
package chrome

import "os"

// commonPaths lists install locations checked when no override is given
var commonPaths = []string{
	"/usr/bin/chromium-browser",                                        // Alpine Linux (Docker)
	"/usr/bin/chromium",                                                // Some Linux distros
	"/usr/bin/google-chrome",                                           // Google Chrome on Linux
	"/usr/bin/google-chrome-stable",                                    // Google Chrome stable
	"/opt/google/chrome/chrome",                                        // Alternative Chrome path
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",     // macOS
	"C:\\Program Files\\Google\\Chrome\\Application\\chrome.exe",       // Windows
	"C:\\Program Files (x86)\\Google\\Chrome\\Application\\chrome.exe", // Windows 32-bit
}

// FindBinary returns override when it exists, then CHROME_PATH, then the
// first common install path found. Empty means none was found.
func FindBinary(override string) string {
	candidates := []string{override, os.Getenv("CHROME_PATH")}
	candidates = append(candidates, commonPaths...)

	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
