package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/nglogan/nglogan/internal/models"
)

// logFilePattern matches dated ui access log filenames, plain or gzipped.
var logFilePattern = regexp.MustCompile(`^nginx-access-ui\.log-(\d{8})(\.gz)?$`)

const logFileDateLayout = "20060102"

// FindLatestLog scans logDir and returns the log file with the latest date
// embedded in its filename. It returns (nil, nil) when the directory does
// not exist or contains no matching file. Files whose date token does not
// parse as a calendar date are skipped. On identical dates the first file
// encountered wins, because only a strictly later date replaces the
// current best.
func FindLatestLog(logDir string) (*models.LogFileInfo, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read log directory %s: %w", logDir, err)
	}

	var latest *models.LogFileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		matches := logFilePattern.FindStringSubmatch(entry.Name())
		if matches == nil {
			continue
		}

		date, err := time.Parse(logFileDateLayout, matches[1])
		if err != nil {
			continue
		}

		if latest == nil || date.After(latest.Date) {
			latest = &models.LogFileInfo{
				Path:      filepath.Join(logDir, entry.Name()),
				Date:      date,
				Extension: matches[2],
			}
		}
	}

	return latest, nil
}
