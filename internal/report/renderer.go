package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nglogan/nglogan/internal/models"
)

// tablePlaceholder is the single substitution token in the report template.
// Any other placeholder text in the template is left untouched.
const tablePlaceholder = "$table_json"

// Generate renders the top reportSize URLs by total time into an HTML file
// at outputPath, substituting the serialized table into the template at
// templatePath. Parent directories are created as needed and an existing
// report at outputPath is overwritten.
func Generate(stats map[string]*models.ReportEntry, reportSize int, templatePath, outputPath string) error {
	entries := make([]*models.ReportEntry, 0, len(stats))
	for _, entry := range stats {
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TimeSum > entries[j].TimeSum
	})
	if reportSize >= 0 && len(entries) > reportSize {
		entries = entries[:reportSize]
	}

	tableJSON, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to serialize report table: %w", err)
	}

	template, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read report template %s: %w", templatePath, err)
	}

	content := strings.ReplaceAll(string(template), tablePlaceholder, string(tableJSON))

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", outputPath, err)
	}

	slog.Info("report_generated", "path", outputPath)
	return nil
}
