package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nglogan/nglogan/internal/models"
)

func logLine(url string, requestTime float64) string {
	return fmt.Sprintf(`1.196.116.32 -  - [29/Jun/2017:03:50:22 +0300] `+
		`"GET %s HTTP/1.1" 200 927 "-" "-" "-" "-" "-" %.3f`, url, requestTime)
}

func writePlainLog(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nginx-access-ui.log-20170630")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func writeGzipLog(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nginx-access-ui.log-20170630.gz")

	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	gz := gzip.NewWriter(file)
	_, err = gz.Write([]byte(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	return path
}

func drain(t *testing.T, reader *RecordReader) ([]models.LogRecord, error) {
	t.Helper()
	defer reader.Close()

	var records []models.LogRecord
	for reader.Scan() {
		records = append(records, reader.Record())
	}
	return records, reader.Err()
}

func TestRecordReader_PlainFile(t *testing.T) {
	path := writePlainLog(t, []string{
		logLine("/api/v2/banner/1", 0.1),
		"garbage line",
		logLine("/api/v2/banner/2", 0.2),
		logLine("/api/v2/banner/1", 0.3),
	})

	reader, err := NewRecordReader(path, 0.5)
	require.NoError(t, err)

	records, err := drain(t, reader)
	require.NoError(t, err)

	assert.Equal(t, []models.LogRecord{
		{URL: "/api/v2/banner/1", RequestTime: 0.1},
		{URL: "/api/v2/banner/2", RequestTime: 0.2},
		{URL: "/api/v2/banner/1", RequestTime: 0.3},
	}, records)
	assert.Equal(t, 4, reader.TotalLines())
	assert.Equal(t, 1, reader.ErrorLines())
}

func TestRecordReader_GzipFile(t *testing.T) {
	path := writeGzipLog(t, []string{
		logLine("/index", 0.5),
		logLine("/index", 1.25),
	})

	reader, err := NewRecordReader(path, 0.1)
	require.NoError(t, err)

	records, err := drain(t, reader)
	require.NoError(t, err)

	assert.Equal(t, []models.LogRecord{
		{URL: "/index", RequestTime: 0.5},
		{URL: "/index", RequestTime: 1.25},
	}, records)
}

func TestRecordReader_ErrorRateAtThresholdPasses(t *testing.T) {
	// 1 unparseable line out of 2: error rate is exactly the threshold,
	// which must not trigger the failure.
	path := writePlainLog(t, []string{
		logLine("/index", 0.5),
		"garbage line",
	})

	reader, err := NewRecordReader(path, 0.5)
	require.NoError(t, err)

	records, err := drain(t, reader)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRecordReader_ErrorRateOverThresholdFails(t *testing.T) {
	path := writePlainLog(t, []string{
		logLine("/index", 0.5),
		"garbage line",
	})

	reader, err := NewRecordReader(path, 0.4)
	require.NoError(t, err)

	_, err = drain(t, reader)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrErrorRateExceeded)
}

func TestRecordReader_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nginx-access-ui.log-20170630")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	reader, err := NewRecordReader(path, 0.0)
	require.NoError(t, err)

	records, err := drain(t, reader)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 0, reader.TotalLines())
}

func TestRecordReader_MissingFile(t *testing.T) {
	_, err := NewRecordReader(filepath.Join(t.TempDir(), "nope.log"), 0.1)
	require.Error(t, err)
}

func TestRecordReader_CorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nginx-access-ui.log-20170630.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip data"), 0o644))

	_, err := NewRecordReader(path, 0.1)
	require.Error(t, err)
}

func TestRecordReader_ScanAfterExhaustionReturnsFalse(t *testing.T) {
	path := writePlainLog(t, []string{logLine("/index", 0.5)})

	reader, err := NewRecordReader(path, 0.1)
	require.NoError(t, err)
	defer reader.Close()

	for reader.Scan() {
	}
	assert.False(t, reader.Scan())
	assert.NoError(t, reader.Err())
}
