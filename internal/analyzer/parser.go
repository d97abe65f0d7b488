package analyzer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nglogan/nglogan/internal/models"
)

// logLinePattern matches the nginx ui_short access log format:
// remote_addr remote_user http_x_real_ip [time_local] "request"
// status body_bytes_sent "http_referer" "http_user_agent"
// "http_x_forwarded_for" "http_X_REQUEST_ID" "http_X_RB_USER" request_time
var logLinePattern = regexp.MustCompile(
	`^(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}) ` +
		`(\S+) +(\S+) +\[([^\]]+)\] ` +
		`"([^"]*)" ` +
		`(\d{3}) ` +
		`(\d+) ` +
		`"([^"]*)" ` +
		`"([^"]*)" ` +
		`"([^"]*)" ` +
		`"([^"]*)" ` +
		`"([^"]*)" ` +
		`(\d+\.\d+)`)

// Submatch indices for the fields the report needs.
const (
	requestGroup     = 5
	requestTimeGroup = 13
)

// ParseLine parses a single access log line into a LogRecord. The second
// return value is false when the line does not match the log format; an
// unparseable line is not an error, it is counted by the caller.
func ParseLine(line string) (models.LogRecord, bool) {
	matches := logLinePattern.FindStringSubmatch(strings.TrimSpace(line))
	if matches == nil {
		return models.LogRecord{}, false
	}

	requestTime, err := strconv.ParseFloat(matches[requestTimeGroup], 64)
	if err != nil {
		return models.LogRecord{}, false
	}

	// The request field is normally "METHOD url PROTOCOL". A malformed
	// request (for example just "-") has no URL token, so the whole field
	// stands in for it.
	request := matches[requestGroup]
	url := request
	if parts := strings.Fields(request); len(parts) >= 2 {
		url = parts[1]
	}

	return models.LogRecord{URL: url, RequestTime: requestTime}, true
}
