package monitorconfig

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Defaults applied to optional fields left blank in the input.
const (
	DefaultIgnoreCertErrors  = false
	DefaultFollowRedirects   = true
	DefaultResponseTimeoutMS = 10000
	DefaultOnFailureCount    = 2

	// Maximum length of the monitor description accepted by the API.
	MaxDescriptionLen = 512
)

// intervalFieldKeys maps the input interval values to the field names
// the synthetic-monitor API expects in the spec document.
var intervalFieldKeys = map[string]string{
	"1m":  "interval_1_min",
	"5m":  "interval_5_mins",
	"15m": "interval_15_mins",
	"30m": "interval_30_mins",
}

// AllowedIntervals returns the accepted interval values in ascending order.
func AllowedIntervals() []string {
	return []string{"1m", "5m", "15m", "30m"}
}

// IntervalFieldKey maps an interval value to its API field name.
func IntervalFieldKey(interval string) (string, bool) {
	key, ok := intervalFieldKeys[interval]
	return key, ok
}

// Row is one raw input record. All fields are kept as strings so CSV
// records can be carried unmodified; parsing happens in FromRow.
type Row struct {
	// 1-based data row number, used in error reporting.
	Line int

	Name              string
	URL               string
	Interval          string
	ResponseCodes     string
	SNIHost           string
	IgnoreCertErrors  string
	FollowRedirects   string
	ResponseTimeoutMS string
	OnFailureCount    string
	AWSRegions        string
	RequestHeaders    string
	Description       string
	Labels            string
}

// Header is one request header to send with each probe.
type Header struct {
	Key   string
	Value string
}

// Monitor is a validated, normalized monitor definition ready for
// payload construction.
type Monitor struct {
	Name             string
	URL              string
	Interval         string
	ResponseCodes    []string // nil when the input leaves the field blank
	SNIHost          string
	IgnoreCertErrors bool
	FollowRedirects  bool
	// Response timeout in milliseconds.
	ResponseTimeoutMS int
	OnFailureCount    int
	AWSRegions        []string
	RequestHeaders    []Header
	Description       string
	Labels            map[string]string
}

// FromRow parses and validates one input row. All violated constraints
// for the row are reported together in a single error.
func FromRow(row Row) (*Monitor, error) {
	var violations []string

	m := &Monitor{
		Name:       strings.TrimSpace(row.Name),
		URL:        strings.TrimSpace(row.URL),
		Interval:   strings.ToLower(strings.TrimSpace(row.Interval)),
		SNIHost:    strings.TrimSpace(row.SNIHost),
		AWSRegions: ParseList(row.AWSRegions),
		Labels:     ParseLabels(row.Labels),
	}

	if codes := strings.TrimSpace(row.ResponseCodes); codes != "" {
		m.ResponseCodes = ParseList(codes)
	}

	m.RequestHeaders = ParseHeaders(row.RequestHeaders)

	var err error
	if m.IgnoreCertErrors, err = ParseBool(row.IgnoreCertErrors, DefaultIgnoreCertErrors); err != nil {
		violations = append(violations, "ignore_cert_errors: "+err.Error())
	}
	if m.FollowRedirects, err = ParseBool(row.FollowRedirects, DefaultFollowRedirects); err != nil {
		violations = append(violations, "follow_redirects: "+err.Error())
	}
	if m.ResponseTimeoutMS, err = ParseInt(row.ResponseTimeoutMS, DefaultResponseTimeoutMS); err != nil {
		violations = append(violations, "response_timeout_ms: "+err.Error())
	}
	if m.OnFailureCount, err = ParseInt(row.OnFailureCount, DefaultOnFailureCount); err != nil {
		violations = append(violations, "on_failure_count: "+err.Error())
	}

	m.Description = NormalizeDescription(row.Description, m.URL)

	if err := m.Validate(); err != nil {
		violations = append(violations, err.Error())
	}

	if len(violations) > 0 {
		return nil, errors.Errorf("row %d: %s", row.Line, strings.Join(violations, "; "))
	}

	return m, nil
}

// Validate checks the constraints that hold regardless of input format.
func (m *Monitor) Validate() error {
	var violations []string

	if m.Name == "" {
		violations = append(violations, "missing required field: name")
	}
	if m.URL == "" {
		violations = append(violations, "missing required field: url")
	}
	if _, ok := IntervalFieldKey(m.Interval); !ok {
		violations = append(violations, "invalid interval '"+m.Interval+"', allowed: "+strings.Join(AllowedIntervals(), ", "))
	}
	if len(m.AWSRegions) == 0 {
		violations = append(violations, "missing required field: aws_regions (comma-separated)")
	}

	if len(violations) > 0 {
		return errors.New(strings.Join(violations, "; "))
	}

	return nil
}

// NormalizeDescription trims the description, substitutes the default
// when it is blank, and truncates it to the API limit.
func NormalizeDescription(description, url string) string {
	d := strings.TrimSpace(description)
	if d == "" {
		d = "http monitor for " + url
	}
	if len(d) > MaxDescriptionLen {
		d = d[:MaxDescriptionLen]
	}
	return d
}

// ParseBool parses an optional true/false field, case-insensitively.
// A blank field yields the default.
func ParseBool(s string, def bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return def, errors.Errorf("invalid boolean %q, expected true or false", s)
	}
}

// ParseInt parses an optional non-negative integer field. A blank field
// yields the default.
func ParseInt(s string, def int) (int, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, errors.Errorf("invalid integer %q", s)
	}
	if n < 0 {
		return def, errors.Errorf("integer must be non-negative, got %d", n)
	}
	return n, nil
}

// ParseList splits a comma-separated list, trimming entries and
// dropping empty ones.
func ParseList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ParseHeaders parses semicolon-separated "Key: Value" pairs. Each pair
// is split on the first colon; a pair without a colon becomes a key
// with an empty value.
func ParseHeaders(s string) []Header {
	var headers []Header
	for _, pair := range strings.Split(s, ";") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		k, v, found := strings.Cut(pair, ":")
		if !found {
			headers = append(headers, Header{Key: strings.TrimSpace(pair)})
			continue
		}
		headers = append(headers, Header{
			Key:   strings.TrimSpace(k),
			Value: strings.TrimSpace(v),
		})
	}
	return headers
}

// ParseLabels parses semicolon-separated "key=value" pairs. Each pair
// is split on the first equals sign; a pair without one becomes a key
// with an empty value.
func ParseLabels(s string) map[string]string {
	labels := map[string]string{}
	for _, pair := range strings.Split(s, ";") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		k, v, found := strings.Cut(pair, "=")
		if !found {
			labels[strings.TrimSpace(pair)] = ""
			continue
		}
		labels[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return labels
}
