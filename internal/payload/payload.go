// Package payload builds the create-request document for the XC
// synthetic-monitor API from a normalized monitor definition.
package payload

import (
	"github.com/kheteswar/f5-xc-create-bulk-http-monitor/internal/monitorconfig"
)

// Marker is an empty JSON object. The API uses presence of these
// fields as oneof selectors.
type Marker struct{}

// Document is the full create-request body.
type Document struct {
	Metadata Metadata `json:"metadata"`
	Spec     Spec     `json:"spec"`
}

type Metadata struct {
	Annotations map[string]string `json:"annotations"`
	Description string            `json:"description"`
	Disable     bool              `json:"disable"`
	Labels      map[string]string `json:"labels"`
	Name        string            `json:"name"`
}

type Spec struct {
	URL string `json:"url"`

	// Exactly one interval marker is set, matching the monitor interval.
	Interval1Min   *Marker `json:"interval_1_min,omitempty"`
	Interval5Mins  *Marker `json:"interval_5_mins,omitempty"`
	Interval15Mins *Marker `json:"interval_15_mins,omitempty"`
	Interval30Mins *Marker `json:"interval_30_mins,omitempty"`

	// Probe method is fixed to GET with an empty body.
	Get Marker `json:"get"`

	RequestHeaders          []Header         `json:"request_headers"`
	OnFailureCount          int              `json:"on_failure_count"`
	IgnoreCertErrors        bool             `json:"ignore_cert_errors"`
	FollowRedirects         bool             `json:"follow_redirects"`
	ResponseTimeout         int              `json:"response_timeout"`
	ExternalSources         []ExternalSource `json:"external_sources"`
	SourceCriticalThreshold int              `json:"source_critical_threshold"`
	SNIHost                 string           `json:"sni_host,omitempty"`
	ResponseCodes           []string         `json:"response_codes,omitempty"`
	HealthPolicy            HealthPolicy     `json:"health_policy"`
}

type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ExternalSource struct {
	AWS AWSSource `json:"aws"`
}

type AWSSource struct {
	Regions []string `json:"regions"`
}

// HealthPolicy with every threshold type disabled. Not configurable
// per row in this version.
type HealthPolicy struct {
	DynamicThresholdDisabled   Marker `json:"dynamic_threshold_disabled"`
	StaticMaxThresholdDisabled Marker `json:"static_max_threshold_disabled"`
	StaticMinThresholdDisabled Marker `json:"static_min_threshold_disabled"`
}

// sourceCriticalThreshold is the fixed number of failing sources that
// marks the monitor critical.
const sourceCriticalThreshold = 2

// Build maps a validated monitor to the API document. It is a pure
// function of its input.
func Build(m *monitorconfig.Monitor) *Document {
	labels := m.Labels
	if labels == nil {
		labels = map[string]string{}
	}

	headers := make([]Header, 0, len(m.RequestHeaders))
	for _, h := range m.RequestHeaders {
		headers = append(headers, Header{Key: h.Key, Value: h.Value})
	}

	spec := Spec{
		URL:              m.URL,
		RequestHeaders:   headers,
		OnFailureCount:   m.OnFailureCount,
		IgnoreCertErrors: m.IgnoreCertErrors,
		FollowRedirects:  m.FollowRedirects,
		ResponseTimeout:  m.ResponseTimeoutMS,
		ExternalSources: []ExternalSource{
			{AWS: AWSSource{Regions: m.AWSRegions}},
		},
		SourceCriticalThreshold: sourceCriticalThreshold,
		SNIHost:                 m.SNIHost,
		ResponseCodes:           m.ResponseCodes,
	}

	switch m.Interval {
	case "1m":
		spec.Interval1Min = &Marker{}
	case "5m":
		spec.Interval5Mins = &Marker{}
	case "15m":
		spec.Interval15Mins = &Marker{}
	case "30m":
		spec.Interval30Mins = &Marker{}
	}

	return &Document{
		Metadata: Metadata{
			Annotations: map[string]string{},
			Description: m.Description,
			Disable:     false,
			Labels:      labels,
			Name:        m.Name,
		},
		Spec: spec,
	}
}
