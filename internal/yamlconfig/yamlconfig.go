package yamlconfig

import (
	"io"
	"sort"

	"github.com/kheteswar/f5-xc-create-bulk-http-monitor/internal/monitorconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrYAMLDecode = errors.New("error decoding YAML file")

// YamlConfig is the YAML flavor of the monitor input file.
type YamlConfig struct {
	// List of monitors to create.
	Monitors []MonitorDTO `yaml:"monitors" json:"monitors"`
}

func NewYamlConfig(r io.Reader) (*YamlConfig, error) {
	d := yaml.NewDecoder(r)
	config := &YamlConfig{}

	if err := d.Decode(&config); err != nil {
		return nil, errors.Wrap(ErrYAMLDecode, err.Error())
	}

	return config, nil
}

// ToMonitor normalizes the DTO, applying the same defaults and
// validation as the CSV path. line is the 1-based position of the
// entry in the file, used in error reporting.
func (dto MonitorDTO) ToMonitor(line int) (*monitorconfig.Monitor, error) {
	m := &monitorconfig.Monitor{
		Name:              dto.Name,
		URL:               dto.URL,
		Interval:          dto.Interval,
		ResponseCodes:     dto.ResponseCodes,
		SNIHost:           dto.SNIHost,
		IgnoreCertErrors:  monitorconfig.DefaultIgnoreCertErrors,
		FollowRedirects:   monitorconfig.DefaultFollowRedirects,
		ResponseTimeoutMS: monitorconfig.DefaultResponseTimeoutMS,
		OnFailureCount:    monitorconfig.DefaultOnFailureCount,
		AWSRegions:        dto.AWSRegions,
		RequestHeaders:    sortedHeaders(dto.RequestHeaders),
		Description:       monitorconfig.NormalizeDescription(dto.Description, dto.URL),
		Labels:            dto.Labels,
	}
	if m.Labels == nil {
		m.Labels = map[string]string{}
	}

	if dto.IgnoreCertErrors != nil {
		m.IgnoreCertErrors = *dto.IgnoreCertErrors
	}
	if dto.FollowRedirects != nil {
		m.FollowRedirects = *dto.FollowRedirects
	}
	if dto.ResponseTimeoutMS != nil {
		if *dto.ResponseTimeoutMS < 0 {
			return nil, errors.Errorf("monitor %d: response_timeout_ms must be non-negative, got %d", line, *dto.ResponseTimeoutMS)
		}
		m.ResponseTimeoutMS = *dto.ResponseTimeoutMS
	}
	if dto.OnFailureCount != nil {
		if *dto.OnFailureCount < 0 {
			return nil, errors.Errorf("monitor %d: on_failure_count must be non-negative, got %d", line, *dto.OnFailureCount)
		}
		m.OnFailureCount = *dto.OnFailureCount
	}

	if err := m.Validate(); err != nil {
		return nil, errors.Wrapf(err, "monitor %d", line)
	}

	return m, nil
}

// sortedHeaders converts the header map into a deterministic list so
// identical inputs always build identical payloads.
func sortedHeaders(headers map[string]string) []monitorconfig.Header {
	if len(headers) == 0 {
		return nil
	}
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]monitorconfig.Header, 0, len(keys))
	for _, k := range keys {
		out = append(out, monitorconfig.Header{Key: k, Value: headers[k]})
	}
	return out
}
