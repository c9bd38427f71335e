package yamlconfig

// MonitorDTO represents one monitor definition in the YAML input file.
// Optional scalar fields are pointers so a value left out can be told
// apart from an explicit zero; defaults match the CSV input format.
type MonitorDTO struct {
	// Name of the monitor. Must be unique within the namespace.
	Name string `yaml:"name" json:"name"`
	// URL to probe, including the protocol.
	URL string `yaml:"url" json:"url"`
	// Probe interval. One of 1m, 5m, 15m, 30m.
	Interval string `yaml:"interval" json:"interval"`
	// Accepted response code patterns, e.g. ["2**", "3**"]. When left
	// out, the monitor accepts any response code.
	ResponseCodes []string `yaml:"response_codes,omitempty" json:"response_codes,omitempty"`
	// Optional SNI host to present during the TLS handshake.
	SNIHost string `yaml:"sni_host,omitempty" json:"sni_host,omitempty"`
	// Skip certificate verification on the probed endpoint. Default false.
	IgnoreCertErrors *bool `yaml:"ignore_cert_errors,omitempty" json:"ignore_cert_errors,omitempty"`
	// Follow HTTP redirects. Default true.
	FollowRedirects *bool `yaml:"follow_redirects,omitempty" json:"follow_redirects,omitempty"`
	// Response timeout in milliseconds. Default 10000.
	ResponseTimeoutMS *int `yaml:"response_timeout_ms,omitempty" json:"response_timeout_ms,omitempty"`
	// Number of consecutive failures before the monitor reports down. Default 2.
	OnFailureCount *int `yaml:"on_failure_count,omitempty" json:"on_failure_count,omitempty"`
	// AWS regions to probe from. At least one is required.
	AWSRegions []string `yaml:"aws_regions" json:"aws_regions"`
	// Request headers to send with each probe.
	RequestHeaders map[string]string `yaml:"request_headers,omitempty" json:"request_headers,omitempty"`
	// Free-text description. Defaults to "http monitor for <url>".
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Labels to attach to the monitor metadata.
	Labels map[string]string `yaml:"labels,omitempty" json:"labels,omitempty"`
}
