package yamlconfig

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kheteswar/f5-xc-create-bulk-http-monitor/internal/monitorconfig"
)

const sampleConfig = `
monitors:
  - name: site-a
    url: https://a.example.com
    interval: 5m
    aws_regions: [ap-south-1]
  - name: site-b
    url: https://b.example.com
    interval: 1m
    response_codes: ["2**", "3**"]
    sni_host: sni.example.com
    ignore_cert_errors: true
    follow_redirects: false
    response_timeout_ms: 5000
    on_failure_count: 3
    aws_regions: [eu-west-1, eu-central-1]
    request_headers:
      User-Agent: XC-Monitor
      Accept: "*/*"
    description: second site
    labels:
      env: prod
      team: platform
`

func TestNewYamlConfig(t *testing.T) {
	config, err := NewYamlConfig(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(config.Monitors) != 2 {
		t.Fatalf("expected 2 monitors, got %d", len(config.Monitors))
	}
	if config.Monitors[0].Name != "site-a" {
		t.Errorf("Name: got %q", config.Monitors[0].Name)
	}
	if config.Monitors[1].ResponseTimeoutMS == nil || *config.Monitors[1].ResponseTimeoutMS != 5000 {
		t.Errorf("ResponseTimeoutMS: got %v", config.Monitors[1].ResponseTimeoutMS)
	}
}

func TestNewYamlConfig_Invalid(t *testing.T) {
	if _, err := NewYamlConfig(strings.NewReader("monitors: {not: a list}")); err == nil {
		t.Fatal("expected error but got none")
	}
}

func TestToMonitor_Defaults(t *testing.T) {
	dto := MonitorDTO{
		Name:       "site-a",
		URL:        "https://a.example.com",
		Interval:   "5m",
		AWSRegions: []string{"ap-south-1"},
	}

	m, err := dto.ToMonitor(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.IgnoreCertErrors != monitorconfig.DefaultIgnoreCertErrors {
		t.Errorf("IgnoreCertErrors: got %v", m.IgnoreCertErrors)
	}
	if m.FollowRedirects != monitorconfig.DefaultFollowRedirects {
		t.Errorf("FollowRedirects: got %v", m.FollowRedirects)
	}
	if m.ResponseTimeoutMS != monitorconfig.DefaultResponseTimeoutMS {
		t.Errorf("ResponseTimeoutMS: got %d", m.ResponseTimeoutMS)
	}
	if m.OnFailureCount != monitorconfig.DefaultOnFailureCount {
		t.Errorf("OnFailureCount: got %d", m.OnFailureCount)
	}
	if m.Description != "http monitor for https://a.example.com" {
		t.Errorf("Description: got %q", m.Description)
	}
	if len(m.Labels) != 0 {
		t.Errorf("Labels: expected empty map, got %v", m.Labels)
	}
}

func TestToMonitor_ExplicitFalseOverridesDefault(t *testing.T) {
	follow := false
	dto := MonitorDTO{
		Name:            "site-a",
		URL:             "https://a.example.com",
		Interval:        "5m",
		AWSRegions:      []string{"ap-south-1"},
		FollowRedirects: &follow,
	}

	m, err := dto.ToMonitor(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.FollowRedirects {
		t.Error("expected explicit false to override default true")
	}
}

func TestToMonitor_HeadersSorted(t *testing.T) {
	dto := MonitorDTO{
		Name:       "site-a",
		URL:        "https://a.example.com",
		Interval:   "5m",
		AWSRegions: []string{"ap-south-1"},
		RequestHeaders: map[string]string{
			"User-Agent": "XC-Monitor",
			"Accept":     "*/*",
		},
	}

	m, err := dto.ToMonitor(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []monitorconfig.Header{
		{Key: "Accept", Value: "*/*"},
		{Key: "User-Agent", Value: "XC-Monitor"},
	}
	if !reflect.DeepEqual(m.RequestHeaders, expected) {
		t.Errorf("RequestHeaders: got %v, want %v", m.RequestHeaders, expected)
	}
}

func TestToMonitor_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MonitorDTO)
		wantErr string
	}{
		{
			name:    "missing aws_regions",
			mutate:  func(d *MonitorDTO) { d.AWSRegions = nil },
			wantErr: "aws_regions",
		},
		{
			name:    "bad interval",
			mutate:  func(d *MonitorDTO) { d.Interval = "45m" },
			wantErr: "invalid interval",
		},
		{
			name: "negative timeout",
			mutate: func(d *MonitorDTO) {
				n := -1
				d.ResponseTimeoutMS = &n
			},
			wantErr: "response_timeout_ms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := MonitorDTO{
				Name:       "site-a",
				URL:        "https://a.example.com",
				Interval:   "5m",
				AWSRegions: []string{"ap-south-1"},
			}
			tt.mutate(&dto)

			_, err := dto.ToMonitor(4)
			if err == nil {
				t.Fatal("expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error to contain %q, got %q", tt.wantErr, err.Error())
			}
			if !strings.Contains(err.Error(), "monitor 4") {
				t.Errorf("expected error to name the entry, got %q", err.Error())
			}
		})
	}
}
