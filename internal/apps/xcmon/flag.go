package xcmon

import (
	"flag"
	"os"

	"github.com/peterbourgon/ff/v3"
	"go.uber.org/zap"
)

const (
	defaultNamespace  = "default"
	defaultBaseDomain = "console.ves.volterra.io"

	// envVarPrefix makes -api-token fall back to F5XC_API_TOKEN and so on.
	envVarPrefix = "F5XC"
)

type Flags struct {
	// Tenant subdomain, e.g. "acme" for https://acme.console.ves.volterra.io.
	Tenant *string
	// Path to the input file with monitor definitions (.csv, .yaml or .yml).
	Input *string
	// Namespace to create the monitors in.
	Namespace *string
	// API token for the tenant console.
	APIToken *string
	// Console base domain, overridable for staging environments.
	BaseDomain *string
	// Disable TLS verification of the console endpoint.
	Insecure *bool
	// Build and display payloads without contacting the API.
	DryRun *bool
	// Directory for the rotating log file. Empty disables file logging.
	LogDir *string
}

func LoadFlag(logger *zap.Logger) *Flags {
	fs := flag.NewFlagSet("xcmon", flag.ContinueOnError)

	cfg := Flags{
		Tenant:     fs.String("tenant", "", "Tenant subdomain (e.g. acme for https://acme.console.ves.volterra.io)"),
		Input:      fs.String("input", "", "Path to the monitor definitions file (.csv, .yaml or .yml)"),
		Namespace:  fs.String("namespace", defaultNamespace, "Namespace to create monitors in"),
		APIToken:   fs.String("api-token", "", "API token (or set env F5XC_API_TOKEN)"),
		BaseDomain: fs.String("base-domain", defaultBaseDomain, "Console base domain"),
		Insecure:   fs.Bool("insecure", false, "Disable TLS verification (not recommended)"),
		DryRun:     fs.Bool("dry-run", false, "Display payloads without creating monitors"),
		LogDir:     fs.String("log-dir", "", "Directory for the rotating log file (empty disables file logging)"),
	}

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix(envVarPrefix)); err != nil {
		logger.Fatal("error parsing flags", zap.Error(err))
	}

	return &cfg
}
