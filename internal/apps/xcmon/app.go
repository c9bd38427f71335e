package xcmon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kheteswar/f5-xc-create-bulk-http-monitor/internal/csvconfig"
	"github.com/kheteswar/f5-xc-create-bulk-http-monitor/internal/monitorconfig"
	"github.com/kheteswar/f5-xc-create-bulk-http-monitor/internal/payload"
	"github.com/kheteswar/f5-xc-create-bulk-http-monitor/internal/xcclient"
	"github.com/kheteswar/f5-xc-create-bulk-http-monitor/internal/yamlconfig"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrMissingAPIToken aborts the run before any row is processed; the
// binary maps it to its own exit code.
var ErrMissingAPIToken = errors.New("missing API token: pass -api-token or set env F5XC_API_TOKEN")

type Options struct {
	Tenant     string
	Input      string
	Namespace  string
	APIToken   string
	BaseDomain string
	Insecure   bool
	DryRun     bool
}

// MonitorCreator submits one create request per monitor. Implemented
// by xcclient.Client.
type MonitorCreator interface {
	Create(ctx context.Context, namespace string, doc *payload.Document) error
}

type App struct {
	options Options
	client  MonitorCreator

	logger *zap.Logger
}

func NewApp(options Options, logger *zap.Logger) (*App, error) {
	if options.Tenant == "" {
		return nil, errors.New("missing required flag: -tenant")
	}
	if options.Input == "" {
		return nil, errors.New("missing required flag: -input")
	}
	if !options.DryRun && options.APIToken == "" {
		return nil, ErrMissingAPIToken
	}

	client := xcclient.NewClient(xcclient.Options{
		BaseURL:  fmt.Sprintf("https://%s.%s", options.Tenant, options.BaseDomain),
		APIToken: options.APIToken,
		Insecure: options.Insecure,
		DryRun:   options.DryRun,
	}, logger)

	return &App{
		options: options,
		client:  client,
		logger:  logger,
	}, nil
}

// entry is one input record, either normalized or failed. A failed
// entry never stops the run; it is counted and reported at the end.
type entry struct {
	line    int
	monitor *monitorconfig.Monitor
	err     error
}

// Run processes every input record strictly sequentially and reports a
// summary. It returns an error when any row failed, so the caller can
// exit non-zero.
func (a *App) Run(ctx context.Context) error {
	entries, err := a.loadEntries()
	if err != nil {
		return errors.Wrap(err, "error loading input file")
	}
	if len(entries) == 0 {
		return errors.New("no rows found in input file")
	}

	var success, failed int
	for _, e := range entries {
		if err := a.processEntry(ctx, e); err != nil {
			failed++
			continue
		}
		success++
	}

	a.logger.Info("done",
		zap.Int("success", success),
		zap.Int("failed", failed),
		zap.Int("total", len(entries)))

	if failed > 0 {
		return errors.Errorf("%d of %d rows failed", failed, len(entries))
	}
	return nil
}

func (a *App) processEntry(ctx context.Context, e entry) error {
	if e.err != nil {
		a.logger.Error("row validation failed",
			zap.Int("row", e.line),
			zap.Error(e.err))
		return e.err
	}

	doc := payload.Build(e.monitor)
	if err := a.client.Create(ctx, a.options.Namespace, doc); err != nil {
		a.logger.Error("monitor create failed",
			zap.Int("row", e.line),
			zap.String("name", e.monitor.Name),
			zap.Error(err))
		return err
	}

	if !a.options.DryRun {
		a.logger.Info("monitor created",
			zap.Int("row", e.line),
			zap.String("name", e.monitor.Name))
	}
	return nil
}

// loadEntries reads the input file, picking the reader by extension.
// Only setup-scoped problems (unreadable file, broken header) return
// an error; per-row problems are carried inside the entries.
func (a *App) loadEntries() ([]entry, error) {
	file, err := os.Open(a.options.Input)
	if err != nil {
		return nil, errors.Wrap(err, "error opening input file")
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(a.options.Input)) {
	case ".yaml", ".yml":
		config, err := yamlconfig.NewYamlConfig(file)
		if err != nil {
			return nil, err
		}
		entries := make([]entry, 0, len(config.Monitors))
		for i, dto := range config.Monitors {
			m, err := dto.ToMonitor(i + 1)
			entries = append(entries, entry{line: i + 1, monitor: m, err: err})
		}
		return entries, nil

	default:
		config, err := csvconfig.NewCSVConfig(file)
		if err != nil {
			return nil, err
		}
		entries := make([]entry, 0, len(config.Rows))
		for _, row := range config.Rows {
			m, err := monitorconfig.FromRow(row)
			entries = append(entries, entry{line: row.Line, monitor: m, err: err})
		}
		return entries, nil
	}
}
