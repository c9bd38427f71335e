package csvconfig

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/kheteswar/f5-xc-create-bulk-http-monitor/internal/monitorconfig"
	"github.com/pkg/errors"
)

var ErrCSVDecode = errors.New("error decoding CSV file")

// Columns of the input file header contract.
const (
	ColName              = "name"
	ColURL               = "url"
	ColInterval          = "interval"
	ColResponseCodes     = "response_codes"
	ColSNIHost           = "sni_host"
	ColIgnoreCertErrors  = "ignore_cert_errors"
	ColFollowRedirects   = "follow_redirects"
	ColResponseTimeoutMS = "response_timeout_ms"
	ColOnFailureCount    = "on_failure_count"
	ColAWSRegions        = "aws_regions"
	ColRequestHeaders    = "request_headers"
	ColDescription       = "description"
	ColLabels            = "labels"
)

// requiredColumns is the full header contract. Column order is free and
// extra columns are ignored, but every listed column must be present.
var requiredColumns = []string{
	ColName,
	ColURL,
	ColInterval,
	ColResponseCodes,
	ColSNIHost,
	ColIgnoreCertErrors,
	ColFollowRedirects,
	ColResponseTimeoutMS,
	ColOnFailureCount,
	ColAWSRegions,
	ColRequestHeaders,
	ColDescription,
	ColLabels,
}

// CSVConfig holds the raw rows read from one CSV input file.
type CSVConfig struct {
	Rows []monitorconfig.Row
}

// NewCSVConfig reads a CSV monitor file. The header row is mandatory;
// a missing column is a fatal error. Records shorter than the header
// are padded with empty fields so that per-field validation reports
// the missing values row by row instead of aborting the run.
func NewCSVConfig(r io.Reader) (*CSVConfig, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(ErrCSVDecode, "missing header row")
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	config := &CSVConfig{}
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(ErrCSVDecode, err.Error())
		}

		field := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return record[i]
		}

		config.Rows = append(config.Rows, monitorconfig.Row{
			Line:              line,
			Name:              field(ColName),
			URL:               field(ColURL),
			Interval:          field(ColInterval),
			ResponseCodes:     field(ColResponseCodes),
			SNIHost:           field(ColSNIHost),
			IgnoreCertErrors:  field(ColIgnoreCertErrors),
			FollowRedirects:   field(ColFollowRedirects),
			ResponseTimeoutMS: field(ColResponseTimeoutMS),
			OnFailureCount:    field(ColOnFailureCount),
			AWSRegions:        field(ColAWSRegions),
			RequestHeaders:    field(ColRequestHeaders),
			Description:       field(ColDescription),
			Labels:            field(ColLabels),
		})
	}

	return config, nil
}

// columnIndex maps the header contract columns to their positions.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		if i == 0 {
			// Files exported from spreadsheet tools often carry a BOM.
			col = strings.TrimPrefix(col, "\ufeff")
		}
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.Wrapf(ErrCSVDecode, "missing required columns: %s", strings.Join(missing, ", "))
	}

	return index, nil
}
