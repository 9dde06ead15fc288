package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-scheming/internal/prompt"
	"github.com/goliatone/go-scheming/pkg/record"
	"github.com/goliatone/go-scheming/pkg/schema"
	"github.com/goliatone/go-scheming/pkg/timezones"
	"github.com/goliatone/go-scheming/pkg/validators"
)

var errInvalidRecord = errors.New("record is invalid")

type output struct {
	Valid  bool                `json:"valid"`
	Data   map[string]any      `json:"data"`
	Errors map[string][]string `json:"errors,omitempty"`
	Extras map[string]any      `json:"extras,omitempty"`
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	err = run(context.Background(), cfg, os.Args[1:], os.Stdout, os.Stderr, prompt.NewSurveyDriver())
	switch {
	case err == nil:
	case errors.Is(err, errInvalidRecord):
		os.Exit(1)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func run(ctx context.Context, cfg config, args []string, stdout, stderr io.Writer, driver prompt.Driver) error {
	flags := flag.NewFlagSet("scheming-validate", flag.ContinueOnError)
	flags.SetOutput(stderr)
	schemaPath := flags.String("schema", cfg.Schema, "schema file (JSON or YAML)")
	recordPath := flags.String("record", "", "record file (JSON or YAML); empty reads nothing")
	interactive := flags.Bool("interactive", cfg.Interactive, "prompt for missing dataset fields")
	logLevel := flags.String("log-level", cfg.LogLevel, "log level")
	logFormat := flags.String("log-format", cfg.LogFormat, "log format: text or json")
	if err := flags.Parse(args); err != nil {
		return err
	}
	cfg.LogLevel = *logLevel
	cfg.LogFormat = *logFormat

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}

	if strings.TrimSpace(*schemaPath) == "" {
		return errors.New("a schema file is required (-schema or SCHEMING_SCHEMA)")
	}
	sch, err := schema.LoadFile(*schemaPath)
	if err != nil {
		return err
	}

	submitted := map[string]any{}
	if *recordPath != "" {
		submitted, err = loadRecord(*recordPath)
		if err != nil {
			return err
		}
	}

	zones, err := timezones.Default()
	if err != nil {
		return err
	}

	if *interactive {
		collector := prompt.NewCollector(driver, zones.Names())
		submitted, err = collector.Fill(ctx, sch, submitted)
		if err != nil {
			return err
		}
	}

	registry := validators.NewRegistry(validators.WithZones(zones))
	validator := record.NewValidator(registry, record.WithLogger(logger))
	result, err := validator.Validate(sch, submitted, map[string]any{"source": *recordPath})
	if err != nil {
		return err
	}
	logger.WithField("errors", len(result.Errors)).Info("record validated")

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output{
		Valid:  result.Valid(),
		Data:   result.Record(),
		Errors: result.Errors,
		Extras: result.Extras,
	}); err != nil {
		return err
	}

	if !result.Valid() {
		return errInvalidRecord
	}
	return nil
}

func loadRecord(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("record: read %s: %w", path, err)
	}

	out := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &out)
	default:
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, fmt.Errorf("record: parse %s: %w", path, err)
	}
	return out, nil
}
