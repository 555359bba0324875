// Package config resolves the schemadoc configuration snapshot.
//
// Values come from, in order of precedence: SE_* environment variables, the
// options file, and built-in defaults. The options file is either the
// KEY=VALUE file se_options in the working directory or a JSONC file passed
// explicitly.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tailscale/hujson"
)

// OptionsFileName is the default options file looked up in the working directory.
const OptionsFileName = "se_options"

// DefaultSchema is the name the documentation database is attached under.
const DefaultSchema = "schemadoc"

// Option keys shared by the options file and the SE_-prefixed environment variables.
const (
	KeySchema              = "SCHEMA"
	KeySchemasToIgnore     = "SCHEMAS_TO_IGNORE"
	KeyTableIgnorePatterns = "TABLE_IGNORE_PATTERNS"
	KeyDatabase            = "DATABASE"
	KeyDocsDatabase        = "DOCS_DATABASE"
	KeyEditor              = "EDITOR"
	KeyPager               = "PAGER"
	KeyTempDir             = "TEMP_DIR"
	KeyLogLevel            = "LOG_LEVEL"
	KeyLogFormat           = "LOG_FORMAT"
)

// EnvPrefix is prepended to option keys to form environment variable names.
const EnvPrefix = "SE_"

// EnvOptionsFile names an options file to load instead of ./se_options.
const EnvOptionsFile = "SE_OPTIONS_FILE"

var (
	errOptionsFileNotFound = errors.New("options file not found")
	errInvalidSchemaName   = errors.New("invalid schema name")
	errInvalidPattern      = errors.New("invalid table ignore pattern")
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Built-in exclusions. The active working schema is always excluded as well.
var (
	defaultSchemasToIgnore     = []string{"information_schema", "temp"}
	defaultTableIgnorePatterns = []string{"^sqlite_"}
)

// Config is the resolved configuration for one process. Treat it as read-only.
type Config struct {
	Schema              string   // attached documentation schema
	SchemasToIgnore     []string // sorted, deduplicated
	TableIgnorePatterns []string // sorted, deduplicated, all compile
	DatabasePath        string   // documented database file
	DocsPath            string   // documentation database file
	Editor              string   // empty means resolve at launch
	Pager               string   // empty means $PAGER, then less
	TempDir             string   // directory for edit buffers
	LogLevel            string
	LogFormat           string

	// OptionsFile is the options file that was loaded, empty if none.
	OptionsFile string
}

// Load resolves configuration for the working directory dir.
// optionsPath, when non-empty, names an options file that must exist; otherwise
// $SE_OPTIONS_FILE is tried, then ./se_options (optional).
func Load(dir, optionsPath string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	if optionsPath == "" {
		optionsPath = getenv(EnvOptionsFile)
	}

	options, loadedFrom, err := loadOptionsFile(dir, optionsPath)
	if err != nil {
		return nil, err
	}

	lookup := func(key string) string {
		if v := strings.TrimSpace(getenv(EnvPrefix + key)); v != "" {
			return v
		}
		return strings.TrimSpace(options[key])
	}

	cfg := &Config{
		Schema:       orDefault(lookup(KeySchema), DefaultSchema),
		DatabasePath: resolvePath(dir, orDefault(lookup(KeyDatabase), "data.db")),
		DocsPath:     resolvePath(dir, orDefault(lookup(KeyDocsDatabase), filepath.Join(".schemadoc", "schemadoc.db"))),
		Editor:       lookup(KeyEditor),
		Pager:        lookup(KeyPager),
		TempDir:      orDefault(lookup(KeyTempDir), filepath.Join(os.TempDir(), "schemadoc")),
		LogLevel:     orDefault(lookup(KeyLogLevel), "warn"),
		LogFormat:    orDefault(lookup(KeyLogFormat), "text"),
		OptionsFile:  loadedFrom,
	}

	if !identPattern.MatchString(cfg.Schema) {
		return nil, fmt.Errorf("%w: %q", errInvalidSchemaName, cfg.Schema)
	}

	schemas := append(slices.Clone(defaultSchemasToIgnore), cfg.Schema)
	schemas = append(schemas, splitList(lookup(KeySchemasToIgnore))...)
	cfg.SchemasToIgnore = dedupe(schemas)

	patterns := append(slices.Clone(defaultTableIgnorePatterns), splitList(lookup(KeyTableIgnorePatterns))...)
	cfg.TableIgnorePatterns = dedupe(patterns)
	for _, p := range cfg.TableIgnorePatterns {
		if _, err := regexp.Compile(p); err != nil {
			return nil, fmt.Errorf("%w %q: %w", errInvalidPattern, p, err)
		}
	}

	return cfg, nil
}

// loadOptionsFile reads the options file into an upper-cased key map.
func loadOptionsFile(dir, explicit string) (map[string]string, string, error) {
	path := explicit
	mustExist := explicit != ""
	if path == "" {
		path = OptionsFileName
	}
	path = resolvePath(dir, path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return map[string]string{}, "", nil
		}
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("%w: %s", errOptionsFileNotFound, path)
		}
		return nil, "", fmt.Errorf("failed to read options file: %w", err)
	}

	var options map[string]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		options, err = parseJSONOptions(data)
	default:
		options, err = godotenv.UnmarshalBytes(data)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse options file %s: %w", path, err)
	}

	normalized := make(map[string]string, len(options))
	for k, v := range options {
		normalized[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return normalized, path, nil
}

// parseJSONOptions accepts a JSONC object whose values are strings or string arrays.
func parseJSONOptions(data []byte) (map[string]string, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(standardized, &raw); err != nil {
		return nil, err
	}

	options := make(map[string]string, len(raw))
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			options[key] = s
			continue
		}
		var list []string
		if err := json.Unmarshal(value, &list); err != nil {
			return nil, fmt.Errorf("option %s: expected string or list of strings", key)
		}
		options[key] = strings.Join(list, ",")
	}
	return options, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func dedupe(values []string) []string {
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}
