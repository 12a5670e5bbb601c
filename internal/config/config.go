// Package config resolves run parameters from explicit overrides and PVPC_*
// environment fallbacks into validated, immutable configurations. All
// validation happens here, before any fetch, write or send.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/pvpc-tools/pvpc-exporter/internal/ghenv"
	"github.com/pvpc-tools/pvpc-exporter/pkg/dates"
)

var (
	// ErrMissingConfig indicates a required field was empty after trimming.
	ErrMissingConfig = errors.New("missing configuration")

	// ErrConfigFileNotFound indicates a configured file path does not exist.
	ErrConfigFileNotFound = errors.New("configuration file not found")
)

// Configuration keys. With the PVPC env prefix these map to PVPC_DATE,
// PVPC_OUTPUT_PCB_PATH and so on.
const (
	keyDate          = "date"
	keyDateFrom      = "date_from"
	keyDateTo        = "date_to"
	keyPCBPath       = "output_pcb_path"
	keyPCBGraphPath  = "output_pcb_graph_path"
	keyCMPath        = "output_cm_path"
	keyCMGraphPath   = "output_cm_graph_path"
	keyGraphPCB      = "graph_pcb"
	keyGraphCM       = "graph_cm"
	keyFeedURL       = "feed_url"
	keyHistoryPath   = "history_path"
	keyBotToken      = "telegram_bot_token"
	keyChatID        = "telegram_chatid"
	keyDataPath      = "data_path"
	keyTiersPath     = "tiers_path"
	keyLoggingLevel  = "log_level"
	keyLoggingFormat = "log_format"
)

// Keys published to the GitHub Actions environment file after a successful
// export resolution.
const (
	EnvDateFormatted         = "PVPC_DATE_FORMATTED"
	EnvPCBPathFormatted      = "PVPC_OUTPUT_PCB_PATH_FORMATTED"
	EnvPCBGraphPathFormatted = "PVPC_OUTPUT_PCB_GRAPH_PATH_FORMATTED"
	EnvCMPathFormatted       = "PVPC_OUTPUT_CM_PATH_FORMATTED"
	EnvCMGraphPathFormatted  = "PVPC_OUTPUT_CM_GRAPH_PATH_FORMATTED"
)

// ExportOptions are call-time overrides for the export commands. Empty
// fields fall back to the environment.
type ExportOptions struct {
	Date     string
	DateFrom string
	DateTo   string
}

// NotifyOptions are call-time overrides for the notify command.
type NotifyOptions struct {
	DataPath  string
	TiersPath string
}

// Templates holds the four raw artifact path templates.
type Templates struct {
	PCB      string
	PCBGraph string
	CM       string
	CMGraph  string
}

// Expand applies the date to every template.
func (t Templates) Expand(d dates.Date) Templates {
	return Templates{
		PCB:      dates.ExpandPath(t.PCB, d),
		PCBGraph: dates.ExpandPath(t.PCBGraph, d),
		CM:       dates.ExpandPath(t.CM, d),
		CMGraph:  dates.ExpandPath(t.CMGraph, d),
	}
}

// ExportConfig is the validated configuration for a single-day export.
// Immutable after resolution.
type ExportConfig struct {
	Date      dates.Date
	Templates Templates
	Expanded  Templates
	GraphPCB  bool
	GraphCM   bool

	FeedURL     string
	HistoryPath string
	LogLevel    string
	LogFormat   string
}

// RangeConfig is the validated configuration for a range export.
type RangeConfig struct {
	From   dates.Date
	To     dates.Date
	Export ExportConfig
}

// NotifyConfig is the validated configuration for the notify step.
type NotifyConfig struct {
	BotToken  string
	ChatID    string
	DataPath  string
	TiersPath string
	LogLevel  string
	LogFormat string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("PVPC")
	v.AutomaticEnv()

	v.SetDefault(keyDate, dates.SpecToday)
	v.SetDefault(keyGraphPCB, true)
	v.SetDefault(keyGraphCM, false)
	v.SetDefault(keyLoggingLevel, "info")
	v.SetDefault(keyLoggingFormat, "text")
	return v
}

// ResolveExport merges overrides with the environment and validates the
// result for a single-day export: the date resolves first, then every path
// template must be non-empty, then the templates are expanded for that date.
func ResolveExport(opts ExportOptions) (*ExportConfig, error) {
	v := newViper()
	if opts.Date != "" {
		v.Set(keyDate, opts.Date)
	}

	date, err := dates.Resolve(strings.TrimSpace(v.GetString(keyDate)), nil)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", keyDate, err)
	}

	templates, err := requireTemplates(v)
	if err != nil {
		return nil, err
	}

	cfg := &ExportConfig{
		Date:        date,
		Templates:   templates,
		Expanded:    templates.Expand(date),
		GraphPCB:    v.GetBool(keyGraphPCB),
		GraphCM:     v.GetBool(keyGraphCM),
		FeedURL:     strings.TrimSpace(v.GetString(keyFeedURL)),
		HistoryPath: strings.TrimSpace(v.GetString(keyHistoryPath)),
		LogLevel:    v.GetString(keyLoggingLevel),
		LogFormat:   v.GetString(keyLoggingFormat),
	}
	return cfg, nil
}

// ResolveRange validates a from/to interval on top of the export surface.
// Both bounds accept the same specifiers as the date field.
func ResolveRange(opts ExportOptions) (*RangeConfig, error) {
	v := newViper()
	if opts.DateFrom != "" {
		v.Set(keyDateFrom, opts.DateFrom)
	}
	if opts.DateTo != "" {
		v.Set(keyDateTo, opts.DateTo)
	}

	fromSpec := strings.TrimSpace(v.GetString(keyDateFrom))
	if fromSpec == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, keyDateFrom)
	}
	toSpec := strings.TrimSpace(v.GetString(keyDateTo))
	if toSpec == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, keyDateTo)
	}

	from, err := dates.Resolve(fromSpec, nil)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", keyDateFrom, err)
	}
	to, err := dates.Resolve(toSpec, nil)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", keyDateTo, err)
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: %s > %s", dates.ErrInvalidRange, from, to)
	}

	templates, err := requireTemplates(v)
	if err != nil {
		return nil, err
	}

	cfg := &RangeConfig{
		From: from,
		To:   to,
		Export: ExportConfig{
			Date:        from,
			Templates:   templates,
			Expanded:    templates.Expand(from),
			GraphPCB:    v.GetBool(keyGraphPCB),
			GraphCM:     v.GetBool(keyGraphCM),
			FeedURL:     strings.TrimSpace(v.GetString(keyFeedURL)),
			HistoryPath: strings.TrimSpace(v.GetString(keyHistoryPath)),
			LogLevel:    v.GetString(keyLoggingLevel),
			LogFormat:   v.GetString(keyLoggingFormat),
		},
	}
	return cfg, nil
}

// ResolveNotify validates the notify surface: credentials must be non-empty
// after trimming and the data path must name an existing file.
func ResolveNotify(opts NotifyOptions) (*NotifyConfig, error) {
	v := newViper()
	if opts.DataPath != "" {
		v.Set(keyDataPath, opts.DataPath)
	}
	if opts.TiersPath != "" {
		v.Set(keyTiersPath, opts.TiersPath)
	}

	token, err := requireString(v, keyBotToken)
	if err != nil {
		return nil, err
	}
	chatID, err := requireString(v, keyChatID)
	if err != nil {
		return nil, err
	}
	dataPath, err := requireString(v, keyDataPath)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(dataPath); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrConfigFileNotFound, keyDataPath, dataPath)
	}

	cfg := &NotifyConfig{
		BotToken:  token,
		ChatID:    chatID,
		DataPath:  dataPath,
		TiersPath: strings.TrimSpace(v.GetString(keyTiersPath)),
		LogLevel:  v.GetString(keyLoggingLevel),
		LogFormat: v.GetString(keyLoggingFormat),
	}
	return cfg, nil
}

// Publish writes the resolved date and expanded paths to the GitHub Actions
// environment sink. Best effort: the first write error is returned for
// logging but never invalidates the configuration.
func (c *ExportConfig) Publish(sink ghenv.Sink) error {
	entries := []struct{ key, value string }{
		{EnvDateFormatted, c.Date.ISO()},
		{EnvPCBPathFormatted, c.Expanded.PCB},
		{EnvPCBGraphPathFormatted, c.Expanded.PCBGraph},
		{EnvCMPathFormatted, c.Expanded.CM},
		{EnvCMGraphPathFormatted, c.Expanded.CMGraph},
	}
	for _, e := range entries {
		if err := sink.Publish(e.key, e.value); err != nil {
			return err
		}
	}
	return nil
}

func requireTemplates(v *viper.Viper) (Templates, error) {
	pcb, err := requireString(v, keyPCBPath)
	if err != nil {
		return Templates{}, err
	}
	pcbGraph, err := requireString(v, keyPCBGraphPath)
	if err != nil {
		return Templates{}, err
	}
	cm, err := requireString(v, keyCMPath)
	if err != nil {
		return Templates{}, err
	}
	cmGraph, err := requireString(v, keyCMGraphPath)
	if err != nil {
		return Templates{}, err
	}
	return Templates{PCB: pcb, PCBGraph: pcbGraph, CM: cm, CMGraph: cmGraph}, nil
}

func requireString(v *viper.Viper, key string) (string, error) {
	value := strings.TrimSpace(v.GetString(key))
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingConfig, key)
	}
	return value, nil
}
