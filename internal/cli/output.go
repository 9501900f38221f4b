package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/sectorbook/internal/audit"
	"github.com/ppiankov/sectorbook/internal/history"
	"github.com/ppiankov/sectorbook/internal/model"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	titleColor   = color.New(color.FgCyan, color.Bold)
)

func printSuccess(w io.Writer, format string, args ...any) {
	successColor.Fprintf(w, "✓ "+format+"\n", args...)
}

func printWarning(w io.Writer, format string, args ...any) {
	warningColor.Fprintf(w, "! "+format+"\n", args...)
}

func printError(w io.Writer, format string, args ...any) {
	errorColor.Fprintf(w, "✗ "+format+"\n", args...)
}

func printTitle(w io.Writer, format string, args ...any) {
	titleColor.Fprintf(w, format+"\n", args...)
}

func writeJSON(w io.Writer, v any) error {
	data, err := model.MarshalIndent(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// stores holds the optional run history and audit log.
type stores struct {
	history *history.Store
	audit   *audit.Log
}

// openStores opens whatever the config enables. Callers must Close.
func openStores() (*stores, error) {
	s := &stores{}
	if cfg.HistoryDB != "" {
		h, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return nil, err
		}
		s.history = h
	}
	if cfg.AuditLog != "" {
		l, err := audit.Open(cfg.AuditLog)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.audit = l
	}
	return s, nil
}

func (s *stores) Close() {
	if s.history != nil {
		s.history.Close()
	}
	if s.audit != nil {
		s.audit.Close()
	}
}

// resolveRunDir accepts either an existing directory or a run id under the
// configured output directory.
func resolveRunDir(arg string) (string, error) {
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		return arg, nil
	}
	dir := filepath.Join(cfg.OutputDir, arg)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir, nil
	}
	return "", fmt.Errorf("no run directory %q (looked in . and %s)", arg, cfg.OutputDir)
}
