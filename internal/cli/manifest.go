package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sectorbook/internal/audit"
	"github.com/ppiankov/sectorbook/internal/format"
	"github.com/ppiankov/sectorbook/internal/manifest"
)

var manifestJSON bool

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Build or verify evidence manifests",
}

var manifestBuildCmd = &cobra.Command{
	Use:   "build <dir|run-id>",
	Short: "Hash the expected artifacts in a directory and write its manifest",
	Long: `Records a SHA-256 hash for each of the six expected artifacts in the
directory. Artifacts that are not present are recorded as MISSING.`,
	Args: cobra.ExactArgs(1),
	RunE: runManifestBuild,
}

var manifestVerifyCmd = &cobra.Command{
	Use:   "verify <dir|run-id>",
	Short: "Re-hash the artifacts of a run against its manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runManifestVerify,
}

func init() {
	manifestCmd.PersistentFlags().BoolVar(&manifestJSON, "json", false, "Output as JSON")
	manifestCmd.AddCommand(manifestBuildCmd)
	manifestCmd.AddCommand(manifestVerifyCmd)
	rootCmd.AddCommand(manifestCmd)
}

func runManifestBuild(cmd *cobra.Command, args []string) error {
	dir, err := resolveRunDir(args[0])
	if err != nil {
		return err
	}
	m, err := manifest.Build(dir, nil, time.Now())
	if err != nil {
		return err
	}
	digest, err := manifest.Digest(m)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if manifestJSON {
		return writeJSON(out, struct {
			manifest.Manifest
			Digest string `json:"digest"`
		}{m, digest})
	}
	fmt.Fprintln(out, format.Manifest(m, format.ASCII))
	printSuccess(out, "Wrote %s (digest %s)", filepath.Join(dir, manifest.FileName), digest)
	return nil
}

func runManifestVerify(cmd *cobra.Command, args []string) error {
	dir, err := resolveRunDir(args[0])
	if err != nil {
		return err
	}
	res := manifest.Verify(dir)

	if cfg.AuditLog != "" {
		l, err := audit.Open(cfg.AuditLog)
		if err != nil {
			return err
		}
		status := "ok"
		if !res.Valid {
			status = "failed"
		}
		err = l.Record(audit.Entry{
			RunID:  filepath.Base(dir),
			Action: audit.ActionVerify,
			Status: status,
			Detail: res.Error,
		})
		l.Close()
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if manifestJSON {
		if err := writeJSON(out, res); err != nil {
			return err
		}
	} else {
		if res.Error != "" {
			printError(out, "%s", res.Error)
		} else {
			fmt.Fprintln(out, format.Verify(res, format.ASCII))
		}
		if res.Valid {
			printSuccess(out, "%s: all artifacts match the manifest", dir)
		}
	}
	if !res.Valid {
		return fmt.Errorf("manifest verification failed for %s", dir)
	}
	return nil
}
