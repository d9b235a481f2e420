package main

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/schemadict"
	"github.com/tsawler/schemadict/model"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "schemadict <text-dump>",
	Short: "Extract database table schemas from a rendered data dictionary",
	Long: `schemadict reads a page-delimited text dump of a data dictionary and,
optionally, an HTML rendering of the same document. It extracts every
table definition listed in the document's table of contents, reconciles
the two sources, and writes the merged schema as JSON.

Results are cached next to the output file, keyed by a hash of the
inputs, so re-running against unchanged documents is instant.`,
	Args:          cobra.ExactArgs(1),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is ./schemadict.yaml)")
	rootCmd.Flags().String("html", "", "HTML rendering of the same document")
	rootCmd.Flags().StringP("output", "o", "", "output path (default is the text dump with a .json extension)")
	rootCmd.Flags().Bool("force", false, "bypass the result cache and regenerate")
	rootCmd.Flags().Bool("prefer-text", false, "let the text dump win merge disagreements instead of the HTML")
	rootCmd.Flags().Int("page-offset", 2, "offset between printed page numbers and physical page segments")
	rootCmd.Flags().BoolP("verbose", "v", false, "enable debug logging")

	viper.BindPFlag("html", rootCmd.Flags().Lookup("html"))
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("force", rootCmd.Flags().Lookup("force"))
	viper.BindPFlag("prefer_text", rootCmd.Flags().Lookup("prefer-text"))
	viper.BindPFlag("page_offset", rootCmd.Flags().Lookup("page-offset"))
	viper.BindPFlag("verbose", rootCmd.Flags().Lookup("verbose"))
}

// initConfig reads in config file and environment variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("schemadict")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SCHEMADICT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "using config file:", viper.ConfigFileUsed())
	}
}

// envelope is the serialized output shape: the merged tables plus a
// metadata block consumers use to judge extraction quality.
type envelope struct {
	Metadata metadata               `json:"metadata"`
	Tables   model.ExtractionResult `json:"tables"`
}

type metadata struct {
	ExtractionDate string   `json:"extraction_date"`
	TotalTables    int      `json:"total_tables"`
	PDFOnlyTables  int      `json:"pdf_only_tables"`
	HTMLOnlyTables int      `json:"html_only_tables"`
	MergedTables   int      `json:"merged_tables"`
	Warnings       []string `json:"warnings"`
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	textPath := args[0]
	htmlPath := viper.GetString("html")

	outPath := viper.GetString("output")
	if outPath == "" {
		outPath = strings.TrimSuffix(textPath, filepath.Ext(textPath)) + ".json"
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	cacheDir := filepath.Join(filepath.Dir(outPath), ".cache")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	hash, err := inputHash(textPath, htmlPath)
	if err != nil {
		return err
	}
	cachePath := filepath.Join(cacheDir, hash+"_result.json")

	if !viper.GetBool("force") {
		if data, err := os.ReadFile(cachePath); err == nil {
			if json.Valid(data) {
				logger.Info("using cached result", "cache", cachePath)
				return os.WriteFile(outPath, data, 0o644)
			}
			logger.Warn("cache file is corrupted, regenerating", "cache", cachePath)
		}
	}

	ext := schemadict.Open(textPath).
		Logger(logger).
		PageOffset(viper.GetInt("page_offset"))
	if htmlPath != "" {
		ext = ext.HTML(htmlPath)
	}
	if viper.GetBool("prefer_text") {
		ext = ext.PreferText()
	}

	result, report, err := ext.Extract(cmd.Context())
	if err != nil {
		return err
	}

	env := envelope{
		Metadata: metadata{
			ExtractionDate: time.Now().Format(time.RFC3339),
			TotalTables:    report.TotalTables,
			PDFOnlyTables:  report.PDFOnly,
			HTMLOnlyTables: report.HTMLOnly,
			MergedTables:   report.Merged,
			Warnings:       report.Warnings,
		},
		Tables: result,
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing result: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if err := os.WriteFile(cachePath, data, 0o644); err != nil {
		logger.Warn("could not cache result", "error", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Extraction complete. %d tables written to %s\n", report.TotalTables, outPath)
	fmt.Fprintf(out, "  - %d from text only\n", report.PDFOnly)
	fmt.Fprintf(out, "  - %d from HTML only\n", report.HTMLOnly)
	fmt.Fprintf(out, "  - %d from both sources\n", report.Merged)
	if len(report.Warnings) > 0 {
		fmt.Fprintf(out, "  - %d warnings\n", len(report.Warnings))
	}
	return nil
}

// inputHash returns a hex digest over the content of both input files.
// The HTML file may be absent.
func inputHash(textPath, htmlPath string) (string, error) {
	h := sha256.New()

	f, err := os.Open(textPath)
	if err != nil {
		return "", fmt.Errorf("opening text dump: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing text dump: %w", err)
	}

	if htmlPath != "" {
		hf, err := os.Open(htmlPath)
		if err == nil {
			defer hf.Close()
			if _, err := io.Copy(h, hf); err != nil {
				return "", fmt.Errorf("hashing html rendering: %w", err)
			}
		}
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
