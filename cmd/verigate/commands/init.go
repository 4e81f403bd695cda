package commands

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/verigate/verigate/internal/engine/config"
	"github.com/verigate/verigate/internal/engine/git"
	"github.com/verigate/verigate/internal/platform/logger"
)

// InitFS abstracts file system operations needed by the init command.
type InitFS interface {
	Stat(name string) (fs.FileInfo, error)
	IsNotExist(err error) bool
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

var flagLanguage string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize verigate in the current project",
	Long: `Detect the project's language, generate a default .verigate/checks.yaml,
and install the git pre-commit hook. Pass --language to skip detection;
an unknown language is a configuration error.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		log.Info("init started")

		projectDir, err := getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}

		gitSvc := git.NewExecService(projectDir)
		if err := initProject(ctx, projectDir, flagLanguage, &osInitFS{}, gitSvc, cmd.OutOrStdout()); err != nil {
			return err
		}

		log.Info("init completed")
		return nil
	},
}

// initProject performs the init workflow with injected dependencies for testability.
func initProject(ctx context.Context, projectDir, languageHint string, fsys InitFS, gitSvc git.Service, out io.Writer) error {
	// 1. Create .verigate directory if it doesn't exist.
	vgDir := filepath.Join(projectDir, ".verigate")
	if err := fsys.MkdirAll(vgDir, 0o750); err != nil {
		return fmt.Errorf("creating .verigate directory: %w", err)
	}

	// 2. Generate default checks.yaml if it doesn't exist.
	configPath := filepath.Join(vgDir, "checks.yaml")
	if _, err := fsys.Stat(configPath); fsys.IsNotExist(err) {
		var langs []config.Language
		if languageHint != "" {
			lang, parseErr := config.ParseLanguage(languageHint)
			if parseErr != nil {
				return parseErr
			}
			langs = []config.Language{lang}
		} else {
			// Detect languages from project root marker files.
			entries, readErr := fsys.ReadDir(projectDir)
			if readErr != nil {
				return fmt.Errorf("reading project directory: %w", readErr)
			}
			var files []string
			for _, e := range entries {
				files = append(files, e.Name())
			}
			langs = config.DetectLanguages(files)
		}

		yamlContent := config.GenerateChecksYAML(langs)

		if writeErr := fsys.WriteFile(configPath, []byte(yamlContent), 0o644); writeErr != nil { // #nosec G306 -- config file, not sensitive
			return fmt.Errorf("writing checks.yaml: %w", writeErr)
		}

		if len(langs) > 0 {
			fmt.Fprintf(out, "✅ Detected %s project. Generated %s with checks.\n", formatLanguages(langs), configPath)
		} else {
			fmt.Fprintf(out, "📝 No language detected. Created minimal %s, customize it.\n", configPath)
		}
	} else {
		fmt.Fprintf(out, "⚡ Config already exists at %s. Skipping generation.\n", configPath)
	}

	// 3. Install git pre-commit hook.
	if err := gitSvc.InstallHook(ctx); err != nil {
		return fmt.Errorf("installing hook: %w", err)
	}

	fmt.Fprintln(out, "🔒 Verigate initialized successfully!")
	return nil
}

// getwd is a variable for testability (defaults to os.Getwd).
var getwd = os.Getwd

// formatLanguages returns a human-readable string of detected languages.
func formatLanguages(langs []config.Language) string {
	if len(langs) == 1 {
		return string(langs[0])
	}
	var parts []string
	for _, l := range langs {
		parts = append(parts, string(l))
	}
	return join(parts, " + ")
}

// join concatenates string slices with a separator (avoids importing strings for one call).
func join(elems []string, sep string) string {
	if len(elems) == 0 {
		return ""
	}
	result := elems[0]
	for _, e := range elems[1:] {
		result += sep + e
	}
	return result
}

func init() {
	initCmd.Flags().StringVar(&flagLanguage, "language", "", "Project language (go, node, python); skips detection")
	rootCmd.AddCommand(initCmd)
}
