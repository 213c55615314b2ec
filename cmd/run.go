package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/modfit/modfit/internal/ai"
	"github.com/modfit/modfit/internal/ai/gemini"
	"github.com/modfit/modfit/internal/course"
	"github.com/modfit/modfit/internal/extract"
	"github.com/modfit/modfit/internal/logger"
	"github.com/modfit/modfit/internal/scoring"
	"github.com/modfit/modfit/internal/secrets"
	"github.com/modfit/modfit/internal/synth"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes           = "Yes"
	PromptNo            = "No"
	PromptSkip          = "Skip"
	PromptModulesToFile = "Dump modules to file"

	providerGemini = "gemini"
)

var errExit = errors.New("exit requested")

var reviewPrompt = promptui.Select{
	Label: "Proceed with these modules?",
	Items: []string{PromptYes, PromptNo, PromptModulesToFile},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the modfit main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("documents-dir", "D", "", "directory with module documents (*.md, *.txt)")
	runCmd.Flags().StringP("output", "o", "", "file to write the scoring result to")
	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation of extracted modules")

	viper.BindPFlag("documents-dir", runCmd.Flags().Lookup("documents-dir"))
	viper.BindPFlag("output", runCmd.Flags().Lookup("output"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the modfit", zap.String("version", version))

	if config == nil {
		config = &Config{}
	}

	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	dir := strings.TrimSpace(viper.GetString("documents-dir"))
	if dir == "" {
		dir = config.DocumentsDir
	}
	if dir == "" {
		logger.Fatal("documents directory is required",
			zap.String("hint", "pass --documents-dir or set the 'documents-dir' key in the configuration file"),
		)
	}

	documents, err := loadDocuments(dir)
	if err != nil {
		logger.Fatal("loading module documents", zap.Error(err))
	}

	logger.Info("loading module documents", zap.Int("count", len(documents)), zap.String("dir", dir))

	if len(documents) == 0 {
		logger.Info("exiting", zap.String("reason", "no documents found"))
		return
	}

	extractor, synthesizer, err := prepareGenerative(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("generative strategies unavailable, using deterministic only", zap.Error(err))
	}

	timeout := time.Duration(0)
	if config.AI != nil && config.AI.TimeoutSeconds > 0 {
		timeout = time.Duration(config.AI.TimeoutSeconds) * time.Second
	}

	batch := extract.NewBatch(extractor, extract.NewDeterministic(), logger)
	if timeout > 0 {
		batch.Timeout = timeout
	}

	result := batch.ExtractAll(ctx, documents)

	for _, issue := range result.Issues {
		logger.Warn("document rejected", zap.String("issue", issue))
	}

	logger.Info("extraction finished",
		zap.Int("modules", len(result.Modules)),
		zap.Int("issues", len(result.Issues)),
	)

	if len(result.Modules) == 0 {
		logger.Info("exiting", zap.String("reason", "no modules extracted"))
		return
	}

	if cmd.Flag("auto-approve").Value.String() == "false" {
		if err := reviewModules(result.Modules, logger); err != nil {
			if errors.Is(err, errExit) {
				logger.Info("exiting", zap.String("reason", "modules rejected by user"))
				return
			}
			logger.Fatal("reviewing modules", zap.Error(err))
		}
	}

	coordinator := synth.NewCoordinator(synthesizer, synth.NewDeterministic(), logger)
	if timeout > 0 {
		coordinator.Timeout = timeout
	}

	questions, err := coordinator.SynthesizeAll(ctx, result.Modules)
	if err != nil {
		logger.Fatal("synthesizing questions", zap.Error(err))
	}

	logger.Info("questionnaire ready", zap.Int("questions", len(questions)))

	answers, err := collectAnswers(questions)
	if err != nil {
		logger.Fatal("collecting answers", zap.Error(err))
	}

	scored, err := scoring.ScoreAll(result.Modules, questions, answers)
	if err != nil {
		logger.Fatal("scoring modules", zap.Error(err))
	}

	report(scored, logger)

	if output := strings.TrimSpace(viper.GetString("output")); output != "" {
		if err := writeResult(output, scored); err != nil {
			logger.Fatal("writing result file", zap.Error(err))
		}
		logger.Info("result written", zap.String("filename", output))
	}
}

// loadDocuments reads every markdown or text file in the directory, in name
// order. That order defines the batch order for duplicate resolution.
func loadDocuments(dir string) ([]extract.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	documents := make([]extract.Document, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".md", ".markdown", ".txt":
		default:
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		documents = append(documents, extract.Document{Name: entry.Name(), Text: string(data)})
	}

	return documents, nil
}

func prepareGenerative(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Extractor, ai.Synthesizer, error) {
	if cfg == nil || !cfg.Enabled {
		log.Info("generative strategies disabled, running deterministic only")
		return nil, nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != providerGemini {
		return nil, nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  resolveAPIKeyFile(cfg.Gemini),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	genLogger := logger.WithCommonFields(log, providerGemini, cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, gemini.GeneratorOptions{
		Model:           cfg.Gemini.Model,
		Temperature:     cfg.Gemini.Temperature,
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
		MaxLogLength:    cfg.Gemini.MaxLogLength,
	}, genLogger)
	if err != nil {
		return nil, nil, err
	}

	return gemini.NewExtractor(generator, genLogger), gemini.NewSynthesizer(generator, genLogger), nil
}

func resolveAPIKeyFile(cfg *GeminiConfig) string {
	if file := strings.TrimSpace(cfg.APIKeyFile); file != "" {
		return file
	}
	return strings.TrimSpace(viper.GetString("ai.gemini.api-key-file"))
}

func reviewModules(modules []*course.Module, logger *zap.Logger) error {
	for _, module := range modules {
		logger.Info("extracted module",
			zap.String("reference", module.Reference),
			zap.String("title", module.Title),
			zap.Int("description_length", len(module.Description)),
		)
	}

	for {
		_, action, err := reviewPrompt.Run()
		if err != nil {
			return err
		}

		switch action {
		case PromptYes:
			return nil
		case PromptNo:
			return errExit
		case PromptModulesToFile:
			collection := &course.Modules{Items: modules}
			filename, err := collection.DumpToTmpFile()
			if err != nil {
				return fmt.Errorf("dump modules to file: %w", err)
			}
			logger.Info("dumping modules to file", zap.String("filename", filename))
		default:
			return fmt.Errorf("invalid action: %s", action)
		}
	}
}

// collectAnswers walks the questionnaire one question at a time. Skipped
// questions simply produce no answer; the scorer leaves them out of both sides
// of the ratio.
func collectAnswers(questions []course.Question) ([]course.Answer, error) {
	answers := make([]course.Answer, 0, len(questions))

	for _, question := range questions {
		switch q := question.(type) {
		case *course.BooleanQuestion:
			yes, no := q.Labels()
			prompt := promptui.Select{
				Label: q.QuestionText,
				Items: []string{yes, no, PromptSkip},
			}

			_, selected, err := prompt.Run()
			if err != nil {
				return nil, err
			}
			if selected == PromptSkip {
				continue
			}

			answers = append(answers, course.Answer{QuestionID: q.ID, Value: selected == yes})
		case *course.ScalarQuestion:
			low, high := q.Labels()
			prompt := promptui.Select{
				Label: fmt.Sprintf("%s (%s .. %s)", q.QuestionText, low, high),
				Items: append(scalarSteps(q), PromptSkip),
			}

			_, selected, err := prompt.Run()
			if err != nil {
				return nil, err
			}
			if selected == PromptSkip {
				continue
			}

			value, err := strconv.ParseFloat(selected, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing answer %q: %w", selected, err)
			}

			answers = append(answers, course.Answer{QuestionID: q.ID, Value: value})
		}
	}

	return answers, nil
}

// scalarSteps enumerates the selectable values from minValue to maxValue by
// increment. A non-positive increment falls back to 1 so a malformed question
// cannot spin forever.
func scalarSteps(q *course.ScalarQuestion) []string {
	step := q.Increment
	if step <= 0 {
		step = 1
	}

	const maxSteps = 1000

	steps := make([]string, 0)
	for value := q.MinValue; value <= q.MaxValue && len(steps) < maxSteps; value += step {
		steps = append(steps, strconv.FormatFloat(value, 'f', -1, 64))
	}
	return steps
}

func report(result *scoring.Result, logger *zap.Logger) {
	byReference := make(map[string]*scoring.ModuleScore, len(result.Scores))
	for _, score := range result.Scores {
		byReference[score.ModuleReference] = score
	}

	for rank, reference := range result.RankedModules {
		score := byReference[reference]
		if score == nil {
			continue
		}
		logger.Info("module ranked",
			zap.Int("rank", rank+1),
			zap.String("reference", score.ModuleReference),
			zap.String("title", score.ModuleTitle),
			zap.Float64("score", score.Score),
			zap.Int("answered", score.AnsweredQuestions),
			zap.Int("questions", score.TotalQuestions),
		)
	}

	pretty, _ := json.MarshalIndent(result, "", "  ")
	logger.Debug(fmt.Sprintf("full scoring result: \n %s", pretty))
}

func writeResult(path string, result *scoring.Result) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
