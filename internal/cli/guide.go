package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	builtindocs "github.com/aidanlsb/scribe/docs"
	"github.com/aidanlsb/scribe/internal/ui"
)

const (
	guideRoot      = "guide"
	guideIndexPath = "index.yaml"
)

var guideSearchLimit int

type guideTopic struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Path  string `json:"path" yaml:"-"`
}

type guideSearchMatch struct {
	Topic   string `json:"topic"`
	Title   string `json:"title"`
	Line    int    `json:"line"`
	Snippet string `json:"snippet"`
}

type guideIndex struct {
	Topics []guideTopic `yaml:"topics"`
}

var guideCmd = &cobra.Command{
	Use:   "guide [topic]",
	Short: "Read the transcription guide",
	Long: `Read the transcription guide bundled into the scribe binary: the
workflow, TEI encoding conventions, note types and the flat format.
For command usage, use 'scribe help <command>'.

Examples:
  scribe guide
  scribe guide tei
  scribe guide search cert`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := loadGuideTopics(builtindocs.FS)
		if err != nil {
			return handleError(ErrInternal, err, "Rebuild scribe so the bundled guide is available")
		}
		if len(args) == 0 {
			return outputGuideTopics(topics)
		}
		topic, ok := findGuideTopic(topics, args[0])
		if !ok {
			return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("unknown guide topic %q", args[0]), "Run 'scribe guide' to list topics")
		}
		content, err := fs.ReadFile(builtindocs.FS, topic.Path)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"topic":   topic.ID,
				"title":   topic.Title,
				"content": string(content),
			}, nil)
			return nil
		}
		display := ui.NewDisplayContext()
		out, err := ui.RenderMarkdown(string(content), display.AvailableWidth(ui.MarkdownRenderMargin))
		if err != nil {
			fmt.Print(string(content))
			return nil
		}
		fmt.Print(out)
		return nil
	},
	Annotations: map[string]string{annotationNoProject: "true"},
}

var guideSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the transcription guide",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return handleErrorMsg(ErrMissingArgument, "specify a search query", "Usage: scribe guide search <query>")
		}
		if guideSearchLimit < 1 {
			return handleErrorMsg(ErrInvalidInput, "--limit must be >= 1", "")
		}
		matches, err := searchGuide(builtindocs.FS, query, guideSearchLimit)
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"query":   query,
				"matches": matches,
			}, &Meta{Count: len(matches)})
			return nil
		}
		if len(matches) == 0 {
			fmt.Printf("No guide topics matched %q.\n", query)
			return nil
		}
		for _, m := range matches {
			fmt.Printf("%s %s\n", ui.FilePath(fmt.Sprintf("%s:%d", m.Topic, m.Line)), m.Snippet)
		}
		return nil
	},
}

func outputGuideTopics(topics []guideTopic) error {
	if isJSONOutput() {
		outputSuccess(map[string]interface{}{"topics": topics}, &Meta{Count: len(topics)})
		return nil
	}
	t := ui.NewTable(ui.NewDisplayContext(),
		ui.Column{Header: "TOPIC", MinWidth: 10},
		ui.Column{Header: "TITLE", MinWidth: 20, Ratio: 1},
	)
	for _, topic := range topics {
		t.AddRow(topic.ID, topic.Title)
	}
	fmt.Println(t.Render())
	fmt.Println(ui.Hint("Run 'scribe guide <topic>' to read one."))
	return nil
}

// loadGuideTopics reads the topic order from index.yaml and checks that
// every listed topic has a page.
func loadGuideTopics(fsys fs.FS) ([]guideTopic, error) {
	raw, err := fs.ReadFile(fsys, path.Join(guideRoot, guideIndexPath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("guide index not found at %s", path.Join(guideRoot, guideIndexPath))
		}
		return nil, fmt.Errorf("read guide index: %w", err)
	}
	var index guideIndex
	if err := yaml.Unmarshal(raw, &index); err != nil {
		return nil, fmt.Errorf("parse guide index: %w", err)
	}

	topics := make([]guideTopic, 0, len(index.Topics))
	for _, t := range index.Topics {
		t.ID = normalizeGuideID(t.ID)
		if t.ID == "" {
			return nil, fmt.Errorf("parse guide index: topic without id")
		}
		t.Path = path.Join(guideRoot, t.ID+".md")
		if _, err := fs.Stat(fsys, t.Path); err != nil {
			return nil, fmt.Errorf("guide topic %q: %w", t.ID, err)
		}
		if t.Title == "" {
			t.Title = t.ID
		}
		topics = append(topics, t)
	}
	return topics, nil
}

func normalizeGuideID(raw string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), ".md")
}

func findGuideTopic(topics []guideTopic, raw string) (guideTopic, bool) {
	id := normalizeGuideID(raw)
	for _, t := range topics {
		if t.ID == id {
			return t, true
		}
	}
	return guideTopic{}, false
}

// searchGuide returns case-insensitive line matches in topic order.
func searchGuide(fsys fs.FS, query string, limit int) ([]guideSearchMatch, error) {
	topics, err := loadGuideTopics(fsys)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	matches := []guideSearchMatch{}
	for _, t := range topics {
		content, err := fs.ReadFile(fsys, t.Path)
		if err != nil {
			return nil, err
		}
		for i, line := range strings.Split(string(content), "\n") {
			if !strings.Contains(strings.ToLower(line), needle) {
				continue
			}
			matches = append(matches, guideSearchMatch{
				Topic:   t.ID,
				Title:   t.Title,
				Line:    i + 1,
				Snippet: strings.TrimSpace(line),
			})
			if len(matches) >= limit {
				return matches, nil
			}
		}
	}
	return matches, nil
}

func init() {
	guideSearchCmd.Flags().IntVar(&guideSearchLimit, "limit", 20, "Maximum matches to show")
	guideCmd.AddCommand(guideSearchCmd)
	rootCmd.AddCommand(guideCmd)
}
