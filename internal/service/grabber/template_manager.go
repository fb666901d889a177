package grabber

//go:generate $MOCKGEN -source=template_manager.go -destination=mocks/template_manager_mock.go

import (
	"bytes"
	"context"
	"html"
	"html/template"

	"github.com/akovalenko/spotify-grabber/internal/config"
	"github.com/akovalenko/spotify-grabber/internal/logger"
)

// TemplateManager defines the interface for generating search queries and expected filenames.
type TemplateManager interface {
	// GetSearchQuery builds the acquisition search query for a track from its tags.
	GetSearchQuery(ctx context.Context, trackTags map[string]string) string

	// GetTrackFilenameStem builds the expected filename stem (without extension) for a track.
	GetTrackFilenameStem(ctx context.Context, trackTags map[string]string) string
}

// TemplateManagerImpl implements the TemplateManager interface.
type TemplateManagerImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// searchQueryTemplate is the template for acquisition search queries.
	searchQueryTemplate *template.Template
	// trackFilenameTemplate is the template for expected track filename stems.
	trackFilenameTemplate *template.Template
	// defaultSearchQueryTemplate is the fallback template for search queries.
	defaultSearchQueryTemplate *template.Template
	// defaultTrackFilenameTemplate is the fallback template for filename stems.
	defaultTrackFilenameTemplate *template.Template
}

// NewTemplateManager creates and returns a new instance of TemplateManagerImpl.
// It initializes templates from the configuration and falls back to default templates if parsing fails.
func NewTemplateManager(ctx context.Context, cfg *config.Config) TemplateManager {
	// Initialize default templates.
	defaultSearchQueryTemplate := template.Must(
		template.New("defaultSearchQueryTemplate").Parse(config.DefaultSearchQueryTemplate))
	defaultTrackFilenameTemplate := template.Must(
		template.New("defaultTrackFilenameTemplate").Parse(config.DefaultTrackFilenameTemplate))

	// Parse custom templates from the configuration.
	searchQueryTemplate, err := template.New("searchQueryTemplate").Parse(cfg.SearchQueryTemplate)
	if err != nil {
		logger.Errorf(ctx, "Failed to parse search query template, using default: %v", err)
	}

	trackFilenameTemplate, err := template.New("trackFilenameTemplate").Parse(cfg.TrackFilenameTemplate)
	if err != nil {
		logger.Errorf(ctx, "Failed to parse track filename template, using default: %v", err)
	}

	return &TemplateManagerImpl{
		cfg:                          cfg,
		searchQueryTemplate:          searchQueryTemplate,
		trackFilenameTemplate:        trackFilenameTemplate,
		defaultSearchQueryTemplate:   defaultSearchQueryTemplate,
		defaultTrackFilenameTemplate: defaultTrackFilenameTemplate,
	}
}

// GetSearchQuery builds the acquisition search query for a track from its tags.
func (s *TemplateManagerImpl) GetSearchQuery(ctx context.Context, trackTags map[string]string) string {
	return s.execute(ctx, s.searchQueryTemplate, s.defaultSearchQueryTemplate, trackTags)
}

// GetTrackFilenameStem builds the expected filename stem (without extension) for a track.
func (s *TemplateManagerImpl) GetTrackFilenameStem(ctx context.Context, trackTags map[string]string) string {
	return s.execute(ctx, s.trackFilenameTemplate, s.defaultTrackFilenameTemplate, trackTags)
}

// execute runs a template against the tags, falling back to the default template on failure.
func (s *TemplateManagerImpl) execute(
	ctx context.Context,
	textBuilder, defaultTextBuilder *template.Template,
	tags map[string]string,
) string {
	var buffer bytes.Buffer

	if textBuilder != nil {
		if err := textBuilder.Execute(&buffer, tags); err != nil {
			logger.Errorf(ctx, "Failed to execute template, using default: %v", err)

			// Fall back to the default template if execution fails.
			buffer.Reset()
			_ = defaultTextBuilder.Execute(&buffer, tags) //nolint:errcheck // Default template is always valid.
		}
	} else {
		// Use default template if custom template is nil.
		_ = defaultTextBuilder.Execute(&buffer, tags) //nolint:errcheck // Default template is always valid.
	}

	// Unescape HTML entities in the generated text.
	return html.UnescapeString(buffer.String())
}
