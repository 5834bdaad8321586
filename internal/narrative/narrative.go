package narrative

import (
	"context"
	"fmt"

	"github.com/Dan9191/finance-advisor/internal/analysis"
	"github.com/Dan9191/finance-advisor/internal/config"
	"github.com/Dan9191/finance-advisor/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	BackendTemplate = "template"
	BackendGroq     = "groq"
)

// Context is the input handed to a narrative backend
type Context struct {
	Snapshot models.RatioSnapshot
	Profile  map[string]any // Raw profile as the client sent it
}

// Generator produces an advisory narrative
type Generator interface {
	Name() string
	Generate(ctx context.Context, nc Context) (string, error)
}

// TemplateGenerator renders the fixed rule-based narrative
type TemplateGenerator struct{}

func (TemplateGenerator) Name() string { return BackendTemplate }

func (TemplateGenerator) Generate(_ context.Context, nc Context) (string, error) {
	return analysis.ComposeNarrative(nc.Snapshot), nil
}

// New selects the narrative backend named in the configuration
func New(cfg *config.Config, log *logrus.Logger) (Generator, error) {
	switch cfg.NarrativeBackend {
	case "", BackendTemplate:
		return TemplateGenerator{}, nil
	case BackendGroq:
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required for the %s narrative backend", BackendGroq)
		}
		return NewGroqGenerator(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown narrative backend %q", cfg.NarrativeBackend)
	}
}
