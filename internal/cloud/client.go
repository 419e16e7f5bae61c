// Package cloud is the Cloud Translation v3 backend, with optional glossary.
package cloud

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/oukeidos/glosst/internal/apperrors"
	"github.com/oukeidos/glosst/internal/glossary"
	"github.com/oukeidos/glosst/internal/httpclient"
	"github.com/oukeidos/glosst/internal/logger"
	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v3"
)

const DefaultLocation = "us-central1"

// Config selects the project, language pair and glossary. The glossary is
// fixed for the lifetime of the client.
type Config struct {
	ProjectID        string
	Location         string
	GlossaryLocation string
	// GlossaryID enables glossary-aware translation when non-empty.
	GlossaryID string

	SourceLang string
	TargetLang string

	// CredentialsFile is a service account key. Empty uses Application
	// Default Credentials.
	CredentialsFile string
	// Endpoint overrides the API root and disables authentication, for
	// emulators and tests.
	Endpoint string
	// Timeout bounds each request made through Endpoint. Zero means none.
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Location == "" {
		c.Location = DefaultLocation
	}
	if c.GlossaryLocation == "" {
		c.GlossaryLocation = c.Location
	}
	return c
}

func (c Config) validate() error {
	if strings.TrimSpace(c.ProjectID) == "" {
		return fmt.Errorf("cloud project id is required")
	}
	if c.SourceLang == "" || c.TargetLang == "" {
		return fmt.Errorf("source and target languages are required")
	}
	return nil
}

type translateFunc func(ctx context.Context, parent string, req *translate.TranslateTextRequest) (*translate.TranslateTextResponse, error)

// Client sends one translateText request per batch.
type Client struct {
	call     translateFunc
	parent   string
	glossary string
	source   string
	target   string
}

// NewClient builds the REST client for cfg.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var opts []option.ClientOption
	switch {
	case cfg.Endpoint != "":
		endpoint := strings.TrimSuffix(cfg.Endpoint, "/") + "/"
		opts = append(opts,
			option.WithEndpoint(endpoint),
			option.WithoutAuthentication(),
			option.WithHTTPClient(httpclient.NewClient(cfg.Timeout)),
		)
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	svc, err := translate.NewService(ctx, opts...)
	if err != nil {
		return nil, apperrors.New(apperrors.KindAuth, "Failed to initialize Cloud Translation client.", err)
	}
	call := func(ctx context.Context, parent string, req *translate.TranslateTextRequest) (*translate.TranslateTextResponse, error) {
		return svc.Projects.Locations.TranslateText(parent, req).Context(ctx).Do()
	}
	return newClient(cfg, call), nil
}

func newClient(cfg Config, call translateFunc) *Client {
	cfg = cfg.withDefaults()
	c := &Client{
		call:   call,
		parent: fmt.Sprintf("projects/%s/locations/%s", cfg.ProjectID, cfg.Location),
		source: cfg.SourceLang,
		target: cfg.TargetLang,
	}
	if cfg.GlossaryID != "" {
		c.glossary = glossary.ResourceName(cfg.ProjectID, cfg.GlossaryLocation, cfg.GlossaryID)
	}
	logger.Debug("Cloud translation client ready", "parent", c.parent, "glossary", c.glossary)
	return c
}

// Translate implements provider.Provider.
func (c *Client) Translate(ctx context.Context, texts []string) ([]string, error) {
	if len(texts) == 0 {
		return []string{}, nil
	}
	req := &translate.TranslateTextRequest{
		Contents:           texts,
		SourceLanguageCode: c.source,
		TargetLanguageCode: c.target,
	}
	if c.glossary != "" {
		req.GlossaryConfig = &translate.TranslateTextGlossaryConfig{Glossary: c.glossary}
	}

	resp, err := c.call(ctx, c.parent, req)
	if err != nil {
		return nil, classifyCloudError(err)
	}
	if resp == nil {
		return nil, apperrors.Validation(fmt.Errorf("empty translateText response"))
	}

	translations := resp.Translations
	if c.glossary != "" {
		translations = resp.GlossaryTranslations
	}
	out := make([]string, len(translations))
	for i, t := range translations {
		if t == nil {
			return nil, apperrors.Validation(fmt.Errorf("translateText response has no translation at index %d", i))
		}
		out[i] = html.UnescapeString(t.TranslatedText)
	}
	return out, nil
}

// GlossaryResource returns the configured glossary resource name, or "".
func (c *Client) GlossaryResource() string {
	return c.glossary
}
