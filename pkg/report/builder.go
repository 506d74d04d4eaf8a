package report

import (
	"time"

	"github.com/r3d91ll/qmreport/pkg/draw"
	"github.com/r3d91ll/qmreport/pkg/layout"
	"github.com/r3d91ll/qmreport/pkg/theme"
)

// Builder constructs reports with a fluent API.
type Builder struct {
	config *Config
	now    func() time.Time
}

// NewBuilder creates a builder with DefaultConfig and the wall clock.
func NewBuilder() *Builder {
	return &Builder{config: DefaultConfig(), now: time.Now}
}

// WithConfig replaces the whole configuration. A nil config is ignored.
func (b *Builder) WithConfig(config *Config) *Builder {
	if config != nil {
		c := *config
		b.config = &c
	}
	return b
}

// WithTheme sets the colour palette.
func (b *Builder) WithTheme(th theme.Theme) *Builder {
	b.config.Theme = th
	return b
}

// WithGeometry sets the page geometry.
func (b *Builder) WithGeometry(g layout.Geometry) *Builder {
	b.config.Geometry = g
	return b
}

// WithVersion sets the version shown in the info card.
func (b *Builder) WithVersion(version string) *Builder {
	b.config.Version = version
	return b
}

// WithClock sets the time source used for the filename and default timestamp.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	if now != nil {
		b.now = now
	}
	return b
}

// Config returns a copy of the builder's configuration.
func (b *Builder) Config() Config {
	return *b.config
}

// Build lays out every section of the report. Any error aborts the build and
// no document is returned.
func (b *Builder) Build(req Request) (*Document, error) {
	now := b.now()
	loc := b.config.Location
	if loc == nil {
		loc = time.Local
	}

	bs := newBuildState(b.config)
	bs.rec.NewPage()

	stamp := req.Timestamp
	if stamp == "" {
		stamp = DefaultTimestamp(now.In(loc))
	}
	model := req.ModelName
	if model == "" {
		model = b.config.DefaultModelName
	}

	bs.header()
	bs.infoCard(stamp, model)
	bs.executiveSummary()
	if len(req.Metrics) > 0 {
		bs.metricsTable(req.Metrics)
	}
	if err := bs.chartSections(req); err != nil {
		return nil, err
	}
	bs.recommendations()
	bs.ctx.Finish()

	cmds := bs.rec.Commands()
	return &Document{
		Commands:    cmds,
		Pages:       draw.Pages(cmds),
		Filename:    Filename(now),
		Title:       "Quantum Model Evaluation Report",
		ModelName:   model,
		Author:      b.config.Author,
		Creator:     b.config.Creator,
		GeneratedAt: now,
		Sections:    bs.sections,
	}, nil
}

// buildState is the per-build document state: recorder, cursor and the log
// of sections drawn. It never outlives a Build call.
type buildState struct {
	cfg      *Config
	th       theme.Theme
	rec      *draw.Recorder
	ctx      *layout.Context
	sections []string
}

func newBuildState(cfg *Config) *buildState {
	bs := &buildState{cfg: cfg, th: cfg.Theme, rec: draw.NewRecorder(cfg.Theme)}
	bs.ctx = layout.NewContext(cfg.Geometry, bs.rec.NewPage, bs.footer)
	return bs
}
