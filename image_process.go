package main

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"rawconv/logger"
	"rawconv/render"
	"rawconv/resolve"
)

// Pipeline renders a RAW file and writes the result.
type Pipeline interface {
	Render(path string, denoise bool) (image.Image, error)
	Write(img image.Image, path string) error
}

type Processor struct {
	Config   *Config
	Console  *logger.Console
	FS       resolve.FileSystem
	Pipeline Pipeline
}

func NewProcessor(cfg *Config, console *logger.Console) *Processor {
	return &Processor{
		Config:   cfg,
		Console:  console,
		FS:       resolve.OSFileSystem{},
		Pipeline: render.NewPipeline(cfg.RenderOptions()),
	}
}

// ProcessPath resolves the whole batch, creates mirrored output folders and
// converts every file in order. Nothing is rendered unless every input has
// an output path.
func (p *Processor) ProcessPath(ctx context.Context) error {
	plan, err := p.Plan()
	if err != nil {
		return err
	}

	p.printPlan(plan)

	if p.Config.DryRun {
		p.Console.Info("Dry run: %d files planned, nothing written", len(plan.Pairs))
		return nil
	}

	created, err := resolve.EnsureDirs(plan, p.FS)
	for _, dir := range created {
		p.Console.Debug("Created directory %s", dir)
	}
	if err != nil {
		return err
	}

	return p.Run(ctx, plan.Pairs)
}

func (p *Processor) Plan() (*resolve.Plan, error) {
	opts := p.Config.ResolveOptions()

	inputs, err := resolve.Discover(p.Config.Source, opts)
	if err != nil {
		return nil, err
	}

	p.Console.Info("Found %d input images in %s (recursive: %t)", len(inputs), p.Config.Source, opts.Recursive)

	return resolve.Resolve(inputs, p.Config.Target, opts, p.FS)
}

// Run converts each pair in order and stops at the first failure.
func (p *Processor) Run(ctx context.Context, pairs []resolve.Pair) error {
	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("batch aborted: %w", err)
		}

		timer := p.Console.StartTimer(filepath.Base(pair.Input))

		img, err := p.Pipeline.Render(pair.Input, p.Config.Denoise)
		if err != nil {
			return fmt.Errorf("%w %s: %w", ErrRender, pair.Input, err)
		}

		if err := p.Pipeline.Write(img, pair.Output); err != nil {
			return fmt.Errorf("%w %s: %w", ErrWrite, pair.Output, err)
		}

		elapsed := timer.End()
		p.Console.Success("%s → %s (%v)", pair.Input, pair.Output, elapsed.Round(time.Millisecond))
	}

	return nil
}

func (p *Processor) printPlan(plan *resolve.Plan) {
	if p.Config.LogJSON {
		for _, pair := range plan.Pairs {
			p.Console.Logger.Info("planned", "input", pair.Input, "output", pair.Output)
		}
		return
	}

	table := p.Console.NewTable([]string{"Input", "Output"})
	for _, pair := range plan.Pairs {
		table.AddRow(pair.Input, pair.Output)
	}
	table.Print()
}
