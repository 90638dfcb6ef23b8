package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/owenfromcanada/inkscape-androidvector/pkg/avdxml"
	"github.com/owenfromcanada/inkscape-androidvector/pkg/config"
	"github.com/owenfromcanada/inkscape-androidvector/pkg/svgxml"
	"github.com/owenfromcanada/inkscape-androidvector/pkg/vector"
)

// convertFile runs one conversion job: SVG in, VectorDrawable XML out.
func convertFile(job config.Job) error {
	data, err := os.ReadFile(job.InputFile)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	doc, err := svgxml.Parse(data)
	if err != nil {
		return err
	}

	opts := vector.Options{
		ViewportMax: job.Params.ViewportMax,
		Canon: vector.Canonicalizer{
			Epsilon:   job.Params.Epsilon,
			Precision: job.Params.Precision,
		},
	}
	out := vector.Convert(doc, opts)
	if len(out.Paths) == 0 {
		log.Warnf("%s: no convertible paths, writing empty vector", job.InputFile)
	}

	xmlText, err := avdxml.Marshal(avdxml.FromOutput(out, opts.Canon), !job.Params.Compact)
	if err != nil {
		return err
	}

	if err := os.WriteFile(job.OutputFile, xmlText, 0666); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Debugf("%s -> %s (%d paths)", job.InputFile, job.OutputFile, len(out.Paths))
	return nil
}
