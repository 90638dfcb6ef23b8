package main

import (
	"flag"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/owenfromcanada/inkscape-androidvector/pkg/config"
)

func main() {

	var wg sync.WaitGroup

	configFile := flag.String("conf", "svg2vector.yml", "configuration file")
	inFile := flag.String("in", "", "single input SVG (bypasses the config job list)")
	outFile := flag.String("out", "", "single output XML (with -in)")
	logDebug := flag.Bool("d", false, "debug-level logging")
	flag.Parse()

	if *logDebug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	var cfg *config.Config
	if *inFile != "" {
		if *outFile == "" {
			log.Fatal("-in requires -out")
		}
		cfg = config.Empty()
		cfg.Jobs = []config.Job{{
			InputFile:  *inFile,
			OutputFile: *outFile,
			Params:     cfg.Defaults,
		}}
	} else {
		cfg = config.New(*configFile)
	}

	if len(cfg.Jobs) == 0 {
		log.Warn("no conversion jobs configured")
		os.Exit(0)
	}

	errs := make(chan error, len(cfg.Jobs))
	for _, job := range cfg.Jobs {
		wg.Add(1)
		go func(job config.Job) {
			defer wg.Done()
			if err := convertFile(job); err != nil {
				log.Errorf("%s: %v", job.InputFile, err)
				errs <- err
			}
		}(job)
	}

	wg.Wait()
	close(errs)
	if len(errs) > 0 {
		os.Exit(1)
	}
}
