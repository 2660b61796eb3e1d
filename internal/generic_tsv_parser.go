package internal

import (
	"bufio"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type tsvParser struct {
	log      *logrus.Logger
	routines int
}

func (p *tsvParser) read(from io.Reader, output chan []string) error {
	defer close(output)

	scanner := bufio.NewScanner(from)

	for scanner.Scan() {
		line := scanner.Text()

		// Skip comment and blank lines
		if strings.Index(line, "#") == 0 || strings.TrimSpace(line) == "" {
			p.log.Debug("Skip line ", line)
			continue
		}

		output <- strings.Split(line, "\t")
	}

	return scanner.Err()
}

// Run feeds every record of from to runner. With more than one routine the
// runner is called concurrently and must do its own locking.
func (p *tsvParser) Run(from io.Reader, runner func([]string)) error {
	start := time.Now()

	output := make(chan []string)

	readErr := make(chan error, 1)

	go func() {
		readErr <- p.read(from, output)
	}()

	var wg sync.WaitGroup

	for id := 0; id < p.routines; id++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for line := range output {
				runner(line)
			}
		}()
	}

	wg.Wait()

	p.log.Debugf("Parsing took %s", time.Since(start))

	return <-readErr
}

type TsvParserOptions struct {
	Logger   *logrus.Logger
	Routines int
}

func NewTsvParser(options *TsvParserOptions) *tsvParser {
	parser := &tsvParser{}

	parser.log = options.Logger

	parser.routines = options.Routines

	if parser.routines < 1 {
		parser.routines = 1
	}

	return parser
}
