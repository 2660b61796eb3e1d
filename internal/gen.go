//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/nationalcolors/nationalcolors/internal"
	"github.com/sirupsen/logrus"
)

type staticFileType struct {
	name   string
	target string
	key    uint
	value  uint
}

var files = []staticFileType{
	{
		name:   "css3_colors.txt",
		target: "ColorNames",
		key:    0,
		value:  1,
	},
}

func main() {
	log := logrus.StandardLogger()

	for _, f := range files {
		file, err := os.Open(f.name)

		if err != nil {
			log.WithError(err).Errorf("Unable to open file %s, continuing...", f.name)
			continue
		}

		parser := internal.NewTsvParser(&internal.TsvParserOptions{
			Routines: 1,
			Logger:   log,
		})

		codeMap := make(internal.CodeMap)

		err = parser.Run(file, func(row []string) {
			if int(f.value) >= len(row) {
				log.Warnf("Skipping short row %q in %s", row, f.name)
				return
			}

			codeMap[strings.ToLower(row[f.key])] = strings.ToLower(row[f.value])
		})

		file.Close()

		if err != nil {
			log.WithError(err).Fatalf("Unable to parse %s", f.name)
		}

		filename := fmt.Sprintf("./static_%s.go", strings.ToLower(f.target))
		log.Infof("Writing %d entries to %s", len(codeMap), filename)
		outputf, err := os.Create(filename)

		if err != nil {
			log.WithError(err).Fatalf("Unable to create %s", filename)
		}

		err = outputTemplate.Execute(outputf, struct {
			Timestamp time.Time
			Target    string
			Entries   internal.CodeMap
		}{
			Timestamp: time.Now().UTC(),
			Target:    f.target,
			Entries:   codeMap,
		})

		outputf.Close()

		if err != nil {
			log.WithError(err).Fatalf("Unable to write %s", filename)
		}
	}
}

var outputTemplate = template.Must(template.New("").Parse(`// Code generated; DO NOT EDIT.
// This file was generated at
// {{ .Timestamp }}
package internal

var {{.Target}} = CodeMap{
{{range $index, $element := .Entries }}	{{printf "%q" $index}}: {{ printf "%q" $element }},
{{end}}}
`))
