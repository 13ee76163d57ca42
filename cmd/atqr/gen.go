package main

import (
	"flag"
	"os"

	"github.com/pchouse/atqr/pkg/qrgen"
)

func runGen(args []string) error {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	out := fs.String("o", "qr.png", "output PNG file")
	size := fs.Int("size", 256, "image size in pixels")
	strict := fs.Bool("strict", false, "refuse payloads that do not tokenize")
	if err := fs.Parse(args); err != nil {
		return err
	}

	payload, err := readPayload(fs.Args())
	if err != nil {
		return err
	}

	if *strict {
		png, err := qrgen.EncodeDocument(payload, *size)
		if err != nil {
			return err
		}
		return os.WriteFile(*out, png, 0o644)
	}
	return qrgen.EncodeToFile(payload, *out, *size)
}
