package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/pchouse/atqr/pkg/certreg"
	"github.com/pchouse/atqr/pkg/enrich"
	"github.com/pchouse/atqr/pkg/euvat"
	"github.com/pchouse/atqr/pkg/fiscalqr"
	"github.com/pchouse/atqr/pkg/messages"
	"github.com/pchouse/atqr/pkg/validateapi"
)

func runValidate(cfg appConfig, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "print the report as JSON with stable message keys")
	lang := fs.String("lang", messages.DefaultLanguage, "language for messages")
	withLookups := fs.Bool("enrich", false, "run VIES, certificate registry and validation API lookups")
	if err := fs.Parse(args); err != nil {
		return err
	}

	payload, err := readPayload(fs.Args())
	if err != nil {
		return err
	}

	catalog, err := messages.New()
	if err != nil {
		return err
	}

	res, err := fiscalqr.Parse(payload)
	if err != nil {
		var perr *fiscalqr.ParseError
		if errors.As(err, &perr) {
			msg := catalog.Get(*lang, perr.Key)
			if perr.Token != "" {
				msg = fmt.Sprintf("%s: %q", msg, perr.Token)
			}
			fmt.Fprintln(os.Stderr, msg)
			os.Exit(1)
		}
		return err
	}

	var enrichment *enrich.Enrichment
	if *withLookups {
		enricher := enrich.New(
			enrich.WithVATChecker(euvat.New()),
			enrich.WithCertificateRegistry(certreg.New()),
			enrich.WithRemoteValidator(validateapi.New(cfg.LookupTimeout), cfg.ValidateAPIURL),
		)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.LookupTimeout)
		defer cancel()
		enrichment = enricher.Enrich(ctx, payload, res)
	}

	rep := buildReport(res, enrichment)
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
	} else {
		rep.localize(catalog, *lang)
		rep.print(os.Stdout)
	}

	if !rep.Valid {
		os.Exit(1)
	}
	return nil
}
