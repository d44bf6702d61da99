package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"tradedocs/go_backend/internal/domain/document"
	pdfgen "tradedocs/go_backend/internal/domain/document/pdf/gofpdf"
	"tradedocs/go_backend/internal/domain/narrative"
	"tradedocs/go_backend/internal/domain/stamp"
	"tradedocs/go_backend/internal/infra/logger"
)

func main() {
	log, err := logger.New("development", os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := newApp(log, time.Now).Run(os.Args); err != nil {
		log.Error("docctl", zap.Error(err))
		os.Exit(1)
	}
}

var (
	inFlag       = &cli.StringFlag{Name: "in", Aliases: []string{"i"}, Required: true, Usage: "input `FILE` (JSON or YAML)"}
	outDirFlag   = &cli.StringFlag{Name: "out-dir", Aliases: []string{"o"}, Value: ".", Usage: "output `DIR`"}
	supplierFlag = &cli.StringFlag{Name: "supplier", Usage: "supplier `FILE`"}
	clientFlag   = &cli.StringFlag{Name: "client", Usage: "client `FILE`"}
)

func newApp(log *zap.Logger, now func() time.Time) *cli.App {
	return &cli.App{
		Name:  "docctl",
		Usage: "render and inspect trade documents offline",
		Commands: []*cli.Command{
			{
				Name:  "render",
				Usage: "render a document to PDF",
				Subcommands: []*cli.Command{
					{
						Name:  "invoice",
						Flags: []cli.Flag{inFlag, outDirFlag, supplierFlag},
						Action: func(c *cli.Context) error {
							var d document.MonetaryDocument
							if err := loadFile(c.String("in"), &d); err != nil {
								return err
							}
							supplier, err := optionalSupplier(c.String("supplier"))
							if err != nil {
								return err
							}
							data, err := pdfgen.New().Invoice(d, supplier)
							if err != nil {
								return err
							}
							return writePDF(log, c.String("out-dir"), document.InvoiceFilename(d.Normalized(), now()), data)
						},
					},
					{
						Name:  "inspection",
						Flags: []cli.Flag{inFlag, outDirFlag, supplierFlag, clientFlag},
						Action: func(c *cli.Context) error {
							req, supplier, client, err := loadInspection(c)
							if err != nil {
								return err
							}
							data, err := pdfgen.New().Inspection(req, supplier, client)
							if err != nil {
								return err
							}
							var named document.Client
							if client != nil {
								named = *client
							}
							return writePDF(log, c.String("out-dir"), document.InspectionFilename(named, req), data)
						},
					},
				},
			},
			{
				Name:  "stamp",
				Usage: "stamp utilities",
				Subcommands: []*cli.Command{
					{
						Name:  "normalize",
						Usage: "convert an SVG, PNG or JPEG file to a PNG data URI",
						Flags: []cli.Flag{
							inFlag,
							&cli.StringFlag{Name: "out", Usage: "write the data URI to `FILE` instead of stdout"},
						},
						Action: func(c *cli.Context) error {
							data, err := os.ReadFile(c.String("in"))
							if err != nil {
								return err
							}
							uri, err := stamp.NormalizeUpload(data)
							if err != nil {
								return err
							}
							if out := c.String("out"); out != "" {
								return os.WriteFile(out, []byte(uri), 0o644)
							}
							_, err = fmt.Fprintln(c.App.Writer, uri)
							return err
						},
					},
				},
			},
			{
				Name:  "totals",
				Usage: "print the totals of a document",
				Flags: []cli.Flag{inFlag},
				Action: func(c *cli.Context) error {
					var d document.MonetaryDocument
					if err := loadFile(c.String("in"), &d); err != nil {
						return err
					}
					d = d.Normalized()
					t := d.Totals()
					w := c.App.Writer
					fmt.Fprintf(w, "Subtotal: %s\n", document.FormatMoney(d.Currency, t.Subtotal))
					if d.VATEnabled {
						fmt.Fprintf(w, "VAT (%s%%): %s\n", document.FormatPercent(d.VATRate), document.FormatMoney(d.Currency, t.VATAmount))
					}
					_, err := fmt.Fprintf(w, "Total %s: %s\n", d.ShippingTerm, document.FormatMoney(d.Currency, t.Total))
					return err
				},
			},
			{
				Name:  "narrative",
				Usage: "print the inspection request letter",
				Flags: []cli.Flag{inFlag, supplierFlag, clientFlag},
				Action: func(c *cli.Context) error {
					req, supplier, client, err := loadInspection(c)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(c.App.Writer, narrative.Preview(supplier, client, req))
					return err
				},
			},
		},
	}
}

func optionalSupplier(path string) (*document.Supplier, error) {
	if path == "" {
		return nil, nil
	}
	var s document.Supplier
	if err := loadFile(path, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func loadInspection(c *cli.Context) (document.InspectionRequest, *document.Supplier, *document.Client, error) {
	var req document.InspectionRequest
	if err := loadFile(c.String("in"), &req); err != nil {
		return req, nil, nil, err
	}
	supplier, err := optionalSupplier(c.String("supplier"))
	if err != nil {
		return req, nil, nil, err
	}
	var client *document.Client
	if path := c.String("client"); path != "" {
		client = &document.Client{}
		if err := loadFile(path, client); err != nil {
			return req, nil, nil, err
		}
	}
	return req.Normalized(), supplier, client, nil
}

func writePDF(log *zap.Logger, dir, name string, data []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	log.Info("wrote pdf", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
