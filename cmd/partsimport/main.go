package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"partsimport/internal"
	"partsimport/internal/catalog"
	"partsimport/internal/config"
	"partsimport/internal/listener"
	"partsimport/internal/logger"
	"partsimport/internal/pipeline"
	"partsimport/internal/scrape"
	"partsimport/internal/util"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.LogLevel)
	cat, err := catalog.Load(cfg.CatalogPath)
	must(err)
	processor := pipeline.NewProcessingService(cat, cfg, log)

	cmd := os.Args[1]
	switch cmd {
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "snapshot file path, - for stdin, or inline json")
		inType := fs.String("type", "json", "json|json_inline")
		search := fs.String("search", "", "search term")
		output := fs.String("output", "", "output .json or .xlsx path (default stdout)")
		_ = fs.Parse(os.Args[2:])
		if *input == "" {
			must(fmt.Errorf("--input is required"))
		}
		snap, err := pipeline.LoadSnapshot(*inType, *input)
		must(err)
		rec, err := processor.Process(snap, *search)
		must(err)
		must(writeRecord(rec, *output))
	case "import":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		search := fs.String("search", "", "search term")
		email := fs.String("email", "", "supplier account email")
		password := fs.String("password", "", "supplier account password")
		output := fs.String("output", "", "output .json or .xlsx path (default stdout)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*search) == "" {
			must(fmt.Errorf("--search is required"))
		}
		source, err := scrape.NewDirSourceFromConfig(cfg)
		must(err)
		svc := scrape.NewImportService(source, processor, log).
			WithRateLimit(cfg.AcquirePerMinute, cfg.AcquireBurst)
		rec, err := svc.Import(context.Background(), internal.Credentials{Email: *email, Password: *password}, *search)
		must(err)
		must(writeRecord(rec, *output))
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		recordPath := fs.String("record", "", "product record json")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*recordPath) == "" || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--record and --out are required"))
		}
		blob, err := os.ReadFile(*recordPath)
		must(err)
		var rec internal.ProductRecord
		must(json.Unmarshal(blob, &rec))
		if len(rec.Variants) == 0 {
			must(fmt.Errorf("no variants in %s", *recordPath))
		}
		must(pipeline.ExportRecordToXLSX(rec, *out))
		fmt.Printf("exported %d variants to %s\n", len(rec.Variants), *out)
	case "catalog:check":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		text := fs.String("text", "", "classify this text")
		_ = fs.Parse(os.Args[2:])
		fmt.Printf("catalog ok vendors=%d categories=%d\n", len(cat.Vendors()), len(cat.Categories()))
		fmt.Println(cat.Report())
		if *text != "" {
			vendor := cat.DetectVendor(*text)
			class := pipeline.ApplyOverrides(cat, cat.DetectType(*text), *text, *text)
			fmt.Printf("vendor=%q product_type=%q display=%q\n", util.Deref(vendor), util.Deref(class.Category), class.Display)
		}
	case "snapshots:watch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		once := fs.Bool("once", false, "run a single cycle and exit")
		_ = fs.Parse(os.Args[2:])
		svc := listener.NewService(cfg, processor, log)
		if *once {
			res, err := svc.RunCycle(context.Background())
			must(err)
			fmt.Printf("watch cycle scanned=%d processed=%d skipped=%d failed=%d\n", res.Scanned, res.Processed, res.Skipped, res.Failed)
			return
		}
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		must(svc.Run(ctx))
	default:
		usage()
		os.Exit(1)
	}
}

func writeRecord(rec internal.ProductRecord, output string) error {
	if strings.EqualFold(filepath.Ext(output), ".xlsx") {
		if err := pipeline.ExportRecordToXLSX(rec, output); err != nil {
			return err
		}
		fmt.Printf("run done variants=%d output=%s\n", rec.Count, output)
		return nil
	}

	blob, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	if output == "" {
		_, err = fmt.Println(string(blob))
		return err
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return err
	}
	return os.WriteFile(output, blob, 0o644)
}

func usage() {
	fmt.Println("usage: partsimport <command>")
	fmt.Println("commands:")
	fmt.Println("  run --input=snapshot.json|- [--type=json|json_inline] --search=\"...\" [--output=...json|xlsx]")
	fmt.Println("  import --search=\"...\" [--email=... --password=...] [--output=...json|xlsx]")
	fmt.Println("  export:xlsx --record=record.json --out=./out/record.xlsx")
	fmt.Println("  catalog:check [--text=\"...\"]")
	fmt.Println("  snapshots:watch [--once]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
