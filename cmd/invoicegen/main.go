package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/zeptools/invoicegen/conf"
	"github.com/zeptools/invoicegen/invoice"
	"github.com/zeptools/invoicegen/layout"
	"github.com/zeptools/invoicegen/routing"
	"github.com/zeptools/invoicegen/sec"
	"github.com/zeptools/invoicegen/web"
)

func main() {
	appRoot := flag.String("approot", ".", "application root (holds config/ and templates/)")
	genSecret := flag.Bool("gen-secret", false, "print a fresh bearer auth secret and exit")
	renderPath := flag.String("render", "", "render an invoice JSON file to PDF and exit")
	outPath := flag.String("out", "", "output path for -render (default: invoice-<number>.pdf)")
	flag.Parse()

	if *genSecret {
		secret, err := sec.GenerateOpaqueToken(32)
		if err != nil {
			log.Fatalf("[ERROR] generating secret: %v", err)
		}
		fmt.Println(secret)
		return
	}

	if *renderPath != "" {
		if err := renderFile(*renderPath, *outPath); err != nil {
			log.Fatalf("[ERROR] render: %v", err)
		}
		return
	}

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	core := &conf.Core{}
	if err := core.BaseInit(*appRoot, rootCtx, rootCancel); err != nil {
		log.Fatalf("[ERROR] init: %v", err)
	}

	core.PrepareThrottleBucketStore()

	if core.Cache.Enabled {
		if err := core.PrepareKVDatabase(); err != nil {
			log.Fatalf("[ERROR] kv database: %v", err)
		}
		if err := core.PrepareRenderCache(); err != nil {
			log.Fatalf("[ERROR] render cache: %v", err)
		}
	}

	if err := core.PrepareHTMLTemplateStore(); err != nil {
		log.Fatalf("[ERROR] templates: %v", err)
	}

	core.PrepareWebService(buildRouter(core))

	if err := core.StartServices(); err != nil {
		log.Fatalf("[ERROR] starting services: %v", err)
	}
	if err := core.WaitServicesDone(); err != nil {
		log.Printf("[ERROR] service failed: %v", err)
		core.StopServices()
		os.Exit(1)
	}
	core.StopServices()
	if core.KVDBClient != nil {
		if err := core.KVDBClient.Close(); err != nil {
			log.Printf("[ERROR] closing kv client: %v", err)
		}
	}
	log.Printf("[INFO] %q shutdown complete", core.AppName)
}

// renderFile - offline render mode: invoice JSON file in, PDF file out.
func renderFile(inPath string, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	var rec invoice.Record
	if err = json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("decoding %s: %w", inPath, err)
	}
	if outPath == "" {
		outPath = rec.Filename()
	}
	if err = layout.RenderInvoicePDFToFile(&rec, outPath); err != nil {
		return err
	}
	log.Printf("[INFO] wrote %s", outPath)
	return nil
}

func buildRouter(core *conf.Core) http.Handler {
	r := routing.NewBaseRouter()

	formHandler := &web.FormHandler{
		Templates:   core.HTMLTemplateStore,
		TemplateKey: "index",
	}
	generateHandler := &web.GenerateInvoiceHandler{Cache: core.RenderCache}

	generateWrappers := []routing.HandlerWrapper{
		&routing.ThrottleWrapper{
			Buckets: core.ThrottleBucketStore,
			GroupID: conf.ThrottleGroupPDFGen,
		},
	}
	if core.AuthSecret != "" {
		generateWrappers = append(generateWrappers, &routing.AuthWrapper{Secret: []byte(core.AuthSecret)})
	}

	r.Group("/", func(root *routing.RouteGroup) {
		root.Handle("GET {$}", formHandler)
		root.Handle("POST generate-invoice", generateHandler, generateWrappers...)
	}, routing.WrapperFunc(routing.RecoverWrapper), routing.WrapperFunc(routing.LogWrapper))

	return r
}
