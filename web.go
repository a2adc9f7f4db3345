package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode encodes reports deterministically for clients asking for
// application/cbor.
var cborEncMode cbor.EncMode

func init() {
	opts := cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeUnix,
	}

	var err error
	cborEncMode, err = opts.EncMode()

	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}
}

type webExporter struct {
	reports *reportManager
	logger  logger

	server *http.Server
}

func newWebExporter(reports *reportManager, log logger) *webExporter {
	return &webExporter{
		reports: reports,
		logger:  log,
	}
}

func (i *webExporter) serve(cfg *webConfig) error {
	if i.server != nil {
		return errors.New("server already started")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/report", i.getReport)

	var handler http.Handler = mux

	if !cfg.DisableRequestLog {
		handler = &webLoggerHandler{
			logger: i.logger.newSubLogger("request"),
			next:   handler,
		}
	}

	i.server = &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}

	return i.server.ListenAndServe()
}

func (i *webExporter) getReport(resp http.ResponseWriter, req *http.Request) {
	image := i.reports.get()

	var marshal []byte
	var err error
	contentType := "application/json"

	if strings.Contains(req.Header.Get("Accept"), "application/cbor") {
		contentType = "application/cbor"
		marshal, err = cborEncMode.Marshal(image)
	} else {
		marshal, err = json.Marshal(image)
	}

	if err != nil {
		i.logger.Printf("failed to serialize report: %v", err)
		resp.WriteHeader(500)
		return
	}

	resp.Header().Set("Content-Type", contentType)
	resp.WriteHeader(200)
	_, _ = resp.Write(marshal)
}

type webLoggerHandler struct {
	logger logger
	next   http.Handler
}

func (w *webLoggerHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	w.next.ServeHTTP(writer, request)
	w.logger.Printf("[%s] %s %s", request.RemoteAddr, request.Method, request.URL)
}
