package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type httpConfigService struct {
	srv     *http.Server
	handler *apiHandler
}

func newRouter(handler *apiHandler) *mux.Router {
	r := mux.NewRouter()

	// auth middleware
	r.Use(handler.BasicAuth)
	// api server
	r.HandleFunc("/api/status", handler.apiStatus).Methods("GET")
	r.HandleFunc("/api/display", handler.apiDisplay).Methods("POST")
	r.HandleFunc("/api/brightness", handler.apiBrightness).Methods("POST")

	return r
}

func (h *httpConfigService) launch(handler *apiHandler, addr string) error {
	h.handler = handler

	// bind now so a bad address is reported to the caller
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	h.srv = &http.Server{Addr: addr, Handler: newRouter(handler)}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Println("starting config service http server")
		err := h.srv.Serve(ln)
		if err != http.ErrServerClosed {
			log.Print(err)
		}
		log.Print("Exiting config service")
	}()
	return nil
}

func (h *httpConfigService) stop() {
	if h.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	h.srv.Shutdown(ctx)
}
