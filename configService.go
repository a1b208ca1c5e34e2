package main

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"

	"dscheirer.com/segdemo/numfmt"
)

var errBrightnessRange = errors.New("brightness must be 0..7")

type configResponse struct {
	Response   string `json:"response"`
	Error      string `json:"error,omitempty"`
	Display    string `json:"display"`
	Brightness uint8  `json:"brightness"`
	Layout     string `json:"layout"`
}

// apiHandler - settings for the thing that handles HTTP requests
type apiHandler struct {
	rt     runtimeConfig
	secret string
	user   string
	realm  string
}

func newHandler(rt runtimeConfig) apiHandler {
	secret := rt.settings.GetString(sHTTPSecret)
	if secret == "" {
		secret = rt.clock.Now().String()
	}
	return apiHandler{
		rt:     rt,
		secret: secret,
		user:   rt.settings.GetString(sHTTPUser),
		realm:  "segdemo",
	}
}

// BasicAuth - provide a middleware to authenticate users
func (m *apiHandler) BasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(user), []byte(m.user)) != 1 || subtle.ConstantTimeCompare([]byte(pass), []byte(m.secret)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="`+m.realm+`"`)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorised.\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *apiHandler) getStatus() configResponse {
	return configResponse{
		Response:   "OK",
		Display:    m.rt.display.Text(),
		Brightness: m.rt.display.Brightness(),
		Layout:     m.rt.layout.Name,
	}
}

func (m *apiHandler) badRequest(w http.ResponseWriter, code int, err error) {
	cr := m.getStatus()
	cr.Response = "BAD"
	cr.Error = err.Error()
	w.WriteHeader(code)
	writeAnswer(w, cr)
}

func writeAnswer(w http.ResponseWriter, cr configResponse) {
	output, _ := json.Marshal(cr)
	w.Write(output)
}

func (m *apiHandler) apiStatus(w http.ResponseWriter, r *http.Request) {
	writeAnswer(w, m.getStatus())
}

// apiDisplay formats and shows one value. The body is a script step
// without the hold, e.g. {"value": 10.46, "places": 2, "decimal": 1, "round": 1}.
func (m *apiHandler) apiDisplay(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		m.badRequest(w, http.StatusBadRequest, err)
		return
	}

	p := numfmt.Plain
	places := 0
	step, err := parseStep(body, &p, &places)
	if err != nil {
		m.badRequest(w, http.StatusBadRequest, err)
		return
	}

	seq, err := numfmt.FormatStrict(step.value, step.params, m.rt.layout)
	if err != nil {
		m.badRequest(w, http.StatusBadRequest, err)
		return
	}
	if err := m.rt.display.Show(seq); err != nil {
		m.badRequest(w, http.StatusInternalServerError, err)
		return
	}
	writeAnswer(w, m.getStatus())
}

// apiBrightness takes {"brightness": 0..7}.
func (m *apiHandler) apiBrightness(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Brightness *int `json:"brightness"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		m.badRequest(w, http.StatusBadRequest, err)
		return
	}
	if req.Brightness == nil || *req.Brightness < 0 || *req.Brightness > 7 {
		m.badRequest(w, http.StatusBadRequest, errBrightnessRange)
		return
	}
	if err := m.rt.display.SetBrightness(uint8(*req.Brightness)); err != nil {
		m.badRequest(w, http.StatusInternalServerError, err)
		return
	}
	writeAnswer(w, m.getStatus())
}

func runConfigService(rt runtimeConfig) {
	defer wg.Done()
	logger := &ThreadLogger{name: "ConfigService"}

	handler := newHandler(rt)
	addr := rt.settings.GetString(sHTTPAddr)
	if err := rt.service.launch(&handler, addr); err != nil {
		logger.Printf("could not start on %s: %v", addr, err)
		return
	}
	logger.Printf("listening on %s as %s / %s", addr, handler.user, handler.secret)

	<-rt.comms.quit
	logger.Println("quit from config service")
	rt.service.stop()
}
