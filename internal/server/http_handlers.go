package server

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/bokysan/base47/internal/util/enc"
	"github.com/go-chi/chi"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultEncoding is used when the request does not name one.
const DefaultEncoding = "base47"

// EncodingInfo describes one registered encoder in the /encodings listing.
type EncodingInfo struct {
	Name         string `json:"name"`
	Code         string `json:"code"`
	Symbols      int    `json:"symbols,omitempty"`
	LeadingZeros bool   `json:"leadingZeros"`
}

func describe(e enc.Encoder) EncodingInfo {
	info := EncodingInfo{
		Name:         e.Name(),
		Code:         string(e.Code()),
		LeadingZeros: true,
	}
	if a, ok := e.(*enc.AlphabetEncoder); ok {
		info.Symbols = a.Alphabet().Base()
		info.LeadingZeros = a.Sentinel()
	}
	return info
}

func (ws *HttpServer) listEncodings(w http.ResponseWriter, r *http.Request) {
	encoders := enc.Encoders()
	res := make([]EncodingInfo, 0, len(encoders))
	for _, e := range encoders {
		res = append(res, describe(e))
	}
	writeJSON(w, http.StatusOK, res)
}

func (ws *HttpServer) encode(w http.ResponseWriter, r *http.Request) {
	encoder, ok := ws.requestEncoder(w, r)
	if !ok {
		return
	}
	data, ok := ws.readBody(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(encoder.Encode(data))); err != nil {
		log.WithError(err).Debugf("Could not write the response: %v", err)
	}
}

func (ws *HttpServer) decode(w http.ResponseWriter, r *http.Request) {
	encoder, ok := ws.requestEncoder(w, r)
	if !ok {
		return
	}
	data, ok := ws.readBody(w, r)
	if !ok {
		return
	}

	decoded, err := encoder.Decode(strings.TrimSpace(string(data)))
	if err != nil {
		if errors.Is(err, enc.ErrFormat) || errors.Is(err, enc.ErrDomain) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.WithError(err).Errorf("Decoding with %v failed: %+v", encoder.Name(), err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(decoded); err != nil {
		log.WithError(err).Debugf("Could not write the response: %v", err)
	}
}

// requestEncoder resolves the encoding named in the URL. It writes a 404 and returns false if there is no such
// encoding.
func (ws *HttpServer) requestEncoder(w http.ResponseWriter, r *http.Request) (enc.Encoder, bool) {
	name := chi.URLParam(r, "encoding")
	if name == "" {
		name = DefaultEncoding
	}
	encoder, err := enc.FindEncoder(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, false
	}
	return encoder, true
}

func (ws *HttpServer) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body := http.MaxBytesReader(w, r.Body, ws.MaxInputSize)
	data, err := ioutil.ReadAll(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return nil, false
	}
	return data, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Debugf("Could not write the response: %v", err)
	}
}
