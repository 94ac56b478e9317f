package mockapi

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/fakeapi/rest-contract-tests/framework"
	"github.com/fakeapi/rest-contract-tests/models"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	jsonContentType = "application/json"

	strictBodyLimit  = 8 << 10
	lenientBodyLimit = 1 << 20
)

// Mode selects how closely the mock follows REST conventions.
type Mode string

const (
	// Lenient reproduces the public service, including its known deviations: writes to missing
	// records succeed, DELETE returns 200, and request bodies are never validated.
	Lenient Mode = "lenient"

	// Strict behaves the way the scenarios expect a well-behaved service to: 404 for missing
	// records, 204 for DELETE, 400 for invalid ids and bodies, 405, 413 and 415 where they apply.
	Strict Mode = "strict"
)

// ParseMode converts a command-line value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Lenient, Strict:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mock mode %q (expected %q or %q)", s, Lenient, Strict)
}

// Options configures NewHandler.
type Options struct {
	Mode Mode

	// Seed determines the generated data set. Zero means random.
	Seed int64

	Logger framework.Logger
}

type handler struct {
	mode   Mode
	store  *store
	logger framework.Logger
}

// NewHandler returns an http.Handler serving all six resources at /users, /posts, /comments,
// /albums, /photos and /todos, with the same record counts as the public service.
func NewHandler(opts Options) http.Handler {
	if opts.Mode == "" {
		opts.Mode = Lenient
	}
	if opts.Logger == nil {
		opts.Logger = framework.NullLogger()
	}
	return &handler{mode: opts.Mode, store: newStore(opts.Seed), logger: opts.Logger}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.logger.Printf("mock %s: %s %s", h.mode, req.Method, req.URL)
	path := strings.Trim(req.URL.Path, "/")
	if path == "" {
		writeJSON(w, req, http.StatusOK, ldvalue.ObjectBuild().
			Set("service", ldvalue.String("mockapi")).
			Set("mode", ldvalue.String(string(h.mode))).
			Build())
		return
	}
	parts := strings.Split(path, "/")
	schema := collection(parts[0])
	if schema == nil {
		h.notFound(w, req)
		return
	}
	switch len(parts) {
	case 1:
		h.serveCollection(w, req, schema)
	case 2:
		h.serveItem(w, req, schema, parts[1])
	case 3:
		h.serveNested(w, req, schema, parts[1], parts[2])
	default:
		h.notFound(w, req)
	}
}

func collection(name string) *models.Schema {
	for _, s := range models.AllSchemas {
		if s.Path == "/"+name {
			return s
		}
	}
	return nil
}

func (h *handler) serveCollection(w http.ResponseWriter, req *http.Request, schema *models.Schema) {
	switch req.Method {
	case http.MethodGet:
		writeList(w, req, h.store.query(schema, req.URL.Query()))
	case http.MethodPost:
		body, ok := h.readBody(w, req)
		if !ok {
			return
		}
		h.accept(w, req, schema, body, h.store.nextID(schema), http.StatusCreated)
	default:
		h.unsupported(w, req, "GET, POST")
	}
}

func (h *handler) serveItem(w http.ResponseWriter, req *http.Request, schema *models.Schema, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		if h.mode == Strict {
			writeError(w, req, http.StatusBadRequest, fmt.Sprintf("invalid id %q", rawID))
		} else {
			h.notFound(w, req)
		}
		return
	}
	existing, found := h.store.find(schema, id)
	if !found && h.mode == Strict && req.Method != http.MethodHead && req.Method != http.MethodOptions {
		h.notFound(w, req)
		return
	}

	switch req.Method {
	case http.MethodGet:
		if !found {
			h.notFound(w, req)
			return
		}
		writeJSON(w, req, http.StatusOK, existing.AsValue())
	case http.MethodPut:
		body, ok := h.readBody(w, req)
		if !ok {
			return
		}
		h.accept(w, req, schema, body, id, http.StatusOK)
	case http.MethodPatch:
		body, ok := h.readBody(w, req)
		if !ok {
			return
		}
		merged := ldvalue.ObjectBuild()
		if found {
			current := existing.AsValue()
			for _, k := range current.Keys() {
				merged.Set(k, current.GetByKey(k))
			}
		}
		for _, k := range body.Keys() {
			merged.Set(k, body.GetByKey(k))
		}
		h.accept(w, req, schema, merged.Build(), id, http.StatusOK)
	case http.MethodDelete:
		if h.mode == Strict {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, req, http.StatusOK, ldvalue.ObjectBuild().Build())
	default:
		h.unsupported(w, req, "GET, PUT, PATCH, DELETE")
	}
}

// serveNested handles paths such as /users/1/posts, listing the child records of one parent.
func (h *handler) serveNested(w http.ResponseWriter, req *http.Request, parent *models.Schema, rawID, child string) {
	schema := collection(child)
	if schema == nil || schema.ParentField != strings.ToLower(parent.Name)+"Id" {
		h.notFound(w, req)
		return
	}
	if req.Method != http.MethodGet {
		h.unsupported(w, req, "GET")
		return
	}
	if h.mode == Strict {
		id, err := strconv.Atoi(rawID)
		if err != nil {
			writeError(w, req, http.StatusBadRequest, fmt.Sprintf("invalid id %q", rawID))
			return
		}
		if _, found := h.store.find(parent, id); !found {
			h.notFound(w, req)
			return
		}
	}
	writeList(w, req, h.store.query(schema, map[string][]string{schema.ParentField: {rawID}}))
}

// accept answers a write. Nothing is stored; the response echoes the request body with the id
// the record would have.
func (h *handler) accept(
	w http.ResponseWriter,
	req *http.Request,
	schema *models.Schema,
	body ldvalue.Value,
	id int,
	status int,
) {
	if h.mode == Strict {
		if reason := rejection(schema, body, id); reason != "" {
			writeError(w, req, http.StatusBadRequest, reason)
			return
		}
	}
	ret := ldvalue.ObjectBuild()
	for _, k := range body.Keys() {
		ret.Set(k, body.GetByKey(k))
	}
	ret.Set("id", ldvalue.Int(id))
	writeJSON(w, req, status, ret.Build())
}

// readBody returns the request body as a JSON object. In lenient mode a body that is not sent
// as JSON is ignored, as the public service does.
func (h *handler) readBody(w http.ResponseWriter, req *http.Request) (ldvalue.Value, bool) {
	mediaType, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
	isJSON := mediaType == jsonContentType
	if !isJSON && h.mode == Strict {
		writeError(w, req, http.StatusUnsupportedMediaType, "Content-Type must be "+jsonContentType)
		return ldvalue.Null(), false
	}

	limit := int64(lenientBodyLimit)
	if h.mode == Strict {
		limit = strictBodyLimit
	}
	data, err := ioutil.ReadAll(io.LimitReader(req.Body, limit+1))
	if err != nil {
		writeError(w, req, http.StatusInternalServerError, err.Error())
		return ldvalue.Null(), false
	}
	if int64(len(data)) > limit {
		writeError(w, req, http.StatusRequestEntityTooLarge, "request body too large")
		return ldvalue.Null(), false
	}

	empty := ldvalue.ObjectBuild().Build()
	if !isJSON {
		return empty, true
	}
	if len(data) == 0 && h.mode == Lenient {
		return empty, true
	}
	var v ldvalue.Value
	if err := json.Unmarshal(data, &v); err != nil {
		if h.mode == Strict {
			writeError(w, req, http.StatusBadRequest, "malformed JSON: "+err.Error())
		} else {
			writeError(w, req, http.StatusInternalServerError, "SyntaxError: "+err.Error())
		}
		return ldvalue.Null(), false
	}
	if v.Type() != ldvalue.ObjectType {
		if h.mode == Strict {
			writeError(w, req, http.StatusBadRequest, "request body must be a JSON object")
			return ldvalue.Null(), false
		}
		return empty, true
	}
	return v, true
}

func (h *handler) unsupported(w http.ResponseWriter, req *http.Request, allow string) {
	w.Header().Set("Allow", allow)
	if h.mode == Strict {
		writeError(w, req, http.StatusMethodNotAllowed, req.Method+" is not supported")
		return
	}
	switch req.Method {
	case http.MethodHead:
		w.WriteHeader(http.StatusOK)
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
	default:
		h.notFound(w, req)
	}
}

func (h *handler) notFound(w http.ResponseWriter, req *http.Request) {
	if h.mode == Strict {
		writeError(w, req, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, req, http.StatusNotFound, ldvalue.ObjectBuild().Build())
}

func writeList(w http.ResponseWriter, req *http.Request, items []models.Entity) {
	list := ldvalue.ArrayBuild()
	for _, e := range items {
		list.Add(e.AsValue())
	}
	writeJSON(w, req, http.StatusOK, list.Build())
}

func writeError(w http.ResponseWriter, req *http.Request, status int, message string) {
	writeJSON(w, req, status, ldvalue.ObjectBuild().Set("error", ldvalue.String(message)).Build())
}

func writeJSON(w http.ResponseWriter, req *http.Request, status int, v ldvalue.Value) {
	headers := make(http.Header)
	headers.Set("Content-Type", jsonContentType+"; charset=utf-8")
	httphelpers.HandlerWithResponse(status, headers, []byte(v.JSONString())).ServeHTTP(w, req)
}
