package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/san-kum/algoviz/internal/anim"
	"github.com/san-kum/algoviz/internal/automation"
	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/dataset"
	"github.com/san-kum/algoviz/internal/trace"
)

const maxRunSize = 200

type algorithmView struct {
	catalog.Descriptor
	Runs     anim.Algorithm `json:"runs"`
	Fallback bool           `json:"fallback"`
}

type codeView struct {
	Language  string         `json:"language"`
	Algorithm anim.Algorithm `json:"algorithm"`
	Available bool           `json:"available"`
	Code      string         `json:"code"`
}

type presetView struct {
	Name string         `json:"name"`
	Job  automation.Job `json:"job"`
}

type runView struct {
	RunID string       `json:"run_id,omitempty"`
	Trace *trace.Trace `json:"trace"`
	Error string       `json:"error,omitempty"`
}

func (s *Server) listAlgorithmsHandler(w http.ResponseWriter, r *http.Request) {
	out := make(map[anim.Category][]catalog.Descriptor)
	for _, c := range anim.Categories() {
		out[c] = s.reg.Descriptors(c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) describeHandler(w http.ResponseWriter, r *http.Request) {
	c := anim.Category(chi.URLParam(r, "category"))
	a := anim.Algorithm(chi.URLParam(r, "algorithm"))

	d, err := s.reg.Describe(c, a)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	res, err := s.reg.Resolve(c, a)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, algorithmView{Descriptor: d, Runs: res.Runs, Fallback: res.Fallback})
}

func (s *Server) codeHandler(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "language")
	a := anim.Algorithm(chi.URLParam(r, "algorithm"))
	if _, err := s.reg.CategoryOf(a); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	// Missing samples are a normal answer, shown with the fixed message.
	writeJSON(w, http.StatusOK, codeView{
		Language:  lang,
		Algorithm: a,
		Available: catalog.HasSample(lang, a),
		Code:      catalog.CodeSample(lang, a),
	})
}

func (s *Server) presetsHandler(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	names := config.ListPresets(category)
	if names == nil {
		writeError(w, http.StatusNotFound, &anim.UnsupportedError{Category: anim.Category(category)})
		return
	}
	out := make([]presetView, 0, len(names))
	for _, name := range names {
		cfg := config.DefaultConfig()
		cfg.Merge(config.GetPreset(category, name))
		job, err := automation.JobFromConfig(cfg)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		out = append(out, presetView{Name: name, Job: job})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createRunHandler(w http.ResponseWriter, r *http.Request) {
	var job automation.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if job.Algorithm == "" {
		writeError(w, http.StatusBadRequest, errors.New("algorithm is required"))
		return
	}
	if len(job.Values) > maxRunSize || job.Size > maxRunSize {
		writeError(w, http.StatusBadRequest, fmt.Errorf("array larger than %d elements", maxRunSize))
		return
	}
	if err := anim.CheckValues(job.Values); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	tr, err := automation.Execute(r.Context(), s.reg, job, s.log)
	var re *anim.RunError
	switch {
	case errors.As(err, &re):
		// Partial traces are saved and returned with the error.
	case errors.Is(err, anim.ErrUnsupported):
		writeError(w, http.StatusNotFound, err)
		return
	case errors.Is(err, anim.ErrValidation), errors.Is(err, dataset.ErrValue), errors.Is(err, dataset.ErrRange):
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err)
		return
	}

	view := runView{Trace: tr}
	if s.store != nil {
		id, saveErr := s.store.Save(tr)
		if saveErr != nil {
			s.log.Error("save run", "error", saveErr)
			writeError(w, http.StatusInternalServerError, saveErr)
			return
		}
		view.RunID = id
	}
	status := http.StatusCreated
	if re != nil {
		view.Error = re.Error()
		status = http.StatusUnprocessableEntity
	}
	s.log.Info("run finished", "algorithm", tr.Meta.Algorithm, "run_id", view.RunID,
		"comparisons", tr.Meta.Counters.Comparisons, "swaps", tr.Meta.Counters.Swaps, "state", tr.Meta.State)
	writeJSON(w, status, view)
}

func (s *Server) listRunsHandler(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, []trace.Meta{})
		return
	}
	runs, err := s.store.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// loadRun reads a stored trace. It writes the error response itself and
// returns nil on failure.
func (s *Server) loadRun(w http.ResponseWriter, r *http.Request) *trace.Trace {
	id := chi.URLParam(r, "id")
	if s.store == nil || id == "" || id == "." || id == ".." || filepath.Base(id) != id {
		writeError(w, http.StatusNotFound, fmt.Errorf("run %q not found", id))
		return nil
	}
	meta, err := s.store.Load(id)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("run %q not found", id))
		return nil
	}
	entries, err := s.store.LoadEntries(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil
	}
	return &trace.Trace{Meta: *meta, Entries: entries}
}

func (s *Server) getRunHandler(w http.ResponseWriter, r *http.Request) {
	if tr := s.loadRun(w, r); tr != nil {
		writeJSON(w, http.StatusOK, tr)
	}
}

func (s *Server) countersSVGHandler(w http.ResponseWriter, r *http.Request) {
	tr := s.loadRun(w, r)
	if tr == nil {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	fmt.Fprint(w, trace.CountersSVG(tr.Entries, 800, 300, "#05d9e8"))
}

func (s *Server) finalSVGHandler(w http.ResponseWriter, r *http.Request) {
	tr := s.loadRun(w, r)
	if tr == nil {
		return
	}
	var marked []int
	if tr.Meta.Found != nil {
		marked = []int{*tr.Meta.Found}
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	fmt.Fprint(w, trace.SnapshotSVG(tr.Meta.Final, marked, 800, 300))
}
