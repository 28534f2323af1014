package trace

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/algoviz/internal/anim"
)

// Meta describes one recorded run.
type Meta struct {
	ID        string         `json:"id"`
	Category  anim.Category  `json:"category"`
	Algorithm anim.Algorithm `json:"algorithm"`
	Runs      anim.Algorithm `json:"runs"`
	Fallback  bool           `json:"fallback"`
	Timestamp time.Time      `json:"timestamp"`
	Seed      int64          `json:"seed,omitempty"`
	Speed     int            `json:"speed"`
	Target    *int           `json:"target,omitempty"`
	Input     []int          `json:"input"`
	Final     []int          `json:"final"`
	State     string         `json:"state"`
	Outcome   string         `json:"outcome,omitempty"`
	Found     *int           `json:"found,omitempty"`
	Error     string         `json:"error,omitempty"`
	Counters  anim.Counters  `json:"counters"`
}

// Trace is a Meta plus its entries.
type Trace struct {
	Meta    Meta    `json:"meta"`
	Entries []Entry `json:"entries"`
}

// Store keeps one directory per run holding metadata.json and events.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunID is the directory name Save uses for m.
func RunID(m Meta) string {
	return fmt.Sprintf("%s_%s", m.Algorithm, m.ID)
}

func (s *Store) Save(t *Trace) (string, error) {
	runID := RunID(t.Meta)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t.Meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "events.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, t.Entries); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) List() ([]Meta, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Meta{}, nil
		}
		return nil, err
	}

	runs := make([]Meta, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*Meta, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadEntries(runID string) ([]Entry, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "events.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadCSV(file)
}

var csvHeader = []string{"step", "kind", "indices", "role", "index", "swap", "comparisons", "swaps", "snapshot"}

// WriteCSV writes one row per entry. List columns are space separated.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		index := ""
		if e.Index != nil {
			index = strconv.Itoa(*e.Index)
		}
		row := []string{
			strconv.Itoa(e.Step),
			e.Kind,
			joinInts(e.Indices),
			e.Role,
			index,
			strconv.FormatBool(e.Swap),
			strconv.Itoa(e.Counters.Comparisons),
			strconv.Itoa(e.Counters.Swaps),
			joinInts(e.Snapshot),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReadCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Entry{}, nil
	}

	entries := make([]Entry, 0, len(records)-1)
	for i, rec := range records[1:] {
		e := Entry{Kind: rec[1], Role: rec[3]}
		var perr error
		num := func(s string) int {
			v, err := strconv.Atoi(s)
			if err != nil && perr == nil {
				perr = err
			}
			return v
		}
		e.Step = num(rec[0])
		e.Indices, err = splitInts(rec[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if rec[4] != "" {
			idx := num(rec[4])
			e.Index = &idx
		}
		e.Swap = rec[5] == "true"
		e.Counters = anim.Counters{Comparisons: num(rec[6]), Swaps: num(rec[7]), CurrentStep: e.Step}
		e.Snapshot, err = splitInts(rec[8])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if perr != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, perr)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteJSON encodes t indented.
func WriteJSON(w io.Writer, t *Trace) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

func ExportJSON(path string, t *Trace) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, t)
}

func ExportJSONStdout(t *Trace) error {
	return WriteJSON(os.Stdout, t)
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

func splitInts(s string) ([]int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, nil
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
