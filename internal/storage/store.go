package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

var ErrTouchNotFound = errors.New("storage: touch not found")

// Store keeps recorded touches, one directory per touch.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type TouchMetadata struct {
	ID         string    `json:"id"`
	Method     string    `json:"method"`
	Notation   string    `json:"notation"`
	Cover      bool      `json:"cover"`
	Bells      int       `json:"bells"`
	TenorAdded bool      `json:"tenor_added"`
	LeadLength int       `json:"lead_length"`
	Changes    int       `json:"changes"`
	Timestamp  time.Time `json:"timestamp"`
}

// Touch is a recorded run of rows.
type Touch struct {
	TouchMetadata
	Rows [][]int `json:"-"`
}

// Save writes metadata.json and rows.csv and returns the touch id.
func (s *Store) Save(t Touch) (string, error) {
	now := time.Now()
	id := fmt.Sprintf("%s_%d", t.Method, now.UnixNano())
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := t.TouchMetadata
	meta.ID = id
	meta.Timestamp = now
	meta.Changes = len(t.Rows)

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, "rows.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	header := []string{"change"}
	for i := 1; i <= t.Bells; i++ {
		header = append(header, fmt.Sprintf("p%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for i, row := range t.Rows {
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, strconv.Itoa(i))
		for _, b := range row {
			rec = append(rec, strconv.Itoa(b))
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return id, nil
}

// List returns every readable touch, oldest first.
func (s *Store) List() ([]TouchMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []TouchMetadata{}, nil
		}
		return nil, err
	}

	touches := make([]TouchMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		touches = append(touches, *meta)
	}
	sort.Slice(touches, func(i, j int) bool {
		return touches[i].Timestamp.Before(touches[j].Timestamp)
	})
	return touches, nil
}

func (s *Store) Load(id string) (*TouchMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTouchNotFound, id)
		}
		return nil, err
	}

	var meta TouchMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", id, err)
	}
	return &meta, nil
}

func (s *Store) LoadRows(id string) ([][]int, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "rows.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTouchNotFound, id)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]int{}, nil
	}

	rows := make([][]int, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		row := make([]int, 0, len(record)-1)
		for _, field := range record[1:] {
			b, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("row %s: %w", record[0], err)
			}
			row = append(row, b)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Path is the directory holding touch id.
func (s *Store) Path(id string) string {
	return filepath.Join(s.baseDir, id)
}
