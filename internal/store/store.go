package store

import (
	"sync"
	"time"

	"MerchantReports/internal/model"
)

// Store holds at most one dataset per panel type and an append-only list of
// generated reports. It lives for the lifetime of the process.
type Store struct {
	mu       sync.RWMutex
	datasets map[model.PanelType]*model.Dataset
	reports  []model.Report
}

// Stats is a point-in-time view of store occupancy.
type Stats struct {
	Datasets     int       `json:"datasets"`
	Reports      int       `json:"reports"`
	LastUpload   time.Time `json:"lastUpload"`
	LastGenerate time.Time `json:"lastGenerate"`
}

func New() *Store {
	return &Store{
		datasets: make(map[model.PanelType]*model.Dataset),
	}
}

// PutDataset installs ds as the live dataset for its panel type, replacing any previous one.
func (s *Store) PutDataset(ds *model.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[ds.PanelType] = ds
}

// Dataset returns the live dataset for panel, or a NoDataError.
func (s *Store) Dataset(panel model.PanelType) (*model.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.datasets[panel]
	if !ok {
		return nil, model.NewNoDataError(model.MsgNoData)
	}
	return ds, nil
}

// Datasets returns the live datasets, Deposit first.
func (s *Store) Datasets() []*model.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Dataset, 0, len(s.datasets))
	for _, p := range model.PanelTypes {
		if ds, ok := s.datasets[p]; ok {
			out = append(out, ds)
		}
	}
	return out
}

// AddReport assigns the next id to r, appends it and returns the stored copy.
func (s *Store) AddReport(r model.Report) model.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = len(s.reports) + 1
	s.reports = append(s.reports, r)
	return r
}

// Reports returns every report in creation order.
func (s *Store) Reports() []model.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Report, len(s.reports))
	copy(out, s.reports)
	return out
}

func (s *Store) ReportsByPanel(panel model.PanelType) []model.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Report
	for _, r := range s.reports {
		if r.PanelType == panel {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) Report(id int) (model.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 1 || id > len(s.reports) {
		return model.Report{}, false
	}
	return s.reports[id-1], true
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{Datasets: len(s.datasets), Reports: len(s.reports)}
	for _, ds := range s.datasets {
		if ds.CreatedAt.After(st.LastUpload) {
			st.LastUpload = ds.CreatedAt
		}
	}
	if n := len(s.reports); n > 0 {
		st.LastGenerate = s.reports[n-1].CreatedAt
	}
	return st
}
