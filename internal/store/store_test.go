package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MerchantReports/internal/model"
)

func TestDatasetMissing(t *testing.T) {
	s := New()
	_, err := s.Dataset(model.Withdrawal)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNoData))
	assert.Equal(t, model.MsgNoData, err.Error())
}

func TestPutDatasetReplaces(t *testing.T) {
	s := New()
	s.PutDataset(&model.Dataset{PanelType: model.Deposit, OriginalName: "first.xlsx"})
	s.PutDataset(&model.Dataset{PanelType: model.Deposit, OriginalName: "second.xlsx"})

	ds, err := s.Dataset(model.Deposit)
	require.NoError(t, err)
	assert.Equal(t, "second.xlsx", ds.OriginalName)
	assert.Len(t, s.Datasets(), 1)

	_, err = s.Dataset(model.Withdrawal)
	assert.ErrorIs(t, err, model.ErrNoData)
}

func TestDatasetsOrder(t *testing.T) {
	s := New()
	s.PutDataset(&model.Dataset{PanelType: model.Withdrawal})
	s.PutDataset(&model.Dataset{PanelType: model.Deposit})

	got := s.Datasets()
	require.Len(t, got, 2)
	assert.Equal(t, model.Deposit, got[0].PanelType)
	assert.Equal(t, model.Withdrawal, got[1].PanelType)
}

func TestReportsAppendOnly(t *testing.T) {
	s := New()
	r1 := s.AddReport(model.Report{PanelType: model.Deposit})
	r2 := s.AddReport(model.Report{PanelType: model.Withdrawal})
	r3 := s.AddReport(model.Report{PanelType: model.Deposit})

	assert.Equal(t, 1, r1.ID)
	assert.Equal(t, 2, r2.ID)
	assert.Equal(t, 3, r3.ID)
	assert.Len(t, s.Reports(), 3)
	assert.Len(t, s.ReportsByPanel(model.Deposit), 2)

	got, ok := s.Report(2)
	require.True(t, ok)
	assert.Equal(t, model.Withdrawal, got.PanelType)

	_, ok = s.Report(0)
	assert.False(t, ok)
	_, ok = s.Report(4)
	assert.False(t, ok)
}

func TestReportsReturnsCopy(t *testing.T) {
	s := New()
	s.AddReport(model.Report{StartDate: "2024-01-01"})
	list := s.Reports()
	list[0].StartDate = "changed"

	got, _ := s.Report(1)
	assert.Equal(t, "2024-01-01", got.StartDate)
}

func TestStats(t *testing.T) {
	s := New()
	assert.Equal(t, Stats{}, s.Stats())

	up := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	gen := up.Add(time.Hour)
	s.PutDataset(&model.Dataset{PanelType: model.Deposit, CreatedAt: up})
	s.AddReport(model.Report{CreatedAt: gen})

	st := s.Stats()
	assert.Equal(t, 1, st.Datasets)
	assert.Equal(t, 1, st.Reports)
	assert.True(t, st.LastUpload.Equal(up))
	assert.True(t, st.LastGenerate.Equal(gen))
}
