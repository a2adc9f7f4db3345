package main

import (
	"sync"
	"time"
)

type report struct {
	Sources map[string]sourceReport `json:"sources"`
}

type sourceReport struct {
	Connected        bool                `json:"connected"`
	LastUpdate       *time.Time          `json:"lastUpdate"`
	LastTransmission *transmissionReport `json:"lastTransmission"`
}

type transmissionReport struct {
	Hex             string `json:"hex"`
	Checksum        string `json:"checksum"`
	VersionChecksum uint64 `json:"versionChecksum"`
	Value           uint64 `json:"value"`
}

type reportManager struct {
	image report
	lock  sync.Mutex
}

func newReportManager(cfg *config) *reportManager {
	m := &reportManager{
		image: report{
			Sources: make(map[string]sourceReport),
		},
	}

	for _, s := range cfg.Sources {
		m.image.Sources[s.Id] = sourceReport{
			Connected:        false,
			LastUpdate:       nil,
			LastTransmission: nil,
		}
	}

	return m
}

func (m *reportManager) updateSource(sourceId string, value sourceReport) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.image.Sources[sourceId] = value
}

func (m *reportManager) get() report {
	m.lock.Lock()
	defer m.lock.Unlock()

	sources := make(map[string]sourceReport, len(m.image.Sources))

	for id, s := range m.image.Sources {
		sources[id] = s
	}

	return report{
		Sources: sources,
	}
}
