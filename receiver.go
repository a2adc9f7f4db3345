package main

import (
	"fmt"
	"net"
	"time"

	"bits-to-http/bits"
)

type receiverManager struct {
	instances []*receiverInstance
}

type receiverInstance struct {
	config        sourceConfig
	reportManager *reportManager
	sourceState   sourceReport

	logger logger
}

func newReceiverManager(sources []sourceConfig, reports *reportManager, log logger) *receiverManager {
	m := &receiverManager{
		instances: make([]*receiverInstance, len(sources)),
	}

	sourceLog := log.newSubLogger("sources")

	for i, source := range sources {
		m.instances[i] = &receiverInstance{
			config:        source,
			reportManager: reports,
			sourceState: sourceReport{
				Connected: false,
			},
			logger: sourceLog.newSubLogger(source.Id),
		}
	}

	return m
}

func (m *receiverManager) run() error {
	errChan := make(chan error)

	for _, i := range m.instances {
		instance := i

		go func() {
			err := instance.run()

			if err == nil {
				return
			}

			errChan <- err
		}()
	}

	return <-errChan
}

func (m *receiverInstance) run() error {
	delay := false

	for {
		if delay {
			m.logger.Printf("waiting %d seconds before reconnect...", m.config.ReconnectDelay)
			time.Sleep(time.Duration(m.config.ReconnectDelay) * time.Second)
		}

		delay = true

		var timeout time.Duration

		if m.config.ConnectTimeout > 0 {
			timeout = time.Duration(m.config.ConnectTimeout) * time.Second
		}

		m.logger.Printf("connecting to %s...", m.config.Address)
		conn, err := net.DialTimeout("tcp", m.config.Address, timeout)

		if err != nil {
			m.logger.Printf("dial failed: %v", err)
			continue
		}

		m.logger.Printf("connection established")

		err = m.handleConnection(conn)

		if err != nil {
			m.logger.Printf("connection error: %v", err)
		}
	}
}

func (m *receiverInstance) handleConnection(conn net.Conn) error {
	defer func() {
		// The last decoded transmission stays in the report; only the
		// liveness fields reset on disconnect.
		m.sourceState.Connected = false
		m.sourceState.LastUpdate = nil
		m.commitReport()

		_ = conn.Close()
	}()

	m.sourceState.Connected = true
	m.commitReport()

	reader := bits.NewReader(conn)

	for {
		if m.config.ReadTimeout > 0 {
			err := conn.SetReadDeadline(time.Now().Add(time.Duration(m.config.ReadTimeout) * time.Second))

			if err != nil {
				m.logger.Printf("failed to set read deadline: %v", err)
			}
		}

		t, err := reader.ReadTransmission()

		if err != nil {
			return err
		}

		if !m.config.DisableReceptionLog {
			if m.config.Debug {
				m.logger.Printf("received transmission:\n%s", t.StringPretty())
			} else {
				m.logger.Printf("received transmission with version checksum %d and value %d", t.VersionChecksum, t.Value)
			}
		}

		now := time.Now()
		m.sourceState.LastUpdate = &now
		m.sourceState.LastTransmission = &transmissionReport{
			Hex:             t.Hex,
			Checksum:        fmt.Sprintf("%04x", t.Checksum),
			VersionChecksum: t.VersionChecksum,
			Value:           t.Value,
		}

		m.commitReport()
	}
}

func (m *receiverInstance) commitReport() {
	m.reportManager.updateSource(m.config.Id, m.sourceState)
}
