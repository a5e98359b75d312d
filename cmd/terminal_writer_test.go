package cmd

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/meysamhadeli/repoctx/config"
	"github.com/meysamhadeli/repoctx/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalWriter_LogRecordsClearTheSpinnerLine(t *testing.T) {
	var out bytes.Buffer
	terminal := newTerminalWriter(&out)

	_, err := io.WriteString(terminal.Frames(), "\r⠋ Analyzing")
	require.NoError(t, err)

	log := logger.NewWithWriter(config.Logging{Level: "info", Format: "text"}, terminal)
	log.Warn("could not parse imports", "path", "a.py")

	assert.Contains(t, out.String(), "\r⠋ Analyzing"+clearLine+"time=")
	assert.Contains(t, out.String(), "app=repoctx path=a.py\n")
}

func TestTerminalWriter_RecordsStayWhole(t *testing.T) {
	var out bytes.Buffer
	terminal := newTerminalWriter(&out)
	log := logger.NewWithWriter(config.Logging{Level: "info", Format: "json"}, terminal)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = io.WriteString(terminal.Frames(), "\r⠙ Analyzing")
		}()
		go func() {
			defer wg.Done()
			log.Info("analysis step")
		}()
	}
	wg.Wait()

	records := bytes.Count(out.Bytes(), []byte(clearLine+"{"))
	assert.Equal(t, 20, records)
	assert.Equal(t, 20, bytes.Count(out.Bytes(), []byte("\"app\":\"repoctx\"}\n")))
}
