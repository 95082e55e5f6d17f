package serve

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/bokysan/base47/internal/util/addr"
	"github.com/stretchr/testify/require"
)

func Test_StartupShutdown(t *testing.T) {
	c := NewCommand()
	c.Listen = addr.MustParseAddress("tcp://127.0.0.1:0")
	require.NoError(t, c.Startup())

	resp, err := http.Get(fmt.Sprintf("%v/encodings", c.server))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	require.NoError(t, c.Shutdown())
}

func Test_ShutdownWithoutStartup(t *testing.T) {
	require.NoError(t, NewCommand().Shutdown())
}

func Test_InvalidInputSize(t *testing.T) {
	c := NewCommand()
	c.MaxInputSize = 0
	require.Error(t, c.Startup())
}

func Test_ListenFailure(t *testing.T) {
	first := NewCommand()
	first.Listen = addr.MustParseAddress("tcp://127.0.0.1:0")
	require.NoError(t, first.Startup())
	defer first.Shutdown()

	second := NewCommand()
	second.Listen = addr.MustParseAddress("tcp://" + first.server.String()[len("http://"):])
	require.Error(t, second.Startup())
}
