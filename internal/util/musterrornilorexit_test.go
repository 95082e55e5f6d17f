package util

import (
	"os"
	"sync"
	"testing"

	"bou.ke/monkey"
	"github.com/bokysan/base47/internal/util/enc"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// seqMutex makes sure that we are executing the code sequentially, as we are monkey-patching the code in-memory.
// This is not thread safe or safe in any kind of way
var seqMutex sync.Mutex

// patchExit replaces os.Exit with a function recording the exit code. The returned function restores os.Exit.
func patchExit(code *int, exited *bool) func() {
	seqMutex.Lock()
	patch := monkey.Patch(os.Exit, func(i int) {
		*code = i
		*exited = true
	})
	return func() {
		patch.Unpatch()
		seqMutex.Unlock()
	}
}

func Test_MustErrorNilOrExit_NilError(t *testing.T) {
	var code int
	var exited bool
	defer patchExit(&code, &exited)()

	MustErrorNilOrExit(nil)

	require.False(t, exited, "MustErrorNilOrExit existed the program and it shouldn't have done so.")
}

func Test_MustErrorNilOrExit_FlagsError(t *testing.T) {
	var code int
	var exited bool
	defer patchExit(&code, &exited)()

	err := &flags.Error{
		Type:    flags.ErrShortNameTooLong,
		Message: "Short name too long",
	}

	MustErrorNilOrExit(err)

	require.True(t, exited)
	require.Equal(t, int(flags.ErrShortNameTooLong), code, "MustErrorNilOrExit did not return a proper exit code")
}

func Test_MustErrorNilOrExit_Help(t *testing.T) {
	var code int
	var exited bool
	defer patchExit(&code, &exited)()

	MustErrorNilOrExit(&flags.Error{Type: flags.ErrHelp})

	require.True(t, exited)
	require.Equal(t, 0, code)
}

func Test_MustErrorNilOrExit_FormatError(t *testing.T) {
	var code int
	var exited bool
	defer patchExit(&code, &exited)()

	_, err := enc.Base47.Decode("not emoji")
	require.Error(t, err)

	MustErrorNilOrExit(errors.Wrap(err, "decode"))

	require.True(t, exited)
	require.Equal(t, ErrInvalidInput, code)
}

func Test_MustErrorNilOrExit_GenericError(t *testing.T) {
	var code int
	var exited bool
	defer patchExit(&code, &exited)()

	MustErrorNilOrExit(errors.New("demo"))

	require.True(t, exited)
	require.Equal(t, ErrGeneric, code, "MustErrorNilOrExit did not return a proper exit code")
}
