package logging

import (
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
)

// callerDepth is the number of frames between Fire and the function that called the logger.
const callerDepth = 9

// ContextHook will add go source information (file, line, func)
type ContextHook struct{}

// Levels defines which logging levels fire the hook. In our case, all levels.
func (hook ContextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire is the method that's executed when logging event is logged. When logrus already resolved the caller, the
// hook reuses it; otherwise it goes back the call stack to find which method executed the call.
func (hook ContextHook) Fire(entry *logrus.Entry) error {
	if entry.HasCaller() {
		entry.Data["file"] = path.Base(entry.Caller.File)
		entry.Data["line"] = entry.Caller.Line
		entry.Data["func"] = path.Base(entry.Caller.Function)
		return nil
	}

	if pc, file, line, ok := runtime.Caller(callerDepth); ok {
		funcName := runtime.FuncForPC(pc).Name()

		entry.Data["file"] = path.Base(file)
		entry.Data["line"] = line
		entry.Data["func"] = path.Base(funcName)
	}

	return nil
}
