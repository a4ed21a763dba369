package svgtree

import "go.uber.org/zap"

// logger is shared by the packages processing SVG documents.
var logger = zap.NewNop()

// SetLogger replaces the package logger. A nil logger disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Logger returns the logger used by svgtree, so that packages
// building on it log to the same destination.
func Logger() *zap.Logger { return logger }
