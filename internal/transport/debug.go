package transport

import (
	"encoding/hex"

	"github.com/sirupsen/logrus"
)

// WithLogging wraps a transport so every packet and response is hex-dumped
// at debug level.
func WithLogging(t Transport, log logrus.FieldLogger) Transport {
	return &loggingTransport{t: t, log: log}
}

type loggingTransport struct {
	t   Transport
	log logrus.FieldLogger
}

func (l *loggingTransport) Write(p []byte) error {
	err := l.t.Write(p)
	entry := l.log.WithFields(logrus.Fields{"len": len(p), "hex": hex.EncodeToString(p)})
	if err != nil {
		entry.WithError(err).Debug("write failed")
		return err
	}
	entry.Debug("write")
	return nil
}

func (l *loggingTransport) Read() ([]byte, error) {
	resp, err := l.t.Read()
	if err != nil {
		l.log.WithError(err).Debug("read failed")
		return nil, err
	}
	l.log.WithFields(logrus.Fields{"len": len(resp), "hex": hex.EncodeToString(resp)}).Debug("read")
	return resp, nil
}

func (l *loggingTransport) Close() error {
	return l.t.Close()
}
